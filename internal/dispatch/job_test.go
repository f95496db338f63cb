package dispatch

import (
	"testing"

	"github.com/cartomix/aurora/internal/model"
)

func TestWriteReadJobFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	job := &Job{
		WorkerIndex: 2,
		Start:       10,
		End:         20,
		Width:       640,
		Height:      360,
		FPS:         30,
		FramesDir:   dir,
		Timeline: &model.VisualTimeline{
			DurationSeconds: 5,
			Nodes: []model.Node{
				{ID: "bg", Kind: model.NodeGenerator, GeneratorKind: model.GeneratorSolidColor, EndTime: 5, OpacityBase: 1},
			},
		},
		Features: &model.AudioFeatures{RMS: []float32{0.1, 0.2, 0.3}},
	}

	path, err := WriteJobFile(dir, job)
	if err != nil {
		t.Fatalf("WriteJobFile: %v", err)
	}

	got, err := ReadJobFile(path)
	if err != nil {
		t.Fatalf("ReadJobFile: %v", err)
	}
	if got.WorkerIndex != 2 || got.Start != 10 || got.End != 20 {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if len(got.Timeline.Nodes) != 1 || got.Timeline.Nodes[0].GeneratorKind != model.GeneratorSolidColor {
		t.Errorf("timeline not preserved: %+v", got.Timeline)
	}
	if got.Features.Len() != 3 {
		t.Errorf("features not preserved: %+v", got.Features)
	}
}

func TestReadJobFileMissingPathErrors(t *testing.T) {
	if _, err := ReadJobFile("/nonexistent/job.json"); err == nil {
		t.Error("expected error for missing job file")
	}
}
