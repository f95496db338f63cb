package timeline

import (
	"testing"

	"github.com/cartomix/aurora/internal/model"
)

func TestParseMinimalTimeline(t *testing.T) {
	raw := []byte(`{
		"duration": 10,
		"backgroundColor": {"kind": "static", "value": 0.05},
		"nodes": [
			{
				"id": "bg",
				"type": "generator",
				"startTime": 0,
				"endTime": 10,
				"blendMode": "Normal",
				"generator": {"name": "PerlinNoise", "speed": {"kind": "static", "value": 0.5}}
			}
		]
	}`)

	vt, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if vt.DurationSeconds != 10 {
		t.Errorf("duration = %v, want 10", vt.DurationSeconds)
	}
	if len(vt.Nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(vt.Nodes))
	}
	n := vt.Nodes[0]
	if n.Kind != model.NodeGenerator || n.GeneratorKind != model.GeneratorPerlinNoise {
		t.Errorf("node kind mismatch: %+v", n)
	}
	if !n.Enabled {
		t.Error("node should default to enabled")
	}
	if n.OpacityBase != 1 {
		t.Errorf("opacityBase default = %v, want 1", n.OpacityBase)
	}
	cp, ok := n.Params["speed"]
	if !ok || cp.Kind != model.ParamStatic || cp.Value != 0.5 {
		t.Errorf("speed param not parsed: %+v", cp)
	}
}

func TestParseAudioReactiveParam(t *testing.T) {
	raw := []byte(`{
		"duration": 4,
		"nodes": [
			{
				"id": "n1",
				"type": "effect",
				"startTime": 0,
				"endTime": 4,
				"effect": {
					"name": "Bloom",
					"intensity": {"kind": "audioReactive", "source": {"kind": "series", "name": "rms"}, "range": [0, 1], "smoothing": 0.8}
				}
			}
		]
	}`)

	vt, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cp := vt.Nodes[0].Params["intensity"]
	if cp.Kind != model.ParamAudioReactive {
		t.Fatalf("kind = %v, want audioReactive", cp.Kind)
	}
	if cp.Source.Kind != model.SourceSeries || cp.Source.SeriesName != "rms" {
		t.Errorf("source mismatch: %+v", cp.Source)
	}
	if cp.RangeLo != 0 || cp.RangeHi != 1 || cp.Smoothing != 0.8 {
		t.Errorf("range/smoothing mismatch: %+v", cp)
	}
}

func TestParseRejectsZeroDuration(t *testing.T) {
	raw := []byte(`{"duration": 0, "nodes": []}`)
	if _, err := Parse(raw); err == nil {
		t.Error("expected error for zero duration")
	}
}

func TestParseRejectsNodeEndTimeExceedingDuration(t *testing.T) {
	raw := []byte(`{
		"duration": 2,
		"nodes": [{"id": "n", "type": "generator", "startTime": 0, "endTime": 5, "generator": {"name": "SolidColor"}}]
	}`)
	if _, err := Parse(raw); err == nil {
		t.Error("expected error for node exceeding timeline duration")
	}
}

func TestParseSkipsUnknownNodeType(t *testing.T) {
	raw := []byte(`{
		"duration": 2,
		"nodes": [{"id": "n", "type": "mystery", "startTime": 0, "endTime": 1}]
	}`)
	vt, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(vt.Nodes) != 0 {
		t.Errorf("expected unknown node type to be skipped, got %+v", vt.Nodes)
	}
}

func TestParseDisabledNodeRespected(t *testing.T) {
	raw := []byte(`{
		"duration": 2,
		"nodes": [{"id": "n", "type": "generator", "enabled": false, "startTime": 0, "endTime": 1, "generator": {"name": "SolidColor"}}]
	}`)
	vt, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if vt.Nodes[0].Enabled {
		t.Error("expected node to be disabled")
	}
}

func TestParseMalformedJSONReturnsInvalidTimelineError(t *testing.T) {
	_, err := Parse([]byte(`{not valid json`))
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := err.(*model.InvalidTimelineError); !ok {
		t.Errorf("expected *model.InvalidTimelineError, got %T", err)
	}
}
