package debug

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cartomix/aurora/internal/model"
)

func TestEvaluateCurveStaticParamIsFlat(t *testing.T) {
	p := &model.ControlParam{Kind: model.ParamStatic, Value: 0.42}
	samples := EvaluateCurve(p, 2.0, nil, 5)
	for _, s := range samples {
		if s.Value != 0.42 {
			t.Errorf("static param should be flat, got %v at t=%v", s.Value, s.TimeSeconds)
		}
	}
}

func TestEvaluateCurveEvolvingParamSpansStartToEnd(t *testing.T) {
	p := &model.ControlParam{Kind: model.ParamEvolving, Start: 0, End: 1, EvolveCurve: model.CurveLinear}
	samples := EvaluateCurve(p, 2.0, nil, 3)
	if samples[0].Value != 0 {
		t.Errorf("first sample = %v, want 0", samples[0].Value)
	}
	if samples[len(samples)-1].Value != 1 {
		t.Errorf("last sample = %v, want 1", samples[len(samples)-1].Value)
	}
}

func TestRenderCurvePNGWritesValidPNG(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "curve.png")
	samples := []Sample{{0, 0}, {0.5, 0.5}, {1, 1}}

	if err := RenderCurvePNG(path, samples, 64, 32); err != nil {
		t.Fatalf("RenderCurvePNG: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read png: %v", err)
	}
	pngMagic := []byte{0x89, 'P', 'N', 'G'}
	if len(data) < 4 || string(data[:4]) != string(pngMagic) {
		t.Errorf("output is not a valid PNG header")
	}
}
