package param

import (
	"math"
	"testing"

	"github.com/cartomix/aurora/internal/model"
)

func TestStaticReturnsValueRegardlessOfTime(t *testing.T) {
	p := model.Static(0.75)
	for _, tc := range []struct{ t, duration float64 }{
		{0, 10}, {5, 10}, {10, 10}, {-1, 10},
	} {
		got := Evaluate(&p, tc.t, tc.duration, nil, 0)
		if got != 0.75 {
			t.Errorf("Static at t=%v duration=%v: got %v, want 0.75", tc.t, tc.duration, got)
		}
	}
}

func TestEvolvingBoundaries(t *testing.T) {
	p := model.Evolving(10, 20, model.CurveLinear)
	if got := Evaluate(&p, 0, 10, nil, 0); got != 10 {
		t.Errorf("u=0: got %v, want start=10", got)
	}
	if got := Evaluate(&p, 10, 10, nil, 0); got != 20 {
		t.Errorf("u=1: got %v, want end=20", got)
	}
}

func TestEvolvingLinearMonotonic(t *testing.T) {
	p := model.Evolving(0, 100, model.CurveLinear)
	prev := float32(-1)
	for i := 0; i <= 10; i++ {
		t_ := float64(i)
		got := Evaluate(&p, t_, 10, nil, 0)
		if got < prev {
			t.Fatalf("linear curve not monotonic at step %d: %v < %v", i, got, prev)
		}
		prev = got
	}
}

func TestEvolvingClampsOutOfRangeTime(t *testing.T) {
	p := model.Evolving(0, 1, model.CurveLinear)
	if got := Evaluate(&p, -5, 10, nil, 0); got != 0 {
		t.Errorf("t<0 should clamp to start, got %v", got)
	}
	if got := Evaluate(&p, 100, 10, nil, 0); got != 1 {
		t.Errorf("t>duration should clamp to end, got %v", got)
	}
}

func TestEvolvingZeroDurationDoesNotPanic(t *testing.T) {
	p := model.Evolving(0, 1, model.CurveLinear)
	got := Evaluate(&p, 5, 0, nil, 0)
	if got != 0 {
		t.Errorf("zero duration should fall back to u=0, got %v", got)
	}
}

func TestAudioReactiveSeriesLookup(t *testing.T) {
	feats := &model.AudioFeatures{RMS: []float32{0, 0.5, 1.0}}
	p := model.ControlParam{
		Kind:    model.ParamAudioReactive,
		Source:  model.AudioSource{Kind: model.SourceSeries, SeriesName: "rms"},
		RangeLo: 0,
		RangeHi: 10,
	}
	if got := Evaluate(&p, 0, 10, feats, 2); got != 10 {
		t.Errorf("rms=1.0 over range [0,10]: got %v, want 10", got)
	}
}

func TestAudioReactiveUnknownSeriesReturnsZero(t *testing.T) {
	feats := &model.AudioFeatures{RMS: []float32{1}}
	p := model.ControlParam{
		Kind:    model.ParamAudioReactive,
		Source:  model.AudioSource{Kind: model.SourceSeries, SeriesName: "nonexistent"},
		RangeLo: 0,
		RangeHi: 10,
	}
	if got := Evaluate(&p, 0, 10, feats, 0); got != 0 {
		t.Errorf("unknown series: got %v, want 0", got)
	}
}

func TestAudioReactiveBeatSource(t *testing.T) {
	feats := &model.AudioFeatures{
		Beats: []model.Beat{{TimeSeconds: 1.0, Confidence: 0.8}},
	}
	p := model.ControlParam{
		Kind:    model.ParamAudioReactive,
		Source:  model.AudioSource{Kind: model.SourceBeat, BeatMinConfidence: 0.5},
		RangeLo: 0,
		RangeHi: 1,
	}
	if got := Evaluate(&p, 1.02, 10, feats, 0); got != 0.8 {
		t.Errorf("near beat: got %v, want 0.8", got)
	}
	if got := Evaluate(&p, 5.0, 10, feats, 0); got != 0 {
		t.Errorf("far from beat: got %v, want 0", got)
	}
}

func TestEvaluateNilParamReturnsZero(t *testing.T) {
	if got := Evaluate(nil, 0, 10, nil, 0); got != 0 {
		t.Errorf("nil param: got %v, want 0", got)
	}
}

func TestEvaluateNeverPanicsOnMalformedKind(t *testing.T) {
	p := model.ControlParam{Kind: "bogus"}
	got := Evaluate(&p, 0, 10, nil, 0)
	if got != 0 || math.IsNaN(float64(got)) {
		t.Errorf("malformed kind: got %v, want 0", got)
	}
}

func TestEvaluatorSmoothsTowardRawValue(t *testing.T) {
	e := NewEvaluator()
	p := model.ControlParam{
		Kind:      model.ParamAudioReactive,
		Source:    model.AudioSource{Kind: model.SourceSeries, SeriesName: "rms"},
		RangeLo:   0,
		RangeHi:   1,
		Smoothing: 0.9,
	}
	feats := &model.AudioFeatures{RMS: []float32{1, 1, 1, 1}}

	first := e.Eval("n1", "p", &p, 0, 10, feats, 0)
	if first != 1 {
		t.Fatalf("first sample should seed unsmoothed, got %v", first)
	}

	feats.RMS[1] = 0
	second := e.Eval("n1", "p", &p, 1, 10, feats, 1)
	if second <= 0 || second >= 1 {
		t.Errorf("smoothed second sample should be between 0 and 1, got %v", second)
	}
}

func TestEvaluatorKeysAreIndependentPerNode(t *testing.T) {
	e := NewEvaluator()
	p := model.ControlParam{
		Kind:      model.ParamAudioReactive,
		Source:    model.AudioSource{Kind: model.SourceSeries, SeriesName: "rms"},
		RangeLo:   0,
		RangeHi:   1,
		Smoothing: 0.5,
	}
	feats := &model.AudioFeatures{RMS: []float32{1}}

	e.Eval("node-a", "p", &p, 0, 10, feats, 0)
	// A different node's first sample must not be affected by node-a's state.
	got := e.Eval("node-b", "p", &p, 0, 10, feats, 0)
	if got != 1 {
		t.Errorf("node-b first sample should seed at raw value 1, got %v", got)
	}
}
