package compositor

import (
	"testing"

	"github.com/cartomix/aurora/internal/model"
)

func baseNode() *model.Node {
	return &model.Node{
		Enabled:     true,
		StartTime:   1,
		EndTime:     4,
		FadeIn:      1,
		FadeOut:     1,
		OpacityBase: 1,
	}
}

func TestEffectiveOpacityZeroBeforeStart(t *testing.T) {
	n := baseNode()
	if got := EffectiveOpacity(n, 0.5); got != 0 {
		t.Errorf("before start: got %v, want 0", got)
	}
}

func TestEffectiveOpacityFullAfterFadeIn(t *testing.T) {
	n := baseNode()
	if got := EffectiveOpacity(n, n.StartTime+n.FadeIn); got != 1 {
		t.Errorf("at startTime+fadeIn: got %v, want 1", got)
	}
}

func TestEffectiveOpacitySymmetricFadeOut(t *testing.T) {
	n := baseNode()
	if got := EffectiveOpacity(n, n.EndTime-n.FadeOut); got != 1 {
		t.Errorf("at endTime-fadeOut: got %v, want 1", got)
	}
}

func TestEffectiveOpacityZeroAfterEnd(t *testing.T) {
	n := baseNode()
	if got := EffectiveOpacity(n, n.EndTime+0.01); got != 0 {
		t.Errorf("after end: got %v, want 0", got)
	}
}

func TestEffectiveOpacityDisabledNodeIsAlwaysZero(t *testing.T) {
	n := baseNode()
	n.Enabled = false
	if got := EffectiveOpacity(n, 2); got != 0 {
		t.Errorf("disabled node: got %v, want 0", got)
	}
}

func TestEffectiveOpacityExplicitZeroBaseStaysZero(t *testing.T) {
	n := baseNode()
	n.OpacityBase = 0
	if got := EffectiveOpacity(n, n.StartTime+n.FadeIn); got != 0 {
		t.Errorf("explicit opacityBase=0: got %v, want 0", got)
	}
}

func TestEffectiveOpacityNilNodeIsZero(t *testing.T) {
	if got := EffectiveOpacity(nil, 0); got != 0 {
		t.Errorf("nil node: got %v, want 0", got)
	}
}
