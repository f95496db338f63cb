package compositor

import (
	"testing"

	"github.com/cartomix/aurora/internal/model"
)

func TestBlendNormalFullOpacityReturnsSrc(t *testing.T) {
	dst := RGB{0.2, 0.2, 0.2}
	src := RGB{0.8, 0.1, 0.5}
	got := Blend(model.BlendNormal, dst, src, 1)
	if got != src {
		t.Errorf("got %+v, want %+v", got, src)
	}
}

func TestBlendNormalZeroOpacityReturnsDst(t *testing.T) {
	dst := RGB{0.2, 0.2, 0.2}
	src := RGB{0.8, 0.1, 0.5}
	got := Blend(model.BlendNormal, dst, src, 0)
	if got != dst {
		t.Errorf("got %+v, want %+v", got, dst)
	}
}

func TestBlendAddClampsToOne(t *testing.T) {
	dst := RGB{0.5, 0.5, 0.5}
	src := RGB{1.0, 1.0, 1.0}
	got := Blend(model.BlendAdd, dst, src, 1)
	if got.R != 1 || got.G != 1 || got.B != 1 {
		t.Errorf("additive blend should clamp to 1, got %+v", got)
	}
}

func TestBlendMultiplyDarkens(t *testing.T) {
	dst := RGB{1, 1, 1}
	src := RGB{0.5, 0.5, 0.5}
	got := Blend(model.BlendMultiply, dst, src, 1)
	if got.R != 0.5 {
		t.Errorf("multiply should yield 0.5, got %v", got.R)
	}
}

func TestBlendScreenIsAtLeastAsBrightAsInputs(t *testing.T) {
	dst := RGB{0.3, 0.3, 0.3}
	src := RGB{0.4, 0.4, 0.4}
	got := Blend(model.BlendScreen, dst, src, 1)
	if got.R < dst.R || got.R < src.R {
		t.Errorf("screen blend should brighten, got %v from dst=%v src=%v", got.R, dst.R, src.R)
	}
}
