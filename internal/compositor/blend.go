package compositor

import "github.com/cartomix/aurora/internal/model"

// RGB is a straight (non-premultiplied) color in [0,1] per channel.
type RGB struct {
	R, G, B float32
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Blend composites src over dst at the given opacity using mode, per
// spec.md §4.5 step 3's four blend-mode definitions. This is the CPU-side
// reference used by tests; the GL hot path (compositeOnto) expresses
// Normal and Add as glBlendFunc state and Screen and Multiply as the
// catalog's blend shader programs.
func Blend(mode model.BlendMode, dst, src RGB, opacity float32) RGB {
	opacity = clamp01(opacity)
	switch mode {
	case model.BlendAdd:
		return RGB{
			R: clamp01(dst.R + src.R*opacity),
			G: clamp01(dst.G + src.G*opacity),
			B: clamp01(dst.B + src.B*opacity),
		}
	case model.BlendScreen:
		screen := func(a, b float32) float32 { return 1 - (1-a)*(1-b) }
		blended := RGB{R: screen(dst.R, src.R), G: screen(dst.G, src.G), B: screen(dst.B, src.B)}
		return lerpRGB(dst, blended, opacity)
	case model.BlendMultiply:
		blended := RGB{R: dst.R * src.R, G: dst.G * src.G, B: dst.B * src.B}
		return lerpRGB(dst, blended, opacity)
	case model.BlendNormal:
		fallthrough
	default:
		return lerpRGB(dst, src, opacity)
	}
}

func lerpRGB(a, b RGB, u float32) RGB {
	return RGB{
		R: a.R + (b.R-a.R)*u,
		G: a.G + (b.G-a.G)*u,
		B: a.B + (b.B-a.B)*u,
	}
}
