// Package param implements the ControlParam evaluation engine (spec.md
// §4.3, C3): turning a static/evolving/audio-reactive parameter spec into
// a scalar at a given (time, audio frame index).
package param

import (
	"math"

	"github.com/cartomix/aurora/internal/model"
)

// lerp maps u in [0,1] linearly between lo and hi.
func lerp(lo, hi, u float32) float32 {
	return lo + (hi-lo)*u
}

func clamp01(u float64) float64 {
	if u < 0 {
		return 0
	}
	if u > 1 {
		return 1
	}
	return u
}

// curveValue applies the named easing function to u in [0,1].
func curveValue(curve model.Curve, u float64) float64 {
	switch curve {
	case model.CurveEaseIn:
		return u * u
	case model.CurveEaseOut:
		return 1 - (1-u)*(1-u)
	case model.CurveSine:
		return math.Sin(u * math.Pi / 2)
	case model.CurveBounce:
		return math.Sin(u*4*math.Pi)*(1-u) + u
	case model.CurveLinear:
		fallthrough
	default:
		return u
	}
}

// Evaluate computes a ControlParam's scalar value at time t (seconds into
// the timeline), given the timeline duration and the audio features for
// the job. audioFrameIdx is the pre-clamped RenderContext.AudioFrameIndex.
//
// Evaluate never panics: malformed input (unknown kind, missing series,
// non-finite range) resolves to 0, per spec.md §4.3.
func Evaluate(p *model.ControlParam, t, duration float64, feats *model.AudioFeatures, audioFrameIdx int) float32 {
	if p == nil {
		return 0
	}

	switch p.Kind {
	case model.ParamStatic:
		return p.Value

	case model.ParamEvolving:
		u := 0.0
		if duration > 0 {
			u = clamp01(t / duration)
		}
		f := curveValue(p.EvolveCurve, u)
		return lerp(p.Start, p.End, float32(f))

	case model.ParamAudioReactive:
		raw := readAudioSource(p.Source, t, feats, audioFrameIdx)
		v := lerp(p.RangeLo, p.RangeHi, raw)
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return 0
		}
		return v

	default:
		return 0
	}
}

func readAudioSource(src model.AudioSource, t float64, feats *model.AudioFeatures, audioFrameIdx int) float32 {
	if feats == nil {
		return 0
	}

	switch src.Kind {
	case model.SourceSeries:
		series, ok := feats.Series(src.SeriesName)
		if !ok {
			return 0
		}
		return model.At(series, audioFrameIdx)

	case model.SourceBeat:
		return feats.BeatNear(t, src.BeatMinConfidence)

	case model.SourceMFCC:
		if src.MFCCCoefficient < 0 || src.MFCCCoefficient > 12 || audioFrameIdx < 0 || audioFrameIdx >= len(feats.MFCC) {
			return 0
		}
		return feats.MFCC[audioFrameIdx][src.MFCCCoefficient]

	case model.SourceChroma:
		if src.ChromaNote < 0 || src.ChromaNote > 11 || audioFrameIdx < 0 || audioFrameIdx >= len(feats.Chroma) {
			return 0
		}
		return feats.Chroma[audioFrameIdx][src.ChromaNote]

	default:
		return 0
	}
}
