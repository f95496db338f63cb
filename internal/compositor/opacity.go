// Package compositor implements the frame compositor (spec.md §4.5, C5):
// computing node opacity, blending generators into an accumulator, and
// chaining effects through ping-pong framebuffers.
package compositor

import "github.com/cartomix/aurora/internal/model"

// EffectiveOpacity implements spec.md §4.5 step 1: 0 outside the node's
// [startTime,endTime] window; ramps in over fadeIn, ramps out over
// fadeOut; clamped to [0,1] and scaled by the node's base opacity.
func EffectiveOpacity(n *model.Node, t float64) float32 {
	if n == nil || !n.Enabled {
		return 0
	}
	if t < n.StartTime || t > n.EndTime {
		return 0
	}

	envelope := 1.0
	if n.FadeIn > 0 {
		if in := (t - n.StartTime) / n.FadeIn; in < 1 {
			envelope = in
		}
	}
	if n.FadeOut > 0 {
		if out := (n.EndTime - t) / n.FadeOut; out < envelope {
			envelope = out
		}
	}
	if envelope < 0 {
		envelope = 0
	}
	if envelope > 1 {
		envelope = 1
	}

	// n.OpacityBase is already defaulted to 1 by the timeline parser when
	// absent from the wire document (internal/timeline.parse.go); an
	// explicit 0 here is a node the orchestrator asked to be invisible and
	// must stay that way, not collapse back to full opacity.
	return float32(envelope) * n.OpacityBase
}
