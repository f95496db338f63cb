// Package debug implements a CPU-side preview rasterizer, used only by
// its tests: a quick low-fidelity PNG of a single node
// parameter's value curve over time, without spinning up a GL context.
// Grounded on mzgs-audio-spectrum's gg.Context-based frame drawing
// (NewContext/SetColor/Clear/line drawing), repurposed from spectrum bars
// to a parameter-curve plot.
package debug

import (
	"image/color"

	"github.com/fogleman/gg"

	"github.com/cartomix/aurora/internal/model"
	"github.com/cartomix/aurora/internal/param"
)

// Sample is one evaluated (time, value) pair.
type Sample struct {
	TimeSeconds float64
	Value       float32
}

// EvaluateCurve samples a ControlParam at numSamples evenly spaced points
// across [0, duration], using a fresh param.Evaluator (no smoothing state
// carried from any real render).
func EvaluateCurve(p *model.ControlParam, duration float64, feats *model.AudioFeatures, numSamples int) []Sample {
	if numSamples <= 0 {
		numSamples = 1
	}
	ev := param.NewEvaluator()
	samples := make([]Sample, numSamples)
	for i := 0; i < numSamples; i++ {
		t := duration * float64(i) / float64(numSamples-1+boolToInt(numSamples == 1))
		idx := 0
		if n := feats.Len(); n > 0 {
			idx = int(t * float64(model.FrameRate))
			if idx >= n {
				idx = n - 1
			}
		}
		v := ev.Eval("debug", "value", p, t, duration, feats, idx)
		samples[i] = Sample{TimeSeconds: t, Value: v}
	}
	return samples
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// RenderCurvePNG draws samples as a line chart over a dark background and
// writes it to path, for a human to eyeball while debugging a timeline.
func RenderCurvePNG(path string, samples []Sample, width, height int) error {
	dc := gg.NewContext(width, height)
	dc.SetColor(color.RGBA{20, 20, 24, 255})
	dc.Clear()

	if len(samples) < 2 {
		return dc.SavePNG(path)
	}

	minV, maxV := samples[0].Value, samples[0].Value
	for _, s := range samples {
		if s.Value < minV {
			minV = s.Value
		}
		if s.Value > maxV {
			maxV = s.Value
		}
	}
	if maxV == minV {
		maxV = minV + 1
	}

	margin := 10.0
	plotW := float64(width) - 2*margin
	plotH := float64(height) - 2*margin

	dc.SetColor(color.RGBA{80, 200, 255, 255})
	dc.SetLineWidth(2)

	maxT := samples[len(samples)-1].TimeSeconds
	if maxT == 0 {
		maxT = 1
	}

	last := samples[0]
	for _, s := range samples[1:] {
		x0 := margin + plotW*(last.TimeSeconds/maxT)
		y0 := margin + plotH*(1-float64((last.Value-minV)/(maxV-minV)))
		x1 := margin + plotW*(s.TimeSeconds/maxT)
		y1 := margin + plotH*(1-float64((s.Value-minV)/(maxV-minV)))
		dc.DrawLine(x0, y0, x1, y1)
		dc.Stroke()
		last = s
	}

	return dc.SavePNG(path)
}
