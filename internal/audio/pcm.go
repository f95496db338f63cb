// Package audio implements the audio decoder (spec.md §4.1, C1): turning an
// arbitrary input file into mono 32-bit float PCM at its native sample rate.
package audio

import "github.com/go-audio/audio"

// PCM is the decoder's output: mono float PCM plus the two scalars the
// extractor needs. It wraps a go-audio/audio.FloatBuffer the way the pack's
// audio repos (xyproto-synth, emer-auditory) carry format alongside samples
// instead of a bare []float32.
type PCM struct {
	buf *audio.FloatBuffer
}

// NewPCM wraps raw float64 samples (as decoded) with their format.
func NewPCM(samples []float64, sampleRate int) *PCM {
	return &PCM{
		buf: &audio.FloatBuffer{
			Data: samples,
			Format: &audio.Format{
				NumChannels: 1,
				SampleRate:  sampleRate,
			},
		},
	}
}

// SampleRate returns the PCM's sample rate in Hz.
func (p *PCM) SampleRate() int {
	if p == nil || p.buf == nil || p.buf.Format == nil {
		return 0
	}
	return p.buf.Format.SampleRate
}

// Samples narrows the internal float64 buffer to the []float32 the feature
// extractor operates on.
func (p *PCM) Samples() []float32 {
	if p == nil || p.buf == nil {
		return nil
	}
	out := make([]float32, len(p.buf.Data))
	for i, s := range p.buf.Data {
		out[i] = float32(s)
	}
	return out
}

// DurationSeconds returns len(samples)/sampleRate.
func (p *PCM) DurationSeconds() float64 {
	sr := p.SampleRate()
	if sr == 0 {
		return 0
	}
	return float64(len(p.buf.Data)) / float64(sr)
}
