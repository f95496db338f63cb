// Package model defines the shared audio-feature, parameter, and timeline
// types that flow between every stage of the render pipeline: the decoder
// produces PCM, the extractor turns PCM into AudioFeatures, the parameter
// engine evaluates ControlParams against AudioFeatures, and the compositor
// walks a VisualTimeline's Nodes once per RenderContext.
package model

// FrameRate is the fixed analysis rate of the feature extractor (Hz).
const FrameRate = 30

// Beat is a single detected onset with a confidence in [0,1].
type Beat struct {
	TimeSeconds float64
	Confidence  float32
}

// AudioFeatures is the complete, read-only output of the feature extractor.
// It is produced once per render job and broadcast by value to every
// worker process.
type AudioFeatures struct {
	DurationSeconds float64
	SampleRate      int
	TempoBPM        float64
	FrameRate       int

	RMS               []float32
	ZCR               []float32
	SpectralCentroid  []float32
	SpectralRolloff   []float32
	SpectralFlux      []float32
	Bass              []float32
	LowMid            []float32
	Mid               []float32
	HighMid           []float32
	High              []float32
	Loudness          []float32
	Energy            []float32
	MFCC              [][13]float32
	Chroma            [][12]float32

	Beats []Beat
}

// Len returns N, the number of analysis frames (length shared by every
// scalar series).
func (f *AudioFeatures) Len() int {
	if f == nil {
		return 0
	}
	return len(f.RMS)
}

// Series looks up a named scalar series by the AudioSource names used in
// ControlParam.AudioReactive. Returns (nil, false) for an unknown name.
func (f *AudioFeatures) Series(name string) ([]float32, bool) {
	switch name {
	case "rms":
		return f.RMS, true
	case "zcr":
		return f.ZCR, true
	case "spectralCentroid":
		return f.SpectralCentroid, true
	case "spectralRolloff":
		return f.SpectralRolloff, true
	case "spectralFlux":
		return f.SpectralFlux, true
	case "bass":
		return f.Bass, true
	case "lowMid":
		return f.LowMid, true
	case "mid":
		return f.Mid, true
	case "highMid":
		return f.HighMid, true
	case "high":
		return f.High, true
	case "loudness":
		return f.Loudness, true
	case "energy":
		return f.Energy, true
	default:
		return nil, false
	}
}

// At returns the value of a scalar series at idx, clamped to the valid
// range, or 0 for an empty series.
func At(series []float32, idx int) float32 {
	if len(series) == 0 {
		return 0
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(series) {
		idx = len(series) - 1
	}
	return series[idx]
}

// BeatNear reports whether any beat is within ±100ms of t with at least
// minConfidence, returning that beat's confidence (or 0).
func (f *AudioFeatures) BeatNear(t float64, minConfidence float32) float32 {
	if f == nil {
		return 0
	}
	const window = 0.1
	for _, b := range f.Beats {
		if b.TimeSeconds < t-window {
			continue
		}
		if b.TimeSeconds > t+window {
			break
		}
		if b.Confidence >= minConfidence {
			return b.Confidence
		}
	}
	return 0
}
