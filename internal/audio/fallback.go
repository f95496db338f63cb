package audio

import "math"

// SilentFallback synthesizes PCM in-memory instead of shelling out to
// ffmpeg, mirroring CPUFallback.AnalyzeTrack's "placeholder when the real
// backend is unavailable" shape. It is used only by tests: Render itself
// always goes through Decoder.
type SilentFallback struct{}

// NewSilentFallback builds a SilentFallback.
func NewSilentFallback() *SilentFallback { return &SilentFallback{} }

// Sine synthesizes a pure sine wave at freqHz for durationSeconds.
func (SilentFallback) Sine(freqHz float64, durationSeconds float64, sampleRate int) *PCM {
	n := int(durationSeconds * float64(sampleRate))
	samples := make([]float64, n)
	for i := range samples {
		t := float64(i) / float64(sampleRate)
		samples[i] = math.Sin(2 * math.Pi * freqHz * t)
	}
	return NewPCM(samples, sampleRate)
}

// Silence synthesizes durationSeconds of zero-amplitude PCM.
func (SilentFallback) Silence(durationSeconds float64, sampleRate int) *PCM {
	n := int(durationSeconds * float64(sampleRate))
	return NewPCM(make([]float64, n), sampleRate)
}

// ClickTrack synthesizes one short spike every intervalSeconds, matching the
// teacher's fixtures.renderClickTrack shape but in-memory rather than WAV.
func (SilentFallback) ClickTrack(intervalSeconds, durationSeconds float64, sampleRate int) *PCM {
	n := int(durationSeconds * float64(sampleRate))
	samples := make([]float64, n)

	clickLen := int(0.002 * float64(sampleRate))
	if clickLen < 1 {
		clickLen = 1
	}

	for t := intervalSeconds; t < durationSeconds; t += intervalSeconds {
		start := int(t * float64(sampleRate))
		for j := 0; j < clickLen && start+j < n; j++ {
			samples[start+j] = math.Exp(-4 * float64(j) / float64(clickLen))
		}
	}

	return NewPCM(samples, sampleRate)
}
