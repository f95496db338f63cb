// Package fixtures generates synthetic WAV files for exercising
// internal/audio and internal/features without a real audio corpus.
// Adapted from the teacher's internal/fixtures/generator.go: same
// writeWAV binary layout and renderClickTrack/renderTempoRamp shape, but
// the fixture catalog is the render engine's own test vocabulary (silent
// sine, click track, tempo ramp, chord) rather than a DJ BPM ladder.
package fixtures

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// Config controls which fixtures cmd/fixturegen emits.
type Config struct {
	OutputDir  string
	SampleRate int

	IncludeSilentSine bool
	SineFreqHz        float64
	SineDurationSec   float64

	IncludeClickTrack     bool
	ClickIntervalSec      float64
	ClickTrackDurationSec float64

	IncludeTempoRamp bool
	RampStartBPM     float64
	RampEndBPM       float64
	RampBeats        int

	IncludeChord    bool
	ChordFreqsHz    []float64
	ChordDurationSec float64
}

// Manifest records what was generated, for a test or cmd/fixturegen
// caller to discover file paths without hardcoding them.
type Manifest struct {
	SampleRate int               `json:"sample_rate"`
	Fixtures   []ManifestFixture `json:"fixtures"`
}

// ManifestFixture describes one generated WAV file.
type ManifestFixture struct {
	File        string  `json:"file"`
	Type        string  `json:"type"`
	DurationSec float64 `json:"duration_sec"`
}

// Generate writes every fixture cfg enables under cfg.OutputDir and
// returns a Manifest describing them.
func Generate(cfg Config) (*Manifest, error) {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 48000
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	m := &Manifest{SampleRate: cfg.SampleRate}

	if cfg.IncludeSilentSine {
		path := filepath.Join(cfg.OutputDir, "silent_sine.wav")
		dur := renderSine(path, cfg.SampleRate, cfg.SineFreqHz, cfg.SineDurationSec)
		m.Fixtures = append(m.Fixtures, ManifestFixture{File: path, Type: "sine", DurationSec: dur})
	}

	if cfg.IncludeClickTrack {
		path := filepath.Join(cfg.OutputDir, "click_track.wav")
		dur := renderClickTrack(path, cfg.SampleRate, cfg.ClickIntervalSec, cfg.ClickTrackDurationSec)
		m.Fixtures = append(m.Fixtures, ManifestFixture{File: path, Type: "click_track", DurationSec: dur})
	}

	if cfg.IncludeTempoRamp {
		path := filepath.Join(cfg.OutputDir, "tempo_ramp.wav")
		dur := renderTempoRamp(path, cfg.SampleRate, cfg.RampStartBPM, cfg.RampEndBPM, cfg.RampBeats)
		m.Fixtures = append(m.Fixtures, ManifestFixture{File: path, Type: "tempo_ramp", DurationSec: dur})
	}

	if cfg.IncludeChord {
		path := filepath.Join(cfg.OutputDir, "chord.wav")
		dur := renderChord(path, cfg.SampleRate, cfg.ChordFreqsHz, cfg.ChordDurationSec)
		m.Fixtures = append(m.Fixtures, ManifestFixture{File: path, Type: "chord", DurationSec: dur})
	}

	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, raw, 0o644); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}

	return m, nil
}

func renderSine(path string, sampleRate int, freqHz, durationSec float64) float64 {
	n := int(float64(sampleRate) * durationSec)
	samples := make([]float64, n)
	for i := range samples {
		t := float64(i) / float64(sampleRate)
		samples[i] = 0.5 * math.Sin(2*math.Pi*freqHz*t)
	}
	writeWAV(path, samples, sampleRate)
	return durationSec
}

// renderClickTrack emits a brief exponential-decay spike every
// intervalSec, matching the beat-detector's expected onset shape.
func renderClickTrack(path string, sampleRate int, intervalSec, durationSec float64) float64 {
	n := int(float64(sampleRate) * durationSec)
	samples := make([]float64, n)

	clickLen := int(0.002 * float64(sampleRate))
	for t := intervalSec; t < durationSec; t += intervalSec {
		start := int(t * float64(sampleRate))
		for i := 0; i < clickLen && start+i < n; i++ {
			decay := math.Exp(-float64(i) / float64(clickLen) * 6)
			samples[start+i] = decay
		}
	}

	writeWAV(path, samples, sampleRate)
	return durationSec
}

// renderTempoRamp emits clicks spaced at a BPM that glides linearly from
// startBPM to endBPM over the given number of beats.
func renderTempoRamp(path string, sampleRate int, startBPM, endBPM float64, beats int) float64 {
	if beats <= 0 {
		beats = 1
	}
	clickLen := int(0.002 * float64(sampleRate))

	var samples []float64
	tSec := 0.0
	for b := 0; b < beats; b++ {
		frac := float64(b) / float64(beats)
		bpm := startBPM + (endBPM-startBPM)*frac
		beatDur := 60.0 / bpm

		start := int(tSec * float64(sampleRate))
		need := start + clickLen
		for len(samples) < need {
			samples = append(samples, 0)
		}
		for i := 0; i < clickLen; i++ {
			decay := math.Exp(-float64(i) / float64(clickLen) * 6)
			samples[start+i] = decay
		}
		tSec += beatDur
	}

	writeWAV(path, samples, sampleRate)
	return tSec
}

// renderChord sums a handful of sine partials at the given frequencies,
// for exercising chroma-folding and spectral-centroid computations on a
// harmonically rich, non-percussive signal.
func renderChord(path string, sampleRate int, freqsHz []float64, durationSec float64) float64 {
	n := int(float64(sampleRate) * durationSec)
	samples := make([]float64, n)
	if len(freqsHz) == 0 {
		freqsHz = []float64{261.63, 329.63, 392.00} // C major triad
	}
	amp := 0.3 / float64(len(freqsHz))

	for i := range samples {
		t := float64(i) / float64(sampleRate)
		var s float64
		for _, f := range freqsHz {
			s += amp * math.Sin(2*math.Pi*f*t)
		}
		samples[i] = s
	}
	writeWAV(path, samples, sampleRate)
	return durationSec
}

func writeWAV(path string, samples []float64, sampleRate int) error {
	buf := make([]int16, len(samples))
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		buf[i] = int16(s * 32767)
	}

	byteRate := sampleRate * 2
	blockAlign := int16(2)
	bitsPerSample := int16(16)
	dataSize := len(buf) * 2
	riffSize := 36 + dataSize

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav: %w", err)
	}
	defer f.Close()

	f.Write([]byte("RIFF"))
	binary.Write(f, binary.LittleEndian, uint32(riffSize))
	f.Write([]byte("WAVE"))
	f.Write([]byte("fmt "))
	binary.Write(f, binary.LittleEndian, uint32(16))
	binary.Write(f, binary.LittleEndian, uint16(1))
	binary.Write(f, binary.LittleEndian, uint16(1))
	binary.Write(f, binary.LittleEndian, uint32(sampleRate))
	binary.Write(f, binary.LittleEndian, uint32(byteRate))
	binary.Write(f, binary.LittleEndian, blockAlign)
	binary.Write(f, binary.LittleEndian, bitsPerSample)
	f.Write([]byte("data"))
	binary.Write(f, binary.LittleEndian, uint32(dataSize))
	for _, v := range buf {
		binary.Write(f, binary.LittleEndian, v)
	}
	return nil
}
