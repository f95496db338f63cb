package features

import (
	"math"
	"testing"

	"github.com/cartomix/aurora/internal/audio"
)

func TestExtractSilentSineProducesExpectedFrameCount(t *testing.T) {
	fb := audio.NewSilentFallback()
	pcm := fb.Sine(440, 2.0, 48000)

	got, err := NewExtractor().Extract(pcm)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if got.DurationSeconds < 1.99 || got.DurationSeconds > 2.01 {
		t.Errorf("duration = %v, want ~2.0", got.DurationSeconds)
	}
	if got.Len() != 60 {
		t.Errorf("N = %d, want 60", got.Len())
	}
	for _, name := range []string{"rms", "zcr", "spectralCentroid", "spectralRolloff", "spectralFlux", "bass", "lowMid", "mid", "highMid", "high", "loudness", "energy"} {
		series, ok := got.Series(name)
		if !ok {
			t.Fatalf("series %q not found", name)
		}
		if len(series) != got.Len() {
			t.Errorf("series %q has length %d, want %d", name, len(series), got.Len())
		}
	}
	if len(got.MFCC) != got.Len() || len(got.Chroma) != got.Len() {
		t.Errorf("MFCC/Chroma length mismatch: got %d/%d, want %d", len(got.MFCC), len(got.Chroma), got.Len())
	}
}

func TestExtractSilentSineHasNoBeatsAndFallbackTempo(t *testing.T) {
	fb := audio.NewSilentFallback()
	pcm := fb.Sine(440, 2.0, 48000)

	got, err := NewExtractor().Extract(pcm)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(got.Beats) != 0 {
		t.Errorf("expected no beats for a steady sine, got %d", len(got.Beats))
	}
	if got.TempoBPM != 120 {
		t.Errorf("tempo = %v, want fallback 120", got.TempoBPM)
	}
}

func TestExtractClickTrackDetectsBeatsAtExpectedTimes(t *testing.T) {
	fb := audio.NewSilentFallback()
	pcm := fb.ClickTrack(0.5, 4.0, 48000)

	got, err := NewExtractor().Extract(pcm)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	want := []float64{0.5, 1.0, 1.5, 2.0, 2.5, 3.0, 3.5}
	if len(got.Beats) < len(want)-1 {
		t.Fatalf("expected roughly %d beats, got %d", len(want), len(got.Beats))
	}

	for i, b := range got.Beats {
		if i >= len(want) {
			break
		}
		if math.Abs(b.TimeSeconds-want[i]) > 0.034 {
			t.Errorf("beat %d at %v, want ~%v (±1 frame)", i, b.TimeSeconds, want[i])
		}
	}

	for i := 1; i < len(got.Beats); i++ {
		if got.Beats[i].TimeSeconds-got.Beats[i-1].TimeSeconds < 0.1 {
			t.Errorf("beats %d and %d are less than 100ms apart", i-1, i)
		}
	}
}

func TestExtractEmptyPCMFailsWithAnalysisError(t *testing.T) {
	pcm := audio.NewPCM(nil, 48000)
	_, err := NewExtractor().Extract(pcm)
	if err == nil {
		t.Fatal("expected an error for empty PCM")
	}
}

func TestExtractRMSIsZeroForSilence(t *testing.T) {
	fb := audio.NewSilentFallback()
	pcm := fb.Silence(1.0, 48000)

	got, err := NewExtractor().Extract(pcm)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	for i, v := range got.RMS {
		if v != 0 {
			t.Errorf("RMS[%d] = %v, want 0 for silence", i, v)
		}
	}
}
