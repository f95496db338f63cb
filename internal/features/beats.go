package features

import (
	"math"
	"sort"

	"github.com/cartomix/aurora/internal/model"
)

const (
	beatThreshold    = 0.1
	beatMinSpacingS  = 0.1
	tempoFallbackBPM = 120
)

// detectBeats peak-picks spectral flux: a frame is a beat iff its flux
// exceeds beatThreshold, exceeds both neighbors, and is at least
// beatMinSpacingS after the previously accepted beat.
func detectBeats(flux []float32, secondsPerFrame float64) []model.Beat {
	var beats []model.Beat
	for i := 1; i < len(flux)-1; i++ {
		if flux[i] <= beatThreshold {
			continue
		}
		if flux[i] <= flux[i-1] || flux[i] <= flux[i+1] {
			continue
		}
		t := float64(i) * secondsPerFrame
		if len(beats) > 0 && t-beats[len(beats)-1].TimeSeconds < beatMinSpacingS {
			continue
		}
		conf := flux[i]
		if conf > 1 {
			conf = 1
		}
		beats = append(beats, model.Beat{TimeSeconds: t, Confidence: conf})
	}
	return beats
}

// estimateTempo derives BPM from the median inter-beat interval, with
// octave correction and a fallback for sparse beat sets.
func estimateTempo(beats []model.Beat) float64 {
	if len(beats) < 2 {
		return tempoFallbackBPM
	}

	intervals := make([]float64, len(beats)-1)
	for i := 1; i < len(beats); i++ {
		intervals[i-1] = beats[i].TimeSeconds - beats[i-1].TimeSeconds
	}
	sort.Float64s(intervals)

	median := intervals[len(intervals)/2]
	if len(intervals)%2 == 0 {
		median = (intervals[len(intervals)/2-1] + intervals[len(intervals)/2]) / 2
	}
	if median <= 0 {
		return tempoFallbackBPM
	}

	bpm := 60 / median
	if bpm < 60 {
		bpm *= 2
	}
	if bpm > 200 {
		bpm /= 2
	}
	return math.Round(bpm)
}
