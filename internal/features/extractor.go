// Package features implements the feature extractor (spec.md §4.2, C2):
// turning decoded PCM into the dense per-frame AudioFeatures time series
// the parameter engine and compositor are driven by.
package features

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/cartomix/aurora/internal/audio"
	"github.com/cartomix/aurora/internal/model"
)

const (
	bufferSize    = 2048
	numMelFilters = 26
	numMFCC       = 13
	numChroma     = 12
)

// Extractor turns PCM into AudioFeatures. Stateless and safe for reuse
// across jobs; grounded on go-dsp/fft, the one FFT library shared by every
// audio-reactive repo in the retrieval pack.
type Extractor struct{}

// NewExtractor builds an Extractor.
func NewExtractor() *Extractor { return &Extractor{} }

// Extract implements spec.md §4.2 verbatim: hop = floor(sampleRate/30),
// N = floor(len(samples)/hop), 2048-sample zero-padded analysis windows.
func (e *Extractor) Extract(pcm *audio.PCM) (*model.AudioFeatures, error) {
	samples := pcm.Samples()
	sampleRate := pcm.SampleRate()

	if len(samples) == 0 {
		return nil, &model.AnalysisError{Reason: "empty PCM"}
	}
	for _, s := range samples {
		f := float64(s)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, &model.AnalysisError{Reason: "non-finite sample in PCM"}
		}
	}

	hop := sampleRate / model.FrameRate
	if hop <= 0 {
		hop = 1
	}
	n := len(samples) / hop
	secondsPerFrame := float64(hop) / float64(sampleRate)

	feats := &model.AudioFeatures{
		DurationSeconds: float64(len(samples)) / float64(sampleRate),
		SampleRate:      sampleRate,
		FrameRate:       model.FrameRate,

		RMS:              make([]float32, n),
		ZCR:              make([]float32, n),
		SpectralCentroid: make([]float32, n),
		SpectralRolloff:  make([]float32, n),
		SpectralFlux:     make([]float32, n),
		Bass:             make([]float32, n),
		LowMid:           make([]float32, n),
		Mid:              make([]float32, n),
		HighMid:          make([]float32, n),
		High:             make([]float32, n),
		Loudness:         make([]float32, n),
		Energy:           make([]float32, n),
		MFCC:             make([][13]float32, n),
		Chroma:           make([][12]float32, n),
	}

	melFB := buildMelFilterbank(sampleRate, bufferSize, numMelFilters)
	window := make([]float64, bufferSize)
	var prevEnergy float32

	for i := 0; i < n; i++ {
		start := i * hop
		for j := range window {
			idx := start + j
			if idx < len(samples) {
				window[j] = float64(samples[idx])
			} else {
				window[j] = 0
			}
		}

		rms, zcr, loudness, energy := timeDomainFeatures(window)
		feats.RMS[i] = rms
		feats.ZCR[i] = zcr
		feats.Loudness[i] = loudness
		feats.Energy[i] = energy

		if i == 0 {
			feats.SpectralFlux[i] = 0
		} else {
			feats.SpectralFlux[i] = float32(math.Abs(float64(energy - prevEnergy)))
		}
		prevEnergy = energy

		spectrum := fft.FFTReal(window)
		mags := make([]float64, bufferSize/2+1)
		for k := range mags {
			mags[k] = cmplx.Abs(spectrum[k])
		}

		centroid, rolloff := spectralCentroidRolloff(mags, sampleRate, bufferSize)
		feats.SpectralCentroid[i] = float32(centroid)
		feats.SpectralRolloff[i] = float32(rolloff)

		b := fiveBandAverages(mags, sampleRate, bufferSize)
		feats.Bass[i] = float32(b[0])
		feats.LowMid[i] = float32(b[1])
		feats.Mid[i] = float32(b[2])
		feats.HighMid[i] = float32(b[3])
		feats.High[i] = float32(b[4])

		mel := melEnergies(mags, melFB)
		mfcc := dctII(mel, numMFCC)
		for c := 0; c < numMFCC; c++ {
			feats.MFCC[i][c] = float32(mfcc[c])
		}

		chroma := chromaFold(mags, sampleRate, bufferSize)
		for c := 0; c < numChroma; c++ {
			feats.Chroma[i][c] = float32(chroma[c])
		}
	}

	feats.Beats = detectBeats(feats.SpectralFlux, secondsPerFrame)
	feats.TempoBPM = estimateTempo(feats.Beats)

	return feats, nil
}

// timeDomainFeatures computes RMS, zero-crossing rate, loudness (sum of
// |x|), and energy (Σx²) over a single analysis window.
func timeDomainFeatures(window []float64) (rms, zcr, loudness, energy float32) {
	var sumSq, sumAbs float64
	var crossings int
	for j, x := range window {
		sumSq += x * x
		sumAbs += math.Abs(x)
		if j > 0 && ((window[j-1] >= 0) != (x >= 0)) {
			crossings++
		}
	}
	n := float64(len(window))
	if n == 0 {
		return 0, 0, 0, 0
	}
	rms = float32(math.Sqrt(sumSq / n))
	zcr = float32(float64(crossings) / n)
	loudness = float32(sumAbs)
	energy = float32(sumSq)
	return
}
