package features

import "math"

// hzToMel and melToHz use the standard O'Shaughnessy mel scale, matching
// the definition implied by spec.md §4.2's "Mel filterbank then DCT for
// MFCC" — no pack library implements this (go-dsp is FFT-only), so it is
// hand-rolled on math, documented in DESIGN.md.
func hzToMel(hz float64) float64 {
	return 2595 * math.Log10(1+hz/700)
}

func melToHz(mel float64) float64 {
	return 700 * (math.Pow(10, mel/2595) - 1)
}

// buildMelFilterbank constructs numFilters overlapping triangular filters
// spanning 0..nyquist, returning one weight vector per filter over the
// bufferSize/2+1 real FFT bins.
func buildMelFilterbank(sampleRate, bufferSize, numFilters int) [][]float64 {
	nBins := bufferSize/2 + 1
	nyquist := float64(sampleRate) / 2
	maxMel := hzToMel(nyquist)

	melPoints := make([]float64, numFilters+2)
	for i := range melPoints {
		melPoints[i] = float64(i) / float64(numFilters+1) * maxMel
	}

	binPoints := make([]int, numFilters+2)
	for i, m := range melPoints {
		hz := melToHz(m)
		binPoints[i] = int(math.Floor((float64(bufferSize) + 1) * hz / float64(sampleRate)))
	}

	filters := make([][]float64, numFilters)
	for m := 0; m < numFilters; m++ {
		filters[m] = make([]float64, nBins)
		left, center, right := binPoints[m], binPoints[m+1], binPoints[m+2]

		for k := left; k < center && k < nBins; k++ {
			if k >= 0 && center != left {
				filters[m][k] = float64(k-left) / float64(center-left)
			}
		}
		for k := center; k < right && k < nBins; k++ {
			if k >= 0 && right != center {
				filters[m][k] = float64(right-k) / float64(right-center)
			}
		}
	}
	return filters
}

// melEnergies projects a magnitude spectrum (power) through the filterbank.
func melEnergies(mags []float64, filterbank [][]float64) []float64 {
	out := make([]float64, len(filterbank))
	for m, filt := range filterbank {
		var sum float64
		for k, w := range filt {
			if w > 0 && k < len(mags) {
				sum += w * mags[k] * mags[k]
			}
		}
		out[m] = sum
	}
	return out
}

// dctII computes the first numCoeffs coefficients of a type-II DCT over the
// log of the mel energies — the standard MFCC derivation.
func dctII(melEnergy []float64, numCoeffs int) []float64 {
	n := len(melEnergy)
	logMel := make([]float64, n)
	for i, e := range melEnergy {
		logMel[i] = math.Log(e + 1e-10)
	}

	out := make([]float64, numCoeffs)
	for c := 0; c < numCoeffs; c++ {
		var sum float64
		for i := 0; i < n; i++ {
			sum += logMel[i] * math.Cos(math.Pi/float64(n)*(float64(i)+0.5)*float64(c))
		}
		out[c] = sum
	}
	return out
}
