package features

import "math"

// freqBand is a half-open [loHz, hiHz) band, used for the five frequency
// bands spec.md §4.2 requires.
type freqBand struct {
	lo, hi float64
}

var bands = []freqBand{
	{0, 250},     // bass
	{250, 500},   // lowMid
	{500, 2000},  // mid
	{2000, 4000}, // highMid
	{4000, math.Inf(1)}, // high (clamped to Nyquist by the caller)
}

// spectralCentroidRolloff computes the energy-weighted mean frequency and
// the frequency below which 85% of the spectral energy (magnitude squared)
// falls.
func spectralCentroidRolloff(mags []float64, sampleRate, bufferSize int) (centroid, rolloff float64) {
	freqPerBin := float64(sampleRate) / float64(bufferSize)

	var weightedSum, magSum, energyTotal float64
	energies := make([]float64, len(mags))
	for k, m := range mags {
		freq := float64(k) * freqPerBin
		weightedSum += freq * m
		magSum += m
		e := m * m
		energies[k] = e
		energyTotal += e
	}
	if magSum > 0 {
		centroid = weightedSum / magSum
	}

	if energyTotal <= 0 {
		return centroid, 0
	}
	threshold := 0.85 * energyTotal
	var cumulative float64
	for k, e := range energies {
		cumulative += e
		if cumulative >= threshold {
			rolloff = float64(k) * freqPerBin
			break
		}
	}
	return centroid, rolloff
}

// fiveBandAverages returns the average magnitude within each of the five
// fixed frequency bands, clamping the top band to Nyquist.
func fiveBandAverages(mags []float64, sampleRate, bufferSize int) [5]float64 {
	freqPerBin := float64(sampleRate) / float64(bufferSize)
	nyquist := float64(sampleRate) / 2

	var out [5]float64
	for bi, b := range bands {
		hi := b.hi
		if math.IsInf(hi, 1) || hi > nyquist {
			hi = nyquist
		}
		var sum float64
		var count int
		for k, m := range mags {
			freq := float64(k) * freqPerBin
			if freq >= b.lo && freq < hi {
				sum += m
				count++
			}
		}
		if count > 0 {
			out[bi] = sum / float64(count)
		}
	}
	return out
}

// chromaFold folds the magnitude spectrum into 12 pitch classes using the
// standard MIDI/A440 mapping, accumulating magnitude per class.
func chromaFold(mags []float64, sampleRate, bufferSize int) [12]float64 {
	freqPerBin := float64(sampleRate) / float64(bufferSize)

	var chroma [12]float64
	for k := 1; k < len(mags); k++ {
		freq := float64(k) * freqPerBin
		if freq < 20 {
			continue
		}
		midi := 69 + 12*math.Log2(freq/440.0)
		pc := int(math.Round(midi)) % 12
		if pc < 0 {
			pc += 12
		}
		chroma[pc] += mags[k]
	}
	return chroma
}
