// Command fixturegen writes the synthetic WAV fixtures internal/fixtures
// knows how to generate, for use by manual decoder/extractor testing
// outside the Go test suite. Adapted from the teacher's cmd/fixturegen.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/cartomix/aurora/internal/fixtures"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	outDir := flag.String("out", "./fixtures", "output directory")
	sampleRate := flag.Int("sample-rate", 48000, "sample rate (Hz)")
	flag.Parse()

	m, err := fixtures.Generate(fixtures.Config{
		OutputDir:             *outDir,
		SampleRate:            *sampleRate,
		IncludeSilentSine:     true,
		SineFreqHz:            440,
		SineDurationSec:       2,
		IncludeClickTrack:     true,
		ClickIntervalSec:      0.5,
		ClickTrackDurationSec: 4,
		IncludeTempoRamp:      true,
		RampStartBPM:          90,
		RampEndBPM:            140,
		RampBeats:             32,
		IncludeChord:          true,
		ChordDurationSec:      3,
	})
	if err != nil {
		logger.Error("generate fixtures", "err", err)
		os.Exit(1)
	}

	fmt.Printf("wrote %d fixtures to %s\n", len(m.Fixtures), *outDir)
}
