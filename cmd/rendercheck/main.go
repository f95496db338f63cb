// Command rendercheck validates a finished render against spec.md §8's
// testable properties: the frames directory contains exactly the
// expected contiguous PNG sequence, and the encoded MP4's duration is
// within ±1/fps of the expected duration. Adapted from the teacher's
// cmd/exportverify (a thin flag-parsing wrapper around a library
// verification function, failing loudly on the first mismatch).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

func main() {
	framesDir := flag.String("frames-dir", "", "directory of frame_%06d.png files")
	video := flag.String("video", "", "encoded MP4 path")
	totalFrames := flag.Int("total-frames", 0, "expected frame count")
	fps := flag.Int("fps", 30, "output frame rate")
	expectedDuration := flag.Float64("duration", 0, "expected video duration in seconds")
	flag.Parse()

	if *framesDir != "" && *totalFrames > 0 {
		if err := verifyFrameSequence(*framesDir, *totalFrames); err != nil {
			log.Fatalf("frame sequence check failed: %v", err)
		}
		fmt.Printf("frame sequence OK: %d files\n", *totalFrames)
	}

	if *video != "" && *expectedDuration > 0 {
		actual, err := probeDuration(*video)
		if err != nil {
			log.Fatalf("probe duration failed: %v", err)
		}
		tolerance := 1.0 / float64(*fps)
		diff := actual - *expectedDuration
		if diff < 0 {
			diff = -diff
		}
		if diff > tolerance {
			log.Fatalf("duration mismatch: got %.3fs, want %.3fs ±%.3fs", actual, *expectedDuration, tolerance)
		}
		fmt.Printf("duration OK: %.3fs (want %.3fs ±%.3fs)\n", actual, *expectedDuration, tolerance)
	}
}

// verifyFrameSequence implements spec.md §8's dispatcher invariant:
// exactly totalFrames files named frame_000000.png … frame_{N-1:06}.png.
func verifyFrameSequence(framesDir string, totalFrames int) error {
	for i := 0; i < totalFrames; i++ {
		path := filepath.Join(framesDir, fmt.Sprintf("frame_%06d.png", i))
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("missing %s: %w", path, err)
		}
	}

	entries, err := os.ReadDir(framesDir)
	if err != nil {
		return fmt.Errorf("read frames dir: %w", err)
	}
	count := 0
	for _, e := range entries {
		if !e.IsDir() {
			count++
		}
	}
	if count != totalFrames {
		return fmt.Errorf("frames dir has %d files, want exactly %d", count, totalFrames)
	}
	return nil
}

type probeResult struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

func probeDuration(path string) (float64, error) {
	raw, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, fmt.Errorf("probe: %w", err)
	}
	var pr probeResult
	if err := json.Unmarshal([]byte(raw), &pr); err != nil {
		return 0, fmt.Errorf("parse probe json: %w", err)
	}
	var d float64
	if _, err := fmt.Sscanf(pr.Format.Duration, "%g", &d); err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", pr.Format.Duration, err)
	}
	return d, nil
}
