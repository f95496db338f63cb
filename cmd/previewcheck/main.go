// Command previewcheck screenshots a rendered MP4 at a fixed set of
// timestamps and diffs each against a golden PNG, failing non-zero if any
// diff exceeds the tolerance. Adapted from the teacher's cmd/screenshots
// (playwright-go driven) combined with its golden_test.go's -update-golden
// idiom, here exposed as a CLI flag instead of a go test flag since this
// tool runs against a finished render artifact, not in-process.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cartomix/aurora/internal/previewcheck"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	video := flag.String("video", "", "rendered MP4 path (required)")
	goldenDir := flag.String("golden-dir", "./testdata/golden", "directory of golden PNGs, one per timestamp")
	timestamps := flag.String("timestamps", "0,1,2", "comma-separated seek timestamps in seconds")
	width := flag.Int("width", 1920, "video frame width")
	height := flag.Int("height", 1080, "video frame height")
	tolerance := flag.Int("tolerance", 8, "per-channel diff tolerance (0-255)")
	maxDiffFraction := flag.Float64("max-diff", 0.02, "maximum allowed fraction of mismatched pixels")
	update := flag.Bool("update-golden", false, "write actual screenshots as the new golden files instead of comparing")
	flag.Parse()

	if *video == "" {
		fmt.Fprintln(os.Stderr, "-video is required")
		os.Exit(1)
	}

	times, err := parseTimestamps(*timestamps)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	checker, err := previewcheck.Open(*video, *width, *height)
	if err != nil {
		logger.Error("open previewcheck", "err", err)
		os.Exit(1)
	}
	defer checker.Close()

	failures := 0
	for i, t := range times {
		goldenPath := filepath.Join(*goldenDir, fmt.Sprintf("frame_%02d.png", i))

		if *update {
			if err := checker.ScreenshotAt(t, goldenPath); err != nil {
				logger.Error("screenshot", "t", t, "err", err)
				failures++
			}
			continue
		}

		actualPath := filepath.Join(os.TempDir(), fmt.Sprintf("previewcheck_%02d.png", i))
		if err := checker.ScreenshotAt(t, actualPath); err != nil {
			logger.Error("screenshot", "t", t, "err", err)
			failures++
			continue
		}

		diff, err := previewcheck.DiffPNG(goldenPath, actualPath, *tolerance)
		if err != nil {
			logger.Error("diff", "t", t, "err", err)
			failures++
			continue
		}
		if diff > *maxDiffFraction {
			logger.Error("golden mismatch", "t", t, "diff_fraction", diff)
			failures++
		}
	}

	if failures > 0 {
		fmt.Fprintf(os.Stderr, "%d/%d checks failed\n", failures, len(times))
		os.Exit(1)
	}
	fmt.Printf("%d checks passed\n", len(times))
}

func parseTimestamps(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid timestamp %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}
