package previewcheck

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// DiffPNG compares two PNG files pixel-by-pixel and returns the fraction
// of pixels whose per-channel difference exceeds tolerance (0-255). A
// dimension mismatch is reported as a 1.0 (maximal) diff rather than an
// error, since "wrong size" is itself the finding a caller wants to see.
func DiffPNG(goldenPath, actualPath string, tolerance int) (float64, error) {
	golden, err := readPNG(goldenPath)
	if err != nil {
		return 0, fmt.Errorf("read golden: %w", err)
	}
	actual, err := readPNG(actualPath)
	if err != nil {
		return 0, fmt.Errorf("read actual: %w", err)
	}

	gb, ab := golden.Bounds(), actual.Bounds()
	if gb.Dx() != ab.Dx() || gb.Dy() != ab.Dy() {
		return 1.0, nil
	}

	var mismatched, total int
	for y := 0; y < gb.Dy(); y++ {
		for x := 0; x < gb.Dx(); x++ {
			gr, gg, gbch, _ := golden.At(gb.Min.X+x, gb.Min.Y+y).RGBA()
			ar, ag, abch, _ := actual.At(ab.Min.X+x, ab.Min.Y+y).RGBA()
			total++
			if absDiff8(gr, ar) > tolerance || absDiff8(gg, ag) > tolerance || absDiff8(gbch, abch) > tolerance {
				mismatched++
			}
		}
	}
	if total == 0 {
		return 0, nil
	}
	return float64(mismatched) / float64(total), nil
}

func absDiff8(a, b uint32) int {
	a8, b8 := int(a>>8), int(b>>8)
	d := a8 - b8
	if d < 0 {
		d = -d
	}
	return d
}

func readPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}
