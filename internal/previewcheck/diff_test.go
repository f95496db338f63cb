package previewcheck

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeSolidPNG(t *testing.T, path string, w, h int, c color.RGBA) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestDiffPNGIdenticalImagesHaveZeroDiff(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.png")
	b := filepath.Join(dir, "b.png")
	writeSolidPNG(t, a, 8, 8, color.RGBA{100, 100, 100, 255})
	writeSolidPNG(t, b, 8, 8, color.RGBA{100, 100, 100, 255})

	diff, err := DiffPNG(a, b, 2)
	if err != nil {
		t.Fatalf("DiffPNG: %v", err)
	}
	if diff != 0 {
		t.Errorf("diff = %v, want 0", diff)
	}
}

func TestDiffPNGCompletelyDifferentImagesHaveFullDiff(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.png")
	b := filepath.Join(dir, "b.png")
	writeSolidPNG(t, a, 8, 8, color.RGBA{0, 0, 0, 255})
	writeSolidPNG(t, b, 8, 8, color.RGBA{255, 255, 255, 255})

	diff, err := DiffPNG(a, b, 2)
	if err != nil {
		t.Fatalf("DiffPNG: %v", err)
	}
	if diff != 1.0 {
		t.Errorf("diff = %v, want 1.0", diff)
	}
}

func TestDiffPNGDimensionMismatchReportsFullDiff(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.png")
	b := filepath.Join(dir, "b.png")
	writeSolidPNG(t, a, 8, 8, color.RGBA{0, 0, 0, 255})
	writeSolidPNG(t, b, 16, 16, color.RGBA{0, 0, 0, 255})

	diff, err := DiffPNG(a, b, 2)
	if err != nil {
		t.Fatalf("DiffPNG: %v", err)
	}
	if diff != 1.0 {
		t.Errorf("diff = %v, want 1.0 for dimension mismatch", diff)
	}
}

func TestDiffPNGWithinToleranceIsZero(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.png")
	b := filepath.Join(dir, "b.png")
	writeSolidPNG(t, a, 8, 8, color.RGBA{100, 100, 100, 255})
	writeSolidPNG(t, b, 8, 8, color.RGBA{102, 102, 102, 255})

	diff, err := DiffPNG(a, b, 5)
	if err != nil {
		t.Fatalf("DiffPNG: %v", err)
	}
	if diff != 0 {
		t.Errorf("diff = %v, want 0 within tolerance", diff)
	}
}
