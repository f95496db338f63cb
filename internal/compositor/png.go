package compositor

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// flipY rewrites an RGBA pixel buffer (GPU readback, origin bottom-left)
// into top-left-origin row order for image.RGBA / PNG encoding.
func flipY(pix []byte, width, height int) []byte {
	stride := width * 4
	out := make([]byte, len(pix))
	for row := 0; row < height; row++ {
		srcOff := row * stride
		dstOff := (height - 1 - row) * stride
		copy(out[dstOff:dstOff+stride], pix[srcOff:srcOff+stride])
	}
	return out
}

// WriteFramePNG writes pix (tightly packed RGBA8, GL row order) as
// frame_%06d.png into dir, per spec.md §4.5 step 6. No pack library wraps
// PNG encoding of a raw pixel buffer better than the standard library's
// image/png — fogleman/gg is a vector-drawing canvas, not a fit for
// glReadPixels output — so this one piece is deliberately stdlib.
func WriteFramePNG(dir string, frameIndex int, pix []byte, width, height int) error {
	flipped := flipY(pix, width, height)

	img := &image.RGBA{
		Pix:    flipped,
		Stride: width * 4,
		Rect:   image.Rect(0, 0, width, height),
	}

	path := filepath.Join(dir, fmt.Sprintf("frame_%06d.png", frameIndex))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return png.Encode(f, img)
}
