package encode

import (
	"testing"

	"github.com/cartomix/aurora/internal/model"
)

// TestMuxWrapsFailureInEncodeError exercises the error path only: with no
// frames on disk (and possibly no ffmpeg binary in the test environment),
// Mux must never panic and must surface any failure as a model.EncodeError.
func TestMuxWrapsFailureInEncodeError(t *testing.T) {
	dir := t.TempDir()
	m := NewMuxer(nil)

	err := m.Mux(dir, dir+"/missing.wav", dir+"/out.mp4", 30)
	if err == nil {
		t.Fatal("expected an error muxing with no frames and no audio file")
	}
	if _, ok := err.(*model.EncodeError); !ok {
		t.Errorf("expected *model.EncodeError, got %T: %v", err, err)
	}
}
