package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cartomix/aurora/internal/model"
)

func TestHashFileIsStableAndContentSensitive(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.wav")
	b := filepath.Join(dir, "b.wav")
	os.WriteFile(a, []byte("hello"), 0o644)
	os.WriteFile(b, []byte("world"), 0o644)

	h1, err := HashFile(a)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	h2, err := HashFile(a)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if h1 != h2 {
		t.Error("hash should be stable across calls")
	}

	h3, err := HashFile(b)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if h1 == h3 {
		t.Error("different content should hash differently")
	}
}

func TestCacheMissThenPutThenHit(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()

	_, ok, err := c.Get("deadbeef", 48000, 30)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("expected cache miss")
	}

	feats := &model.AudioFeatures{
		DurationSeconds: 2,
		SampleRate:      48000,
		TempoBPM:        120,
		RMS:             []float32{0.1, 0.2},
	}
	if err := c.Put("deadbeef", 48000, 30, feats); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, ok, err := c.Get("deadbeef", 48000, 30)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit after Put")
	}
	if got.TempoBPM != 120 || len(got.RMS) != 2 {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestCacheDifferentFrameRateIsAMiss(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer c.Close()

	feats := &model.AudioFeatures{SampleRate: 48000, RMS: []float32{0.1}}
	if err := c.Put("hash1", 48000, 30, feats); err != nil {
		t.Fatalf("Put: %v", err)
	}

	_, ok, err := c.Get("hash1", 48000, 60)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("expected miss for different frame rate")
	}
}
