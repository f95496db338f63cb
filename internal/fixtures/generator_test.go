package fixtures

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGenerateWritesRequestedFixturesAndManifest(t *testing.T) {
	dir := t.TempDir()
	m, err := Generate(Config{
		OutputDir:             dir,
		SampleRate:            48000,
		IncludeSilentSine:     true,
		SineFreqHz:            440,
		SineDurationSec:       2,
		IncludeClickTrack:     true,
		ClickIntervalSec:      0.5,
		ClickTrackDurationSec: 4,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(m.Fixtures) != 2 {
		t.Fatalf("got %d fixtures, want 2", len(m.Fixtures))
	}
	for _, f := range m.Fixtures {
		if _, err := os.Stat(f.File); err != nil {
			t.Errorf("fixture file missing: %v", err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "manifest.json")); err != nil {
		t.Errorf("manifest.json missing: %v", err)
	}
}

func TestGenerateSkipsDisabledFixtures(t *testing.T) {
	dir := t.TempDir()
	m, err := Generate(Config{OutputDir: dir, SampleRate: 48000})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(m.Fixtures) != 0 {
		t.Errorf("expected no fixtures, got %+v", m.Fixtures)
	}
}

func TestRenderedWAVHasValidRIFFHeader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.wav")
	if err := writeWAV(path, []float64{0, 0.5, -0.5, 1, -1}, 48000); err != nil {
		t.Fatalf("writeWAV: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read wav: %v", err)
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		t.Errorf("invalid RIFF/WAVE header: %v", data[0:12])
	}
}
