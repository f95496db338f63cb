package main

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func frameName(i int) string {
	return fmt.Sprintf("frame_%06d.png", i)
}

func TestVerifyFrameSequenceSucceedsOnCompleteSet(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 5; i++ {
		f, _ := os.Create(filepath.Join(dir, frameName(i)))
		f.Close()
	}
	if err := verifyFrameSequence(dir, 5); err != nil {
		t.Errorf("expected success, got %v", err)
	}
}

func TestVerifyFrameSequenceFailsOnMissingFrame(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 5; i++ {
		if i == 3 {
			continue
		}
		f, _ := os.Create(filepath.Join(dir, frameName(i)))
		f.Close()
	}
	if err := verifyFrameSequence(dir, 5); err == nil {
		t.Error("expected failure for missing frame")
	}
}

func TestVerifyFrameSequenceFailsOnExtraFiles(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 5; i++ {
		f, _ := os.Create(filepath.Join(dir, frameName(i)))
		f.Close()
	}
	extra, _ := os.Create(filepath.Join(dir, frameName(5)))
	extra.Close()
	if err := verifyFrameSequence(dir, 5); err == nil {
		t.Error("expected failure for extra files beyond expected count")
	}
}
