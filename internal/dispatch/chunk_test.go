package dispatch

import "testing"

func TestSplitChunksEvenDivision(t *testing.T) {
	chunks := SplitChunks(100, 4)
	if len(chunks) != 4 {
		t.Fatalf("got %d chunks, want 4", len(chunks))
	}
	want := []Chunk{
		{0, 0, 25}, {1, 25, 50}, {2, 50, 75}, {3, 75, 100},
	}
	for i, c := range chunks {
		if c != want[i] {
			t.Errorf("chunk %d: got %+v, want %+v", i, c, want[i])
		}
	}
}

func TestSplitChunksUnevenDivisionLastChunkShorter(t *testing.T) {
	chunks := SplitChunks(10, 3)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	if chunks[0].Len() != 4 || chunks[1].Len() != 4 || chunks[2].Len() != 2 {
		t.Errorf("unexpected chunk lengths: %+v", chunks)
	}
}

func TestSplitChunksFewerFramesThanWorkers(t *testing.T) {
	chunks := SplitChunks(2, 8)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2 (no empty chunks)", len(chunks))
	}
	for _, c := range chunks {
		if c.Len() != 1 {
			t.Errorf("expected 1-frame chunks, got %+v", c)
		}
	}
}

func TestSplitChunksCoversEveryFrameExactlyOnce(t *testing.T) {
	chunks := SplitChunks(97, 5)
	covered := 0
	for i, c := range chunks {
		if i > 0 && c.Start != chunks[i-1].End {
			t.Fatalf("gap/overlap between chunk %d and %d", i-1, i)
		}
		covered += c.Len()
	}
	if covered != 97 {
		t.Errorf("covered %d frames, want 97", covered)
	}
}

func TestSplitChunksZeroFramesReturnsNil(t *testing.T) {
	if chunks := SplitChunks(0, 4); chunks != nil {
		t.Errorf("got %+v, want nil", chunks)
	}
}

func TestSplitChunksZeroWorkerCountTreatedAsOne(t *testing.T) {
	chunks := SplitChunks(10, 0)
	if len(chunks) != 1 || chunks[0].Len() != 10 {
		t.Errorf("got %+v, want single 10-frame chunk", chunks)
	}
}
