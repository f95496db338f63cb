// Package dispatch implements the parallel frame dispatcher (spec.md §4.6,
// C6): splitting the frame range into per-worker chunks, spawning
// cmd/frameworker child processes, and aggregating their progress.
package dispatch

// Chunk is a contiguous, half-open frame range [Start, End) assigned to one
// worker.
type Chunk struct {
	WorkerIndex int
	Start       int
	End         int
}

// Len returns the number of frames in the chunk.
func (c Chunk) Len() int { return c.End - c.Start }

// SplitChunks implements spec.md §4.6's chunk formula: worker_count
// contiguous chunks of nearly-equal size, chunk i starting at
// i*ceil(total/worker_count).
func SplitChunks(totalFrames, workerCount int) []Chunk {
	if workerCount <= 0 {
		workerCount = 1
	}
	if totalFrames <= 0 {
		return nil
	}

	chunkSize := ceilDiv(totalFrames, workerCount)
	chunks := make([]Chunk, 0, workerCount)
	for i := 0; i < workerCount; i++ {
		start := i * chunkSize
		if start >= totalFrames {
			break
		}
		end := start + chunkSize
		if end > totalFrames {
			end = totalFrames
		}
		chunks = append(chunks, Chunk{WorkerIndex: i, Start: start, End: end})
	}
	return chunks
}

func ceilDiv(a, b int) int {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}
