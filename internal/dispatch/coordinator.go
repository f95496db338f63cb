package dispatch

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/exec"
	"path/filepath"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/cartomix/aurora/internal/model"
)

// OnProgress is invoked every time any worker reports new completed frames,
// with the running total across all workers and the grand total expected.
type OnProgress func(completed, total int)

// Coordinator spawns one cmd/frameworker child per chunk, tracks their
// progress, and aborts the whole cohort on the first failure. It implements
// spec.md §4.6's process-per-chunk dispatch model.
type Coordinator struct {
	WorkerBinary string
	WorkDir      string
	Logger       *slog.Logger
}

// NewCoordinator builds a Coordinator. workerBinary is the path to the
// cmd/frameworker executable; workDir is a scratch directory the
// coordinator owns for job files and rendered frame PNGs.
func NewCoordinator(workerBinary, workDir string, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{WorkerBinary: workerBinary, WorkDir: workDir, Logger: logger}
}

// Run splits [0, totalFrames) into workerCount chunks, renders each in its
// own child process, and blocks until every chunk's frames are on disk
// under framesDir, or until one worker fails — in which case Run kills the
// remaining siblings and returns that worker's error wrapped in a
// model.WorkerError. totalFrames is floor(timeline duration · fps), capped
// at the length of the feature series.
func (c *Coordinator) Run(ctx context.Context, timeline *model.VisualTimeline, feats *model.AudioFeatures, width, height, fps, workerCount int, framesDir string, onProgress OnProgress) error {
	total := int(math.Floor(timeline.DurationSeconds * float64(fps)))
	if total > feats.Len() {
		total = feats.Len()
	}
	chunks := SplitChunks(total, workerCount)
	if len(chunks) == 0 {
		return &model.InvalidTimelineError{Reason: "no frames to render"}
	}

	if err := os.MkdirAll(framesDir, 0o755); err != nil {
		return fmt.Errorf("create frames dir: %w", err)
	}

	progress := make([]int, len(chunks))
	completedWorkers := mapset.NewThreadUnsafeSet[int]()

	type result struct {
		workerIndex int
		err         error
	}
	results := make(chan result, len(chunks))
	cmds := make([]*exec.Cmd, len(chunks))
	progressCh := make(chan Progress, len(chunks)*4)

	for _, chunk := range chunks {
		chunk := chunk
		job := &Job{
			WorkerIndex: chunk.WorkerIndex,
			Start:       chunk.Start,
			End:         chunk.End,
			Width:       width,
			Height:      height,
			FPS:         fps,
			FramesDir:   framesDir,
			Timeline:    timeline,
			Features:    feats,
		}
		jobPath, err := WriteJobFile(c.WorkDir, job)
		if err != nil {
			return fmt.Errorf("worker %d: %w", chunk.WorkerIndex, err)
		}

		cmd := exec.CommandContext(ctx, c.WorkerBinary, jobPath)
		stdout, err := cmd.StdoutPipe()
		if err != nil {
			return fmt.Errorf("worker %d: stdout pipe: %w", chunk.WorkerIndex, err)
		}
		cmd.Stderr = os.Stderr
		cmds[chunk.WorkerIndex] = cmd

		if err := cmd.Start(); err != nil {
			return &model.WorkerError{WorkerIndex: chunk.WorkerIndex, Err: err}
		}
		c.Logger.Info("worker started", "workerIndex", chunk.WorkerIndex, "start", chunk.Start, "end", chunk.End)

		go scanProgress(stdout, progressCh)

		go func(idx int) {
			err := cmd.Wait()
			results <- result{workerIndex: idx, err: err}
		}(chunk.WorkerIndex)
	}

	killSiblings := func(except int) {
		for i, cmd := range cmds {
			if i == except || cmd == nil || cmd.Process == nil {
				continue
			}
			_ = cmd.Process.Kill()
		}
	}

	remaining := len(chunks)
	for remaining > 0 {
		select {
		case p := <-progressCh:
			progress[p.WorkerIndex] = p.FramesDone
			if p.Done {
				completedWorkers.Add(p.WorkerIndex)
			}
			if onProgress != nil {
				sum := 0
				for _, n := range progress {
					sum += n
				}
				onProgress(sum, total)
			}
		case r := <-results:
			remaining--
			if r.err != nil {
				killSiblings(r.workerIndex)
				return &model.WorkerError{WorkerIndex: r.workerIndex, Err: r.err}
			}
			if !completedWorkers.Contains(r.workerIndex) {
				missing := chunks[r.workerIndex].Len() - progress[r.workerIndex]
				if missing > 0 {
					killSiblings(r.workerIndex)
					return &model.WorkerError{
						WorkerIndex: r.workerIndex,
						Err:         fmt.Errorf("exited clean but only reported %d/%d frames", progress[r.workerIndex], chunks[r.workerIndex].Len()),
					}
				}
			}
			if err := verifyChunkFrames(framesDir, chunks[r.workerIndex]); err != nil {
				killSiblings(r.workerIndex)
				return &model.WorkerError{WorkerIndex: r.workerIndex, Err: err}
			}
		case <-ctx.Done():
			killSiblings(-1)
			return ctx.Err()
		}
	}

	return nil
}

// scanProgress reads newline-delimited JSON progress lines from a worker's
// stdout until EOF, forwarding each to out. Malformed lines are skipped
// (a worker that emits stray stdout text should not abort the cohort).
func scanProgress(r io.Reader, out chan<- Progress) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	for sc.Scan() {
		var p Progress
		if err := json.Unmarshal(sc.Bytes(), &p); err != nil {
			continue
		}
		out <- p
	}
}

// verifyChunkFrames confirms every frame PNG a chunk should have produced
// exists on disk, per spec.md §7's "missing output file" WorkerError
// condition.
func verifyChunkFrames(framesDir string, chunk Chunk) error {
	for i := chunk.Start; i < chunk.End; i++ {
		path := filepath.Join(framesDir, fmt.Sprintf("frame_%06d.png", i))
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("missing frame %d: %w", i, err)
		}
	}
	return nil
}
