// Command frameworker renders one contiguous chunk of frames for a single
// render job. It is never invoked directly by a user — internal/dispatch
// spawns one frameworker process per chunk, hands it a job file path on
// argv, and reads its progress off stdout (spec.md §4.6/§5: one headless
// GL context and one GPU resource set per worker process, destroyed on
// exit).
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/cartomix/aurora/internal/catalog"
	"github.com/cartomix/aurora/internal/compositor"
	"github.com/cartomix/aurora/internal/dispatch"
	"github.com/cartomix/aurora/internal/model"
	"github.com/cartomix/aurora/internal/param"
)

func init() {
	// GLFW/GL calls must stay on the thread that created the context.
	runtime.LockOSThread()
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: frameworker <job.json>")
		os.Exit(1)
	}

	job, err := dispatch.ReadJobFile(os.Args[1])
	if err != nil {
		logger.Error("read job file", "err", err)
		os.Exit(1)
	}

	if err := render(job, logger); err != nil {
		logger.Error("render failed", "workerIndex", job.WorkerIndex, "err", err)
		os.Exit(1)
	}
}

func render(job *dispatch.Job, logger *slog.Logger) error {
	if err := glfw.Init(); err != nil {
		return &model.RenderError{Stage: "glfw init", Err: err}
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(job.Width, job.Height, "aurora-frameworker", nil, nil)
	if err != nil {
		return &model.RenderError{Stage: "create offscreen window", Err: err}
	}
	defer win.Destroy()
	win.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return &model.RenderError{Stage: "gl init", Err: err}
	}

	registry, err := catalog.NewRegistry()
	if err != nil {
		return err
	}

	comp, err := compositor.New(job.Width, job.Height, registry, nil)
	if err != nil {
		return err
	}
	defer comp.Close()

	evaluator := param.NewEvaluator()

	secondsPerFrame := 1.0 / float64(job.FPS)
	framesDone := 0
	total := job.End - job.Start

	for frameIdx := job.Start; frameIdx < job.End; frameIdx++ {
		t := float64(frameIdx) * secondsPerFrame

		pix, err := comp.RenderFrame(job.Timeline, job.Features, evaluator, t)
		if err != nil {
			return err
		}
		if err := compositor.WriteFramePNG(job.FramesDir, frameIdx, pix, job.Width, job.Height); err != nil {
			return &model.RenderError{Stage: "write frame png", Err: err}
		}

		framesDone++
		if framesDone%10 == 0 {
			reportProgress(job.WorkerIndex, framesDone, false)
		}
	}

	reportProgress(job.WorkerIndex, total, true)
	logger.Info("worker finished", "workerIndex", job.WorkerIndex, "frames", total)
	return nil
}

func reportProgress(workerIndex, framesDone int, done bool) {
	p := dispatch.Progress{WorkerIndex: workerIndex, FramesDone: framesDone, Done: done}
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	fmt.Println(string(raw))
}
