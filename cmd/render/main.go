// Command render is the thin CLI wrapper around internal/driver.Render
// (spec.md §6), matching the teacher's cmd/engine in shape: flag-based
// config, slog text logging, and a single explicit exit-code contract
// instead of a served RPC surface.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/cartomix/aurora/internal/config"
	"github.com/cartomix/aurora/internal/driver"
	"github.com/cartomix/aurora/internal/model"
)

const (
	exitSuccess  = 0
	exitBadArgs  = 1
	exitAnalysis = 2
	exitRender   = 3
	exitEncode   = 4
)

func main() {
	cfg := config.Parse()

	level := parseLogLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid invocation", "err", err)
		os.Exit(exitBadArgs)
	}

	workerBinary, err := resolveWorkerBinary()
	if err != nil {
		logger.Error("frameworker binary not found on PATH or alongside render", "err", err)
		os.Exit(exitBadArgs)
	}

	result, err := driver.Render(context.Background(), driver.Options{
		AudioPath:    cfg.AudioPath,
		OutputPath:   cfg.OutputPath,
		TimelinePath: cfg.TimelinePath,
		Width:        cfg.Width,
		Height:       cfg.Height,
		FPS:          cfg.FPS,
		WorkerCount:  cfg.WorkerCount,
		WorkerBinary: workerBinary,
		CacheDir:     cfg.CacheDir,
		Logger:       logger,
		OnProgress: func(completed, total int) {
			logger.Info("progress", "completed", completed, "total", total)
		},
	})
	if err != nil {
		logger.Error("render failed", "err", err)
		os.Exit(exitCodeFor(err))
	}

	fmt.Printf("rendered %s (%d frames, %.2fs)\n", result.OutputPath, result.TotalFrames, result.DurationS)
	os.Exit(exitSuccess)
}

func exitCodeFor(err error) int {
	switch err.(type) {
	case *model.DecodeError, *model.AnalysisError:
		return exitAnalysis
	case *model.EncodeError:
		return exitEncode
	case *model.InvalidTimelineError:
		return exitBadArgs
	case *model.CompileError, *model.RenderError, *model.WorkerError:
		return exitRender
	default:
		return exitRender
	}
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// resolveWorkerBinary looks for a "frameworker" binary next to the running
// executable first, then falls back to PATH — matching spec.md §6's
// "two subprocess binaries must be discoverable" environment contract,
// extended to the worker binary this repo itself builds.
func resolveWorkerBinary() (string, error) {
	if self, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(self), "frameworker")
		if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return exec.LookPath("frameworker")
}
