// Package driver implements the C8 pipeline orchestrator: the single
// synchronous render() entry point spec.md §4.8/§6 describes, wiring
// C1 (decode) → C2 (extract) → timeline parsing → C6 (dispatch) → C7
// (mux). Mirrors the teacher's cmd/engine main loop in shape (slog
// start/stop/duration logging around each stage) but as a library call
// rather than a gRPC-served engine.
package driver

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"

	"github.com/cartomix/aurora/internal/audio"
	"github.com/cartomix/aurora/internal/cache"
	"github.com/cartomix/aurora/internal/dispatch"
	"github.com/cartomix/aurora/internal/encode"
	"github.com/cartomix/aurora/internal/features"
	"github.com/cartomix/aurora/internal/model"
	"github.com/cartomix/aurora/internal/timeline"
)

// OnProgress reports {completed, total} frames rendered so far.
type OnProgress func(completed, total int)

// Options configures one render, mirroring spec.md §6's render() call.
type Options struct {
	AudioPath    string
	OutputPath   string
	TimelinePath string // optional; empty uses a builder default (solid color, full duration)

	Width, Height, FPS int
	WorkerCount        int

	WorkerBinary string // path to the cmd/frameworker executable

	// CacheDir, if set, enables the AudioFeatures cache: C1/C2 are skipped
	// on a hit keyed by the audio file's content hash plus sample rate and
	// frame rate. Empty disables caching entirely.
	CacheDir string

	KeepWorkDir bool
	OnProgress  OnProgress

	Logger *slog.Logger
}

// Result is the RenderResult of spec.md §4.8.
type Result struct {
	OutputPath  string
	DurationS   float64
	TotalFrames int
	WorkDir     string
}

func (o *Options) fillDefaults() {
	if o.Width == 0 {
		o.Width = 1920
	}
	if o.Height == 0 {
		o.Height = 1080
	}
	if o.FPS == 0 {
		o.FPS = 30
	}
	if o.WorkerCount <= 0 {
		o.WorkerCount = max(1, runtime.NumCPU()-1)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
}

// validate fails before any work begins when the audio path, output path
// or worker binary is missing. An empty TimelinePath is not an error: it
// selects the builder-default timeline.
func (o *Options) validate() error {
	if o.AudioPath == "" {
		return &model.InvalidTimelineError{Reason: "audio path is required"}
	}
	if o.OutputPath == "" {
		return &model.InvalidTimelineError{Reason: "output path is required"}
	}
	if o.WorkerBinary == "" {
		return &model.InvalidTimelineError{Reason: "worker binary path is required"}
	}
	return nil
}

// Render is the render() entry point of spec.md §4.8/§6.
func Render(ctx context.Context, opts Options) (*Result, error) {
	opts.fillDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}
	log := opts.Logger

	workDir := filepath.Join(os.TempDir(), "aurora-render-"+uuid.NewString())
	framesDir := filepath.Join(workDir, "frames")
	if err := os.MkdirAll(framesDir, 0o755); err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	cleanup := func() {
		if !opts.KeepWorkDir {
			os.RemoveAll(workDir)
		}
	}

	// Error paths below return without cleanup(), leaving the work
	// directory on disk for debugging.
	feats, err := decodeAndExtract(opts, log)
	if err != nil {
		return nil, err
	}

	// Timeline.
	vt, err := loadTimeline(opts.TimelinePath, feats.DurationSeconds)
	if err != nil {
		return nil, err
	}

	totalFrames := int(math.Floor(vt.DurationSeconds * float64(opts.FPS)))
	if totalFrames > feats.Len() {
		totalFrames = feats.Len()
	}
	if totalFrames <= 0 {
		return nil, &model.InvalidTimelineError{Reason: "zero frames to render"}
	}

	// C6: dispatch.
	start := time.Now()
	coord := dispatch.NewCoordinator(opts.WorkerBinary, workDir, log)
	err = coord.Run(ctx, vt, feats, opts.Width, opts.Height, opts.FPS, opts.WorkerCount, framesDir, dispatch.OnProgress(opts.OnProgress))
	if err != nil {
		return nil, err
	}
	log.Info("render complete", "duration", time.Since(start), "frames", totalFrames)

	// C7: mux.
	start = time.Now()
	muxer := encode.NewMuxer(log)
	if err := muxer.Mux(framesDir, opts.AudioPath, opts.OutputPath, opts.FPS); err != nil {
		return nil, err
	}
	log.Info("encode complete", "duration", time.Since(start), "out", opts.OutputPath)

	cleanup()
	return &Result{
		OutputPath:  opts.OutputPath,
		DurationS:   vt.DurationSeconds,
		TotalFrames: totalFrames,
		WorkDir:     workDir,
	}, nil
}

// decodeAndExtract runs C1 (decode) and C2 (extract), short-circuiting both
// when opts.CacheDir is set and holds a prior AudioFeatures result for this
// audio file's content hash + sample rate + analysis frame rate. A cache
// hit needs only a cheap ffprobe call (ProbeSampleRate), never the full
// ffmpeg decode or the FFT-based extraction pass.
func decodeAndExtract(opts Options, log *slog.Logger) (*model.AudioFeatures, error) {
	dec := audio.NewDecoder(log)

	var fc *cache.Cache
	var contentHash string
	if opts.CacheDir != "" {
		var err error
		fc, err = cache.Open(opts.CacheDir)
		if err != nil {
			log.Warn("feature cache unavailable, continuing without it", "err", err)
			fc = nil
		} else {
			defer fc.Close()
			var feats *model.AudioFeatures
			feats, contentHash, err = lookupCache(fc, dec, opts.AudioPath, log)
			if err == nil && feats != nil {
				log.Info("feature cache hit", "hash", contentHash)
				return feats, nil
			}
		}
	}

	// C1: decode.
	start := time.Now()
	pcm, err := dec.Decode(opts.AudioPath)
	if err != nil {
		return nil, err
	}
	log.Info("decode complete", "duration", time.Since(start), "samples", len(pcm.Samples()))

	// C2: extract.
	start = time.Now()
	ext := features.NewExtractor()
	feats, err := ext.Extract(pcm)
	if err != nil {
		return nil, err
	}
	log.Info("feature extraction complete", "duration", time.Since(start), "frames", feats.Len())

	if fc != nil && contentHash != "" {
		if err := fc.Put(contentHash, pcm.SampleRate(), model.FrameRate, feats); err != nil {
			log.Warn("feature cache write failed", "err", err)
		}
	}

	return feats, nil
}

// lookupCache hashes audioPath and probes its sample rate (both far cheaper
// than a full decode) and checks fc for a prior extraction result. Returns
// the content hash regardless of hit/miss so the caller can reuse it for a
// Put after a miss, and (nil, hash, nil) on a clean miss.
func lookupCache(fc *cache.Cache, dec *audio.Decoder, audioPath string, log *slog.Logger) (feats *model.AudioFeatures, contentHash string, err error) {
	contentHash, err = cache.HashFile(audioPath)
	if err != nil {
		log.Warn("hash audio file for cache lookup failed", "err", err)
		return nil, "", err
	}

	sampleRate, err := dec.ProbeSampleRate(audioPath)
	if err != nil {
		log.Warn("probe sample rate for cache lookup failed", "err", err)
		return nil, contentHash, err
	}

	feats, hit, err := fc.Get(contentHash, sampleRate, model.FrameRate)
	if err != nil {
		log.Warn("feature cache lookup failed", "err", err)
		return nil, contentHash, err
	}
	if !hit {
		return nil, contentHash, nil
	}
	return feats, contentHash, nil
}

// loadTimeline reads and parses the external JSON timeline document, or
// falls back to a single full-duration SolidColor generator when no path
// is given (the "builder-default" of spec.md §6).
func loadTimeline(path string, fallbackDuration float64) (*model.VisualTimeline, error) {
	if path == "" {
		return &model.VisualTimeline{
			DurationSeconds: fallbackDuration,
			BackgroundColor: model.ControlParam{Kind: model.ParamStatic, Value: 0},
			Nodes: []model.Node{{
				ID:            "default-bg",
				Enabled:       true,
				StartTime:     0,
				EndTime:       fallbackDuration,
				OpacityBase:   1,
				BlendMode:     model.BlendNormal,
				Kind:          model.NodeGenerator,
				GeneratorKind: model.GeneratorSolidColor,
				Params: map[string]model.ControlParam{
					"color": {Kind: model.ParamStatic, Value: 0.15},
				},
			}},
		}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &model.InvalidTimelineError{Reason: fmt.Sprintf("read timeline: %v", err)}
	}
	return timeline.Parse(raw)
}
