// Package encode implements the final mux stage (spec.md §4.7, C7): turning
// a directory of sequentially numbered frame PNGs plus the original audio
// track into one H.264/AAC MP4, via the same u2takey/ffmpeg-go fluent
// builder internal/audio uses for decode.
package encode

import (
	"bytes"
	"log/slog"
	"path/filepath"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/cartomix/aurora/internal/model"
)

// Muxer wraps the ffmpeg invocation that combines rendered frames with the
// source audio track.
type Muxer struct {
	logger *slog.Logger
}

// NewMuxer builds a Muxer. A nil logger falls back to slog.Default().
func NewMuxer(logger *slog.Logger) *Muxer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Muxer{logger: logger}
}

// Mux reads frame_%06d.png from framesDir at fps, combines it with
// audioPath, and writes an H.264/yuv420p + AAC MP4 to outPath, per spec.md
// §4.7's exact encode settings.
func (m *Muxer) Mux(framesDir, audioPath, outPath string, fps int) error {
	framePattern := filepath.Join(framesDir, "frame_%06d.png")

	frames := ffmpeg.Input(framePattern, ffmpeg.KwArgs{
		"framerate": fps,
	})
	audio := ffmpeg.Input(audioPath)

	var stderr bytes.Buffer
	err := ffmpeg.Output(
		[]*ffmpeg.Stream{frames, audio},
		outPath,
		ffmpeg.KwArgs{
			"map":        []string{"0:v", "1:a"},
			"r":          fps,
			"c:v":        "libx264",
			"preset":     "medium",
			"crf":        20,
			"pix_fmt":    "yuv420p",
			"c:a":        "aac",
			"b:a":        "192k",
			"shortest":   "",
			"movflags":   "+faststart",
		},
	).OverWriteOutput().WithErrorOutput(&stderr).Run()
	if err != nil {
		return &model.EncodeError{Stderr: stderr.String(), Err: err}
	}

	m.logger.Info("muxed output", "out", outPath, "frames_dir", framesDir, "fps", fps)
	return nil
}
