package audio

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/cartomix/aurora/internal/model"
)

// probeResult mirrors the subset of ffprobe's JSON output the decoder needs.
type probeResult struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
	Streams []struct {
		CodecType  string `json:"codec_type"`
		SampleRate string `json:"sample_rate"`
	} `json:"streams"`
}

// Decoder invokes ffprobe/ffmpeg to turn an input file into mono float PCM.
// Grounded on richinsley-goshadertoy's use of u2takey/ffmpeg-go for media
// I/O and the teacher's pattern of wrapping an external worker (here,
// ffmpeg) behind a narrow type with a typed error on failure.
type Decoder struct {
	logger *slog.Logger
}

// NewDecoder builds a Decoder. A nil logger falls back to slog.Default().
func NewDecoder(logger *slog.Logger) *Decoder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Decoder{logger: logger}
}

// Decode probes path for its sample rate then decodes it to mono 32-bit
// float PCM at that rate via an ffmpeg pipe. The duration is not probed;
// PCM.DurationSeconds derives it from the decoded sample count.
func (d *Decoder) Decode(path string) (*PCM, error) {
	sampleRate, err := d.ProbeSampleRate(path)
	if err != nil {
		return nil, err
	}

	var stdout, stderr bytes.Buffer
	err = ffmpeg.Input(path).
		Output("pipe:", ffmpeg.KwArgs{
			"f":  "f32le",
			"ac": 1,
			"ar": sampleRate,
		}).
		WithOutput(&stdout).
		WithErrorOutput(&stderr).
		Run()
	if err != nil {
		return nil, &model.DecodeError{Path: path, Stderr: stderr.String(), Err: err}
	}

	raw := stdout.Bytes()
	if len(raw)%4 != 0 {
		return nil, &model.DecodeError{
			Path: path,
			Err:  fmt.Errorf("decoded byte count %d is not a multiple of 4", len(raw)),
		}
	}

	samples := make([]float64, len(raw)/4)
	for i := range samples {
		bits := binary.LittleEndian.Uint32(raw[i*4 : i*4+4])
		samples[i] = float64(math.Float32frombits(bits))
	}

	d.logger.Info("decoded audio",
		"path", path,
		"sample_rate", sampleRate,
		"samples", len(samples),
	)

	return NewPCM(samples, sampleRate), nil
}

// ProbeSampleRate runs ffprobe alone, without decoding any audio, so a
// caller (internal/cache) can compute a cache key before paying for the
// full ffmpeg decode pass.
func (d *Decoder) ProbeSampleRate(path string) (int, error) {
	raw, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, &model.DecodeError{Path: path, Err: fmt.Errorf("probe: %w", err)}
	}

	var pr probeResult
	if err := json.Unmarshal([]byte(raw), &pr); err != nil {
		return 0, &model.DecodeError{Path: path, Err: fmt.Errorf("parse probe json: %w", err)}
	}

	for _, s := range pr.Streams {
		if s.CodecType != "audio" {
			continue
		}
		var sr int
		if _, err := fmt.Sscanf(s.SampleRate, "%d", &sr); err == nil && sr > 0 {
			return sr, nil
		}
	}

	return 0, &model.DecodeError{Path: path, Err: fmt.Errorf("no audio stream with a sample rate found")}
}
