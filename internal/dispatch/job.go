package dispatch

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cartomix/aurora/internal/model"
)

// Job is the complete, self-contained description written to a temp file
// and handed to one cmd/frameworker child via argv. It carries everything
// the worker needs to render its chunk without talking back to the
// coordinator except through stdout progress lines.
type Job struct {
	WorkerIndex int    `json:"workerIndex"`
	Start       int    `json:"start"`
	End         int    `json:"end"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	FPS         int    `json:"fps"`
	FramesDir   string `json:"framesDir"`

	Timeline *model.VisualTimeline `json:"timeline"`
	Features *model.AudioFeatures  `json:"features"`
}

// Progress is the newline-delimited JSON a worker writes to stdout every
// 10 rendered frames (and once more on completion), per spec.md §4.6.
type Progress struct {
	WorkerIndex int  `json:"workerIndex"`
	FramesDone  int  `json:"framesDone"`
	Done        bool `json:"done"`
}

// WriteJobFile marshals j to a new file under dir and returns its path.
func WriteJobFile(dir string, j *Job) (string, error) {
	raw, err := json.Marshal(j)
	if err != nil {
		return "", fmt.Errorf("marshal job: %w", err)
	}
	path := fmt.Sprintf("%s/job-%d.json", dir, j.WorkerIndex)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("write job file: %w", err)
	}
	return path, nil
}

// ReadJobFile unmarshals the Job written by WriteJobFile. Used by
// cmd/frameworker.
func ReadJobFile(path string) (*Job, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read job file: %w", err)
	}
	var j Job
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, fmt.Errorf("unmarshal job file: %w", err)
	}
	return &j, nil
}
