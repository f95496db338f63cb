package param

import "github.com/cartomix/aurora/internal/model"

// Evaluator holds the exponential-moving-average state for every
// (nodeID, paramName) pair a single worker touches across a render job.
// One Evaluator belongs to exactly one worker: the smoothing state must
// never be shared across goroutines/processes rendering different frame
// ranges, or the EMA would see discontinuous time jumps at chunk
// boundaries (spec.md §9 Open Question, resolved in SPEC_FULL.md §9 as
// "EMA with caller-held state").
type Evaluator struct {
	state map[string]float32
}

// NewEvaluator returns an Evaluator with empty smoothing state.
func NewEvaluator() *Evaluator {
	return &Evaluator{state: make(map[string]float32)}
}

// key identifies one smoothed channel.
func key(nodeID, paramName string) string {
	return nodeID + "\x00" + paramName
}

// Eval evaluates p exactly like the package-level Evaluate, then applies
// an EMA low-pass over p.Smoothing (0 = no smoothing, close to 1 = heavy
// smoothing) keyed by (nodeID, paramName). The first sample for a given
// key is returned unsmoothed, seeding the EMA.
func (e *Evaluator) Eval(nodeID, paramName string, p *model.ControlParam, t, duration float64, feats *model.AudioFeatures, audioFrameIdx int) float32 {
	raw := Evaluate(p, t, duration, feats, audioFrameIdx)

	if p == nil || p.Smoothing <= 0 {
		return raw
	}

	alpha := 1 - clampSmoothing(p.Smoothing)
	k := key(nodeID, paramName)

	prev, ok := e.state[k]
	if !ok {
		e.state[k] = raw
		return raw
	}

	smoothed := prev + alpha*(raw-prev)
	e.state[k] = smoothed
	return smoothed
}

// Reset discards all smoothing state, e.g. between independent render jobs
// reusing the same worker process.
func (e *Evaluator) Reset() {
	e.state = make(map[string]float32)
}

func clampSmoothing(s float32) float32 {
	if s < 0 {
		return 0
	}
	if s > 0.999 {
		return 0.999
	}
	return s
}
