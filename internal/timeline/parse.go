// Package timeline parses the external orchestrator's JSON timeline
// document (spec.md §6) into the engine's internal model.VisualTimeline.
// Unknown node kinds, unknown param names, and extra fields are ignored
// per §6/§7 — only the structural invariants in model.VisualTimeline's
// Validate are fatal.
package timeline

import (
	"encoding/json"
	"fmt"

	"github.com/cartomix/aurora/internal/model"
)

type doc struct {
	Duration        float64           `json:"duration"`
	BackgroundColor controlParamDoc   `json:"backgroundColor"`
	Nodes           []nodeDoc         `json:"nodes"`
}

type nodeDoc struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Enabled     *bool           `json:"enabled"`
	StartTime   float64         `json:"startTime"`
	EndTime     float64         `json:"endTime"`
	FadeIn      float64         `json:"fadeIn"`
	FadeOut     float64         `json:"fadeOut"`
	OpacityBase *float32        `json:"opacityBase"`
	BlendMode   string          `json:"blendMode"`
	Generator   json.RawMessage `json:"generator"`
	Effect      json.RawMessage `json:"effect"`
}

type controlParamSourceDoc struct {
	Kind          string  `json:"kind"`
	Name          string  `json:"name"`
	MinConfidence float32 `json:"minConfidence"`
	Coefficient   int     `json:"coefficient"`
	Note          int     `json:"note"`
}

type controlParamDoc struct {
	Kind      string                `json:"kind"`
	Value     float32               `json:"value"`
	Start     float32               `json:"start"`
	End       float32               `json:"end"`
	Curve     string                `json:"curve"`
	Source    controlParamSourceDoc `json:"source"`
	Range     [2]float32            `json:"range"`
	Smoothing float32               `json:"smoothing"`
}

// Parse reads the JSON timeline document in raw and converts it into a
// model.VisualTimeline. Parse itself never rejects malformed per-node
// params: one that does not decode is dropped from the node's Params map,
// so the catalog's default lookup supplies its value downstream, and an
// unknown param kind is read as static. Only a JSON syntax error or a
// failing Validate() produce an error.
func Parse(raw []byte) (*model.VisualTimeline, error) {
	var d doc
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, &model.InvalidTimelineError{Reason: fmt.Sprintf("json: %v", err)}
	}

	vt := &model.VisualTimeline{
		DurationSeconds: d.Duration,
		BackgroundColor: d.BackgroundColor.toModel(),
		Nodes:           make([]model.Node, 0, len(d.Nodes)),
	}

	for _, nd := range d.Nodes {
		n := model.Node{
			ID:        nd.ID,
			Enabled:   nd.Enabled == nil || *nd.Enabled,
			StartTime: nd.StartTime,
			EndTime:   nd.EndTime,
			FadeIn:    nd.FadeIn,
			FadeOut:   nd.FadeOut,
			BlendMode: model.BlendMode(nd.BlendMode),
		}
		if n.BlendMode == "" {
			n.BlendMode = model.BlendNormal
		}
		if nd.OpacityBase != nil {
			n.OpacityBase = *nd.OpacityBase
		} else {
			n.OpacityBase = 1
		}

		switch nd.Type {
		case "generator":
			n.Kind = model.NodeGenerator
			kind, params := parseKindBlock(nd.Generator)
			n.GeneratorKind = model.GeneratorKind(kind)
			n.Params = params
		case "effect":
			n.Kind = model.NodeEffect
			kind, params := parseKindBlock(nd.Effect)
			n.EffectKind = model.EffectKind(kind)
			n.Params = params
		default:
			// Unknown node type: ignored (forward-compatible), per §6.
			continue
		}

		vt.Nodes = append(vt.Nodes, n)
	}

	if err := vt.Validate(); err != nil {
		return nil, err
	}
	return vt, nil
}

// parseKindBlock unmarshals a {"name": <kind>, ...params} object (§6's
// flattened generator/effect block) into a kind name and a param map.
func parseKindBlock(raw json.RawMessage) (kind string, params map[string]model.ControlParam) {
	params = make(map[string]model.ControlParam)
	if len(raw) == 0 {
		return "", params
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", params
	}

	for key, v := range fields {
		if key == "name" {
			json.Unmarshal(v, &kind)
			continue
		}
		var cp controlParamDoc
		if err := json.Unmarshal(v, &cp); err != nil {
			continue
		}
		params[key] = cp.toModel()
	}
	return kind, params
}

func (d controlParamDoc) toModel() model.ControlParam {
	switch d.Kind {
	case "evolving":
		curve := model.Curve(d.Curve)
		if curve == "" {
			curve = model.CurveLinear
		}
		return model.ControlParam{Kind: model.ParamEvolving, Start: d.Start, End: d.End, EvolveCurve: curve}
	case "audioReactive":
		return model.ControlParam{
			Kind:      model.ParamAudioReactive,
			Source:    d.Source.toModel(),
			RangeLo:   d.Range[0],
			RangeHi:   d.Range[1],
			Smoothing: d.Smoothing,
		}
	case "static":
		fallthrough
	default:
		return model.ControlParam{Kind: model.ParamStatic, Value: d.Value}
	}
}

func (s controlParamSourceDoc) toModel() model.AudioSource {
	switch s.Kind {
	case "beat":
		return model.AudioSource{Kind: model.SourceBeat, BeatMinConfidence: s.MinConfidence}
	case "mfcc":
		return model.AudioSource{Kind: model.SourceMFCC, MFCCCoefficient: s.Coefficient}
	case "chroma":
		return model.AudioSource{Kind: model.SourceChroma, ChromaNote: s.Note}
	case "series":
		fallthrough
	default:
		return model.AudioSource{Kind: model.SourceSeries, SeriesName: s.Name}
	}
}
