package catalog

import "github.com/cartomix/aurora/internal/model"

// paramRange documents a node kind's named uniform's valid range; the
// default is the range's midpoint unless generatorDefaults below lists
// another value, per spec.md §4.4 ("unspecified params default to middle
// of their range").
type paramRange struct {
	lo, hi float32
}

func (r paramRange) mid() float32 { return (r.lo + r.hi) / 2 }

// generatorDefaults holds the documented defaults that are not the
// midpoint of their range.
var generatorDefaults = map[model.GeneratorKind]map[string]float32{
	model.GeneratorPerlinNoise: {"octaves": 4, "scale": 2},
}

var generatorParamRanges = map[model.GeneratorKind]map[string]paramRange{
	model.GeneratorPerlinNoise: {
		"octaves": {1, 8},
		"scale":   {0.5, 5},
	},
	model.GeneratorParticles: {
		"count": {10, 500},
		"size":  {0.5, 5},
		"speed": {0.1, 2},
	},
	model.GeneratorFractal: {
		"iterations": {10, 100},
		"zoom":       {0.5, 5},
	},
	model.GeneratorVoronoi: {
		"points":   {5, 50},
		"distance": {0, 1},
	},
	model.GeneratorFlowField: {
		"resolution": {1, 20},
		"strength":   {0.5, 3},
	},
	model.GeneratorGeometric: {
		"sides":    {3, 12},
		"rotation": {0, 6.2831853},
		"scale":    {0, 1},
	},
	model.GeneratorRadialWaves: {
		"frequency": {1, 40},
		"amplitude": {0, 1},
		"speed":     {0, 10},
	},
	model.GeneratorSolidColor: {
		"color": {0, 1},
	},
}

var effectParamRanges = map[model.EffectKind]map[string]paramRange{
	model.EffectBlur: {
		"radius": {0, 20},
	},
	model.EffectBloom: {
		"threshold": {0, 1},
		"intensity": {0, 2},
	},
	model.EffectKaleidoscope: {
		"segments": {2, 12},
		"rotation": {0, 6.2831853},
	},
	model.EffectColorGrade: {
		"hue":        {0, 1},
		"saturation": {0, 2},
		"brightness": {0, 2},
	},
	model.EffectFeedback: {
		"amount": {0, 1},
		"decay":  {0.9, 0.99},
	},
	model.EffectChromaticAberration: {
		"amount": {0, 1},
	},
	model.EffectGrain: {
		"amount": {0, 1},
	},
}

// ResolveGeneratorParam looks up a named uniform's evaluated value from the
// node's Params map, falling back to the documented default (the
// generatorDefaults entry, else the midpoint of range) when the name is
// absent — missing/unknown params never fail a render, per spec.md §3/§7.
func ResolveGeneratorParam(kind model.GeneratorKind, name string, evaluated float32, present bool) float32 {
	if present {
		return evaluated
	}
	if d, ok := generatorDefaults[kind][name]; ok {
		return d
	}
	if ranges, ok := generatorParamRanges[kind]; ok {
		if r, ok := ranges[name]; ok {
			return r.mid()
		}
	}
	return 0
}

// ResolveEffectParam is ResolveGeneratorParam's effect-kind counterpart.
func ResolveEffectParam(kind model.EffectKind, name string, evaluated float32, present bool) float32 {
	if present {
		return evaluated
	}
	if ranges, ok := effectParamRanges[kind]; ok {
		if r, ok := ranges[name]; ok {
			return r.mid()
		}
	}
	return 0
}

// GeneratorParamNames returns the documented uniform names for kind, in a
// stable order, so the compositor can iterate+bind without reflection.
func GeneratorParamNames(kind model.GeneratorKind) []string {
	switch kind {
	case model.GeneratorPerlinNoise:
		return []string{"octaves", "scale"}
	case model.GeneratorParticles:
		return []string{"count", "size", "speed"}
	case model.GeneratorFractal:
		return []string{"iterations", "zoom"}
	case model.GeneratorVoronoi:
		return []string{"points", "distance"}
	case model.GeneratorFlowField:
		return []string{"resolution", "strength"}
	case model.GeneratorGeometric:
		return []string{"sides", "rotation", "scale"}
	case model.GeneratorRadialWaves:
		return []string{"frequency", "amplitude", "speed"}
	case model.GeneratorSolidColor:
		return []string{"color"}
	case model.GeneratorFootage:
		return nil
	default:
		return nil
	}
}

// EffectParamNames is GeneratorParamNames's effect-kind counterpart.
func EffectParamNames(kind model.EffectKind) []string {
	switch kind {
	case model.EffectBlur:
		return []string{"radius"}
	case model.EffectBloom:
		return []string{"threshold", "intensity"}
	case model.EffectKaleidoscope:
		return []string{"segments", "rotation"}
	case model.EffectColorGrade:
		return []string{"hue", "saturation", "brightness"}
	case model.EffectFeedback:
		return []string{"amount", "decay"}
	case model.EffectChromaticAberration:
		return []string{"amount"}
	case model.EffectGrain:
		return []string{"amount"}
	default:
		return nil
	}
}
