package model

// Curve names the easing function applied to Evolving params.
type Curve string

const (
	CurveLinear  Curve = "Linear"
	CurveEaseIn  Curve = "EaseIn"
	CurveEaseOut Curve = "EaseOut"
	CurveSine    Curve = "Sine"
	CurveBounce  Curve = "Bounce"
)

// ParamKind tags which ControlParam variant is populated.
type ParamKind string

const (
	ParamStatic        ParamKind = "static"
	ParamEvolving      ParamKind = "evolving"
	ParamAudioReactive ParamKind = "audioReactive"
)

// AudioSourceKind tags which AudioReactive source variant is populated.
type AudioSourceKind string

const (
	SourceSeries AudioSourceKind = "series"
	SourceBeat   AudioSourceKind = "beat"
	SourceMFCC   AudioSourceKind = "mfcc"
	SourceChroma AudioSourceKind = "chroma"
)

// AudioSource selects which audio-derived value an AudioReactive param reads.
type AudioSource struct {
	Kind AudioSourceKind

	// SourceSeries: one of AudioFeatures.Series's names (rms, zcr, ...).
	SeriesName string

	// SourceBeat: minimum confidence to count as "near a beat".
	BeatMinConfidence float32

	// SourceMFCC: coefficient index 0..12.
	MFCCCoefficient int

	// SourceChroma: pitch class 0..11.
	ChromaNote int
}

// ControlParam is the tagged three-variant value spec from spec.md §3.
type ControlParam struct {
	Kind ParamKind

	// ParamStatic
	Value float32

	// ParamEvolving
	Start, End float32
	EvolveCurve Curve

	// ParamAudioReactive
	Source    AudioSource
	RangeLo   float32
	RangeHi   float32
	Smoothing float32
}

// Static builds a constant ControlParam.
func Static(value float32) ControlParam {
	return ControlParam{Kind: ParamStatic, Value: value}
}

// Evolving builds a time-driven ControlParam.
func Evolving(start, end float32, curve Curve) ControlParam {
	return ControlParam{Kind: ParamEvolving, Start: start, End: end, EvolveCurve: curve}
}
