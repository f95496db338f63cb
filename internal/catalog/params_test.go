package catalog

import (
	"testing"

	"github.com/cartomix/aurora/internal/model"
)

func TestResolveGeneratorParamUsesMidpointWhenAbsent(t *testing.T) {
	got := ResolveGeneratorParam(model.GeneratorParticles, "size", 0, false)
	want := float32(0.5+5) / 2
	if got != want {
		t.Errorf("got %v, want midpoint %v", got, want)
	}
}

func TestResolveGeneratorParamUsesEvaluatedWhenPresent(t *testing.T) {
	got := ResolveGeneratorParam(model.GeneratorPerlinNoise, "scale", 3.2, true)
	if got != 3.2 {
		t.Errorf("got %v, want 3.2", got)
	}
}

func TestResolveEffectParamUnknownNameReturnsZero(t *testing.T) {
	got := ResolveEffectParam(model.EffectBlur, "nonexistent", 0, false)
	if got != 0 {
		t.Errorf("got %v, want 0", got)
	}
}

func TestGeneratorParamNamesCoversAllDocumentedKinds(t *testing.T) {
	for kind := range generatorParamRanges {
		if len(GeneratorParamNames(kind)) == 0 {
			t.Errorf("kind %v has ranges but no declared param names", kind)
		}
	}
}
