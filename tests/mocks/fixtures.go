package mocks

import (
	"math"

	"strokesense/internal/registry"
)

// FixtureTransformer mirrors the production encoding schema: the same ten
// fields the orchestrator assembles, encoding to a 23-wide row.
func FixtureTransformer() *registry.FeatureTransformer {
	return &registry.FeatureTransformer{
		Fields: []registry.FieldSpec{
			{Name: "gender", Kind: registry.FieldCategorical, Categories: []string{"Male", "Female", "Other"}},
			{Name: "age", Kind: registry.FieldNumeric, Mean: 43, Scale: 22},
			{Name: "hypertension", Kind: registry.FieldCategorical, Categories: []string{"0", "1"}},
			{Name: "heart_disease", Kind: registry.FieldCategorical, Categories: []string{"0", "1"}},
			{Name: "ever_married", Kind: registry.FieldCategorical, Categories: []string{"No", "Yes"}},
			{Name: "work_type", Kind: registry.FieldCategorical, Categories: []string{"Private", "Self-employed", "Govt_job", "children", "Never_worked"}},
			{Name: "Residence_type", Kind: registry.FieldCategorical, Categories: []string{"Rural", "Urban"}},
			{Name: "avg_glucose_level", Kind: registry.FieldNumeric, Mean: 106, Scale: 45},
			{Name: "bmi", Kind: registry.FieldNumeric, Mean: 28, Scale: 7},
			{Name: "smoking_status", Kind: registry.FieldCategorical, Categories: []string{"formerly smoked", "never smoked", "smokes", "Unknown"}},
		},
	}
}

// HeartDiseaseFlagColumn is the index of the heart_disease="1" one-hot
// column in the fixture encoding.
const HeartDiseaseFlagColumn = 7

// biasOnlyNetwork builds a single-layer softmax classifier whose output
// distribution is fully determined by the bias vector, independent of the
// 187-feature input.
func biasOnlyNetwork(logits []float64) *registry.Network {
	weights := make([][]float64, len(logits))
	for i := range weights {
		weights[i] = make([]float64, registry.ECGFeatureCount)
	}
	return &registry.Network{
		InputSize: registry.ECGFeatureCount,
		Layers: []registry.Layer{
			{Weights: weights, Bias: logits, Activation: "softmax"},
		},
	}
}

// constantClassifier builds a logistic member whose positive-class
// probability is p for any input.
func constantClassifier(name string, p float64) *registry.StrokeClassifier {
	return &registry.StrokeClassifier{
		Name:         name,
		Coefficients: make([]float64, FixtureTransformer().OutputSize()),
		Intercept:    math.Log(p / (1 - p)),
	}
}

// FixtureRegistry assembles a fully loaded registry from bias-only
// classifiers and constant-probability stroke members.
func FixtureRegistry(ecgLogits, heartLogits []float64, strokeProbas ...float64) *registry.Registry {
	ensemble := make([]*registry.StrokeClassifier, len(strokeProbas))
	for i, p := range strokeProbas {
		ensemble[i] = constantClassifier("fixture", p)
	}
	return &registry.Registry{
		ECGClassifier:  biasOnlyNetwork(ecgLogits),
		HeartDisease:   biasOnlyNetwork(heartLogits),
		StrokeEnsemble: ensemble,
		Transformer:    FixtureTransformer(),
	}
}

// FixtureSamples returns a raw reading of n constant ADC counts, enough to
// normalize into the 187-feature vector.
func FixtureSamples(n int) []float64 {
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = 512
	}
	return samples
}
