package services

import (
	"fmt"
	"math"

	"strokesense/internal/models"
	"strokesense/internal/registry"
)

// NormalizeReading reduces a raw ECG capture to the fixed-length feature
// vector the classifiers were trained on: each sample folded into [0,1)
// with (v mod 1024)/1024, then truncated to exactly 187 columns.
func NormalizeReading(samples []float64) ([]float64, error) {
	if len(samples) > models.MaxECGSamples {
		samples = samples[:models.MaxECGSamples]
	}
	if len(samples) < registry.ECGFeatureCount {
		return nil, fmt.Errorf("reading has %d samples, need at least %d", len(samples), registry.ECGFeatureCount)
	}

	features := make([]float64, registry.ECGFeatureCount)
	for i := range features {
		m := math.Mod(samples[i], 1024)
		if m < 0 {
			m += 1024
		}
		features[i] = m / 1024
	}
	return features, nil
}

// MedicalAttentionNeeded applies the attention threshold: the stroke
// estimate is truncated to an integer before the comparison, so 20.999
// stays below the bar while 21.0 crosses it.
func MedicalAttentionNeeded(strokeEstimate float64) bool {
	return int(strokeEstimate) > 20
}
