package registry

import (
	"fmt"
	"math"
)

// StrokeClassifier is one logistic-regression member of the stroke-risk
// ensemble, deserialized from a stroke_models/*.json artifact.
type StrokeClassifier struct {
	Name         string    `json:"name"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

// PredictProba returns the (negative, positive) class probability pair for
// one encoded feature row.
func (c *StrokeClassifier) PredictProba(features []float64) ([2]float64, error) {
	if len(features) != len(c.Coefficients) {
		return [2]float64{}, fmt.Errorf("model %q expects %d features, got %d", c.Name, len(c.Coefficients), len(features))
	}
	z := c.Intercept
	for i, w := range c.Coefficients {
		z += w * features[i]
	}
	p := 1.0 / (1.0 + math.Exp(-z))
	return [2]float64{1 - p, p}, nil
}

func (c *StrokeClassifier) validate() error {
	if len(c.Coefficients) == 0 {
		return fmt.Errorf("model %q has no coefficients", c.Name)
	}
	return nil
}
