package registry

import (
	"fmt"
	"math"
)

// Layer is one dense layer of a serialized feed-forward network.
// Weights is laid out [output][input].
type Layer struct {
	Weights    [][]float64 `json:"weights"`
	Bias       []float64   `json:"bias"`
	Activation string      `json:"activation"`
}

// Network is a pretrained dense classifier deserialized from an artifact
// file. It is read-only after load and safe for concurrent use.
type Network struct {
	InputSize int     `json:"input_size"`
	Layers    []Layer `json:"layers"`
}

// Predict runs a forward pass and returns the output vector of the final
// layer. For classifier heads the final activation is softmax, so the
// result is a probability distribution.
func (n *Network) Predict(features []float64) ([]float64, error) {
	if len(features) != n.InputSize {
		return nil, fmt.Errorf("expected %d features, got %d", n.InputSize, len(features))
	}

	current := features
	for i, layer := range n.Layers {
		next := make([]float64, len(layer.Weights))
		for j, row := range layer.Weights {
			if len(row) != len(current) {
				return nil, fmt.Errorf("layer %d: weight row %d has %d inputs, expected %d", i, j, len(row), len(current))
			}
			sum := layer.Bias[j]
			for k, w := range row {
				sum += w * current[k]
			}
			next[j] = sum
		}

		switch layer.Activation {
		case "relu":
			for j, v := range next {
				if v < 0 {
					next[j] = 0
				}
			}
		case "softmax":
			softmax(next)
		case "linear", "":
		default:
			return nil, fmt.Errorf("layer %d: unsupported activation %q", i, layer.Activation)
		}
		current = next
	}

	return current, nil
}

func (n *Network) validate() error {
	if n.InputSize <= 0 {
		return fmt.Errorf("input size must be positive, got %d", n.InputSize)
	}
	if len(n.Layers) == 0 {
		return fmt.Errorf("network has no layers")
	}
	inputs := n.InputSize
	for i, layer := range n.Layers {
		if len(layer.Weights) == 0 {
			return fmt.Errorf("layer %d has no weights", i)
		}
		if len(layer.Bias) != len(layer.Weights) {
			return fmt.Errorf("layer %d: %d bias terms for %d units", i, len(layer.Bias), len(layer.Weights))
		}
		for j, row := range layer.Weights {
			if len(row) != inputs {
				return fmt.Errorf("layer %d: weight row %d has %d inputs, expected %d", i, j, len(row), inputs)
			}
		}
		inputs = len(layer.Weights)
	}
	return nil
}

// softmax normalizes in place, shifting by the max for numeric stability.
func softmax(v []float64) {
	max := v[0]
	for _, x := range v[1:] {
		if x > max {
			max = x
		}
	}
	var sum float64
	for i, x := range v {
		v[i] = math.Exp(x - max)
		sum += v[i]
	}
	for i := range v {
		v[i] /= sum
	}
}

// Argmax returns the index of the maximum entry. Ties resolve to the lowest
// index: the first maximal entry wins, so a tie between class 0 and any
// other class yields class 0.
func Argmax(v []float64) int {
	best := 0
	for i, x := range v {
		if x > v[best] {
			best = i
		}
	}
	return best
}
