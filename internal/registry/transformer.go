package registry

import (
	"fmt"
)

// Field kinds understood by the transformer schema.
const (
	FieldNumeric     = "numeric"
	FieldCategorical = "categorical"
)

// FieldSpec declares how one raw demographic field is encoded. The schema is
// part of the serialized artifact, so encoding decisions made at training
// time (including categorical fields whose categories look numeric, such as
// hypertension "0"/"1") are explicit rather than inferred at runtime.
type FieldSpec struct {
	Name       string   `json:"name"`
	Kind       string   `json:"kind"`
	Categories []string `json:"categories,omitempty"`
	Mean       float64  `json:"mean,omitempty"`
	Scale      float64  `json:"scale,omitempty"`
}

// FeatureTransformer maps a raw demographic row into the encoded numeric row
// the stroke models expect: numeric fields are standardized with the
// training-time mean/scale, categorical fields are one-hot encoded in the
// declared category order.
type FeatureTransformer struct {
	Fields []FieldSpec `json:"fields"`
}

// Transform encodes a raw row. Numeric fields take float64 values,
// categorical fields take string values; a missing field or an undeclared
// category is an error.
func (t *FeatureTransformer) Transform(row map[string]any) ([]float64, error) {
	encoded := make([]float64, 0, len(t.Fields))

	for _, field := range t.Fields {
		value, ok := row[field.Name]
		if !ok {
			return nil, fmt.Errorf("row is missing field %q", field.Name)
		}

		switch field.Kind {
		case FieldNumeric:
			v, ok := value.(float64)
			if !ok {
				return nil, fmt.Errorf("field %q expects a numeric value, got %T", field.Name, value)
			}
			scale := field.Scale
			if scale == 0 {
				scale = 1
			}
			encoded = append(encoded, (v-field.Mean)/scale)

		case FieldCategorical:
			v, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("field %q expects a categorical value, got %T", field.Name, value)
			}
			matched := -1
			for i, category := range field.Categories {
				if category == v {
					matched = i
					break
				}
			}
			if matched < 0 {
				return nil, fmt.Errorf("field %q: unknown category %q", field.Name, v)
			}
			oneHot := make([]float64, len(field.Categories))
			oneHot[matched] = 1
			encoded = append(encoded, oneHot...)

		default:
			return nil, fmt.Errorf("field %q has unsupported kind %q", field.Name, field.Kind)
		}
	}

	return encoded, nil
}

// OutputSize is the width of the encoded row the transformer produces.
func (t *FeatureTransformer) OutputSize() int {
	size := 0
	for _, field := range t.Fields {
		if field.Kind == FieldCategorical {
			size += len(field.Categories)
		} else {
			size++
		}
	}
	return size
}

func (t *FeatureTransformer) validate() error {
	if len(t.Fields) == 0 {
		return fmt.Errorf("transformer declares no fields")
	}
	for _, field := range t.Fields {
		switch field.Kind {
		case FieldNumeric:
		case FieldCategorical:
			if len(field.Categories) == 0 {
				return fmt.Errorf("categorical field %q declares no categories", field.Name)
			}
		default:
			return fmt.Errorf("field %q has unsupported kind %q", field.Name, field.Kind)
		}
	}
	return nil
}
