package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testTransformer() *FeatureTransformer {
	return &FeatureTransformer{
		Fields: []FieldSpec{
			{Name: "age", Kind: FieldNumeric, Mean: 40, Scale: 20},
			{Name: "gender", Kind: FieldCategorical, Categories: []string{"Male", "Female", "Other"}},
			{Name: "hypertension", Kind: FieldCategorical, Categories: []string{"0", "1"}},
		},
	}
}

func TestTransformEncodesRow(t *testing.T) {
	transformer := testTransformer()

	encoded, err := transformer.Transform(map[string]any{
		"age":          60.0,
		"gender":       "Female",
		"hypertension": "1",
	})
	assert.NoError(t, err)
	// (60-40)/20, then one-hot gender, then one-hot hypertension.
	assert.Equal(t, []float64{1, 0, 1, 0, 0, 1}, encoded)
}

func TestTransformUnknownCategory(t *testing.T) {
	transformer := testTransformer()

	_, err := transformer.Transform(map[string]any{
		"age":          60.0,
		"gender":       "female",
		"hypertension": "0",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestTransformMissingField(t *testing.T) {
	transformer := testTransformer()

	_, err := transformer.Transform(map[string]any{
		"age":    60.0,
		"gender": "Male",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing field")
}

func TestTransformWrongValueType(t *testing.T) {
	transformer := testTransformer()

	// Numeric-looking categorical codes must arrive as strings; the schema
	// rejects a raw integer rather than guessing.
	_, err := transformer.Transform(map[string]any{
		"age":          60.0,
		"gender":       "Male",
		"hypertension": 1,
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "categorical value")
}

func TestOutputSize(t *testing.T) {
	assert.Equal(t, 6, testTransformer().OutputSize())
}
