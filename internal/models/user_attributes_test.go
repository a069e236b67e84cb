package models

import (
	"errors"
	"testing"

	"strokesense/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() PredictionRequest {
	return PredictionRequest{
		UserID:          "u-1042",
		Gender:          "Female",
		Age:             61,
		HyperTension:    0,
		EverMarried:     "Yes",
		WorkType:        "Private",
		ResidenceType:   "Urban",
		AvgGlucoseLevel: 105.92,
		BMI:             27.4,
		SmokingStatus:   "never smoked",
	}
}

func violationsOf(t *testing.T, err error) []errs.FieldViolation {
	t.Helper()
	var validationErr *errs.ValidationError
	require.True(t, errors.As(err, &validationErr), "expected a ValidationError, got %v", err)
	return validationErr.Violations
}

func TestValidateAcceptsValidRequest(t *testing.T) {
	req := validRequest()
	assert.NoError(t, req.Validate())
}

func TestValidateRejectsEachEnumOutsideItsSet(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*PredictionRequest)
		field  string
	}{
		{"empty user id", func(r *PredictionRequest) { r.UserID = "" }, "userId"},
		{"unknown gender", func(r *PredictionRequest) { r.Gender = "female" }, "gender"},
		{"zero age", func(r *PredictionRequest) { r.Age = 0 }, "age"},
		{"negative age", func(r *PredictionRequest) { r.Age = -4 }, "age"},
		{"hypertension out of domain", func(r *PredictionRequest) { r.HyperTension = 2 }, "hyperTension"},
		{"unknown marital status", func(r *PredictionRequest) { r.EverMarried = "Married" }, "everMarried"},
		{"unknown work type", func(r *PredictionRequest) { r.WorkType = "Freelance" }, "workType"},
		{"unknown residence", func(r *PredictionRequest) { r.ResidenceType = "Suburban" }, "residenceType"},
		{"non-positive glucose", func(r *PredictionRequest) { r.AvgGlucoseLevel = 0 }, "AGL"},
		{"non-positive bmi", func(r *PredictionRequest) { r.BMI = -1 }, "BMI"},
		{"unknown smoking status", func(r *PredictionRequest) { r.SmokingStatus = "sometimes" }, "smokingStatus"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			violations := violationsOf(t, req.Validate())
			require.Len(t, violations, 1)
			assert.Equal(t, tt.field, violations[0].Field)
		})
	}
}

func TestValidateCollectsAllViolationsInFieldOrder(t *testing.T) {
	req := validRequest()
	req.UserID = ""
	req.Gender = "unknown"
	req.BMI = 0
	req.SmokingStatus = "pipe"

	violations := violationsOf(t, req.Validate())
	require.Len(t, violations, 4)
	assert.Equal(t, "userId", violations[0].Field)
	assert.Equal(t, "gender", violations[1].Field)
	assert.Equal(t, "BMI", violations[2].Field)
	assert.Equal(t, "smokingStatus", violations[3].Field)
}

func TestValidateAttributesFromStore(t *testing.T) {
	req := validRequest()
	attrs := req.Attributes()
	assert.NoError(t, ValidateAttributes(attrs))

	attrs.WorkType = "Retired"
	violations := violationsOf(t, ValidateAttributes(attrs))
	require.Len(t, violations, 1)
	assert.Equal(t, "workType", violations[0].Field)
}

func TestHeartDiseaseDescription(t *testing.T) {
	assert.Equal(t, "normal", HeartDiseaseDescription(0))
	assert.Equal(t, "supra-ventricular premature", HeartDiseaseDescription(1))
	assert.Equal(t, "ventricular escape", HeartDiseaseDescription(2))
	assert.Equal(t, "fusion of ventricular", HeartDiseaseDescription(3))
	assert.Equal(t, "Unknown", HeartDiseaseDescription(7))
	assert.Equal(t, "Unknown", HeartDiseaseDescription(-1))
}

func TestPredictionResponseFormatting(t *testing.T) {
	p := Prediction{
		HeartDisease:      "ventricular escape",
		StrokeProbability: 33.3333,
		MedicalAttention:  true,
	}

	resp := p.Response()
	assert.Equal(t, "33.33", resp.PredictedStrokeProba)
	assert.Equal(t, "ventricular escape", resp.PredictedHeartDisease)
	assert.Equal(t, "YES", resp.MedicalAttentionNeeded)

	p.MedicalAttention = false
	assert.Equal(t, "NO", p.Response().MedicalAttentionNeeded)
}
