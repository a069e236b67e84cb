// Package services holds the inference orchestrator: the per-request
// fetch → validate → preprocess → predict → combine → classify → persist
// workflow.
package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"strokesense/internal/errs"
	"strokesense/internal/models"
	"strokesense/internal/registry"
	"strokesense/internal/repository"
)

const DefaultStoreTimeout = 10 * time.Second

// Orchestrator executes the end-to-end prediction workflow. It holds no
// per-request state; a single instance serves all concurrent requests.
type Orchestrator struct {
	readings     repository.ReadingRepository
	predictions  repository.PredictionRepository
	registry     *registry.Registry
	storeTimeout time.Duration
}

func NewOrchestrator(
	readings repository.ReadingRepository,
	predictions repository.PredictionRepository,
	reg *registry.Registry,
	storeTimeout time.Duration,
) *Orchestrator {
	if storeTimeout <= 0 {
		storeTimeout = DefaultStoreTimeout
	}
	return &Orchestrator{
		readings:     readings,
		predictions:  predictions,
		registry:     reg,
		storeTimeout: storeTimeout,
	}
}

// Outcome is the result of one workflow run. PersistenceErr is set when the
// prediction was computed but could not be saved; the prediction itself is
// still valid in that case.
type Outcome struct {
	Prediction     *models.Prediction
	PersistenceErr error
}

// Predict runs the workflow for one user. The caller validates attrs before
// calling; a missing reading halts the workflow before any model is
// invoked.
func (o *Orchestrator) Predict(ctx context.Context, userID string, attrs *models.UserAttributes) (*Outcome, error) {
	readCtx, cancel := context.WithTimeout(ctx, o.storeTimeout)
	reading, err := o.readings.GetFeatureSourceReading(readCtx, userID)
	cancel()
	if err != nil {
		return nil, err
	}

	features, err := NormalizeReading(reading.Samples)
	if err != nil {
		return nil, &errs.NotFoundError{Resource: "usable readings", UserID: userID}
	}

	label, err := o.classifyHeartDisease(features)
	if err != nil {
		return nil, err
	}

	heartDiseaseFlag := "0"
	if label != models.HeartDiseaseNormal {
		heartDiseaseFlag = "1"
	}

	estimate, err := o.estimateStrokeRisk(attrs, heartDiseaseFlag)
	if err != nil {
		return nil, err
	}

	prediction := &models.Prediction{
		UserID:            userID,
		HeartDiseaseLabel: label,
		HeartDisease:      models.HeartDiseaseDescription(label),
		StrokeProbability: estimate,
		MedicalAttention:  MedicalAttentionNeeded(estimate),
	}

	outcome := &Outcome{Prediction: prediction}

	writeCtx, cancel := context.WithTimeout(ctx, o.storeTimeout)
	defer cancel()
	if err := o.predictions.SavePrediction(writeCtx, prediction); err != nil {
		// The result is already computed; report the save failure
		// distinctly instead of discarding the prediction.
		outcome.PersistenceErr = &errs.PersistenceError{UserID: userID, Err: err}
		log.Printf("prediction for user %s computed but not persisted: %v", userID, err)
	}

	return outcome, nil
}

// classifyHeartDisease runs the ECG classifier and, for any non-normal
// argmax, refines the sub-type with the secondary classifier on the same
// feature vector.
func (o *Orchestrator) classifyHeartDisease(features []float64) (int, error) {
	distribution, err := o.registry.ECGClassifier.Predict(features)
	if err != nil {
		return 0, fmt.Errorf("ECG classification failed: %w", err)
	}

	if k := registry.Argmax(distribution); k == models.HeartDiseaseNormal {
		return models.HeartDiseaseNormal, nil
	}

	refined, err := o.registry.HeartDisease.Predict(features)
	if err != nil {
		return 0, fmt.Errorf("heart-disease sub-classification failed: %w", err)
	}
	return registry.Argmax(refined), nil
}

// estimateStrokeRisk assembles the stroke-model input row, encodes it, and
// averages the positive-class probability across the whole ensemble. The
// divisor is the true ensemble size, not a fixed constant.
func (o *Orchestrator) estimateStrokeRisk(attrs *models.UserAttributes, heartDiseaseFlag string) (float64, error) {
	row := map[string]any{
		"gender":            attrs.Gender,
		"age":               float64(attrs.Age),
		"hypertension":      strconv.Itoa(attrs.Hypertension),
		"heart_disease":     heartDiseaseFlag,
		"ever_married":      attrs.EverMarried,
		"work_type":         attrs.WorkType,
		"Residence_type":    attrs.ResidenceType,
		"avg_glucose_level": attrs.AvgGlucoseLevel,
		"bmi":               attrs.BMI,
		"smoking_status":    attrs.SmokingStatus,
	}

	encoded, err := o.registry.Transformer.Transform(row)
	if err != nil {
		return 0, fmt.Errorf("feature transformation failed: %w", err)
	}

	var sum float64
	for _, classifier := range o.registry.StrokeEnsemble {
		proba, err := classifier.PredictProba(encoded)
		if err != nil {
			return 0, fmt.Errorf("stroke scoring failed: %w", err)
		}
		sum += proba[1]
	}

	return sum / float64(len(o.registry.StrokeEnsemble)) * 100, nil
}
