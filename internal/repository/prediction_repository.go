package repository

import (
	"context"
	"errors"

	"strokesense/internal/errs"
	"strokesense/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PredictionRepository interface {
	// SavePrediction upserts by user_id. Retrying a failed save cannot
	// duplicate a result record.
	SavePrediction(ctx context.Context, prediction *models.Prediction) error
	GetLatestByUserID(ctx context.Context, userID string) (*models.Prediction, error)
}

type predictionRepository struct {
	db *gorm.DB
}

func NewPredictionRepository(db *gorm.DB) PredictionRepository {
	return &predictionRepository{db}
}

func (r *predictionRepository) SavePrediction(ctx context.Context, prediction *models.Prediction) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"heart_disease_label", "heart_disease", "stroke_probability", "medical_attention", "updated_at",
			}),
		}).
		Create(prediction).Error
	if err != nil {
		return storeError("save prediction", err)
	}
	return nil
}

func (r *predictionRepository) GetLatestByUserID(ctx context.Context, userID string) (*models.Prediction, error) {
	var prediction models.Prediction
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&prediction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &errs.NotFoundError{Resource: "prediction", UserID: userID}
		}
		return nil, storeError("fetch prediction", err)
	}
	return &prediction, nil
}
