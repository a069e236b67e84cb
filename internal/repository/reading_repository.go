package repository

import (
	"context"
	"errors"

	"strokesense/internal/errs"
	"strokesense/internal/models"

	"gorm.io/gorm"
)

type ReadingRepository interface {
	SaveReading(ctx context.Context, reading *models.ECGReading) error
	// GetFeatureSourceReading returns the reading feature extraction runs
	// on: the second-to-last stored reading for the user, or the only one
	// when a single reading exists.
	GetFeatureSourceReading(ctx context.Context, userID string) (*models.ECGReading, error)
	GetLatestReading(ctx context.Context, userID string) (*models.ECGReading, error)
}

type readingRepository struct {
	db *gorm.DB
}

func NewReadingRepository(db *gorm.DB) ReadingRepository {
	return &readingRepository{db}
}

func (r *readingRepository) SaveReading(ctx context.Context, reading *models.ECGReading) error {
	if err := r.db.WithContext(ctx).Create(reading).Error; err != nil {
		return storeError("save reading", err)
	}
	return nil
}

func (r *readingRepository) GetFeatureSourceReading(ctx context.Context, userID string) (*models.ECGReading, error) {
	var readings []models.ECGReading
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(2).
		Find(&readings).Error
	if err != nil {
		return nil, storeError("fetch reading", err)
	}
	if len(readings) == 0 {
		return nil, &errs.NotFoundError{Resource: "readings", UserID: userID}
	}
	// Prefer the second-to-last capture so an upload still in flight is
	// never scored; fall back to the only one.
	return &readings[len(readings)-1], nil
}

func (r *readingRepository) GetLatestReading(ctx context.Context, userID string) (*models.ECGReading, error) {
	var reading models.ECGReading
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		First(&reading).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &errs.NotFoundError{Resource: "readings", UserID: userID}
		}
		return nil, storeError("fetch reading", err)
	}
	return &reading, nil
}

// storeError maps driver-level failures onto the error taxonomy. A deadline
// hit becomes a TimeoutError; anything else from the backend is treated as
// transient.
func storeError(operation string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &errs.TimeoutError{Operation: operation, Err: err}
	}
	return &errs.TransientUpstreamError{Operation: operation, Err: err}
}
