package repository

import (
	"context"
	"errors"

	"strokesense/internal/errs"
	"strokesense/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserAttributesRepository interface {
	SaveAttributes(ctx context.Context, attrs *models.UserAttributes) error
	GetByUserID(ctx context.Context, userID string) (*models.UserAttributes, error)
}

type userAttributesRepository struct {
	db *gorm.DB
}

func NewUserAttributesRepository(db *gorm.DB) UserAttributesRepository {
	return &userAttributesRepository{db}
}

// SaveAttributes upserts the demographic snapshot keyed by user_id, so
// re-registering a user replaces the record instead of duplicating it.
func (r *userAttributesRepository) SaveAttributes(ctx context.Context, attrs *models.UserAttributes) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(attrs).Error
	if err != nil {
		return storeError("save user attributes", err)
	}
	return nil
}

func (r *userAttributesRepository) GetByUserID(ctx context.Context, userID string) (*models.UserAttributes, error) {
	var attrs models.UserAttributes
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&attrs).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &errs.NotFoundError{Resource: "user", UserID: userID}
		}
		return nil, storeError("fetch user attributes", err)
	}
	return &attrs, nil
}
