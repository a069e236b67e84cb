package mocks

import (
	"context"

	"strokesense/internal/models"

	"github.com/stretchr/testify/mock"
)

// Shared MockReadingRepository
type MockReadingRepository struct {
	mock.Mock
}

func (m *MockReadingRepository) SaveReading(ctx context.Context, reading *models.ECGReading) error {
	args := m.Called(ctx, reading)
	return args.Error(0)
}

func (m *MockReadingRepository) GetFeatureSourceReading(ctx context.Context, userID string) (*models.ECGReading, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ECGReading), args.Error(1)
}

func (m *MockReadingRepository) GetLatestReading(ctx context.Context, userID string) (*models.ECGReading, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ECGReading), args.Error(1)
}

// Shared MockUserAttributesRepository
type MockUserAttributesRepository struct {
	mock.Mock
}

func (m *MockUserAttributesRepository) SaveAttributes(ctx context.Context, attrs *models.UserAttributes) error {
	args := m.Called(ctx, attrs)
	return args.Error(0)
}

func (m *MockUserAttributesRepository) GetByUserID(ctx context.Context, userID string) (*models.UserAttributes, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserAttributes), args.Error(1)
}

// Shared MockPredictionRepository
type MockPredictionRepository struct {
	mock.Mock
}

func (m *MockPredictionRepository) SavePrediction(ctx context.Context, prediction *models.Prediction) error {
	args := m.Called(ctx, prediction)
	return args.Error(0)
}

func (m *MockPredictionRepository) GetLatestByUserID(ctx context.Context, userID string) (*models.Prediction, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Prediction), args.Error(1)
}
