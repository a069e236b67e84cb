package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MaxECGSamples is the most raw samples a single stored reading contributes
// to feature extraction; anything beyond it is ignored.
const MaxECGSamples = 1870

// ECGReading is one stored sensor capture for a user: an ordered sequence of
// raw ADC samples. Readings are append-only; prediction uses the
// second-to-last reading so a capture still in flight is never scored.
type ECGReading struct {
	ID        uint                        `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt time.Time                   `gorm:"index" json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt time.Time                   `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	DeletedAt gorm.DeletedAt              `gorm:"index" json:"-" swaggerignore:"true"`
	UserID    string                      `gorm:"index;size:64" json:"user_id" example:"u-1042"`
	Samples   datatypes.JSONSlice[float64] `gorm:"type:jsonb" json:"samples"`
}

func (r *ECGReading) TableName() string {
	return "ecg_readings"
}

// ReadingRequest is the body of POST /readings.
type ReadingRequest struct {
	UserID  string    `json:"userId" binding:"required" example:"u-1042"`
	Samples []float64 `json:"samples" binding:"required"`
}
