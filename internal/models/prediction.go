package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Heart-disease class labels produced by the ECG pipeline.
const (
	HeartDiseaseNormal = iota
	HeartDiseaseSupraVentricular
	HeartDiseaseVentricularEscape
	HeartDiseaseFusionOfVentricular
)

var heartDiseaseDescriptions = map[int]string{
	HeartDiseaseNormal:              "normal",
	HeartDiseaseSupraVentricular:    "supra-ventricular premature",
	HeartDiseaseVentricularEscape:   "ventricular escape",
	HeartDiseaseFusionOfVentricular: "fusion of ventricular",
}

// HeartDiseaseDescription maps a classifier label to its diagnosis text.
// Labels outside the known set come back as "Unknown".
func HeartDiseaseDescription(label int) string {
	if desc, ok := heartDiseaseDescriptions[label]; ok {
		return desc
	}
	return "Unknown"
}

// Prediction is the persisted result of one inference run. There is at most
// one row per user: persistence is an upsert keyed by user_id, which makes
// retrying a failed save safe.
type Prediction struct {
	ID                string         `gorm:"primaryKey;size:36" json:"id" example:"6ba7b810-9dad-11d1-80b4-00c04fd430c8"`
	CreatedAt         time.Time      `gorm:"index" json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt         time.Time      `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-" swaggerignore:"true"`
	UserID            string         `gorm:"uniqueIndex;size:64" json:"user_id" example:"u-1042"`
	HeartDiseaseLabel int            `gorm:"column:heart_disease_label" json:"heart_disease_label" example:"0"`
	HeartDisease      string         `gorm:"column:heart_disease" json:"heart_disease" example:"normal"`
	StrokeProbability float64        `gorm:"column:stroke_probability" json:"stroke_probability" example:"12.34"`
	MedicalAttention  bool           `gorm:"column:medical_attention" json:"medical_attention" example:"false"`
}

func (p *Prediction) TableName() string {
	return "predictions"
}

func (p *Prediction) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PredictionResponse is the public payload of a successful prediction.
// The stroke probability is formatted to two decimal places and the
// attention flag is the literal string "YES" or "NO".
type PredictionResponse struct {
	PredictedStrokeProba   string `json:"predictedStrokeProba" example:"12.34"`
	PredictedHeartDisease  string `json:"predictedHeartDisease" example:"normal"`
	MedicalAttentionNeeded string `json:"medicalAttentionNeeded" example:"NO"`
}

// Response renders the persisted record in the public API shape.
func (p *Prediction) Response() PredictionResponse {
	attention := "NO"
	if p.MedicalAttention {
		attention = "YES"
	}
	return PredictionResponse{
		PredictedStrokeProba:   fmt.Sprintf("%.2f", p.StrokeProbability),
		PredictedHeartDisease:  p.HeartDisease,
		MedicalAttentionNeeded: attention,
	}
}
