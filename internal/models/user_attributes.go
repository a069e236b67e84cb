package models

import (
	"fmt"
	"time"

	"strokesense/internal/errs"

	"gorm.io/gorm"
)

// Closed value sets for the categorical demographic fields. The transformer
// was trained on exactly these categories, so anything outside them is
// rejected before the workflow is entered.
var (
	Genders         = []string{"Male", "Female", "Other"}
	MarriedStatuses = []string{"Yes", "No"}
	WorkTypes       = []string{"Private", "Self-employed", "Govt_job", "children", "Never_worked"}
	ResidenceTypes  = []string{"Urban", "Rural"}
	SmokingStatuses = []string{"formerly smoked", "never smoked", "smokes", "Unknown"}
)

// UserAttributes is the demographic/clinical snapshot for one user. It is
// fetched fresh per prediction request and never cached.
type UserAttributes struct {
	ID              uint           `gorm:"primaryKey" json:"id" example:"1"`
	CreatedAt       time.Time      `json:"created_at" example:"2023-01-01T00:00:00Z"`
	UpdatedAt       time.Time      `json:"updated_at" example:"2023-01-01T00:00:00Z"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-" swaggerignore:"true"`
	UserID          string         `gorm:"uniqueIndex;size:64" json:"user_id" example:"u-1042"`
	Gender          string         `json:"gender" example:"Female"`
	Age             int            `json:"age" example:"61"`
	Hypertension    int            `gorm:"check:hypertension IN (0,1)" json:"hypertension" example:"0"`
	EverMarried     string         `gorm:"column:ever_married" json:"ever_married" example:"Yes"`
	WorkType        string         `gorm:"column:work_type" json:"work_type" example:"Private"`
	ResidenceType   string         `gorm:"column:residence_type" json:"residence_type" example:"Urban"`
	AvgGlucoseLevel float64        `gorm:"column:avg_glucose_level" json:"avg_glucose_level" example:"105.92"`
	BMI             float64        `gorm:"column:bmi" json:"bmi" example:"27.4"`
	SmokingStatus   string         `gorm:"column:smoking_status" json:"smoking_status" example:"never smoked"`
}

func (ua *UserAttributes) TableName() string {
	return "user_attributes"
}

// PredictionRequest is the body of POST /prediction. Field names follow the
// public API contract rather than the storage column names.
type PredictionRequest struct {
	UserID          string  `json:"userId" example:"u-1042"`
	Gender          string  `json:"gender" example:"Female"`
	Age             int     `json:"age" example:"61"`
	HyperTension    int     `json:"hyperTension" example:"0"`
	EverMarried     string  `json:"everMarried" example:"Yes"`
	WorkType        string  `json:"workType" example:"Private"`
	ResidenceType   string  `json:"residenceType" example:"Urban"`
	AvgGlucoseLevel float64 `json:"AGL" example:"105.92"`
	BMI             float64 `json:"BMI" example:"27.4"`
	SmokingStatus   string  `json:"smokingStatus" example:"never smoked"`
}

// Attributes converts the request payload into the storage representation
// used by the orchestrator.
func (r *PredictionRequest) Attributes() *UserAttributes {
	return &UserAttributes{
		UserID:          r.UserID,
		Gender:          r.Gender,
		Age:             r.Age,
		Hypertension:    r.HyperTension,
		EverMarried:     r.EverMarried,
		WorkType:        r.WorkType,
		ResidenceType:   r.ResidenceType,
		AvgGlucoseLevel: r.AvgGlucoseLevel,
		BMI:             r.BMI,
		SmokingStatus:   r.SmokingStatus,
	}
}

// Validate checks every field in a fixed order and collects all violations
// rather than stopping at the first one, so a client can fix its whole
// payload in one round trip.
func (r *PredictionRequest) Validate() error {
	var violations []errs.FieldViolation

	if r.UserID == "" {
		violations = append(violations, errs.FieldViolation{Field: "userId", Detail: "userID is not provided"})
	}
	violations = append(violations, validateAttributeFields(r.Attributes())...)

	if len(violations) > 0 {
		return &errs.ValidationError{Violations: violations}
	}
	return nil
}

// ValidateAttributes applies the same field checks to a stored attribute
// record, for the path where demographics come from the store instead of
// the request body.
func ValidateAttributes(ua *UserAttributes) error {
	violations := validateAttributeFields(ua)
	if len(violations) > 0 {
		return &errs.ValidationError{Violations: violations}
	}
	return nil
}

func validateAttributeFields(ua *UserAttributes) []errs.FieldViolation {
	var violations []errs.FieldViolation

	if !inSet(ua.Gender, Genders) {
		violations = append(violations, enumViolation("gender", ua.Gender, Genders))
	}
	if ua.Age <= 0 {
		violations = append(violations, errs.FieldViolation{Field: "age", Detail: "age must be a positive integer"})
	}
	if ua.Hypertension != 0 && ua.Hypertension != 1 {
		violations = append(violations, errs.FieldViolation{Field: "hyperTension", Detail: "hyperTension must be 0 or 1"})
	}
	if !inSet(ua.EverMarried, MarriedStatuses) {
		violations = append(violations, enumViolation("everMarried", ua.EverMarried, MarriedStatuses))
	}
	if !inSet(ua.WorkType, WorkTypes) {
		violations = append(violations, enumViolation("workType", ua.WorkType, WorkTypes))
	}
	if !inSet(ua.ResidenceType, ResidenceTypes) {
		violations = append(violations, enumViolation("residenceType", ua.ResidenceType, ResidenceTypes))
	}
	if ua.AvgGlucoseLevel <= 0 {
		violations = append(violations, errs.FieldViolation{Field: "AGL", Detail: "average glucose level must be positive"})
	}
	if ua.BMI <= 0 {
		violations = append(violations, errs.FieldViolation{Field: "BMI", Detail: "BMI must be positive"})
	}
	if !inSet(ua.SmokingStatus, SmokingStatuses) {
		violations = append(violations, enumViolation("smokingStatus", ua.SmokingStatus, SmokingStatuses))
	}

	return violations
}

func enumViolation(field, value string, allowed []string) errs.FieldViolation {
	return errs.FieldViolation{
		Field:  field,
		Detail: fmt.Sprintf("%q is not one of %v", value, allowed),
	}
}

func inSet(value string, set []string) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}
