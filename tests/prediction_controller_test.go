package tests

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"strokesense/internal/controllers"
	"strokesense/internal/errs"
	"strokesense/internal/models"
	"strokesense/internal/services"
	"strokesense/routes"
	"strokesense/tests/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	classZeroLogits = []float64{4, 0, 0, 0}
	classTwoLogits  = []float64{0, 0, 4, 0}
)

func setupPredictionRouter(ecgLogits, heartLogits []float64, strokeProbas ...float64) (*gin.Engine, *mocks.MockReadingRepository, *mocks.MockUserAttributesRepository, *mocks.MockPredictionRepository) {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	readings := new(mocks.MockReadingRepository)
	users := new(mocks.MockUserAttributesRepository)
	predictions := new(mocks.MockPredictionRepository)

	reg := mocks.FixtureRegistry(ecgLogits, heartLogits, strokeProbas...)
	orchestrator := services.NewOrchestrator(readings, predictions, reg, time.Second)
	controller := controllers.NewPredictionController(orchestrator, users, predictions, nil)
	routes.RegisterPredictionRoutes(router, controller)

	return router, readings, users, predictions
}

func predictionBody(userID string) map[string]any {
	return map[string]any{
		"userId":        userID,
		"gender":        "Female",
		"age":           61,
		"hyperTension":  0,
		"everMarried":   "Yes",
		"workType":      "Private",
		"residenceType": "Urban",
		"AGL":           105.92,
		"BMI":           27.4,
		"smokingStatus": "never smoked",
	}
}

func postPrediction(router *gin.Engine, body map[string]any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/prediction", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func storedSamples(userID string) *models.ECGReading {
	return &models.ECGReading{UserID: userID, Samples: mocks.FixtureSamples(1870)}
}

func TestMakePredictionSuccess(t *testing.T) {
	router, readings, _, predictions := setupPredictionRouter(classZeroLogits, classTwoLogits, 0.10, 0.20)

	readings.On("GetFeatureSourceReading", mock.Anything, "u-1").Return(storedSamples("u-1"), nil)
	predictions.On("SavePrediction", mock.Anything, mock.AnythingOfType("*models.Prediction")).Return(nil)

	w := postPrediction(router, predictionBody("u-1"))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "15.00", resp["predictedStrokeProba"])
	assert.Equal(t, "normal", resp["predictedHeartDisease"])
	assert.Equal(t, "NO", resp["medicalAttentionNeeded"])
	assert.NotContains(t, resp, "warning")

	readings.AssertExpectations(t)
	predictions.AssertExpectations(t)
}

func TestMakePredictionDiseasedHeart(t *testing.T) {
	router, readings, _, predictions := setupPredictionRouter(classTwoLogits, classTwoLogits, 0.50)

	readings.On("GetFeatureSourceReading", mock.Anything, "u-2").Return(storedSamples("u-2"), nil)
	predictions.On("SavePrediction", mock.Anything, mock.Anything).Return(nil)

	w := postPrediction(router, predictionBody("u-2"))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ventricular escape", resp["predictedHeartDisease"])
	assert.Equal(t, "YES", resp["medicalAttentionNeeded"])
}

func TestMakePredictionValidationFailure(t *testing.T) {
	router, readings, _, _ := setupPredictionRouter(classZeroLogits, classTwoLogits, 0.10)

	body := predictionBody("u-3")
	body["gender"] = "woman"
	body["workType"] = "Retired"

	w := postPrediction(router, body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Status     string                `json:"status"`
		Violations []errs.FieldViolation `json:"violations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.Len(t, resp.Violations, 2)
	assert.Equal(t, "gender", resp.Violations[0].Field)
	assert.Equal(t, "workType", resp.Violations[1].Field)

	// Validation halts the request before the workflow is entered.
	readings.AssertNotCalled(t, "GetFeatureSourceReading", mock.Anything, mock.Anything)
}

func TestMakePredictionMissingUserID(t *testing.T) {
	router, _, _, _ := setupPredictionRouter(classZeroLogits, classTwoLogits, 0.10)

	body := predictionBody("")
	w := postPrediction(router, body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Violations []errs.FieldViolation `json:"violations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Violations, 1)
	assert.Equal(t, "userId", resp.Violations[0].Field)
	assert.Equal(t, "userID is not provided", resp.Violations[0].Detail)
}

func TestMakePredictionNoReading(t *testing.T) {
	router, readings, _, predictions := setupPredictionRouter(classZeroLogits, classTwoLogits, 0.10)

	readings.On("GetFeatureSourceReading", mock.Anything, "u-4").
		Return(nil, &errs.NotFoundError{Resource: "readings", UserID: "u-4"})

	w := postPrediction(router, predictionBody("u-4"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	predictions.AssertNotCalled(t, "SavePrediction", mock.Anything, mock.Anything)
}

func TestMakePredictionPersistenceFailureStillReturnsResult(t *testing.T) {
	router, readings, _, predictions := setupPredictionRouter(classZeroLogits, classTwoLogits, 0.10)

	readings.On("GetFeatureSourceReading", mock.Anything, "u-5").Return(storedSamples("u-5"), nil)
	predictions.On("SavePrediction", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	w := postPrediction(router, predictionBody("u-5"))
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "10.00", resp["predictedStrokeProba"])
	assert.Equal(t, "prediction computed but not persisted", resp["warning"])
}

func TestMakePredictionStoreTimeout(t *testing.T) {
	router, readings, _, _ := setupPredictionRouter(classZeroLogits, classTwoLogits, 0.10)

	readings.On("GetFeatureSourceReading", mock.Anything, "u-6").
		Return(nil, &errs.TimeoutError{Operation: "fetch reading", Err: errors.New("context deadline exceeded")})

	w := postPrediction(router, predictionBody("u-6"))
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestPredictForUserUsesStoredAttributes(t *testing.T) {
	router, readings, users, predictions := setupPredictionRouter(classZeroLogits, classTwoLogits, 0.10)

	attrs := &models.UserAttributes{
		UserID:          "u-7",
		Gender:          "Male",
		Age:             45,
		Hypertension:    1,
		EverMarried:     "No",
		WorkType:        "Govt_job",
		ResidenceType:   "Rural",
		AvgGlucoseLevel: 88.1,
		BMI:             24.0,
		SmokingStatus:   "smokes",
	}
	users.On("GetByUserID", mock.Anything, "u-7").Return(attrs, nil)
	readings.On("GetFeatureSourceReading", mock.Anything, "u-7").Return(storedSamples("u-7"), nil)
	predictions.On("SavePrediction", mock.Anything, mock.Anything).Return(nil)

	req := httptest.NewRequest(http.MethodGet, "/prediction/u-7", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "10.00", resp["predictedStrokeProba"])
	users.AssertExpectations(t)
}

func TestPredictForUserNotFound(t *testing.T) {
	router, _, users, _ := setupPredictionRouter(classZeroLogits, classTwoLogits, 0.10)

	users.On("GetByUserID", mock.Anything, "ghost").
		Return(nil, &errs.NotFoundError{Resource: "user", UserID: "ghost"})

	req := httptest.NewRequest(http.MethodGet, "/prediction/ghost", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetLatestPrediction(t *testing.T) {
	router, _, _, predictions := setupPredictionRouter(classZeroLogits, classTwoLogits, 0.10)

	predictions.On("GetLatestByUserID", mock.Anything, "u-8").Return(&models.Prediction{
		UserID:            "u-8",
		HeartDisease:      "normal",
		StrokeProbability: 42.5,
		MedicalAttention:  true,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/prediction/u-8/latest", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "42.50", resp["predictedStrokeProba"])
	assert.Equal(t, "YES", resp["medicalAttentionNeeded"])
}

func TestPredictionHealthEndpoint(t *testing.T) {
	router, _, _, _ := setupPredictionRouter(classZeroLogits, classTwoLogits, 0.10)

	req := httptest.NewRequest(http.MethodGet, "/prediction/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
