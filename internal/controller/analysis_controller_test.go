package controller

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"ev-energy-analytics/internal/model"
	"ev-energy-analytics/internal/repository"
	"ev-energy-analytics/internal/service"

	"github.com/gin-gonic/gin"
)

// mockForecastService stubs the pipeline. Embedding the interface keeps the
// mock small; calling an unstubbed method panics, which is what we want.
type mockForecastService struct {
	service.ForecastService
	err  error
	runs int
}

func (m *mockForecastService) RunEnergyAnalysis(projectID string) error {
	m.runs++
	return m.err
}

type mockProjectRepo struct {
	repository.ProjectRepository
	exists    bool
	existsErr error
}

func (m *mockProjectRepo) ProjectExists(id string) (bool, error) {
	return m.exists, m.existsErr
}

type mockForecastRepo struct {
	repository.ForecastRepository
	forecast *model.EnergyForecast
	err      error
}

func (m *mockForecastRepo) GetForecast(projectID string) (*model.EnergyForecast, error) {
	return m.forecast, m.err
}

func setupAnalysisRouter(controller *AnalysisController) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	v1 := r.Group("/v1")
	{
		v1.POST("/projects/:project_id/analysis", controller.RunAnalysis)
		v1.GET("/projects/:project_id/forecast", controller.GetForecast)
		v1.GET("/projects/:project_id/forecast/flows", controller.GetFlows)
	}
	return r
}

func TestRunAnalysis_Success(t *testing.T) {
	svc := &mockForecastService{}
	forecast := &model.EnergyForecast{
		ID:                  "f1",
		ProjectID:           "p1",
		FlowSolarToChargers: 1234.5,
	}
	controller := NewAnalysisController(
		svc,
		&mockProjectRepo{exists: true},
		&mockForecastRepo{forecast: forecast},
		slog.Default(),
	)
	router := setupAnalysisRouter(controller)

	req, _ := http.NewRequest("POST", "/v1/projects/p1/analysis", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if svc.runs != 1 {
		t.Errorf("Expected the pipeline to run once, ran %d times", svc.runs)
	}

	var response model.EnergyForecast
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.FlowSolarToChargers != 1234.5 {
		t.Errorf("Expected flow 1234.5, got %f", response.FlowSolarToChargers)
	}
}

func TestRunAnalysis_ProjectNotFound(t *testing.T) {
	svc := &mockForecastService{}
	controller := NewAnalysisController(
		svc,
		&mockProjectRepo{exists: false},
		&mockForecastRepo{},
		slog.Default(),
	)
	router := setupAnalysisRouter(controller)

	req, _ := http.NewRequest("POST", "/v1/projects/missing/analysis", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, w.Code)
	}
	if svc.runs != 0 {
		t.Errorf("Pipeline should not run for a missing project, ran %d times", svc.runs)
	}
}

func TestRunAnalysis_PipelineFailure(t *testing.T) {
	controller := NewAnalysisController(
		&mockForecastService{err: errors.New("stage failed")},
		&mockProjectRepo{exists: true},
		&mockForecastRepo{},
		slog.Default(),
	)
	router := setupAnalysisRouter(controller)

	req, _ := http.NewRequest("POST", "/v1/projects/p1/analysis", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("Expected status code %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestGetForecast_NotFound(t *testing.T) {
	controller := NewAnalysisController(
		&mockForecastService{},
		&mockProjectRepo{exists: true},
		&mockForecastRepo{forecast: nil},
		slog.Default(),
	)
	router := setupAnalysisRouter(controller)

	req, _ := http.NewRequest("GET", "/v1/projects/p1/forecast", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestGetFlows_Success(t *testing.T) {
	forecast := &model.EnergyForecast{
		ProjectID:                   "p1",
		FlowSolarToChargers:         100,
		FlowGridToChargers:          50,
		DailyAverageBatteryCharging: model.FloatArray{-1, -2},
	}
	controller := NewAnalysisController(
		&mockForecastService{},
		&mockProjectRepo{exists: true},
		&mockForecastRepo{forecast: forecast},
		slog.Default(),
	)
	router := setupAnalysisRouter(controller)

	req, _ := http.NewRequest("GET", "/v1/projects/p1/forecast/flows", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, w.Code)
	}

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response["flow_solar_to_chargers"].(float64) != 100 {
		t.Errorf("Unexpected flow_solar_to_chargers: %v", response["flow_solar_to_chargers"])
	}
	if response["flow_grid_to_chargers"].(float64) != 50 {
		t.Errorf("Unexpected flow_grid_to_chargers: %v", response["flow_grid_to_chargers"])
	}
}
