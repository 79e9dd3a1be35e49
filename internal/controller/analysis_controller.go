package controller

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"ev-energy-analytics/internal/repository"
	"ev-energy-analytics/internal/service"

	"github.com/gin-gonic/gin"
)

// AnalysisController handles energy analysis HTTP requests
type AnalysisController struct {
	forecastService service.ForecastService
	projects        repository.ProjectRepository
	forecasts       repository.ForecastRepository
	logger          *slog.Logger
}

// NewAnalysisController creates a new analysis controller
func NewAnalysisController(
	forecastService service.ForecastService,
	projects repository.ProjectRepository,
	forecasts repository.ForecastRepository,
	logger *slog.Logger,
) *AnalysisController {
	return &AnalysisController{
		forecastService: forecastService,
		projects:        projects,
		forecasts:       forecasts,
		logger:          logger,
	}
}

// RunAnalysis handles POST /v1/projects/{project_id}/analysis
// Runs the full forecasting pipeline synchronously and returns the forecast.
func (c *AnalysisController) RunAnalysis(ctx *gin.Context) {
	startTime := time.Now()
	projectID := ctx.Param("project_id")

	exists, err := c.projects.ProjectExists(projectID)
	if err != nil {
		c.logger.Error("failed to check project existence",
			"project_id", projectID,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to verify project existence",
		})
		return
	}
	if !exists {
		c.logger.Warn("project not found", "project_id", projectID)
		ctx.JSON(http.StatusNotFound, gin.H{
			"error":   "Project not found",
			"message": fmt.Sprintf("Project with ID %s does not exist", projectID),
		})
		return
	}

	if err := c.forecastService.RunEnergyAnalysis(projectID); err != nil {
		latency := time.Since(startTime)
		c.logger.Error("energy analysis failed",
			"project_id", projectID,
			"error", err.Error(),
			"latency_ms", latency.Milliseconds(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Energy analysis failed",
		})
		return
	}

	forecast, err := c.forecasts.GetForecast(projectID)
	if err != nil {
		c.logger.Error("failed to load forecast",
			"project_id", projectID,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to load forecast",
		})
		return
	}

	latency := time.Since(startTime)
	c.logger.Info("analysis request completed",
		"project_id", projectID,
		"latency_ms", latency.Milliseconds(),
	)

	if forecast == nil {
		// Possible when nothing was configured: every stage no-opped.
		ctx.JSON(http.StatusOK, gin.H{"project_id": projectID, "forecast": nil})
		return
	}
	ctx.JSON(http.StatusOK, forecast)
}

// GetForecast handles GET /v1/projects/{project_id}/forecast
func (c *AnalysisController) GetForecast(ctx *gin.Context) {
	projectID := ctx.Param("project_id")

	exists, err := c.projects.ProjectExists(projectID)
	if err != nil {
		c.logger.Error("failed to check project existence",
			"project_id", projectID,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to verify project existence",
		})
		return
	}
	if !exists {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error":   "Project not found",
			"message": fmt.Sprintf("Project with ID %s does not exist", projectID),
		})
		return
	}

	forecast, err := c.forecasts.GetForecast(projectID)
	if err != nil {
		c.logger.Error("failed to load forecast",
			"project_id", projectID,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to load forecast",
		})
		return
	}
	if forecast == nil {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error":   "Forecast not found",
			"message": "No analysis has been run for this project",
		})
		return
	}
	ctx.JSON(http.StatusOK, forecast)
}

// GetFlows handles GET /v1/projects/{project_id}/forecast/flows
// Returns only the first-year flow totals and daily average profiles.
func (c *AnalysisController) GetFlows(ctx *gin.Context) {
	projectID := ctx.Param("project_id")

	forecast, err := c.forecasts.GetForecast(projectID)
	if err != nil {
		c.logger.Error("failed to load forecast",
			"project_id", projectID,
			"error", err.Error(),
		)
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal server error",
			"message": "Failed to load forecast",
		})
		return
	}
	if forecast == nil {
		ctx.JSON(http.StatusNotFound, gin.H{
			"error":   "Forecast not found",
			"message": "No analysis has been run for this project",
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"project_id":                        projectID,
		"flow_solar_to_chargers":            forecast.FlowSolarToChargers,
		"flow_solar_to_battery":             forecast.FlowSolarToBattery,
		"flow_solar_to_grid":                forecast.FlowSolarToGrid,
		"flow_battery_to_chargers":          forecast.FlowBatteryToChargers,
		"flow_grid_to_battery":              forecast.FlowGridToBattery,
		"flow_grid_to_chargers":             forecast.FlowGridToChargers,
		"daily_average_battery_charging":    forecast.DailyAverageBatteryCharging,
		"daily_average_battery_discharging": forecast.DailyAverageBatteryDischarging,
	})
}
