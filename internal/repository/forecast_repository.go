package repository

import (
	"errors"

	"ev-energy-analytics/internal/model"

	"gorm.io/gorm"
)

// ForecastRepository persists pipeline-derived state: per-hub profile
// columns and the per-project energy forecast record. Each stage writes
// only its own columns, so partial failure leaves earlier stages' output
// intact.
type ForecastRepository interface {
	UpdateGenerationResults(projectID string, fields map[string]interface{}) error
	UpdateHubDerived(hubID string, fields map[string]interface{}) error
	GetForecast(projectID string) (*model.EnergyForecast, error)
	UpsertForecast(projectID string, fields map[string]interface{}) error
}

type forecastRepository struct {
	db *gorm.DB
}

// NewForecastRepository creates a new forecast repository
func NewForecastRepository(db *gorm.DB) ForecastRepository {
	return &forecastRepository{db: db}
}

// UpdateGenerationResults writes the resolved profile columns on the
// project's generation config.
func (r *forecastRepository) UpdateGenerationResults(projectID string, fields map[string]interface{}) error {
	return r.db.Model(&model.GenerationConfig{}).Where("project_id = ?", projectID).Updates(fields).Error
}

// UpdateHubDerived writes derived profile columns on a charging hub.
func (r *forecastRepository) UpdateHubDerived(hubID string, fields map[string]interface{}) error {
	return r.db.Model(&model.ChargingHub{}).Where("id = ?", hubID).Updates(fields).Error
}

// GetForecast returns the project's forecast record, or (nil, nil) when no
// pipeline run has happened yet.
func (r *forecastRepository) GetForecast(projectID string) (*model.EnergyForecast, error) {
	var forecast model.EnergyForecast
	err := r.db.Where("project_id = ?", projectID).First(&forecast).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &forecast, nil
}

// UpsertForecast creates the forecast row on first write and updates only
// the given columns on subsequent writes, keyed by project.
func (r *forecastRepository) UpsertForecast(projectID string, fields map[string]interface{}) error {
	var forecast model.EnergyForecast
	err := r.db.Where("project_id = ?", projectID).First(&forecast).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		forecast = model.EnergyForecast{ProjectID: projectID}
		if err := r.db.Create(&forecast).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}
	return r.db.Model(&forecast).Updates(fields).Error
}
