package service

import (
	"fmt"
	"log/slog"

	"ev-energy-analytics/internal/energy"
	"ev-energy-analytics/internal/model"
	"ev-energy-analytics/internal/repository"
)

// ProfileService holds the charging-profile business logic: the annual
// volume implied by a fleet, default behaviour shapes, and calibration of
// user-edited behaviour arrays back to that volume.
type ProfileService interface {
	TotalAnnualKWh(profile *model.ChargingProfile) float64
	DefaultBehaviour(chargingProfileID string) (*model.ChargingProfileBehaviour, error)
	Calibrate(chargingProfileID string) (*model.ChargingProfileBehaviour, error)
}

// profileService implements ProfileService
type profileService struct {
	projects repository.ProjectRepository
	logger   *slog.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(projects repository.ProjectRepository, logger *slog.Logger) ProfileService {
	return &profileService{projects: projects, logger: logger}
}

// TotalAnnualKWh derives the fleet's annual charging volume:
// vehicles x average recharge fraction x average battery size.
func (s *profileService) TotalAnnualKWh(profile *model.ChargingProfile) float64 {
	return profile.InitialNumberOfVehicles * profile.AverageChargingPercentage / 100 * profile.AverageBatterySize
}

// DefaultBehaviour builds a flat behaviour record for a charging profile:
// even hourly allocation per weekday/weekend day and even monthly split of
// the annual volume. The record is not persisted.
func (s *profileService) DefaultBehaviour(chargingProfileID string) (*model.ChargingProfileBehaviour, error) {
	profile, err := s.projects.GetChargingProfile(chargingProfileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("charging profile %s not found", chargingProfileID)
	}
	total := s.TotalAnnualKWh(profile)
	weekdayDaily, weekendDaily := energy.WeekdayWeekendAllocation(total, 0)
	return &model.ChargingProfileBehaviour{
		ChargingProfileID: chargingProfileID,
		WeekdayHourlyData: energy.FlatProfile(energy.HoursPerDay, weekdayDaily),
		WeekendHourlyData: energy.FlatProfile(energy.HoursPerDay, weekendDaily),
		MonthlyData:       energy.FlatProfile(energy.MonthsPerYear, total),
	}, nil
}

// Calibrate rescales the stored behaviour arrays so the weekday and weekend
// shapes sum to their allocated daily volumes and the monthly shape sums to
// the annual total. User-drawn shapes are preserved, only their magnitude
// changes. A zero annual volume or a missing behaviour record leaves
// everything untouched.
func (s *profileService) Calibrate(chargingProfileID string) (*model.ChargingProfileBehaviour, error) {
	profile, err := s.projects.GetChargingProfile(chargingProfileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("charging profile %s not found", chargingProfileID)
	}
	behaviour, err := s.projects.GetBehaviour(chargingProfileID)
	if err != nil {
		return nil, err
	}
	if behaviour == nil {
		return nil, fmt.Errorf("charging profile %s has no behaviour record", chargingProfileID)
	}
	total := s.TotalAnnualKWh(profile)
	if total <= 0 {
		return behaviour, nil
	}
	weekdayDaily, weekendDaily := energy.WeekdayWeekendAllocation(total, behaviour.WeekdayWeekendScale)
	behaviour.WeekdayHourlyData = energy.CalibrateTo(behaviour.WeekdayHourlyData, weekdayDaily)
	behaviour.WeekendHourlyData = energy.CalibrateTo(behaviour.WeekendHourlyData, weekendDaily)
	behaviour.MonthlyData = energy.CalibrateTo(behaviour.MonthlyData, total)
	if err := s.projects.UpsertBehaviour(behaviour); err != nil {
		return nil, err
	}
	s.logger.Info("behaviour calibrated",
		"charging_profile_id", chargingProfileID,
		"total_annual_kwh", total,
	)
	return behaviour, nil
}
