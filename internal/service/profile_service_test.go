package service

import (
	"log/slog"
	"testing"

	"ev-energy-analytics/internal/energy"
	"ev-energy-analytics/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProfile(store *fakeStore) *model.ChargingProfile {
	profile := &model.ChargingProfile{
		ID:                        "cp1",
		ProjectID:                 "p1",
		ProfileName:               "Fleet",
		InitialNumberOfVehicles:   120,
		AverageChargingPercentage: 60,
		AverageBatterySize:        75,
	}
	store.profiles[profile.ID] = profile
	return profile
}

func TestTotalAnnualKWh(t *testing.T) {
	store := newFakeStore()
	profile := seedProfile(store)
	svc := NewProfileService(store, slog.Default())

	// 120 vehicles x 60% recharge x 75 kWh
	assert.InDelta(t, 5400, svc.TotalAnnualKWh(profile), 1e-9)

	assert.Equal(t, 0.0, svc.TotalAnnualKWh(&model.ChargingProfile{}))
}

func TestDefaultBehaviour(t *testing.T) {
	store := newFakeStore()
	seedProfile(store)
	svc := NewProfileService(store, slog.Default())

	behaviour, err := svc.DefaultBehaviour("cp1")
	require.NoError(t, err)
	require.Len(t, behaviour.WeekdayHourlyData, energy.HoursPerDay)
	require.Len(t, behaviour.WeekendHourlyData, energy.HoursPerDay)
	require.Len(t, behaviour.MonthlyData, energy.MonthsPerYear)

	// Scale 0: weekday and weekend days carry the same volume.
	assert.InDelta(t, behaviour.WeekdayHourlyData[0], behaviour.WeekendHourlyData[0], 1e-9)

	monthlySum := 0.0
	for _, v := range behaviour.MonthlyData {
		monthlySum += v
	}
	assert.InDelta(t, 5400, monthlySum, 1e-6)

	_, err = svc.DefaultBehaviour("missing")
	assert.Error(t, err)
}

func TestCalibrate(t *testing.T) {
	store := newFakeStore()
	seedProfile(store)
	store.behaviours["cp1"] = &model.ChargingProfileBehaviour{
		ChargingProfileID:   "cp1",
		WeekdayHourlyData:   flat(energy.HoursPerDay, 3),
		WeekendHourlyData:   flat(energy.HoursPerDay, 7),
		MonthlyData:         flat(energy.MonthsPerYear, 1),
		WeekdayWeekendScale: 0,
	}
	svc := NewProfileService(store, slog.Default())

	behaviour, err := svc.Calibrate("cp1")
	require.NoError(t, err)

	weekdayDaily, weekendDaily := energy.WeekdayWeekendAllocation(5400, 0)
	weekdaySum, weekendSum, monthlySum := 0.0, 0.0, 0.0
	for _, v := range behaviour.WeekdayHourlyData {
		weekdaySum += v
	}
	for _, v := range behaviour.WeekendHourlyData {
		weekendSum += v
	}
	for _, v := range behaviour.MonthlyData {
		monthlySum += v
	}

	assert.InDelta(t, weekdayDaily, weekdaySum, 1e-6)
	assert.InDelta(t, weekendDaily, weekendSum, 1e-6)
	assert.InDelta(t, 5400, monthlySum, 1e-6)

	// The hourly shape is preserved, only the magnitude changes.
	assert.InDelta(t, behaviour.WeekdayHourlyData[0], behaviour.WeekdayHourlyData[23], 1e-9)

	// Calibration persists.
	stored, err := store.GetBehaviour("cp1")
	require.NoError(t, err)
	assert.Equal(t, behaviour.MonthlyData, stored.MonthlyData)
}

func TestCalibrateZeroVolume(t *testing.T) {
	store := newFakeStore()
	store.profiles["cp1"] = &model.ChargingProfile{ID: "cp1"}
	original := flat(energy.MonthsPerYear, 5)
	store.behaviours["cp1"] = &model.ChargingProfileBehaviour{
		ChargingProfileID: "cp1",
		WeekdayHourlyData: flat(energy.HoursPerDay, 1),
		WeekendHourlyData: flat(energy.HoursPerDay, 1),
		MonthlyData:       original,
	}
	svc := NewProfileService(store, slog.Default())

	behaviour, err := svc.Calibrate("cp1")
	require.NoError(t, err)
	assert.InDelta(t, 5, behaviour.MonthlyData[0], 1e-9)
}

func TestCalibrateMissingRecords(t *testing.T) {
	store := newFakeStore()
	svc := NewProfileService(store, slog.Default())

	_, err := svc.Calibrate("absent")
	assert.Error(t, err)

	seedProfile(store)
	_, err = svc.Calibrate("cp1")
	assert.Error(t, err)
}
