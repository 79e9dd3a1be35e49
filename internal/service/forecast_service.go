package service

import (
	"log/slog"
	"sync"
	"time"

	"ev-energy-analytics/internal/energy"
	"ev-energy-analytics/internal/metrics"
	"ev-energy-analytics/internal/model"
	"ev-energy-analytics/internal/repository"
	"ev-energy-analytics/internal/solar"
)

// ForecastService exposes the forecasting pipeline as named stage
// operations, each taking a project ID. Stages no-op silently when their
// configuration is absent; callers invoke them in dependency order, or use
// RunEnergyAnalysis which runs the full ordered sequence.
type ForecastService interface {
	RunSolarProfile(projectID string) error
	RunChargingDemand(projectID string) error
	RunCapacityProfiles(projectID string) error
	RunDemandDailyTotals(projectID string) error
	RunDemandMonthlyTotals(projectID string) error
	RunSolarForecast(projectID string) error
	RunGrossDemand(projectID string) error
	RunSolarConsumed(projectID string) error
	RunSolarExcess(projectID string) error
	RunDemandPostSolar(projectID string) error
	RunBatteryForecast(projectID string) error
	RunDemandPostSolarBattery(projectID string) error
	RunGridImport(projectID string) error
	RunDemandPostSolarBatteryGrid(projectID string) error
	RunSolarExcessPostBattery(projectID string) error
	RunGridExport(projectID string) error
	RunEnergyFlows(projectID string) error
	RunDailyAverages(projectID string) error

	RunEnergyAnalysis(projectID string) error
}

// ForecastOptions carries the deployment-level simulation parameters.
type ForecastOptions struct {
	// ProjectLife is the forecast horizon in years.
	ProjectLife int
	// Location keys the solar reference dataset.
	Location string
}

// forecastService implements ForecastService
type forecastService struct {
	projects  repository.ProjectRepository
	forecasts repository.ForecastRepository
	dataset   *solar.Dataset
	opts      ForecastOptions
	logger    *slog.Logger
	metrics   *metrics.PipelineMetrics

	// Pipeline runs for the same project are serialized; concurrent runs
	// would race on the shared forecast row.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewForecastService creates a new forecast service
func NewForecastService(
	projects repository.ProjectRepository,
	forecasts repository.ForecastRepository,
	dataset *solar.Dataset,
	opts ForecastOptions,
	logger *slog.Logger,
	pipelineMetrics *metrics.PipelineMetrics,
) ForecastService {
	if opts.ProjectLife <= 0 {
		opts.ProjectLife = 3
	}
	return &forecastService{
		projects:  projects,
		forecasts: forecasts,
		dataset:   dataset,
		opts:      opts,
		logger:    logger,
		metrics:   pipelineMetrics,
		locks:     make(map[string]*sync.Mutex),
	}
}

func (s *forecastService) projectLock(projectID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[projectID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[projectID] = lock
	}
	return lock
}

// RunSolarProfile resolves the reference curve for the project's
// orientation/tilt and scales it to the installed system. A missing
// generation config or an unsupported orientation/tilt combination skips
// the stage entirely; no partial profile is written.
func (s *forecastService) RunSolarProfile(projectID string) error {
	cfg, err := s.projects.GetGenerationConfig(projectID)
	if err != nil {
		return err
	}
	if cfg == nil {
		return nil
	}
	raw, ok := s.dataset.Lookup(s.opts.Location, cfg.Orientation, cfg.Tilt)
	if !ok {
		s.logger.Warn("no solar reference curve",
			"project_id", projectID,
			"orientation", cfg.Orientation,
			"tilt", cfg.Tilt,
		)
		return nil
	}
	profile := energy.ScaleProfile(raw, cfg.SystemSizeKWp, cfg.SystemLosses)
	return s.forecasts.UpdateGenerationResults(projectID, map[string]interface{}{
		"generation_profile_kwh": model.FloatArray(profile),
		"monthly_totals":         model.FloatArray(energy.MonthlyTotals(profile)),
		"hourly_averages":        model.FloatArray(energy.HourlyAverages(profile)),
		"solar_yield":            energy.SolarYield(profile, cfg.SystemSizeKWp),
	})
}

// RunChargingDemand synthesizes each hub's annual demand profile from its
// linked behaviour record. Hubs without a profile, or with missing
// behaviour data, get an all-zero profile rather than failing the run.
func (s *forecastService) RunChargingDemand(projectID string) error {
	hubs, err := s.projects.ListHubs(projectID)
	if err != nil {
		return err
	}
	for _, hub := range hubs {
		profile := energy.ZeroProfile()
		if b := hubBehaviour(&hub); b != nil {
			profile = energy.SynthesizeDemand(b.WeekdayHourlyData, b.WeekendHourlyData, b.MonthlyData)
		}
		err := s.forecasts.UpdateHubDerived(hub.ID, map[string]interface{}{
			"demand_profile":               model.FloatArray(profile),
			"demand_profile_annual_demand": energy.AnnualDemand(profile),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// RunCapacityProfiles writes each hub's constant hourly capacity profile
// and its summed daily totals.
func (s *forecastService) RunCapacityProfiles(projectID string) error {
	hubs, err := s.projects.ListHubs(projectID)
	if err != nil {
		return err
	}
	for _, hub := range hubs {
		profile := energy.CapacityProfile(hub.ChargerPower, hub.NumberOfChargers)
		err := s.forecasts.UpdateHubDerived(hub.ID, map[string]interface{}{
			"charger_capacity_profile":              model.FloatArray(profile),
			"charger_capacity_profile_daily_totals": model.FloatArray(energy.DailyTotals(profile)),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// RunDemandDailyTotals reduces each hub's demand profile into 365 daily sums.
func (s *forecastService) RunDemandDailyTotals(projectID string) error {
	hubs, err := s.projects.ListHubs(projectID)
	if err != nil {
		return err
	}
	for _, hub := range hubs {
		err := s.forecasts.UpdateHubDerived(hub.ID, map[string]interface{}{
			"demand_profile_daily_totals": model.FloatArray(energy.DailyTotals(hub.DemandProfile)),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// RunDemandMonthlyTotals reduces each hub's daily totals into 12 monthly sums.
func (s *forecastService) RunDemandMonthlyTotals(projectID string) error {
	hubs, err := s.projects.ListHubs(projectID)
	if err != nil {
		return err
	}
	for _, hub := range hubs {
		err := s.forecasts.UpdateHubDerived(hub.ID, map[string]interface{}{
			"demand_profile_monthly_totals": model.FloatArray(energy.MonthlyFromDaily(hub.DemandProfileDailyTotals)),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// RunSolarForecast extrapolates the generation profile across the horizon,
// compounding annual degradation.
func (s *forecastService) RunSolarForecast(projectID string) error {
	cfg, err := s.projects.GetGenerationConfig(projectID)
	if err != nil {
		return err
	}
	if cfg == nil || len(cfg.GenerationProfileKWh) == 0 {
		return nil
	}
	years := energy.ExtrapolateSolar(cfg.GenerationProfileKWh, cfg.AnnualDegradation, s.opts.ProjectLife)
	return s.forecasts.UpsertForecast(projectID, map[string]interface{}{
		"generated_solar_energy": model.FloatMatrix(years),
	})
}

// RunGrossDemand builds the project-wide demand per year: each hub's demand
// grown by its profile's annual rate, capped at the hub's (ungrown) charger
// capacity, then summed across hubs.
func (s *forecastService) RunGrossDemand(projectID string) error {
	hubs, err := s.projects.ListHubs(projectID)
	if err != nil {
		return err
	}
	if len(hubs) == 0 {
		return nil
	}
	allYears := make([][]float64, 0, s.opts.ProjectLife)
	for year := 0; year < s.opts.ProjectLife; year++ {
		hubProfiles := make([][]float64, 0, len(hubs))
		for i := range hubs {
			hub := &hubs[i]
			rate := 0.0
			if b := hubBehaviour(hub); b != nil {
				rate = energy.GrowthRate(b.AnnualGrowthRates, year)
			}
			grown := energy.GrowDemand(hub.DemandProfile, rate, year)
			hubProfiles = append(hubProfiles, energy.CapDemand(grown, hub.ChargerCapacityProfile))
		}
		allYears = append(allYears, energy.SumProfiles(hubProfiles))
	}
	return s.forecasts.UpsertForecast(projectID, map[string]interface{}{
		"gross_energy_demand": model.FloatMatrix(allYears),
	})
}

// RunSolarConsumed stores min(solar, demand) per hour per year.
func (s *forecastService) RunSolarConsumed(projectID string) error {
	forecast, err := s.forecasts.GetForecast(projectID)
	if err != nil {
		return err
	}
	if forecast == nil || forecast.GeneratedSolarEnergy == nil || forecast.GrossEnergyDemand == nil {
		return nil
	}
	years := min(len(forecast.GeneratedSolarEnergy), len(forecast.GrossEnergyDemand))
	consumed := make([][]float64, years)
	for y := 0; y < years; y++ {
		consumed[y] = energy.Consumed(forecast.GeneratedSolarEnergy[y], forecast.GrossEnergyDemand[y])
	}
	return s.forecasts.UpsertForecast(projectID, map[string]interface{}{
		"generated_solar_energy_consumed": model.FloatMatrix(consumed),
	})
}

// RunSolarExcess stores max(solar - consumed, 0) per hour per year.
func (s *forecastService) RunSolarExcess(projectID string) error {
	forecast, err := s.forecasts.GetForecast(projectID)
	if err != nil {
		return err
	}
	if forecast == nil || forecast.GeneratedSolarEnergy == nil || forecast.GeneratedSolarEnergyConsumed == nil {
		return nil
	}
	years := min(len(forecast.GeneratedSolarEnergy), len(forecast.GeneratedSolarEnergyConsumed))
	excess := make([][]float64, years)
	for y := 0; y < years; y++ {
		excess[y] = energy.Excess(forecast.GeneratedSolarEnergy[y], forecast.GeneratedSolarEnergyConsumed[y])
	}
	return s.forecasts.UpsertForecast(projectID, map[string]interface{}{
		"generated_solar_energy_excess_post_consumption": model.FloatMatrix(excess),
	})
}

// RunDemandPostSolar stores demand - consumed per hour per year.
func (s *forecastService) RunDemandPostSolar(projectID string) error {
	forecast, err := s.forecasts.GetForecast(projectID)
	if err != nil {
		return err
	}
	if forecast == nil || forecast.GrossEnergyDemand == nil || forecast.GeneratedSolarEnergyConsumed == nil {
		return nil
	}
	postSolar := energy.SubMatrix(forecast.GrossEnergyDemand, forecast.GeneratedSolarEnergyConsumed)
	return s.forecasts.UpsertForecast(projectID, map[string]interface{}{
		"energy_demand_post_solar": model.FloatMatrix(postSolar),
	})
}

// RunBatteryForecast walks the hourly state-of-charge recurrence per year.
// A project without a storage config skips the stage entirely.
func (s *forecastService) RunBatteryForecast(projectID string) error {
	storage, err := s.projects.GetStorageConfig(projectID)
	if err != nil {
		return err
	}
	if storage == nil {
		return nil
	}
	forecast, err := s.forecasts.GetForecast(projectID)
	if err != nil {
		return err
	}
	if forecast == nil || forecast.GeneratedSolarEnergyExcessPostConsumption == nil || forecast.EnergyDemandPostSolar == nil {
		return nil
	}
	res := energy.SimulateBattery(
		forecast.GeneratedSolarEnergyExcessPostConsumption,
		forecast.EnergyDemandPostSolar,
		storage.CapacityKWh,
		storage.PowerKW,
		s.opts.ProjectLife,
	)
	return s.forecasts.UpsertForecast(projectID, map[string]interface{}{
		"battery_start_state_of_charge": model.FloatMatrix(res.StartSoC),
		"battery_charge_from_solar":     model.FloatMatrix(res.ChargeFromSolar),
		"battery_charge_from_grid":      model.FloatMatrix(res.ChargeFromGrid),
		"battery_discharge":             model.FloatMatrix(res.Discharge),
		"battery_end_state_of_charge":   model.FloatMatrix(res.EndSoC),
	})
}

// RunDemandPostSolarBattery stores post-solar demand minus battery discharge.
func (s *forecastService) RunDemandPostSolarBattery(projectID string) error {
	forecast, err := s.forecasts.GetForecast(projectID)
	if err != nil {
		return err
	}
	if forecast == nil || forecast.EnergyDemandPostSolar == nil || forecast.BatteryDischarge == nil {
		return nil
	}
	residual := energy.SubMatrix(forecast.EnergyDemandPostSolar, forecast.BatteryDischarge)
	return s.forecasts.UpsertForecast(projectID, map[string]interface{}{
		"energy_demand_post_solar_battery": model.FloatMatrix(residual),
	})
}

// RunGridImport caps the residual demand at the grid import limit. No grid
// config skips the stage.
func (s *forecastService) RunGridImport(projectID string) error {
	grid, err := s.projects.GetGridConfig(projectID)
	if err != nil {
		return err
	}
	if grid == nil {
		return nil
	}
	forecast, err := s.forecasts.GetForecast(projectID)
	if err != nil {
		return err
	}
	if forecast == nil || forecast.EnergyDemandPostSolarBattery == nil {
		return nil
	}
	imported := energy.ImportMatrix(forecast.EnergyDemandPostSolarBattery, grid.MaxImportKW)
	return s.forecasts.UpsertForecast(projectID, map[string]interface{}{
		"grid_import": model.FloatMatrix(imported),
	})
}

// RunDemandPostSolarBatteryGrid stores the residual unmet demand after grid
// import. The value is deliberately not clamped at zero: a negative
// residual signals a constraint violation upstream and should stay visible.
func (s *forecastService) RunDemandPostSolarBatteryGrid(projectID string) error {
	forecast, err := s.forecasts.GetForecast(projectID)
	if err != nil {
		return err
	}
	if forecast == nil || forecast.EnergyDemandPostSolarBattery == nil || forecast.GridImport == nil {
		return nil
	}
	residual := energy.SubMatrix(forecast.EnergyDemandPostSolarBattery, forecast.GridImport)
	return s.forecasts.UpsertForecast(projectID, map[string]interface{}{
		"energy_demand_post_solar_battery_grid": model.FloatMatrix(residual),
	})
}

// RunSolarExcessPostBattery stores the solar excess left after battery
// charging.
func (s *forecastService) RunSolarExcessPostBattery(projectID string) error {
	forecast, err := s.forecasts.GetForecast(projectID)
	if err != nil {
		return err
	}
	if forecast == nil || forecast.GeneratedSolarEnergyExcessPostConsumption == nil || forecast.BatteryChargeFromSolar == nil {
		return nil
	}
	residual := energy.SubMatrix(forecast.GeneratedSolarEnergyExcessPostConsumption, forecast.BatteryChargeFromSolar)
	return s.forecasts.UpsertForecast(projectID, map[string]interface{}{
		"generated_solar_energy_excess_post_consumption_battery": model.FloatMatrix(residual),
	})
}

// RunGridExport caps the remaining solar excess at the grid export limit.
// No grid config skips the stage.
func (s *forecastService) RunGridExport(projectID string) error {
	grid, err := s.projects.GetGridConfig(projectID)
	if err != nil {
		return err
	}
	if grid == nil {
		return nil
	}
	forecast, err := s.forecasts.GetForecast(projectID)
	if err != nil {
		return err
	}
	if forecast == nil || forecast.GeneratedSolarEnergyExcessPostConsumption == nil {
		return nil
	}
	exported := energy.ExportMatrix(forecast.GeneratedSolarEnergyExcessPostConsumption, grid.MaxExportKW)
	return s.forecasts.UpsertForecast(projectID, map[string]interface{}{
		"grid_export": model.FloatMatrix(exported),
	})
}

// RunEnergyFlows sums the six first-year energy flows.
func (s *forecastService) RunEnergyFlows(projectID string) error {
	forecast, err := s.forecasts.GetForecast(projectID)
	if err != nil {
		return err
	}
	if forecast == nil {
		return nil
	}
	flows := energy.CalculateFlows(energy.FlowInputs{
		SolarConsumed:    firstYear(forecast.GeneratedSolarEnergyConsumed),
		ChargeFromSolar:  firstYear(forecast.BatteryChargeFromSolar),
		GridExport:       firstYear(forecast.GridExport),
		BatteryDischarge: firstYear(forecast.BatteryDischarge),
		ChargeFromGrid:   firstYear(forecast.BatteryChargeFromGrid),
		GridImport:       firstYear(forecast.GridImport),
	})
	return s.forecasts.UpsertForecast(projectID, map[string]interface{}{
		"flow_solar_to_chargers":   flows.SolarToChargers,
		"flow_solar_to_battery":    flows.SolarToBattery,
		"flow_solar_to_grid":       flows.SolarToGrid,
		"flow_battery_to_chargers": flows.BatteryToChargers,
		"flow_grid_to_battery":     flows.GridToBattery,
		"flow_grid_to_chargers":    flows.GridToChargers,
	})
}

// RunDailyAverages computes the 24-point average-day battery charge and
// discharge profiles for the first year.
func (s *forecastService) RunDailyAverages(projectID string) error {
	forecast, err := s.forecasts.GetForecast(projectID)
	if err != nil {
		return err
	}
	if forecast == nil {
		return nil
	}
	fields := map[string]interface{}{}
	if forecast.BatteryChargeFromSolar != nil && forecast.BatteryChargeFromGrid != nil {
		charging := energy.DailyAverageCharging(firstYear(forecast.BatteryChargeFromSolar), firstYear(forecast.BatteryChargeFromGrid))
		if charging != nil {
			fields["daily_average_battery_charging"] = model.FloatArray(charging)
		}
	}
	if forecast.BatteryDischarge != nil {
		discharging := energy.DailyAverageDischarging(firstYear(forecast.BatteryDischarge))
		if discharging != nil {
			fields["daily_average_battery_discharging"] = model.FloatArray(discharging)
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return s.forecasts.UpsertForecast(projectID, fields)
}

// pipelineStage pairs a stage name with its operation for ordered execution.
type pipelineStage struct {
	name string
	run  func(projectID string) error
}

func (s *forecastService) stages() []pipelineStage {
	return []pipelineStage{
		{"solar_profile", s.RunSolarProfile},
		{"charging_demand", s.RunChargingDemand},
		{"capacity_profiles", s.RunCapacityProfiles},
		{"demand_daily_totals", s.RunDemandDailyTotals},
		{"demand_monthly_totals", s.RunDemandMonthlyTotals},
		{"solar_forecast", s.RunSolarForecast},
		{"gross_demand", s.RunGrossDemand},
		{"solar_consumed", s.RunSolarConsumed},
		{"solar_excess", s.RunSolarExcess},
		{"demand_post_solar", s.RunDemandPostSolar},
		{"battery_forecast", s.RunBatteryForecast},
		{"demand_post_solar_battery", s.RunDemandPostSolarBattery},
		{"grid_import", s.RunGridImport},
		{"demand_post_solar_battery_grid", s.RunDemandPostSolarBatteryGrid},
		{"solar_excess_post_battery", s.RunSolarExcessPostBattery},
		{"grid_export", s.RunGridExport},
		{"energy_flows", s.RunEnergyFlows},
		{"daily_averages", s.RunDailyAverages},
	}
}

// RunEnergyAnalysis executes the full pipeline in dependency order under a
// per-project lock. The first failing stage stops the run; earlier stages'
// persisted output stays in place.
func (s *forecastService) RunEnergyAnalysis(projectID string) error {
	lock := s.projectLock(projectID)
	lock.Lock()
	defer lock.Unlock()

	started := time.Now()
	for _, stage := range s.stages() {
		stageStart := time.Now()
		err := stage.run(projectID)
		s.metrics.ObserveStage(stage.name, time.Since(stageStart), err)
		if err != nil {
			s.logger.Error("pipeline stage failed",
				"project_id", projectID,
				"stage", stage.name,
				"error", err.Error(),
			)
			return err
		}
	}
	s.logger.Info("energy analysis completed",
		"project_id", projectID,
		"latency_ms", time.Since(started).Milliseconds(),
	)
	return nil
}

// hubBehaviour resolves a hub's behaviour record, nil when the hub has no
// linked profile or the profile has no behaviour.
func hubBehaviour(hub *model.ChargingHub) *model.ChargingProfileBehaviour {
	if hub.ChargingProfileID == nil || hub.ChargingProfile == nil {
		return nil
	}
	return hub.ChargingProfile.Behaviour
}

// firstYear returns the year-0 array of a matrix, or an empty slice.
func firstYear(m model.FloatMatrix) []float64 {
	if len(m) == 0 {
		return nil
	}
	return m[0]
}
