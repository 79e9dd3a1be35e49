package repository

import (
	"fmt"
	"math"

	"ev-energy-analytics/internal/model"

	"gorm.io/gorm"
)

// SeedRepository handles database seeding operations
type SeedRepository struct {
	db *gorm.DB
}

// NewSeedRepository creates a new seed repository
func NewSeedRepository(db *gorm.DB) *SeedRepository {
	return &SeedRepository{db: db}
}

// SeedDatabase seeds a demo project with a solar array, battery, grid
// connection, a fleet charging profile, and two charging hubs, ready for an
// analysis run.
func (s *SeedRepository) SeedDatabase() error {
	if err := s.clearExistingData(); err != nil {
		return fmt.Errorf("failed to clear existing data: %w", err)
	}

	project, err := s.createProject()
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	if err := s.createConfigs(project); err != nil {
		return fmt.Errorf("failed to create configs: %w", err)
	}

	profile, err := s.createChargingProfile(project)
	if err != nil {
		return fmt.Errorf("failed to create charging profile: %w", err)
	}

	hubs, err := s.createHubs(project, profile)
	if err != nil {
		return fmt.Errorf("failed to create hubs: %w", err)
	}

	fmt.Printf("✓ Seeded database successfully:\n")
	fmt.Printf("  - Project: %s\n", project.Name)
	fmt.Printf("  - Charging hubs: %d\n", len(hubs))

	return nil
}

// clearExistingData removes existing data
func (s *SeedRepository) clearExistingData() error {
	tables := []string{
		"energy_forecasts",
		"cost_entries",
		"charging_hubs",
		"charging_profile_behaviours",
		"charging_profiles",
		"grid_configs",
		"storage_configs",
		"generation_configs",
		"projects",
	}
	for _, table := range tables {
		if err := s.db.Exec("TRUNCATE TABLE " + table + " CASCADE").Error; err != nil {
			return err
		}
	}
	return nil
}

// createProject creates the demo project
func (s *SeedRepository) createProject() (*model.Project, error) {
	project := &model.Project{
		Name:        "Riverside Depot",
		Description: "Demo depot with rooftop solar, on-site battery and two charging hubs",
	}
	if err := s.db.Create(project).Error; err != nil {
		return nil, err
	}
	return project, nil
}

// createConfigs creates the generation, storage and grid configs
func (s *SeedRepository) createConfigs(project *model.Project) error {
	generation := &model.GenerationConfig{
		ProjectID:         project.ID,
		SystemSizeKWp:     250,
		PanelType:         "monocrystalline",
		Orientation:       "S",
		Tilt:              30,
		SystemLosses:      14,
		AnnualDegradation: 0.5,
	}
	if err := s.db.Create(generation).Error; err != nil {
		return err
	}

	storage := &model.StorageConfig{
		ProjectID:           project.ID,
		CapacityKWh:         500,
		PowerKW:             250,
		BatteryChemistry:    "LiFePO4",
		DepthOfDischarge:    90,
		RoundTripEfficiency: 92,
		AnnualDegradation:   2,
		DischargeBehaviour:  "Arbitrage Maximisation",
	}
	if err := s.db.Create(storage).Error; err != nil {
		return err
	}

	grid := &model.GridConfig{
		ProjectID:   project.ID,
		MaxImportKW: 1000,
		MaxExportKW: 500,
	}
	return s.db.Create(grid).Error
}

// createChargingProfile creates a fleet profile with an evening-peaked
// behaviour shape
func (s *SeedRepository) createChargingProfile(project *model.Project) (*model.ChargingProfile, error) {
	profile := &model.ChargingProfile{
		ProjectID:                 project.ID,
		ProfileName:               "Delivery Fleet",
		InitialNumberOfVehicles:   120,
		AverageChargingPercentage: 60,
		AverageBatterySize:        75,
	}
	if err := s.db.Create(profile).Error; err != nil {
		return nil, err
	}

	total := profile.InitialNumberOfVehicles * profile.AverageChargingPercentage / 100 * profile.AverageBatterySize

	// Evening-peaked hourly shapes, flatter on weekends
	weekday := make([]float64, 24)
	weekend := make([]float64, 24)
	for h := 0; h < 24; h++ {
		weekday[h] = 1 + 3*math.Exp(-math.Pow(float64(h)-19, 2)/8)
		weekend[h] = 1 + 1.5*math.Exp(-math.Pow(float64(h)-14, 2)/18)
	}

	monthly := make([]float64, 12)
	for m := range monthly {
		monthly[m] = total / 12
	}

	behaviour := &model.ChargingProfileBehaviour{
		ChargingProfileID:   profile.ID,
		WeekdayHourlyData:   weekday,
		WeekendHourlyData:   weekend,
		MonthlyData:         monthly,
		WeekdayWeekendScale: -20,
		SelectedProfile:     "default",
		AnnualGrowthRates:   []float64{0, 10, 20},
	}
	if err := s.db.Create(behaviour).Error; err != nil {
		return nil, err
	}
	profile.Behaviour = behaviour
	return profile, nil
}

// createHubs creates two charging hubs linked to the fleet profile
func (s *SeedRepository) createHubs(project *model.Project, profile *model.ChargingProfile) ([]model.ChargingHub, error) {
	hubs := []model.ChargingHub{
		{
			ProjectID:         project.ID,
			HubName:           "North Yard",
			ChargerPower:      50,
			NumberOfChargers:  12,
			Priority:          1,
			ChargingProfileID: &profile.ID,
		},
		{
			ProjectID:         project.ID,
			HubName:           "South Yard",
			ChargerPower:      22,
			NumberOfChargers:  20,
			Priority:          2,
			ChargingProfileID: &profile.ID,
		},
	}
	if err := s.db.Create(&hubs).Error; err != nil {
		return nil, err
	}
	return hubs, nil
}
