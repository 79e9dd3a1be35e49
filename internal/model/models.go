package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project is the root entity; all configuration and derived data hangs off it.
type Project struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	Name        string `gorm:"not null;size:255" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	// Relationships
	GenerationConfig *GenerationConfig `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"generation_config,omitempty"`
	StorageConfig    *StorageConfig    `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"storage_config,omitempty"`
	GridConfig       *GridConfig       `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"grid_config,omitempty"`
	ChargingHubs     []ChargingHub     `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"charging_hubs,omitempty"`
	ChargingProfiles []ChargingProfile `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"charging_profiles,omitempty"`
	CostEntries      []CostEntry       `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"cost_entries,omitempty"`
}

// TableName specifies the table name for Project
func (Project) TableName() string {
	return "projects"
}

// BeforeCreate assigns a UUID primary key
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// GenerationConfig holds the solar array parameters and the derived
// generation profile. One record per project.
type GenerationConfig struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectID         string  `gorm:"not null;uniqueIndex" json:"project_id"`
	SystemSizeKWp     float64 `gorm:"column:system_size_kwp;not null" json:"system_size_kwp"`
	PanelType         string  `gorm:"size:50" json:"panel_type"` // monocrystalline | polycrystalline | thin-film
	Orientation       string  `gorm:"size:2;not null" json:"orientation"`
	Tilt              float64 `gorm:"not null" json:"tilt"`
	SystemLosses      float64 `json:"system_losses"`      // percent
	AnnualDegradation float64 `json:"annual_degradation"` // percent per year

	// Derived by the solar profile resolver
	GenerationProfileKWh FloatArray `gorm:"column:generation_profile_kwh;type:jsonb" json:"generation_profile_kwh,omitempty"`
	MonthlyTotals        FloatArray `gorm:"type:jsonb" json:"monthly_totals,omitempty"`
	HourlyAverages       FloatArray `gorm:"type:jsonb" json:"hourly_averages,omitempty"`
	SolarYield           float64    `json:"solar_yield"`
}

// TableName specifies the table name for GenerationConfig
func (GenerationConfig) TableName() string {
	return "generation_configs"
}

// BeforeCreate assigns a UUID primary key
func (g *GenerationConfig) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

// StorageConfig describes the project battery. Absent record means no battery.
// DepthOfDischarge and RoundTripEfficiency are captured from the form but are
// not consumed by the battery walk; see the forecasting service.
type StorageConfig struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectID           string   `gorm:"not null;uniqueIndex" json:"project_id"`
	CapacityKWh         float64  `gorm:"column:capacity_kwh;not null" json:"capacity_kwh"`
	PowerKW             float64  `gorm:"not null" json:"power_kw"`
	BatteryChemistry    string   `gorm:"size:50" json:"battery_chemistry"`
	DepthOfDischarge    float64  `json:"depth_of_discharge"`
	RoundTripEfficiency float64  `json:"round_trip_efficiency"`
	AnnualDegradation   float64  `json:"annual_degradation"`
	DischargeBehaviour  string   `gorm:"size:50" json:"discharge_behaviour"` // 'Arbitrage Maximisation' | 'Set Discharge Time'
	DischargeTime       *float64 `json:"discharge_time,omitempty"`           // hour of day, only for Set Discharge Time
}

// TableName specifies the table name for StorageConfig
func (StorageConfig) TableName() string {
	return "storage_configs"
}

// BeforeCreate assigns a UUID primary key
func (s *StorageConfig) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// GridConfig holds the connection limits. Absent record means no grid stage.
type GridConfig struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectID   string  `gorm:"not null;uniqueIndex" json:"project_id"`
	MaxImportKW float64 `gorm:"not null" json:"max_import_kw"`
	MaxExportKW float64 `gorm:"not null" json:"max_export_kw"`
}

// TableName specifies the table name for GridConfig
func (GridConfig) TableName() string {
	return "grid_configs"
}

// BeforeCreate assigns a UUID primary key
func (g *GridConfig) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

// ChargingHub is a physical cluster of chargers. A hub without a linked
// charging profile contributes zero demand.
type ChargingHub struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	ProjectID         string  `gorm:"not null;index" json:"project_id"`
	HubName           string  `gorm:"not null;size:255" json:"hub_name"`
	ChargerPower      float64 `gorm:"not null" json:"charger_power"` // kW per charger
	NumberOfChargers  int     `gorm:"not null" json:"number_of_chargers"`
	Priority          int     `json:"priority"`
	ChargingProfileID *string `gorm:"size:36;index" json:"charging_profile_id,omitempty"`
	SalesTariffID     *string `gorm:"size:36" json:"sales_tariff_id,omitempty"`

	// Derived by the demand/capacity stages
	DemandProfile                     FloatArray `gorm:"type:jsonb" json:"demand_profile,omitempty"`
	DemandProfileDailyTotals          FloatArray `gorm:"type:jsonb" json:"demand_profile_daily_totals,omitempty"`
	DemandProfileMonthlyTotals        FloatArray `gorm:"type:jsonb" json:"demand_profile_monthly_totals,omitempty"`
	DemandProfileAnnualDemand         float64    `json:"demand_profile_annual_demand"`
	ChargerCapacityProfile            FloatArray `gorm:"type:jsonb" json:"charger_capacity_profile,omitempty"`
	ChargerCapacityProfileDailyTotals FloatArray `gorm:"type:jsonb" json:"charger_capacity_profile_daily_totals,omitempty"`

	// Relationships
	ChargingProfile *ChargingProfile `gorm:"foreignKey:ChargingProfileID" json:"charging_profile,omitempty"`
}

// TableName specifies the table name for ChargingHub
func (ChargingHub) TableName() string {
	return "charging_hubs"
}

// BeforeCreate assigns a UUID primary key
func (h *ChargingHub) BeforeCreate(tx *gorm.DB) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	return nil
}

// Capacity returns the hub's constant hourly charging capacity in kW.
func (h *ChargingHub) Capacity() float64 {
	return h.ChargerPower * float64(h.NumberOfChargers)
}

// ChargingProfile describes a fleet's charging population. The total annual
// energy it implies is vehicles * charge% * battery size.
type ChargingProfile struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	ProjectID                 string  `gorm:"not null;index" json:"project_id"`
	ProfileName               string  `gorm:"not null;size:255" json:"profile_name"`
	InitialNumberOfVehicles   float64 `json:"initial_number_of_vehicles"`
	AverageChargingPercentage float64 `json:"average_charging_percentage"` // percent
	AverageBatterySize        float64 `json:"average_battery_size"`        // kWh

	// Relationships
	Behaviour *ChargingProfileBehaviour `gorm:"foreignKey:ChargingProfileID;constraint:OnDelete:CASCADE" json:"behaviour,omitempty"`
}

// TableName specifies the table name for ChargingProfile
func (ChargingProfile) TableName() string {
	return "charging_profiles"
}

// BeforeCreate assigns a UUID primary key
func (p *ChargingProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// ChargingProfileBehaviour holds the compact behavioural shape that the
// demand synthesizer expands into a full year: 24 weekday hours, 24 weekend
// hours, 12 monthly totals, plus annual growth rates (cumulative percent vs
// year 1, index 0 = baseline 0).
type ChargingProfileBehaviour struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ChargingProfileID   string     `gorm:"not null;uniqueIndex" json:"charging_profile_id"`
	WeekdayHourlyData   FloatArray `gorm:"type:jsonb" json:"weekday_hourly_data"`
	WeekendHourlyData   FloatArray `gorm:"type:jsonb" json:"weekend_hourly_data"`
	MonthlyData         FloatArray `gorm:"type:jsonb" json:"monthly_data"`
	WeekdayWeekendScale float64    `json:"weekday_weekend_scale"` // percent, positive = busier weekends
	SelectedProfile     string     `gorm:"size:100" json:"selected_profile"`
	AnnualGrowthRates   FloatArray `gorm:"type:jsonb" json:"annual_growth_rates"`
}

// TableName specifies the table name for ChargingProfileBehaviour
func (ChargingProfileBehaviour) TableName() string {
	return "charging_profile_behaviours"
}

// BeforeCreate assigns a UUID primary key
func (b *ChargingProfileBehaviour) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// EnergyForecast is the per-project derived artifact. Every column is owned
// and overwritten by the forecasting pipeline; there is no edit path.
// Matrix columns are year-indexed arrays of hourly arrays.
type EnergyForecast struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ProjectID string `gorm:"not null;uniqueIndex" json:"project_id"`

	GeneratedSolarEnergy                             FloatMatrix `gorm:"type:jsonb" json:"generated_solar_energy,omitempty"`
	GrossEnergyDemand                                FloatMatrix `gorm:"type:jsonb" json:"gross_energy_demand,omitempty"`
	GeneratedSolarEnergyConsumed                     FloatMatrix `gorm:"type:jsonb" json:"generated_solar_energy_consumed,omitempty"`
	GeneratedSolarEnergyExcessPostConsumption        FloatMatrix `gorm:"type:jsonb" json:"generated_solar_energy_excess_post_consumption,omitempty"`
	EnergyDemandPostSolar                            FloatMatrix `gorm:"type:jsonb" json:"energy_demand_post_solar,omitempty"`
	BatteryStartStateOfCharge                        FloatMatrix `gorm:"type:jsonb" json:"battery_start_state_of_charge,omitempty"`
	BatteryChargeFromSolar                           FloatMatrix `gorm:"type:jsonb" json:"battery_charge_from_solar,omitempty"`
	BatteryChargeFromGrid                            FloatMatrix `gorm:"type:jsonb" json:"battery_charge_from_grid,omitempty"`
	BatteryDischarge                                 FloatMatrix `gorm:"type:jsonb" json:"battery_discharge,omitempty"`
	BatteryEndStateOfCharge                          FloatMatrix `gorm:"type:jsonb" json:"battery_end_state_of_charge,omitempty"`
	EnergyDemandPostSolarBattery                     FloatMatrix `gorm:"type:jsonb" json:"energy_demand_post_solar_battery,omitempty"`
	GridImport                                       FloatMatrix `gorm:"type:jsonb" json:"grid_import,omitempty"`
	EnergyDemandPostSolarBatteryGrid                 FloatMatrix `gorm:"type:jsonb" json:"energy_demand_post_solar_battery_grid,omitempty"`
	GeneratedSolarEnergyExcessPostConsumptionBattery FloatMatrix `gorm:"type:jsonb" json:"generated_solar_energy_excess_post_consumption_battery,omitempty"`
	GridExport                                       FloatMatrix `gorm:"type:jsonb" json:"grid_export,omitempty"`

	// First-year flow totals
	FlowSolarToChargers   float64 `json:"flow_solar_to_chargers"`
	FlowSolarToBattery    float64 `json:"flow_solar_to_battery"`
	FlowSolarToGrid       float64 `json:"flow_solar_to_grid"`
	FlowBatteryToChargers float64 `json:"flow_battery_to_chargers"`
	FlowGridToBattery     float64 `json:"flow_grid_to_battery"`
	FlowGridToChargers    float64 `json:"flow_grid_to_chargers"`

	// First-year average day profiles (24 points; charging negated)
	DailyAverageBatteryCharging    FloatArray `gorm:"type:jsonb" json:"daily_average_battery_charging,omitempty"`
	DailyAverageBatteryDischarging FloatArray `gorm:"type:jsonb" json:"daily_average_battery_discharging,omitempty"`
}

// TableName specifies the table name for EnergyForecast
func (EnergyForecast) TableName() string {
	return "energy_forecasts"
}

// BeforeCreate assigns a UUID primary key
func (f *EnergyForecast) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// CostEntry is configuration consumed by downstream financial analysis; the
// energy pipeline never reads it.
type CostEntry struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	ProjectID      string   `gorm:"not null;index" json:"project_id"`
	CostName       string   `gorm:"not null;size:255" json:"cost_name"`
	CostType       string   `gorm:"not null;size:10" json:"cost_type"` // Capex | Opex
	CostSubtype    string   `gorm:"size:100" json:"cost_subtype"`
	ChargerHubID   *string  `gorm:"size:36" json:"charger_hub_id,omitempty"`
	Cost           float64  `gorm:"not null" json:"cost"`
	CostEscalation *float64 `json:"cost_escalation,omitempty"` // annual % increase, Opex only
}

// TableName specifies the table name for CostEntry
func (CostEntry) TableName() string {
	return "cost_entries"
}

// BeforeCreate assigns a UUID primary key
func (c *CostEntry) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
