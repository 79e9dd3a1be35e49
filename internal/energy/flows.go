package energy

import "gonum.org/v1/gonum/floats"

// Flows are the first-year aggregate energy quantities between system nodes.
type Flows struct {
	SolarToChargers   float64 `json:"flow_solar_to_chargers"`
	SolarToBattery    float64 `json:"flow_solar_to_battery"`
	SolarToGrid       float64 `json:"flow_solar_to_grid"`
	BatteryToChargers float64 `json:"flow_battery_to_chargers"`
	GridToBattery     float64 `json:"flow_grid_to_battery"`
	GridToChargers    float64 `json:"flow_grid_to_chargers"`
}

// FlowInputs are the first-year hourly arrays the flow totals sum over.
type FlowInputs struct {
	SolarConsumed    []float64
	ChargeFromSolar  []float64
	GridExport       []float64
	BatteryDischarge []float64
	ChargeFromGrid   []float64
	GridImport       []float64
}

// CalculateFlows sums each first-year array into its named flow.
func CalculateFlows(in FlowInputs) Flows {
	return Flows{
		SolarToChargers:   floats.Sum(in.SolarConsumed),
		SolarToBattery:    floats.Sum(in.ChargeFromSolar),
		SolarToGrid:       floats.Sum(in.GridExport),
		BatteryToChargers: floats.Sum(in.BatteryDischarge),
		GridToBattery:     floats.Sum(in.ChargeFromGrid),
		GridToChargers:    floats.Sum(in.GridImport),
	}
}
