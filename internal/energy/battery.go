package energy

import "math"

// BatteryYear holds one simulated year of battery state, hour by hour.
type BatteryYear struct {
	StartSoC        []float64
	ChargeFromSolar []float64
	ChargeFromGrid  []float64
	Discharge       []float64
	EndSoC          []float64
}

// batteryState is the accumulator carried across the hourly walk.
type batteryState struct {
	endSoC float64
}

// SimulateBatteryYear walks one year's hours maintaining state of charge.
// The year starts at SoC 0; charge across year boundaries is not carried
// (a deliberate property of the model, not an oversight).
//
// Per hour: charge from solar excess bounded by the charge-rate limit and
// remaining headroom; charge from grid is a stubbed extension point (always
// zero); discharge to meet post-solar demand bounded by the discharge-rate
// limit and the charge available after this hour's charging. Round-trip
// efficiency and depth-of-discharge are intentionally not applied.
func SimulateBatteryYear(solarExcess, postSolarDemand []float64, capacityKWh, powerKW float64) BatteryYear {
	intervals := min(len(solarExcess), len(postSolarDemand))
	year := BatteryYear{
		StartSoC:        make([]float64, intervals),
		ChargeFromSolar: make([]float64, intervals),
		ChargeFromGrid:  make([]float64, intervals),
		Discharge:       make([]float64, intervals),
		EndSoC:          make([]float64, intervals),
	}

	state := batteryState{endSoC: 0}
	for i := 0; i < intervals; i++ {
		startSoC := state.endSoC

		headroom := capacityKWh - startSoC
		chargeFromSolar := math.Max(0, math.Min(solarExcess[i], math.Min(powerKW, headroom)))
		chargeFromGrid := 0.0

		available := startSoC + chargeFromSolar + chargeFromGrid
		discharge := math.Max(0, math.Min(powerKW, math.Min(postSolarDemand[i], available)))

		endSoC := startSoC + chargeFromSolar + chargeFromGrid - discharge
		endSoC = math.Max(0, math.Min(capacityKWh, endSoC))

		year.StartSoC[i] = startSoC
		year.ChargeFromSolar[i] = chargeFromSolar
		year.ChargeFromGrid[i] = chargeFromGrid
		year.Discharge[i] = discharge
		year.EndSoC[i] = endSoC

		state.endSoC = endSoC
	}
	return year
}

// BatteryResult collects the simulated battery arrays for all years.
type BatteryResult struct {
	StartSoC        [][]float64
	ChargeFromSolar [][]float64
	ChargeFromGrid  [][]float64
	Discharge       [][]float64
	EndSoC          [][]float64
}

// SimulateBattery runs the yearly walk for up to maxYears, bounded by the
// shorter of the two input matrices.
func SimulateBattery(solarExcess, postSolarDemand [][]float64, capacityKWh, powerKW float64, maxYears int) BatteryResult {
	years := min(min(len(solarExcess), len(postSolarDemand)), maxYears)
	res := BatteryResult{
		StartSoC:        make([][]float64, 0, years),
		ChargeFromSolar: make([][]float64, 0, years),
		ChargeFromGrid:  make([][]float64, 0, years),
		Discharge:       make([][]float64, 0, years),
		EndSoC:          make([][]float64, 0, years),
	}
	for y := 0; y < years; y++ {
		yr := SimulateBatteryYear(solarExcess[y], postSolarDemand[y], capacityKWh, powerKW)
		res.StartSoC = append(res.StartSoC, yr.StartSoC)
		res.ChargeFromSolar = append(res.ChargeFromSolar, yr.ChargeFromSolar)
		res.ChargeFromGrid = append(res.ChargeFromGrid, yr.ChargeFromGrid)
		res.Discharge = append(res.Discharge, yr.Discharge)
		res.EndSoC = append(res.EndSoC, yr.EndSoC)
	}
	return res
}
