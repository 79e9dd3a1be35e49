package energy

import "math"

// ExtrapolateSolar projects a base generation profile across the project
// horizon. Year 0 is the base profile; every following year multiplies the
// previous year elementwise by (1 - degradation/100), compounding.
func ExtrapolateSolar(base []float64, annualDegradationPct float64, years int) [][]float64 {
	factor := 1 - annualDegradationPct/100
	current := append([]float64(nil), base...)
	all := make([][]float64, 0, years)
	for year := 0; year < years; year++ {
		if year > 0 {
			next := make([]float64, len(current))
			for i, v := range current {
				next[i] = v * factor
			}
			current = next
		}
		all = append(all, append([]float64(nil), current...))
	}
	return all
}

// GrowthRate picks the applicable growth rate for a year, clamping to the
// last stored entry when the horizon outruns the array. Empty rates mean
// zero growth.
func GrowthRate(rates []float64, year int) float64 {
	if len(rates) == 0 {
		return 0
	}
	idx := year
	if idx > len(rates)-1 {
		idx = len(rates) - 1
	}
	return rates[idx]
}

// GrowDemand scales a demand profile by (1 + rate/100)^year.
//
// The stored rates are described as cumulative percentages per year index,
// so raising them to the power of the year compounds an already-cumulative
// figure. That is what the shipped behaviour does and callers rely on the
// resulting numbers; flagged for product review rather than changed here.
func GrowDemand(profile []float64, ratePct float64, year int) []float64 {
	multiplier := math.Pow(1+ratePct/100, float64(year))
	out := make([]float64, len(profile))
	for i, v := range profile {
		out[i] = v * multiplier
	}
	return out
}

// CapDemand clamps each hour's demand at the hub's charger capacity.
// A missing capacity entry caps to zero.
func CapDemand(demand, capacity []float64) []float64 {
	out := make([]float64, len(demand))
	for i, v := range demand {
		c := 0.0
		if i < len(capacity) {
			c = capacity[i]
		}
		out[i] = math.Min(v, c)
	}
	return out
}

// SumProfiles aggregates per-hub profiles into one total per interval.
// The interval count follows the first profile, matching the reference.
func SumProfiles(profiles [][]float64) []float64 {
	if len(profiles) == 0 {
		return nil
	}
	intervals := len(profiles[0])
	total := make([]float64, intervals)
	for i := 0; i < intervals; i++ {
		for _, p := range profiles {
			if i < len(p) {
				total[i] += p[i]
			}
		}
	}
	return total
}
