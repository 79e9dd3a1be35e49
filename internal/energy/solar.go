package energy

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ScaleProfile converts a raw per-kWp reference curve (Wh) into the
// installed-system generation profile (kWh), applying system losses.
// The /1000 is the Wh -> kWh conversion of the reference dataset.
func ScaleProfile(raw []float64, systemSizeKWp, systemLossesPct float64) []float64 {
	lossFactor := 1 - systemLossesPct/100
	out := make([]float64, len(raw))
	for i, v := range raw {
		out[i] = v * systemSizeKWp / 1000 * lossFactor
	}
	return out
}

// MonthlyTotals sums an hourly profile per calendar month using the
// non-leap day-count table.
func MonthlyTotals(profile []float64) []float64 {
	totals := make([]float64, MonthsPerYear)
	idx := 0
	for m := 0; m < MonthsPerYear; m++ {
		hours := MonthDays(m) * HoursPerDay
		end := idx + hours
		if end > len(profile) {
			end = len(profile)
		}
		if idx < end {
			totals[m] = floats.Sum(profile[idx:end])
		}
		idx += hours
	}
	return totals
}

// HourlyAverages returns the mean value for each hour of the day across
// all days in the profile.
func HourlyAverages(profile []float64) []float64 {
	buckets := make([][]float64, HoursPerDay)
	for i, v := range profile {
		h := i % HoursPerDay
		buckets[h] = append(buckets[h], v)
	}
	avg := make([]float64, HoursPerDay)
	for h, b := range buckets {
		if len(b) > 0 {
			avg[h] = stat.Mean(b, nil)
		}
	}
	return avg
}

// SolarYield is the total annual generation per installed kWp.
func SolarYield(profile []float64, systemSizeKWp float64) float64 {
	if systemSizeKWp == 0 {
		return 0
	}
	return floats.Sum(profile) / systemSizeKWp
}
