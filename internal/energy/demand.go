package energy

import "gonum.org/v1/gonum/floats"

// isWeekend reports whether the absolute hour index falls on a weekend day.
// Day 0 is a fixed reference weekday with no calendar alignment; days 5 and
// 6 of each 7-day cycle count as weekend. Downstream data depends on this
// exact rule, so it must not be "corrected" to real calendar weekdays.
func isWeekend(hourIdx int) bool {
	dayOfWeek := (hourIdx / HoursPerDay) % 7
	return dayOfWeek == 5 || dayOfWeek == 6
}

// SynthesizeDemand expands a behavioural shape (24 weekday hours, 24 weekend
// hours, 12 monthly totals) into a full 8760-hour demand profile.
//
// For each month a base sequence is built by picking the weekday or weekend
// hourly value for every hour, then the whole month is rescaled so its sum
// equals the monthly target. A zero-sum base month stays all-zero regardless
// of the target.
//
// Malformed inputs (wrong lengths) produce an all-zero profile rather than
// an error: missing behaviour data is the dominant, non-fatal case.
func SynthesizeDemand(weekdayHourly, weekendHourly, monthly []float64) []float64 {
	if len(weekdayHourly) != HoursPerDay || len(weekendHourly) != HoursPerDay || len(monthly) != MonthsPerYear {
		return ZeroProfile()
	}
	profile := make([]float64, 0, HoursPerYear)
	hourIdx := 0
	for m := 0; m < MonthsPerYear; m++ {
		hoursInMonth := MonthDays(m) * HoursPerDay
		base := make([]float64, hoursInMonth)
		for h := 0; h < hoursInMonth; h++ {
			absHour := hourIdx + h
			hourOfDay := absHour % HoursPerDay
			if isWeekend(absHour) {
				base[h] = weekendHourly[hourOfDay]
			} else {
				base[h] = weekdayHourly[hourOfDay]
			}
		}
		baseSum := floats.Sum(base)
		if baseSum == 0 {
			baseSum = 1 // zero base scales to zero either way
		}
		scaling := monthly[m] / baseSum
		for h := 0; h < hoursInMonth; h++ {
			profile = append(profile, base[h]*scaling)
		}
		hourIdx += hoursInMonth
	}
	return profile
}

// AnnualDemand is the sum of an hourly demand profile.
func AnnualDemand(profile []float64) float64 {
	return floats.Sum(profile)
}

// DailyTotals reduces an hourly profile into 365 contiguous 24-hour sums.
func DailyTotals(profile []float64) []float64 {
	totals := make([]float64, DaysPerYear)
	for d := 0; d < DaysPerYear; d++ {
		start := d * HoursPerDay
		end := start + HoursPerDay
		if start >= len(profile) {
			break
		}
		if end > len(profile) {
			end = len(profile)
		}
		totals[d] = floats.Sum(profile[start:end])
	}
	return totals
}

// MonthlyFromDaily reduces 365 daily totals into 12 calendar-month sums.
func MonthlyFromDaily(daily []float64) []float64 {
	totals := make([]float64, MonthsPerYear)
	idx := 0
	for m := 0; m < MonthsPerYear; m++ {
		days := MonthDays(m)
		end := idx + days
		if end > len(daily) {
			end = len(daily)
		}
		if idx < end {
			totals[m] = floats.Sum(daily[idx:end])
		}
		idx += days
	}
	return totals
}
