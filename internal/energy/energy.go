// Package energy implements the hourly energy-balance calculations behind
// the forecasting pipeline: demand synthesis, multi-year extrapolation,
// solar/demand balancing, the battery state-of-charge walk and grid
// import/export resolution. Everything here is pure; persistence and
// orchestration live in the service layer.
package energy

// Interval conventions shared by every stage. Profiles are hourly over a
// non-leap year.
const (
	HoursPerDay   = 24
	DaysPerYear   = 365
	HoursPerYear  = HoursPerDay * DaysPerYear // 8760
	MonthsPerYear = 12
)

// monthDays is the non-leap day-count table used by every monthly rollup.
var monthDays = [MonthsPerYear]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// MonthDays returns the number of days in the given calendar month (0-11).
func MonthDays(month int) int {
	return monthDays[month]
}

// ZeroProfile returns an all-zero hourly profile for one year.
func ZeroProfile() []float64 {
	return make([]float64, HoursPerYear)
}
