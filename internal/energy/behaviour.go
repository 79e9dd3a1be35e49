package energy

const (
	weekdaysPerWeek = 5
	weekendsPerWeek = 2
)

// WeekdayWeekendAllocation splits an annual consumption volume into average
// daily weekday and weekend consumption. scale is a percentage: 0 allocates
// equally, positive values shift volume toward weekends. A non-positive
// total yields zero for both.
func WeekdayWeekendAllocation(totalAnnualKWh, scale float64) (weekdayDaily, weekendDaily float64) {
	if totalAnnualKWh <= 0 {
		return 0, 0
	}
	weekdayDaily = totalAnnualKWh /
		(float64(DaysPerYear)*weekdaysPerWeek/7 + (1+scale/100)*float64(DaysPerYear)*weekendsPerWeek/7)
	weekendDaily = weekdayDaily * (1 + scale/100)
	return weekdayDaily, weekendDaily
}

// CalibrateTo rescales values proportionally so they sum to target. The
// shape of the input is preserved. An all-zero input has no shape to scale
// and is returned as-is.
func CalibrateTo(values []float64, target float64) []float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	out := make([]float64, len(values))
	copy(out, values)
	if sum == 0 {
		return out
	}
	for i := range out {
		out[i] = out[i] / sum * target
	}
	return out
}

// FlatProfile spreads total evenly across n points.
func FlatProfile(n int, total float64) []float64 {
	out := make([]float64, n)
	if n == 0 || total <= 0 {
		return out
	}
	per := total / float64(n)
	for i := range out {
		out[i] = per
	}
	return out
}
