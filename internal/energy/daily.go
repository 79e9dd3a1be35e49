package energy

// DailyAverageCharging returns the 24-point average-day battery charging
// profile for one year: per hour of day, the mean of solar plus grid charge
// across all whole days, negated so charging plots below the axis.
// A partial trailing day is truncated. Returns nil when the year holds no
// whole day.
func DailyAverageCharging(chargeFromSolar, chargeFromGrid []float64) []float64 {
	days := len(chargeFromSolar) / HoursPerDay
	if days == 0 {
		return nil
	}
	avg := make([]float64, HoursPerDay)
	for h := 0; h < HoursPerDay; h++ {
		sum := 0.0
		for d := 0; d < days; d++ {
			i := d*HoursPerDay + h
			sum += chargeFromSolar[i]
			if i < len(chargeFromGrid) {
				sum += chargeFromGrid[i]
			}
		}
		avg[h] = -(sum / float64(days))
	}
	return avg
}

// DailyAverageDischarging returns the 24-point average-day battery discharge
// profile for one year, positive sign, truncated to whole days.
func DailyAverageDischarging(discharge []float64) []float64 {
	days := len(discharge) / HoursPerDay
	if days == 0 {
		return nil
	}
	avg := make([]float64, HoursPerDay)
	for h := 0; h < HoursPerDay; h++ {
		sum := 0.0
		for d := 0; d < days; d++ {
			sum += discharge[d*HoursPerDay+h]
		}
		avg[h] = sum / float64(days)
	}
	return avg
}
