package energy

// CapacityProfile returns a hub's constant hourly charging capacity,
// chargerPower * chargers, repeated for every hour of the year.
func CapacityProfile(chargerPower float64, chargers int) []float64 {
	capacity := chargerPower * float64(chargers)
	profile := make([]float64, HoursPerYear)
	for i := range profile {
		profile[i] = capacity
	}
	return profile
}
