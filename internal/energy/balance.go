package energy

import "math"

// Consumed returns the solar energy directly consumed by demand per hour:
// min(solar, demand), over the overlapping interval range.
func Consumed(solar, demand []float64) []float64 {
	n := min(len(solar), len(demand))
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = math.Min(solar[i], demand[i])
	}
	return out
}

// Excess returns the solar energy left after direct consumption:
// max(solar - consumed, 0) per hour.
func Excess(solar, consumed []float64) []float64 {
	n := min(len(solar), len(consumed))
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = math.Max(solar[i]-consumed[i], 0)
	}
	return out
}

// Sub subtracts b from a elementwise over the overlapping range. Used for
// every residual-demand and residual-excess stage; results are deliberately
// not clamped, so a negative residual stays visible as an anomaly.
func Sub(a, b []float64) []float64 {
	n := min(len(a), len(b))
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = a[i] - b[i]
	}
	return out
}

// SubMatrix applies Sub year by year over the overlapping year range.
func SubMatrix(a, b [][]float64) [][]float64 {
	years := min(len(a), len(b))
	out := make([][]float64, years)
	for y := 0; y < years; y++ {
		out[y] = Sub(a[y], b[y])
	}
	return out
}
