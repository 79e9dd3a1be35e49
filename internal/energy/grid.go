package energy

import "math"

// ImportProfile caps each hour's residual demand at the grid import limit.
func ImportProfile(demand []float64, maxImportKW float64) []float64 {
	out := make([]float64, len(demand))
	for i, v := range demand {
		out[i] = math.Min(maxImportKW, v)
	}
	return out
}

// ExportProfile caps each hour's residual solar excess at the grid export
// limit.
func ExportProfile(excess []float64, maxExportKW float64) []float64 {
	out := make([]float64, len(excess))
	for i, v := range excess {
		out[i] = math.Min(v, maxExportKW)
	}
	return out
}

// ImportMatrix applies ImportProfile per year.
func ImportMatrix(demand [][]float64, maxImportKW float64) [][]float64 {
	out := make([][]float64, len(demand))
	for y, d := range demand {
		out[y] = ImportProfile(d, maxImportKW)
	}
	return out
}

// ExportMatrix applies ExportProfile per year.
func ExportMatrix(excess [][]float64, maxExportKW float64) [][]float64 {
	out := make([][]float64, len(excess))
	for y, e := range excess {
		out[y] = ExportProfile(e, maxExportKW)
	}
	return out
}
