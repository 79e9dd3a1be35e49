package energy

import "testing"

func TestConsumed(t *testing.T) {
	got := Consumed([]float64{3, 10}, []float64{5, 4})
	expected := []float64{3, 4}
	for i := range expected {
		if !almostEqual(got[i], expected[i]) {
			t.Errorf("interval %d = %f, expected %f", i, got[i], expected[i])
		}
	}
}

func TestExcess(t *testing.T) {
	got := Excess([]float64{3, 10}, []float64{3, 4})
	expected := []float64{0, 6}
	for i := range expected {
		if !almostEqual(got[i], expected[i]) {
			t.Errorf("interval %d = %f, expected %f", i, got[i], expected[i])
		}
	}
}

func TestSub(t *testing.T) {
	// Overlapping range only; the residual may go negative and stays so.
	got := Sub([]float64{5, 4}, []float64{3, 6, 7})
	expected := []float64{2, -2}
	if len(got) != len(expected) {
		t.Fatalf("length %d, expected %d", len(got), len(expected))
	}
	for i := range expected {
		if !almostEqual(got[i], expected[i]) {
			t.Errorf("interval %d = %f, expected %f", i, got[i], expected[i])
		}
	}
}

func TestSubMatrix(t *testing.T) {
	got := SubMatrix(
		[][]float64{{10, 10}, {20, 20}, {30, 30}},
		[][]float64{{1, 2}, {3, 4}},
	)
	if len(got) != 2 {
		t.Fatalf("expected 2 years, got %d", len(got))
	}
	if !almostEqual(got[1][1], 16) {
		t.Errorf("year 1 interval 1 = %f, expected 16", got[1][1])
	}
}

func TestImportProfile(t *testing.T) {
	got := ImportProfile([]float64{50, 150}, 100)
	expected := []float64{50, 100}
	for i := range expected {
		if !almostEqual(got[i], expected[i]) {
			t.Errorf("interval %d = %f, expected %f", i, got[i], expected[i])
		}
	}
}

func TestExportProfile(t *testing.T) {
	got := ExportProfile([]float64{30, 400}, 200)
	expected := []float64{30, 200}
	for i := range expected {
		if !almostEqual(got[i], expected[i]) {
			t.Errorf("interval %d = %f, expected %f", i, got[i], expected[i])
		}
	}
}

func TestImportExportMatrix(t *testing.T) {
	imported := ImportMatrix([][]float64{{500}, {1500}}, 1000)
	if !almostEqual(imported[1][0], 1000) {
		t.Errorf("year 1 import = %f, expected capped 1000", imported[1][0])
	}
	exported := ExportMatrix([][]float64{{500}, {1500}}, 600)
	if !almostEqual(exported[1][0], 600) {
		t.Errorf("year 1 export = %f, expected capped 600", exported[1][0])
	}
}

func TestCalculateFlows(t *testing.T) {
	flows := CalculateFlows(FlowInputs{
		SolarConsumed:    []float64{1, 2},
		ChargeFromSolar:  []float64{3},
		GridExport:       []float64{4, 4},
		BatteryDischarge: []float64{5},
		ChargeFromGrid:   nil,
		GridImport:       []float64{6, 6, 6},
	})

	if !almostEqual(flows.SolarToChargers, 3) {
		t.Errorf("SolarToChargers = %f, expected 3", flows.SolarToChargers)
	}
	if !almostEqual(flows.SolarToBattery, 3) {
		t.Errorf("SolarToBattery = %f, expected 3", flows.SolarToBattery)
	}
	if !almostEqual(flows.SolarToGrid, 8) {
		t.Errorf("SolarToGrid = %f, expected 8", flows.SolarToGrid)
	}
	if !almostEqual(flows.BatteryToChargers, 5) {
		t.Errorf("BatteryToChargers = %f, expected 5", flows.BatteryToChargers)
	}
	if flows.GridToBattery != 0 {
		t.Errorf("GridToBattery = %f, expected 0", flows.GridToBattery)
	}
	if !almostEqual(flows.GridToChargers, 18) {
		t.Errorf("GridToChargers = %f, expected 18", flows.GridToChargers)
	}
}

func TestDailyAverageCharging(t *testing.T) {
	// Day 0 charges 1 kWh/h from solar, day 1 charges 3; average 2, negated.
	solar := make([]float64, 2*HoursPerDay)
	grid := make([]float64, 2*HoursPerDay)
	for h := 0; h < HoursPerDay; h++ {
		solar[h] = 1
		solar[HoursPerDay+h] = 3
	}

	avg := DailyAverageCharging(solar, grid)
	if len(avg) != HoursPerDay {
		t.Fatalf("expected %d points, got %d", HoursPerDay, len(avg))
	}
	for h, v := range avg {
		if !almostEqual(v, -2) {
			t.Errorf("hour %d = %f, expected -2", h, v)
		}
	}

	if DailyAverageCharging(make([]float64, 10), nil) != nil {
		t.Error("less than a whole day should yield nil")
	}
}

func TestDailyAverageDischarging(t *testing.T) {
	discharge := make([]float64, 2*HoursPerDay)
	for h := 0; h < HoursPerDay; h++ {
		discharge[h] = 2
		discharge[HoursPerDay+h] = 4
	}

	avg := DailyAverageDischarging(discharge)
	for h, v := range avg {
		if !almostEqual(v, 3) {
			t.Errorf("hour %d = %f, expected 3", h, v)
		}
	}

	// A partial trailing day is truncated.
	discharge = append(discharge, 100)
	avg = DailyAverageDischarging(discharge)
	if !almostEqual(avg[0], 3) {
		t.Errorf("partial day leaked into the average: %f", avg[0])
	}
}
