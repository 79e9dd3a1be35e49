package energy

import (
	"math"
	"testing"
)

func TestSimulateBatteryYearScenario(t *testing.T) {
	// Capacity 10 kWh, power 5 kW. Two hours of surplus fill the battery
	// at the rate limit, then two hours of demand drain it the same way.
	yr := SimulateBatteryYear(
		[]float64{8, 8, 0, 0},
		[]float64{0, 0, 6, 6},
		10, 5,
	)

	expected := []struct {
		start, charge, discharge, end float64
	}{
		{0, 5, 0, 5},
		{5, 5, 0, 10},
		{10, 0, 5, 5},
		{5, 0, 5, 0},
	}
	for i, want := range expected {
		if !almostEqual(yr.StartSoC[i], want.start) {
			t.Errorf("hour %d start SoC = %f, expected %f", i, yr.StartSoC[i], want.start)
		}
		if !almostEqual(yr.ChargeFromSolar[i], want.charge) {
			t.Errorf("hour %d charge = %f, expected %f", i, yr.ChargeFromSolar[i], want.charge)
		}
		if !almostEqual(yr.Discharge[i], want.discharge) {
			t.Errorf("hour %d discharge = %f, expected %f", i, yr.Discharge[i], want.discharge)
		}
		if !almostEqual(yr.EndSoC[i], want.end) {
			t.Errorf("hour %d end SoC = %f, expected %f", i, yr.EndSoC[i], want.end)
		}
		if yr.ChargeFromGrid[i] != 0 {
			t.Errorf("hour %d grid charge = %f, expected 0", i, yr.ChargeFromGrid[i])
		}
	}
}

func TestSimulateBatteryYearInvariants(t *testing.T) {
	capacity := 50.0
	power := 20.0

	// Deterministic but irregular inputs.
	excess := make([]float64, 200)
	demand := make([]float64, 200)
	for i := range excess {
		excess[i] = math.Abs(math.Sin(float64(i)) * 60)
		demand[i] = math.Abs(math.Cos(float64(i)) * 60)
	}

	yr := SimulateBatteryYear(excess, demand, capacity, power)
	for i := range yr.StartSoC {
		if yr.StartSoC[i] < 0 || yr.StartSoC[i] > capacity {
			t.Fatalf("hour %d start SoC %f outside [0, %f]", i, yr.StartSoC[i], capacity)
		}
		if yr.EndSoC[i] < 0 || yr.EndSoC[i] > capacity {
			t.Fatalf("hour %d end SoC %f outside [0, %f]", i, yr.EndSoC[i], capacity)
		}
		if yr.ChargeFromSolar[i] < 0 || yr.ChargeFromSolar[i] > power {
			t.Fatalf("hour %d charge %f exceeds power limit %f", i, yr.ChargeFromSolar[i], power)
		}
		if yr.ChargeFromSolar[i] > excess[i] {
			t.Fatalf("hour %d charged %f from only %f excess", i, yr.ChargeFromSolar[i], excess[i])
		}
		if yr.Discharge[i] < 0 || yr.Discharge[i] > power {
			t.Fatalf("hour %d discharge %f exceeds power limit %f", i, yr.Discharge[i], power)
		}
		if yr.Discharge[i] > demand[i]+1e-9 {
			t.Fatalf("hour %d discharged %f against demand %f", i, yr.Discharge[i], demand[i])
		}
		balance := yr.StartSoC[i] + yr.ChargeFromSolar[i] + yr.ChargeFromGrid[i] - yr.Discharge[i]
		if math.Abs(balance-yr.EndSoC[i]) > 1e-9 {
			t.Fatalf("hour %d energy balance broken: %f vs end SoC %f", i, balance, yr.EndSoC[i])
		}
		if i > 0 && !almostEqual(yr.StartSoC[i], yr.EndSoC[i-1]) {
			t.Fatalf("hour %d start SoC %f does not carry hour %d end SoC %f",
				i, yr.StartSoC[i], i-1, yr.EndSoC[i-1])
		}
	}
}

// TestSimulateBatteryYearReset pins the year boundary: state of charge is
// not carried between years, each year starts empty.
func TestSimulateBatteryYearReset(t *testing.T) {
	res := SimulateBattery(
		[][]float64{{5}, {0}},
		[][]float64{{0}, {3}},
		10, 5, 3,
	)
	if len(res.StartSoC) != 2 {
		t.Fatalf("expected 2 years, got %d", len(res.StartSoC))
	}
	if !almostEqual(res.EndSoC[0][0], 5) {
		t.Errorf("year 0 end SoC = %f, expected 5", res.EndSoC[0][0])
	}
	if res.StartSoC[1][0] != 0 {
		t.Errorf("year 1 start SoC = %f, expected reset to 0", res.StartSoC[1][0])
	}
	if res.Discharge[1][0] != 0 {
		t.Errorf("year 1 discharge = %f, expected 0 from an empty battery", res.Discharge[1][0])
	}
}

func TestSimulateBatteryMaxYears(t *testing.T) {
	res := SimulateBattery(
		[][]float64{{1}, {1}, {1}, {1}},
		[][]float64{{0}, {0}, {0}, {0}},
		10, 5, 2,
	)
	if len(res.StartSoC) != 2 {
		t.Errorf("expected the horizon to cap at 2 years, got %d", len(res.StartSoC))
	}
}
