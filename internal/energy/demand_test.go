package energy

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestSynthesizeDemandWeekendSplit pins the weekend rule: days 5 and 6 of
// each 7-day cycle use the weekend shape. Stored profiles depend on this
// exact split, so it must not drift toward calendar-aligned weekdays.
func TestSynthesizeDemandWeekendSplit(t *testing.T) {
	weekday := make([]float64, HoursPerDay)
	weekend := make([]float64, HoursPerDay)
	for h := range weekday {
		weekday[h] = 1
		weekend[h] = 2
	}
	monthly := make([]float64, MonthsPerYear)
	for m := range monthly {
		monthly[m] = 1000
	}

	profile := SynthesizeDemand(weekday, weekend, monthly)
	if len(profile) != HoursPerYear {
		t.Fatalf("expected %d intervals, got %d", HoursPerYear, len(profile))
	}

	// Within a month every hour shares the same scaling, so the
	// weekend/weekday ratio survives rescaling.
	day0 := profile[0]
	day5 := profile[5*HoursPerDay]
	day6 := profile[6*HoursPerDay]
	day7 := profile[7*HoursPerDay]

	if !almostEqual(day5, 2*day0) {
		t.Errorf("day 5 should carry the weekend value: got %f, weekday %f", day5, day0)
	}
	if !almostEqual(day6, 2*day0) {
		t.Errorf("day 6 should carry the weekend value: got %f, weekday %f", day6, day0)
	}
	if !almostEqual(day7, day0) {
		t.Errorf("day 7 should be a weekday again: got %f, weekday %f", day7, day0)
	}
}

// TestSynthesizeDemandMonthlySums verifies each month rescales to its target.
func TestSynthesizeDemandMonthlySums(t *testing.T) {
	weekday := make([]float64, HoursPerDay)
	weekend := make([]float64, HoursPerDay)
	for h := range weekday {
		weekday[h] = float64(h) + 1
		weekend[h] = float64(h) * 0.5
	}
	monthly := []float64{100, 200, 300, 400, 500, 600, 700, 800, 900, 1000, 1100, 1200}

	profile := SynthesizeDemand(weekday, weekend, monthly)

	idx := 0
	for m := 0; m < MonthsPerYear; m++ {
		hours := MonthDays(m) * HoursPerDay
		sum := 0.0
		for h := 0; h < hours; h++ {
			sum += profile[idx+h]
		}
		if math.Abs(sum-monthly[m]) > 1e-6 {
			t.Errorf("month %d sums to %f, expected %f", m, sum, monthly[m])
		}
		idx += hours
	}
}

func TestSynthesizeDemandZeroBase(t *testing.T) {
	weekday := make([]float64, HoursPerDay)
	weekend := make([]float64, HoursPerDay)
	monthly := make([]float64, MonthsPerYear)
	for m := range monthly {
		monthly[m] = 500
	}

	// All-zero hourly shapes stay zero regardless of the monthly target.
	profile := SynthesizeDemand(weekday, weekend, monthly)
	for i, v := range profile {
		if v != 0 {
			t.Fatalf("expected all-zero profile, got %f at interval %d", v, i)
		}
	}
}

func TestSynthesizeDemandMalformedInputs(t *testing.T) {
	good24 := make([]float64, HoursPerDay)
	good12 := make([]float64, MonthsPerYear)

	tests := []struct {
		name    string
		weekday []float64
		weekend []float64
		monthly []float64
	}{
		{"short weekday", make([]float64, 23), good24, good12},
		{"short weekend", good24, make([]float64, 12), good12},
		{"short monthly", good24, good24, make([]float64, 11)},
		{"nil weekday", nil, good24, good12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := SynthesizeDemand(tt.weekday, tt.weekend, tt.monthly)
			if len(profile) != HoursPerYear {
				t.Fatalf("expected %d intervals, got %d", HoursPerYear, len(profile))
			}
			for _, v := range profile {
				if v != 0 {
					t.Fatal("malformed input should yield an all-zero profile")
				}
			}
		})
	}
}

func TestDailyTotals(t *testing.T) {
	profile := make([]float64, 2*HoursPerDay)
	for h := 0; h < HoursPerDay; h++ {
		profile[h] = 1
		profile[HoursPerDay+h] = 2
	}

	totals := DailyTotals(profile)
	if len(totals) != DaysPerYear {
		t.Fatalf("expected %d daily totals, got %d", DaysPerYear, len(totals))
	}
	if !almostEqual(totals[0], 24) {
		t.Errorf("day 0 total = %f, expected 24", totals[0])
	}
	if !almostEqual(totals[1], 48) {
		t.Errorf("day 1 total = %f, expected 48", totals[1])
	}
	if totals[2] != 0 {
		t.Errorf("day 2 total = %f, expected 0 for missing data", totals[2])
	}
}

func TestMonthlyFromDaily(t *testing.T) {
	daily := make([]float64, DaysPerYear)
	for d := range daily {
		daily[d] = 1
	}

	totals := MonthlyFromDaily(daily)
	expected := []float64{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	for m, want := range expected {
		if !almostEqual(totals[m], want) {
			t.Errorf("month %d total = %f, expected %f", m, totals[m], want)
		}
	}
}

func TestAnnualDemand(t *testing.T) {
	profile := []float64{1.5, 2.5, 3}
	if got := AnnualDemand(profile); !almostEqual(got, 7) {
		t.Errorf("AnnualDemand = %f, expected 7", got)
	}
}
