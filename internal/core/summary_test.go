package core_test

import (
	"testing"

	"github.com/jphacks/hs-2501/internal/core"
	"github.com/jphacks/hs-2501/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestSummarizeMonth(t *testing.T) {
	records := []models.WorkDay{
		{Date: "2024-03-05", Hours: 8, Wage: 9600},
		{Date: "2024-03-20", Hours: 4, Wage: 4800},
		{Date: "2024-04-01", Hours: 8, Wage: 9600},
		{Date: "2023-03-15", Hours: 8, Wage: 9600},
	}

	got := core.SummarizeMonth(records, 2024, 3)

	assert.Equal(t, core.MonthlySummary{
		Year:         2024,
		Month:        3,
		WorkDayCount: 2,
		TotalHours:   12,
		TotalWage:    14400,
	}, got)
}

func TestSummarizeMonthEmpty(t *testing.T) {
	got := core.SummarizeMonth(nil, 2024, 3)

	assert.Equal(t, core.MonthlySummary{Year: 2024, Month: 3}, got)
}

func TestSummarizeYear(t *testing.T) {
	records := []models.WorkDay{
		{Date: "2024-09-02", Hours: 6, Wage: 7200},
		{Date: "2024-03-05", Hours: 8, Wage: 9600},
		{Date: "2024-03-20", Hours: 4, Wage: 4800},
		{Date: "2023-12-31", Hours: 8, Wage: 9600},
	}

	got := core.SummarizeYear(records, 2024)

	assert.Equal(t, 2024, got.Year)
	assert.Equal(t, 3, got.WorkDayCount)
	assert.Equal(t, 18.0, got.TotalHours)
	assert.Equal(t, 21600.0, got.TotalWage)

	// Sparse breakdown: only months with records, ascending
	assert.Len(t, got.MonthlyBreakdown, 2)
	assert.Equal(t, core.MonthlySummary{
		Year: 2024, Month: 3, WorkDayCount: 2, TotalHours: 12, TotalWage: 14400,
	}, got.MonthlyBreakdown[0])
	assert.Equal(t, core.MonthlySummary{
		Year: 2024, Month: 9, WorkDayCount: 1, TotalHours: 6, TotalWage: 7200,
	}, got.MonthlyBreakdown[1])
}

func TestSummarizeYearEmpty(t *testing.T) {
	got := core.SummarizeYear(nil, 2024)

	assert.Equal(t, 2024, got.Year)
	assert.Zero(t, got.WorkDayCount)
	assert.Zero(t, got.TotalHours)
	assert.Zero(t, got.TotalWage)
	assert.Empty(t, got.MonthlyBreakdown)
}

func TestSummariesAreIdempotent(t *testing.T) {
	records := []models.WorkDay{
		{Date: "2024-03-05", Hours: 8, Wage: 9600},
		{Date: "2024-06-10", Hours: 5, Wage: 6000},
	}

	assert.Equal(t, core.SummarizeMonth(records, 2024, 3), core.SummarizeMonth(records, 2024, 3))
	assert.Equal(t, core.SummarizeYear(records, 2024), core.SummarizeYear(records, 2024))
}

func TestAverages(t *testing.T) {
	summary := core.YearlySummary{
		Year:         2024,
		WorkDayCount: 3,
		TotalHours:   18,
		TotalWage:    21600,
		MonthlyBreakdown: []core.MonthlySummary{
			{Year: 2024, Month: 3},
			{Year: 2024, Month: 9},
		},
	}

	got := core.Averages(summary)

	assert.Equal(t, 10800.0, got.WagePerMonth)
	assert.Equal(t, 1200.0, got.WagePerHour)
	assert.Equal(t, 7200.0, got.WagePerDay)
}

// Zero denominators report 0, never NaN or Inf.
func TestAveragesEmptyYear(t *testing.T) {
	got := core.Averages(core.YearlySummary{Year: 2024})

	assert.Equal(t, core.YearlyAverages{}, got)
}

func TestComputeWage(t *testing.T) {
	hourly := models.Settings{PaymentType: models.PaymentHourly, HourlyWage: 1200, DailyWage: 10000}
	daily := models.Settings{PaymentType: models.PaymentDaily, HourlyWage: 1200, DailyWage: 10000}

	assert.Equal(t, 9600.0, core.ComputeWage(hourly, 8))
	assert.Equal(t, 0.0, core.ComputeWage(hourly, 0))
	assert.Equal(t, 10000.0, core.ComputeWage(daily, 8))
	assert.Equal(t, 10000.0, core.ComputeWage(daily, 0))
}

func TestMalformedDatesAreSkipped(t *testing.T) {
	records := []models.WorkDay{
		{Date: "2024-03-05", Hours: 8, Wage: 9600},
		{Date: "not-a-date", Hours: 8, Wage: 9600},
	}

	got := core.SummarizeMonth(records, 2024, 3)
	assert.Equal(t, 1, got.WorkDayCount)
}
