// Package core holds the pure wage-aggregation logic. Everything here is a
// deterministic function of its inputs; persistence and transport live in
// other packages.
package core

import (
	"sort"
	"time"

	"github.com/jphacks/hs-2501/internal/models"
)

// MonthlySummary is the aggregate over all work days in one year+month.
type MonthlySummary struct {
	Year         int     `json:"year"`
	Month        int     `json:"month"` // 1-12
	WorkDayCount int     `json:"workDays"`
	TotalHours   float64 `json:"totalHours"`
	TotalWage    float64 `json:"totalWage"`
}

// YearlySummary is the aggregate over all work days in one year.
// MonthlyBreakdown is sparse: months without records are omitted, and the
// remaining entries are ordered ascending by month.
type YearlySummary struct {
	Year             int              `json:"year"`
	WorkDayCount     int              `json:"workDays"`
	TotalHours       float64          `json:"totalHours"`
	TotalWage        float64          `json:"totalWage"`
	MonthlyBreakdown []MonthlySummary `json:"monthlyData"`
}

// YearlyAverages are figures derived from a yearly summary. A zero
// denominator yields 0, never NaN or Inf.
type YearlyAverages struct {
	WagePerMonth float64 `json:"averageMonthlyWage"`
	WagePerHour  float64 `json:"averageHourlyWage"`
	WagePerDay   float64 `json:"averageDailyWage"`
}

// SummarizeMonth aggregates the records whose date falls in the given
// year and month. An empty match yields an all-zero summary.
func SummarizeMonth(records []models.WorkDay, year, month int) MonthlySummary {
	s := MonthlySummary{Year: year, Month: month}
	for _, r := range records {
		y, m, ok := splitDate(r.Date)
		if !ok || y != year || m != month {
			continue
		}
		s.WorkDayCount++
		s.TotalHours += r.Hours
		s.TotalWage += r.Wage
	}
	return s
}

// SummarizeYear aggregates the records whose date falls in the given year
// and groups them per month.
func SummarizeYear(records []models.WorkDay, year int) YearlySummary {
	s := YearlySummary{Year: year}
	byMonth := make(map[int]*MonthlySummary)

	for _, r := range records {
		y, m, ok := splitDate(r.Date)
		if !ok || y != year {
			continue
		}
		s.WorkDayCount++
		s.TotalHours += r.Hours
		s.TotalWage += r.Wage

		ms, exists := byMonth[m]
		if !exists {
			ms = &MonthlySummary{Year: year, Month: m}
			byMonth[m] = ms
		}
		ms.WorkDayCount++
		ms.TotalHours += r.Hours
		ms.TotalWage += r.Wage
	}

	months := make([]int, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Ints(months)

	s.MonthlyBreakdown = make([]MonthlySummary, 0, len(months))
	for _, m := range months {
		s.MonthlyBreakdown = append(s.MonthlyBreakdown, *byMonth[m])
	}
	return s
}

// Averages derives per-month, per-hour and per-day figures from a yearly
// summary. The per-month average divides by the number of months that have
// at least one record.
func Averages(s YearlySummary) YearlyAverages {
	return YearlyAverages{
		WagePerMonth: safeDiv(s.TotalWage, float64(len(s.MonthlyBreakdown))),
		WagePerHour:  safeDiv(s.TotalWage, s.TotalHours),
		WagePerDay:   safeDiv(s.TotalWage, float64(s.WorkDayCount)),
	}
}

// ComputeWage prices a work day from the pay configuration in force at
// creation time. Stored wages are never recomputed, so later configuration
// changes do not alter historical totals.
func ComputeWage(s models.Settings, hours float64) float64 {
	if s.PaymentType == models.PaymentDaily {
		return s.DailyWage
	}
	return s.HourlyWage * hours
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// splitDate extracts the year and month from a YYYY-MM-DD date string.
func splitDate(date string) (year, month int, ok bool) {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, 0, false
	}
	return t.Year(), int(t.Month()), true
}
