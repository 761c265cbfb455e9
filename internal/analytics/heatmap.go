package analytics

import (
	"time"

	"github.com/khairulanwar/merci/internal/model"
)

// DefaultHeatmapWindow is the trailing window the calendar heatmap covers.
const DefaultHeatmapWindow = 365

// DayBucket is one calendar day of the heatmap: its total income and a 0-4
// intensity tier relative to the rest of the window.
type DayBucket struct {
	Date      string
	Amount    float64
	Weekday   time.Weekday
	Intensity int
}

// HeatmapStats summarizes a heatmap window.
type HeatmapStats struct {
	TotalDays    int
	ActiveDays   int
	BestDay      float64
	ActivityRate float64
}

// Heatmap buckets every calendar day in the trailing windowDays-day window
// ending at today (inclusive). Tier 0 is exactly zero; tiers 1-4 are quartile
// bands of (0, max] computed from the non-zero day totals in the window. When
// no non-zero totals exist, max is treated as 1 so the bands keep a width and
// every day reports tier 0.
func Heatmap(entries []model.IncomeEntry, today time.Time, windowDays int) []DayBucket {
	if windowDays <= 0 {
		windowDays = DefaultHeatmapWindow
	}

	dayTotals := make(map[string]float64)
	for _, entry := range entries {
		dayTotals[entry.Date] += entry.Amount
	}

	end := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -(windowDays - 1))

	days := make([]DayBucket, 0, windowDays)
	maxAmount := 0.0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format(model.DateLayout)
		amount := dayTotals[date]
		if amount > maxAmount {
			maxAmount = amount
		}
		days = append(days, DayBucket{
			Date:    date,
			Amount:  amount,
			Weekday: d.Weekday(),
		})
	}

	if maxAmount == 0 {
		maxAmount = 1
	}

	quartiles := [5]float64{
		0,
		maxOf(1, maxAmount*0.25),
		maxOf(1, maxAmount*0.5),
		maxOf(1, maxAmount*0.75),
		maxAmount,
	}

	for i := range days {
		days[i].Intensity = intensity(days[i].Amount, quartiles)
	}
	return days
}

// Stats derives the footer figures for a heatmap window.
func Stats(days []DayBucket) HeatmapStats {
	stats := HeatmapStats{TotalDays: len(days)}
	for _, day := range days {
		if day.Amount > 0 {
			stats.ActiveDays++
		}
		if day.Amount > stats.BestDay {
			stats.BestDay = day.Amount
		}
	}
	if stats.TotalDays > 0 {
		stats.ActivityRate = float64(stats.ActiveDays) / float64(stats.TotalDays)
	}
	return stats
}

func intensity(amount float64, quartiles [5]float64) int {
	switch {
	case amount == 0:
		return 0
	case amount <= quartiles[1]:
		return 1
	case amount <= quartiles[2]:
		return 2
	case amount <= quartiles[3]:
		return 3
	default:
		return 4
	}
}

func maxOf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
