// Package analytics computes derived aggregations over income entries:
// summary statistics, time-bucketed totals and calendar intensity data.
// Everything here is recomputed from scratch on each call and never persisted.
package analytics

import (
	"sort"
	"time"

	"github.com/khairulanwar/merci/internal/model"
)

// trendWindow is how many distinct days the daily trend keeps.
const trendWindow = 30

// MonthlyTotal is one calendar month's income sum.
type MonthlyTotal struct {
	Month string  `json:"month"`
	Total float64 `json:"total"`
}

// DailyTrend is one day's income sum.
type DailyTrend struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

// WeekdayAverage is the per-entry average for one day of the week.
type WeekdayAverage struct {
	Day     string  `json:"day"`
	Average float64 `json:"average"`
}

// Summary holds every derived statistic the dashboard and exports consume.
type Summary struct {
	TotalIncome     float64          `json:"totalIncome"`
	AverageDaily    float64          `json:"averageDaily"`
	HighestDay      float64          `json:"highestDay"`
	EntriesCount    int              `json:"entriesCount"`
	MonthlyTotals   []MonthlyTotal   `json:"monthlyTotals"`
	DailyTrends     []DailyTrend     `json:"dailyTrends"`
	WeekdayAverages []WeekdayAverage `json:"weekdayAverages"`
}

var weekdayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// Summarize computes the full summary for a set of entries. An empty input
// yields the zero summary, never a divide-by-zero.
func Summarize(entries []model.IncomeEntry) Summary {
	if len(entries) == 0 {
		return Summary{
			MonthlyTotals:   []MonthlyTotal{},
			DailyTrends:     []DailyTrend{},
			WeekdayAverages: []WeekdayAverage{},
		}
	}

	var totalIncome float64
	var highestDay float64
	distinctDates := make(map[string]struct{})

	for _, entry := range entries {
		totalIncome += entry.Amount
		if entry.Amount > highestDay {
			highestDay = entry.Amount
		}
		distinctDates[entry.Date] = struct{}{}
	}

	averageDaily := 0.0
	if len(distinctDates) > 0 {
		averageDaily = totalIncome / float64(len(distinctDates))
	}

	return Summary{
		TotalIncome:     totalIncome,
		AverageDaily:    averageDaily,
		HighestDay:      highestDay,
		EntriesCount:    len(entries),
		MonthlyTotals:   monthlyTotals(entries),
		DailyTrends:     dailyTrends(entries),
		WeekdayAverages: weekdayAverages(entries),
	}
}

// monthlyTotals groups by calendar month and returns the sums in
// chronological order of month start. Entries whose date fails to parse are
// skipped; validated data never hits that path.
func monthlyTotals(entries []model.IncomeEntry) []MonthlyTotal {
	sums := make(map[string]float64)
	for _, entry := range entries {
		d, err := entry.ParsedDate()
		if err != nil {
			continue
		}
		sums[d.Format("2006-01")] += entry.Amount
	}

	keys := make([]string, 0, len(sums))
	for key := range sums {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	totals := make([]MonthlyTotal, 0, len(keys))
	for _, key := range keys {
		start, _ := time.Parse("2006-01", key)
		totals = append(totals, MonthlyTotal{
			Month: start.Format("Jan 2006"),
			Total: sums[key],
		})
	}
	return totals
}

// dailyTrends groups by exact date, sorts chronologically and keeps only the
// most recent trendWindow distinct dates.
func dailyTrends(entries []model.IncomeEntry) []DailyTrend {
	sums := make(map[string]float64)
	for _, entry := range entries {
		sums[entry.Date] += entry.Amount
	}

	dates := make([]string, 0, len(sums))
	for date := range sums {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	if len(dates) > trendWindow {
		dates = dates[len(dates)-trendWindow:]
	}

	trends := make([]DailyTrend, 0, len(dates))
	for _, date := range dates {
		trends = append(trends, DailyTrend{Date: date, Amount: sums[date]})
	}
	return trends
}

// weekdayAverages averages per-entry amounts within each day-of-week bucket.
// All seven buckets are always present, Sunday through Saturday; empty
// buckets report zero.
func weekdayAverages(entries []model.IncomeEntry) []WeekdayAverage {
	var totals [7]float64
	var counts [7]int

	for _, entry := range entries {
		d, err := entry.ParsedDate()
		if err != nil {
			continue
		}
		wd := int(d.Weekday())
		totals[wd] += entry.Amount
		counts[wd]++
	}

	averages := make([]WeekdayAverage, 7)
	for i := 0; i < 7; i++ {
		avg := 0.0
		if counts[i] > 0 {
			avg = totals[i] / float64(counts[i])
		}
		averages[i] = WeekdayAverage{Day: weekdayNames[i], Average: avg}
	}
	return averages
}
