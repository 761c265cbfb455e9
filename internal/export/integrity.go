package export

import (
	"fmt"
	"math"
	"time"

	"github.com/khairulanwar/merci/internal/model"
)

// VerifyIntegrity scans stored entries for data-quality problems: duplicate
// (date, amount) pairs, unparseable dates, invalid amounts, and dates in the
// future. Issues are informational and never block other operations; an
// empty report means the check passed.
func VerifyIntegrity(entries []model.IncomeEntry, now time.Time) []string {
	var issues []string

	seen := make(map[string]int)
	for i := range entries {
		seen[entries[i].DuplicateKey()]++
	}
	duplicatePairs := 0
	for _, count := range seen {
		if count > 1 {
			duplicatePairs++
		}
	}
	if duplicatePairs > 0 {
		issues = append(issues, fmt.Sprintf("Found %d potential duplicate entries", duplicatePairs))
	}

	endOfToday := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, time.UTC)
	invalidDates := 0
	futureDates := 0
	for _, entry := range entries {
		d, err := entry.ParsedDate()
		if err != nil {
			invalidDates++
			continue
		}
		if d.After(endOfToday) {
			futureDates++
		}
	}
	if invalidDates > 0 {
		issues = append(issues, fmt.Sprintf("Found %d entries with invalid dates", invalidDates))
	}

	invalidAmounts := 0
	for _, entry := range entries {
		if entry.Amount < 0 || math.IsNaN(entry.Amount) || math.IsInf(entry.Amount, 0) {
			invalidAmounts++
		}
	}
	if invalidAmounts > 0 {
		issues = append(issues, fmt.Sprintf("Found %d entries with invalid amounts", invalidAmounts))
	}

	if futureDates > 0 {
		issues = append(issues, fmt.Sprintf("Found %d entries with future dates", futureDates))
	}

	return issues
}
