package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/khairulanwar/merci/internal/analytics"
	"github.com/khairulanwar/merci/internal/cli"
)

// intensityRunes maps intensity tiers 0-4 onto terminal shading.
var intensityRunes = []string{"·", "░", "▒", "▓", "█"}

func heatmapCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Show a calendar heatmap of daily income",
		Long: `Render daily income over a trailing window as a calendar grid.
Each cell is one day; darker cells mean higher income relative to the
rest of the window.

Examples:
  merci heatmap
  merci heatmap --days 90`,
		RunE: runHeatmap,
	}

	cmd.Flags().Int("days", analytics.DefaultHeatmapWindow, "window length in days")

	return cmd
}

func runHeatmap(cmd *cobra.Command, _ []string) error {
	days, _ := cmd.Flags().GetInt("days")
	if days < 1 {
		return fmt.Errorf("--days must be at least 1")
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	entries, err := store.ListEntries(ctx, 0)
	if err != nil {
		return fmt.Errorf("failed to load entries: %w", err)
	}

	buckets := analytics.Heatmap(entries, time.Now().UTC(), days)
	stats := analytics.Stats(buckets)

	fmt.Println(cli.FormatTitle(fmt.Sprintf("Income Heatmap (last %d days)", len(buckets))))
	fmt.Println(renderHeatmapGrid(buckets))

	fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf(
		"%d active of %d days (%.0f%%), best day %s",
		stats.ActiveDays, stats.TotalDays, stats.ActivityRate*100,
		cli.Currency(currencyPrefix(), stats.BestDay))))

	return nil
}

// renderHeatmapGrid lays days out GitHub-style: one row per weekday Sunday
// through Saturday, one column per week. The first column is padded so each
// day lands on its weekday row.
func renderHeatmapGrid(buckets []analytics.DayBucket) string {
	if len(buckets) == 0 {
		return ""
	}

	weeks := make([][7]string, 0)
	week := [7]string{}
	for i := range week {
		week[i] = " "
	}

	for _, day := range buckets {
		week[int(day.Weekday)] = intensityRunes[day.Intensity]
		if day.Weekday == time.Saturday {
			weeks = append(weeks, week)
			week = [7]string{}
			for i := range week {
				week[i] = " "
			}
		}
	}
	if week != emptyWeek() {
		weeks = append(weeks, week)
	}

	labels := [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	var sb strings.Builder
	for row := 0; row < 7; row++ {
		sb.WriteString(cli.SubtleStyle.Render(labels[row]))
		sb.WriteString(" ")
		for _, w := range weeks {
			sb.WriteString(w[row])
		}
		sb.WriteString("\n")
	}
	sb.WriteString(cli.SubtleStyle.Render("less " + strings.Join(intensityRunes, "") + " more"))
	return sb.String()
}

func emptyWeek() [7]string {
	var w [7]string
	for i := range w {
		w[i] = " "
	}
	return w
}
