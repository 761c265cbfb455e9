package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/khairulanwar/merci/internal/cli"
	"github.com/khairulanwar/merci/internal/export"
)

func verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Scan stored entries for integrity issues",
		Long: `Scan every stored entry for potential duplicates, invalid dates,
invalid amounts and future dates. Findings are advisory; nothing is
changed.`,
		RunE: runVerify,
	}
}

func runVerify(cmd *cobra.Command, _ []string) error {
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

	issues := export.VerifyIntegrity(entries, time.Now())
	if len(issues) == 0 {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf(
			"Verified %d entries, no issues found", len(entries))))
		return nil
	}

	fmt.Println(cli.FormatWarning(fmt.Sprintf(
		"Verified %d entries, %d issue types found:", len(entries), len(issues))))
	for _, issue := range issues {
		fmt.Println(cli.SubtleStyle.Render("  " + issue))
	}
	return nil
}
