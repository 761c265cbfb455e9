package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/khairulanwar/merci/internal/cli"
	"github.com/khairulanwar/merci/internal/model"
	"github.com/khairulanwar/merci/internal/service"
)

func editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update an existing entry",
		Long: `Update the date, amount or notes of an existing entry.
Only the flags you pass are changed.

Examples:
  merci edit 0192aabb-... --amount 200
  merci edit 0192aabb-... --date 2024-06-02 --notes "corrected"`,
		Args: cobra.ExactArgs(1),
		RunE: runEdit,
	}

	cmd.Flags().StringP("date", "d", "", "new date (YYYY-MM-DD)")
	cmd.Flags().StringP("amount", "a", "", "new amount")
	cmd.Flags().StringP("notes", "n", "", "new notes")

	return cmd
}

func runEdit(cmd *cobra.Command, args []string) error {
	id := args[0]
	now := time.Now()

	var update service.EntryUpdate
	changed := false

	if cmd.Flags().Changed("date") {
		date, _ := cmd.Flags().GetString("date")
		update.Date = &date
		changed = true
	}
	if cmd.Flags().Changed("amount") {
		raw, _ := cmd.Flags().GetString("amount")
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", raw)
		}
		update.Amount = &amount
		changed = true
	}
	if cmd.Flags().Changed("notes") {
		notes, _ := cmd.Flags().GetString("notes")
		update.Notes = &notes
		changed = true
	}

	if !changed {
		return fmt.Errorf("nothing to update: pass --date, --amount or --notes")
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	current, err := store.GetEntryByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load entry: %w", err)
	}

	// Validate the entry as it would look after the update.
	candidate := *current
	if update.Date != nil {
		candidate.Date = *update.Date
	}
	if update.Amount != nil {
		candidate.Amount = *update.Amount
	}
	if update.Notes != nil {
		candidate.Notes = *update.Notes
	}
	violations := model.Validate(model.EntryInput{
		Date:   candidate.Date,
		Amount: strconv.FormatFloat(candidate.Amount, 'f', -1, 64),
		Notes:  candidate.Notes,
	}, now)
	if len(violations) > 0 {
		for _, v := range violations {
			fmt.Println(cli.FormatError(fmt.Sprintf("%s: %s", v.Field, v.Message)))
		}
		return fmt.Errorf("update is invalid")
	}

	updated, err := store.UpdateEntry(ctx, id, update)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated entry: %s on %s",
		cli.Currency(currencyPrefix(), updated.Amount), updated.Date)))
	return nil
}
