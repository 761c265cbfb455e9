package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/khairulanwar/merci/internal/cli"
	"github.com/khairulanwar/merci/internal/model"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new income entry",
		Long: `Record a single income entry.

Examples:
  merci add --amount 150.50
  merci add --date 2024-06-01 --amount 75 --notes "market stall"`,
		RunE: runAdd,
	}

	cmd.Flags().StringP("date", "d", "", "entry date (YYYY-MM-DD, default: today)")
	cmd.Flags().StringP("amount", "a", "", "entry amount (required)")
	cmd.Flags().StringP("notes", "n", "", "optional notes")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runAdd(cmd *cobra.Command, _ []string) error {
	date, _ := cmd.Flags().GetString("date")
	amount, _ := cmd.Flags().GetString("amount")
	notes, _ := cmd.Flags().GetString("notes")

	now := time.Now()
	if date == "" {
		date = now.Format(model.DateLayout)
	}

	violations := model.Validate(model.EntryInput{Date: date, Amount: amount, Notes: notes}, now)
	if len(violations) > 0 {
		for _, v := range violations {
			fmt.Println(cli.FormatError(fmt.Sprintf("%s: %s", v.Field, v.Message)))
		}
		return fmt.Errorf("entry is invalid")
	}

	parsedAmount, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	entry, err := store.InsertEntry(ctx, date, parsedAmount, notes)
	if err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s on %s",
		cli.Currency(currencyPrefix(), entry.Amount), entry.Date)))
	return nil
}
