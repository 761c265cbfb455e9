package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/khairulanwar/merci/internal/cli"
	"github.com/khairulanwar/merci/internal/export"
	"github.com/khairulanwar/merci/internal/model"
)

func backupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create and verify backup bundles",
	}

	cmd.AddCommand(backupCreateCmd())
	cmd.AddCommand(backupVerifyCmd())

	return cmd
}

func backupCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Snapshot every entry into a checksummed JSON bundle",
		Long: `Write every stored entry into a single JSON bundle with metadata
and a checksum over the entry data. The bundle can later be checked
with "merci backup verify".

Examples:
  merci backup create
  merci backup create --output sunday.json`,
		RunE: runBackupCreate,
	}

	cmd.Flags().StringP("output", "o", "", "output file (default: merci-backup-<date>.json)")

	return cmd
}

func runBackupCreate(cmd *cobra.Command, _ []string) error {
	output, _ := cmd.Flags().GetString("output")

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

	now := time.Now()
	bundle, err := export.CreateBackup(entries, now)
	if err != nil {
		return err
	}

	data, err := bundle.Marshal()
	if err != nil {
		return err
	}

	if output == "" {
		output = fmt.Sprintf("merci-backup-%s.json", now.Format(model.DateLayout))
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf(
		"Backup created successfully with %d entries: %s",
		bundle.Metadata.TotalEntries, output)))
	return nil
}

func backupVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <file.json>",
		Short: "Check a bundle's checksum and scan its entries",
		Long: `Re-verify a backup bundle: confirm the stored checksum matches the
entry data, then run the integrity scan over the entries it contains.

Examples:
  merci backup verify merci-backup-2024-06-01.json`,
		Args: cobra.ExactArgs(1),
		RunE: runBackupVerify,
	}
}

func runBackupVerify(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	bundle, err := export.ParseBackup(data)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf(
		"Checksum OK: %d entries from %s to %s",
		bundle.Metadata.TotalEntries,
		bundle.Metadata.DateRange.Earliest,
		bundle.Metadata.DateRange.Latest)))

	issues := export.VerifyIntegrity(bundle.Entries, time.Now())
	if len(issues) == 0 {
		fmt.Println(cli.FormatSuccess("No integrity issues found"))
		return nil
	}

	for _, issue := range issues {
		fmt.Println(cli.FormatWarning(issue))
	}
	return nil
}
