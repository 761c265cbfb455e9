package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khairulanwar/merci/internal/cli"
)

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to open storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := store.DeleteEntry(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to delete entry: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Entry deleted"))
			return nil
		},
	}
}
