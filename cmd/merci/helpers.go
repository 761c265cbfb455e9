package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/khairulanwar/merci/internal/config"
	"github.com/khairulanwar/merci/internal/model"
	"github.com/khairulanwar/merci/internal/service"
	"github.com/khairulanwar/merci/internal/storage"
)

// initStorage opens the configured database and brings its schema up to date.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDBPath
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// currencyPrefix returns the configured currency prefix for display output.
func currencyPrefix() string {
	prefix := viper.GetString("currency.prefix")
	if prefix == "" {
		prefix = "RM"
	}
	return prefix
}

// validateDateFlag checks an optional date flag is in canonical form.
func validateDateFlag(value, flagName string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(model.DateLayout, value); err != nil {
		return fmt.Errorf("invalid --%s %q: expected YYYY-MM-DD", flagName, value)
	}
	return nil
}
