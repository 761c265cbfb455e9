// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/khairulanwar/merci/internal/model"
)

// EntryUpdate is a partial update applied to a stored entry. Nil fields are
// left unchanged.
type EntryUpdate struct {
	Date   *string
	Amount *float64
	Notes  *string
}

// Storage defines the contract for the persistence layer. The pipeline never
// assumes a call succeeds: single-entry callers surface the error, batch
// callers record it and continue.
type Storage interface {
	ListEntries(ctx context.Context, limit int) ([]model.IncomeEntry, error)
	GetEntryByID(ctx context.Context, id string) (*model.IncomeEntry, error)
	InsertEntry(ctx context.Context, date string, amount float64, notes string) (*model.IncomeEntry, error)
	UpdateEntry(ctx context.Context, id string, update EntryUpdate) (*model.IncomeEntry, error)
	DeleteEntry(ctx context.Context, id string) error
	Close() error
}
