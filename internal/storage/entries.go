package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/khairulanwar/merci/internal/common"
	"github.com/khairulanwar/merci/internal/model"
	"github.com/khairulanwar/merci/internal/service"
)

// ListEntries returns entries ordered newest first. A limit <= 0 returns
// every entry.
func (s *SQLiteStorage) ListEntries(ctx context.Context, limit int) ([]model.IncomeEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, date, amount, notes, created_at, updated_at
		FROM daily_income
		ORDER BY date DESC, created_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.IncomeEntry
	for rows.Next() {
		entry, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	return entries, nil
}

// GetEntryByID retrieves a single entry.
func (s *SQLiteStorage) GetEntryByID(ctx context.Context, id string) (*model.IncomeEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, date, amount, notes, created_at, updated_at
		FROM daily_income
		WHERE id = ?`, id)

	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// InsertEntry persists a new entry, assigning its ID and timestamps.
func (s *SQLiteStorage) InsertEntry(ctx context.Context, date string, amount float64, notes string) (*model.IncomeEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(date, "date"); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := &model.IncomeEntry{
		ID:        uuid.NewString(),
		Date:      date,
		Amount:    amount,
		Notes:     notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO daily_income (id, date, amount, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Date, entry.Amount, nullableNotes(entry.Notes), entry.CreatedAt, entry.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert entry: %w", err)
	}

	return entry, nil
}

// UpdateEntry applies a partial update and returns the stored result.
func (s *SQLiteStorage) UpdateEntry(ctx context.Context, id string, update service.EntryUpdate) (*model.IncomeEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	entry, err := s.GetEntryByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Date != nil {
		entry.Date = *update.Date
	}
	if update.Amount != nil {
		entry.Amount = *update.Amount
	}
	if update.Notes != nil {
		entry.Notes = *update.Notes
	}
	entry.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE daily_income
		SET date = ?, amount = ?, notes = ?, updated_at = ?
		WHERE id = ?`,
		entry.Date, entry.Amount, nullableNotes(entry.Notes), entry.UpdatedAt, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update entry %s: %w", id, err)
	}

	return entry, nil
}

// DeleteEntry removes an entry by ID.
func (s *SQLiteStorage) DeleteEntry(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM daily_income WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", common.ErrNotFound, id)
	}

	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*model.IncomeEntry, error) {
	var entry model.IncomeEntry
	var notes sql.NullString

	err := row.Scan(&entry.ID, &entry.Date, &entry.Amount, &notes, &entry.CreatedAt, &entry.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan entry: %w", err)
	}

	if notes.Valid {
		entry.Notes = notes.String
	}
	return &entry, nil
}

func nullableNotes(notes string) any {
	if notes == "" {
		return nil
	}
	return notes
}
