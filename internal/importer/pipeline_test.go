package importer

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khairulanwar/merci/internal/model"
	"github.com/khairulanwar/merci/internal/service"
)

var importNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

// mockStorage is an in-memory service.Storage with per-date failure injection.
type mockStorage struct {
	entries  []model.IncomeEntry
	failDate string
}

func (m *mockStorage) ListEntries(_ context.Context, _ int) ([]model.IncomeEntry, error) {
	return m.entries, nil
}

func (m *mockStorage) GetEntryByID(_ context.Context, id string) (*model.IncomeEntry, error) {
	for i := range m.entries {
		if m.entries[i].ID == id {
			return &m.entries[i], nil
		}
	}
	return nil, fmt.Errorf("entry not found: %s", id)
}

func (m *mockStorage) InsertEntry(_ context.Context, date string, amount float64, notes string) (*model.IncomeEntry, error) {
	if date == m.failDate {
		return nil, fmt.Errorf("simulated insert failure for %s", date)
	}
	entry := model.IncomeEntry{
		ID:     uuid.NewString(),
		Date:   date,
		Amount: amount,
		Notes:  notes,
	}
	m.entries = append(m.entries, entry)
	return &entry, nil
}

func (m *mockStorage) UpdateEntry(_ context.Context, id string, _ service.EntryUpdate) (*model.IncomeEntry, error) {
	return nil, fmt.Errorf("not implemented: %s", id)
}

func (m *mockStorage) DeleteEntry(_ context.Context, id string) error {
	return fmt.Errorf("not implemented: %s", id)
}

func (m *mockStorage) Close() error { return nil }

func TestValidateRows(t *testing.T) {
	rows := []ParsedRow{
		{Line: 1, Date: "2024-06-01", Amount: "RM 150.00", Notes: "stall"},
		{Line: 2, Date: "2024-13-45", Amount: "50"},
		{Line: 3, Date: "2024-06-02", Amount: "abc"},
		{Line: 4, Date: "2024/06/03", Amount: "75.50"},
	}

	candidates, errs := ValidateRows(rows, importNow)

	require.Len(t, candidates, 2)
	assert.Equal(t, "2024-06-01", candidates[0].Date)
	assert.InDelta(t, 150, candidates[0].Amount, 0.001)
	assert.Equal(t, "stall", candidates[0].Notes)
	// Normalization canonicalizes the slash form before validation.
	assert.Equal(t, "2024-06-03", candidates[1].Date)

	require.Len(t, errs, 2)
	assert.Equal(t, 2, errs[0].Row)
	assert.Equal(t, "date", errs[0].Field)
	assert.Contains(t, errs[0].Message, "Invalid date format")
	assert.Equal(t, 3, errs[1].Row)
	assert.Equal(t, "amount", errs[1].Field)
}

func TestValidateRowsCollectsAllViolationsPerRow(t *testing.T) {
	rows := []ParsedRow{
		{Line: 1, Date: "bogus", Amount: "???", Notes: strings.Repeat("x", 501)},
	}

	candidates, errs := ValidateRows(rows, importNow)

	assert.Empty(t, candidates)
	require.Len(t, errs, 3)
	for _, e := range errs {
		assert.Equal(t, 1, e.Row)
	}
}

func TestDetectDuplicates(t *testing.T) {
	existing := []model.IncomeEntry{
		{ID: "x", Date: "2024-01-01", Amount: 50},
	}
	candidates := []Candidate{
		{Date: "2024-01-01", Amount: 50, Row: 1},
		{Date: "2024-01-01", Amount: 60, Row: 2},
		{Date: "2024-01-02", Amount: 50, Row: 3},
	}

	assert.Equal(t, 1, DetectDuplicates(candidates, existing))
}

func TestCommitIsolatesFailures(t *testing.T) {
	store := &mockStorage{failDate: "2024-06-02"}
	candidates := []Candidate{
		{Date: "2024-06-01", Amount: 10, Row: 1},
		{Date: "2024-06-02", Amount: 20, Row: 2},
		{Date: "2024-06-03", Amount: 30, Row: 3},
	}

	imported, errs := Commit(context.Background(), candidates, store, nil)

	assert.Equal(t, 2, imported)
	require.Len(t, errs, 1)
	assert.Equal(t, 2, errs[0].Row)
	assert.Contains(t, errs[0].Message, "failed to save entry")

	// The failure did not reorder or skip later entries.
	require.Len(t, store.entries, 2)
	assert.Equal(t, "2024-06-01", store.entries[0].Date)
	assert.Equal(t, "2024-06-03", store.entries[1].Date)
}

func TestCommitStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := &mockStorage{}
	candidates := []Candidate{{Date: "2024-06-01", Amount: 10, Row: 1}}

	imported, errs := Commit(ctx, candidates, store, nil)

	assert.Zero(t, imported)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Message, "cancelled")
	assert.Empty(t, store.entries)
}

func TestCommitReportsProgress(t *testing.T) {
	store := &mockStorage{}
	candidates := []Candidate{
		{Date: "2024-06-01", Amount: 10, Row: 1},
		{Date: "2024-06-02", Amount: 20, Row: 2},
	}

	var calls []int
	_, _ = Commit(context.Background(), candidates, store, func(done, total int) {
		assert.Equal(t, 2, total)
		calls = append(calls, done)
	})

	assert.Equal(t, []int{1, 2}, calls)
}

func TestRunEndToEnd(t *testing.T) {
	store := &mockStorage{
		entries: []model.IncomeEntry{{ID: "x", Date: "2024-06-01", Amount: 150}},
	}

	csv := strings.Join([]string{
		"Date,Amount,Notes",
		"2024-06-01,RM 150.00,repeat sale", // duplicate pair, still imported
		"2024-06-02,60.25,",
		"not-a-date,10,bad row",
	}, "\n")

	result, err := Run(context.Background(), strings.NewReader(csv), store, importNow, nil)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 1, result.Duplicates)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].Row)

	// Duplicates are warned about, never dropped.
	require.Len(t, store.entries, 3)
}

func TestRunFailsOnBrokenTable(t *testing.T) {
	store := &mockStorage{}

	_, err := Run(context.Background(), strings.NewReader("nope\n"), store, importNow, nil)

	assert.Error(t, err)
	assert.Empty(t, store.entries)
}
