package model

import (
	"strings"
	"testing"
	"time"
)

var validationNow = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		input      EntryInput
		wantFields []string
	}{
		{
			name:       "valid entry",
			input:      EntryInput{Date: "2024-06-01", Amount: "150.50", Notes: "morning sales"},
			wantFields: nil,
		},
		{
			name:       "valid entry with empty notes",
			input:      EntryInput{Date: "2024-06-15", Amount: "0"},
			wantFields: nil,
		},
		{
			name:       "today is valid",
			input:      EntryInput{Date: "2024-06-15", Amount: "10"},
			wantFields: nil,
		},
		{
			name:       "missing date",
			input:      EntryInput{Amount: "50"},
			wantFields: []string{"date"},
		},
		{
			name:       "malformed date",
			input:      EntryInput{Date: "2024-13-45", Amount: "50"},
			wantFields: []string{"date"},
		},
		{
			name:       "future date rejected",
			input:      EntryInput{Date: "2024-06-16", Amount: "50"},
			wantFields: []string{"date"},
		},
		{
			name:       "missing amount",
			input:      EntryInput{Date: "2024-06-01"},
			wantFields: []string{"amount"},
		},
		{
			name:       "non-numeric amount",
			input:      EntryInput{Date: "2024-06-01", Amount: "fifty"},
			wantFields: []string{"amount"},
		},
		{
			name:       "negative amount",
			input:      EntryInput{Date: "2024-06-01", Amount: "-5"},
			wantFields: []string{"amount"},
		},
		{
			name:       "amount over limit",
			input:      EntryInput{Date: "2024-06-01", Amount: "1000000"},
			wantFields: []string{"amount"},
		},
		{
			name:       "amount at limit is valid",
			input:      EntryInput{Date: "2024-06-01", Amount: "999999.99"},
			wantFields: nil,
		},
		{
			name:       "notes too long",
			input:      EntryInput{Date: "2024-06-01", Amount: "50", Notes: strings.Repeat("x", 501)},
			wantFields: []string{"notes"},
		},
		{
			name:       "notes at limit is valid",
			input:      EntryInput{Date: "2024-06-01", Amount: "50", Notes: strings.Repeat("x", 500)},
			wantFields: nil,
		},
		{
			name:       "all fields invalid collects every violation",
			input:      EntryInput{Date: "not-a-date", Amount: "abc", Notes: strings.Repeat("x", 501)},
			wantFields: []string{"date", "amount", "notes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate(tt.input, validationNow)
			if len(errs) != len(tt.wantFields) {
				t.Fatalf("got %d errors %v, want %d", len(errs), errs, len(tt.wantFields))
			}
			for i, field := range tt.wantFields {
				if errs[i].Field != field {
					t.Errorf("error %d: got field %q, want %q", i, errs[i].Field, field)
				}
				if errs[i].Message == "" {
					t.Errorf("error %d: empty message", i)
				}
			}
		})
	}
}

func TestValidateNotesCountsRunes(t *testing.T) {
	// 500 multibyte characters are within the limit even though the byte
	// count is far larger.
	input := EntryInput{Date: "2024-06-01", Amount: "50", Notes: strings.Repeat("日", 500)}
	if errs := Validate(input, validationNow); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}
