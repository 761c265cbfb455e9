package export

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/khairulanwar/merci/internal/common"
	"github.com/khairulanwar/merci/internal/model"
)

// BackupVersion identifies the bundle format.
const BackupVersion = "1.0.0"

// BackupDateRange bounds the entries inside a bundle.
type BackupDateRange struct {
	Earliest string `json:"earliest"`
	Latest   string `json:"latest"`
}

// BackupMetadata is the self-describing header of a bundle.
type BackupMetadata struct {
	Version      string          `json:"version"`
	Timestamp    string          `json:"timestamp"`
	TotalEntries int             `json:"totalEntries"`
	DateRange    BackupDateRange `json:"dateRange"`
	TotalAmount  float64         `json:"totalAmount"`
}

// BackupBundle is a checksum-verified snapshot of every entry. Entries are
// sorted by date ascending so identical data always serializes identically.
type BackupBundle struct {
	Metadata BackupMetadata      `json:"metadata"`
	Entries  []model.IncomeEntry `json:"entries"`
	Checksum string              `json:"checksum"`
}

// CreateBackup builds a bundle from the given entries. The checksum covers
// the serialized entry array: re-serializing identical data reproduces it,
// which is what restore verification relies on. Not a cryptographic
// guarantee, an integrity one.
func CreateBackup(entries []model.IncomeEntry, now time.Time) (*BackupBundle, error) {
	if len(entries) == 0 {
		return nil, common.NewUserError("No data available to backup", nil)
	}

	sorted := make([]model.IncomeEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	var totalAmount float64
	for _, entry := range sorted {
		totalAmount += entry.Amount
	}

	checksum, err := entriesChecksum(sorted)
	if err != nil {
		return nil, err
	}

	return &BackupBundle{
		Metadata: BackupMetadata{
			Version:      BackupVersion,
			Timestamp:    now.UTC().Format(time.RFC3339),
			TotalEntries: len(sorted),
			DateRange: BackupDateRange{
				Earliest: sorted[0].Date,
				Latest:   sorted[len(sorted)-1].Date,
			},
			TotalAmount: totalAmount,
		},
		Entries:  sorted,
		Checksum: checksum,
	}, nil
}

// Marshal serializes the bundle as indented JSON.
func (b *BackupBundle) Marshal() ([]byte, error) {
	out, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal backup: %w", err)
	}
	return out, nil
}

// ParseBackup reads a bundle and re-verifies its checksum before the entries
// can be trusted. A malformed file is a single top-level failure.
func ParseBackup(data []byte) (*BackupBundle, error) {
	var bundle BackupBundle
	if err := json.Unmarshal(data, &bundle); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedBackup, err)
	}

	checksum, err := entriesChecksum(bundle.Entries)
	if err != nil {
		return nil, err
	}
	if checksum != bundle.Checksum {
		return nil, fmt.Errorf("%w: stored %s, computed %s",
			common.ErrChecksumMismatch, bundle.Checksum, checksum)
	}

	return &bundle, nil
}

func entriesChecksum(entries []model.IncomeEntry) (string, error) {
	serialized, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("failed to serialize entries for checksum: %w", err)
	}
	sum := sha256.Sum256(serialized)
	return fmt.Sprintf("%x", sum), nil
}
