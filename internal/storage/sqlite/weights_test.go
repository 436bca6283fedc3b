// ABOUTME: Tests for weight entry storage operations
// ABOUTME: Verifies replace-on-conflict, open-ended ranges, and deletes
package sqlite

import (
	"errors"
	"testing"

	"github.com/harper/habits/internal/models"
)

func TestAddWeightEntryReplacesSameDate(t *testing.T) {
	store := newTestStorage(t)
	user, _ := createTestUser(t, store, "Ada", "Lovelace")

	first, err := store.AddWeightEntry(models.NewWeightEntryInput{
		UserID: user.ID, Date: "2024-06-01", Weight: 150, Unit: models.UnitLbs, Notes: "morning",
	})
	if err != nil {
		t.Fatalf("AddWeightEntry() error = %v", err)
	}
	second, err := store.AddWeightEntry(models.NewWeightEntryInput{
		UserID: user.ID, Date: "2024-06-01", Weight: 68.2, Unit: models.UnitKg,
	})
	if err != nil {
		t.Fatalf("AddWeightEntry() second error = %v", err)
	}
	if first.ID == second.ID {
		t.Error("replacement should carry a new id")
	}

	entries, err := store.GetWeightEntries(user.ID, "", "")
	if err != nil {
		t.Fatalf("GetWeightEntries() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0] != *second {
		t.Errorf("stored = %+v, want %+v", entries[0], *second)
	}
	if entries[0].Notes != "" {
		t.Errorf("Notes = %q, want replaced with empty", entries[0].Notes)
	}
}

func TestGetWeightEntriesRanges(t *testing.T) {
	store := newTestStorage(t)
	user, _ := createTestUser(t, store, "Ada", "Lovelace")

	for i, d := range []string{"2024-05-01", "2024-06-01", "2024-07-01"} {
		if _, err := store.AddWeightEntry(models.NewWeightEntryInput{
			UserID: user.ID, Date: d, Weight: 150 - float64(i), Unit: models.UnitLbs,
		}); err != nil {
			t.Fatalf("AddWeightEntry(%s) error = %v", d, err)
		}
	}

	tests := []struct {
		name       string
		start, end string
		want       []string
	}{
		{"open", "", "", []string{"2024-07-01", "2024-06-01", "2024-05-01"}},
		{"from", "2024-06-01", "", []string{"2024-07-01", "2024-06-01"}},
		{"until", "", "2024-06-01", []string{"2024-06-01", "2024-05-01"}},
		{"between", "2024-05-15", "2024-06-15", []string{"2024-06-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := store.GetWeightEntries(user.ID, tt.start, tt.end)
			if err != nil {
				t.Fatalf("GetWeightEntries() error = %v", err)
			}
			if len(entries) != len(tt.want) {
				t.Fatalf("count = %d, want %d", len(entries), len(tt.want))
			}
			for i, d := range tt.want {
				if entries[i].Date != d {
					t.Errorf("entries[%d].Date = %v, want %v", i, entries[i].Date, d)
				}
			}
		})
	}
}

func TestAddWeightEntryRejections(t *testing.T) {
	store := newTestStorage(t)
	user, _ := createTestUser(t, store, "Ada", "Lovelace")

	tests := []struct {
		name    string
		in      models.NewWeightEntryInput
		wantErr error
	}{
		{"zero weight", models.NewWeightEntryInput{UserID: user.ID, Date: "2024-06-01", Weight: 0, Unit: models.UnitKg}, models.ErrInvalidInput},
		{"bad unit", models.NewWeightEntryInput{UserID: user.ID, Date: "2024-06-01", Weight: 70, Unit: "stone"}, models.ErrInvalidInput},
		{"unknown user", models.NewWeightEntryInput{UserID: "user_missing", Date: "2024-06-01", Weight: 70, Unit: models.UnitKg}, models.ErrReferentialViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.AddWeightEntry(tt.in); !errors.Is(err, tt.wantErr) {
				t.Errorf("AddWeightEntry() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDeleteWeightEntry(t *testing.T) {
	store := newTestStorage(t)
	user, _ := createTestUser(t, store, "Ada", "Lovelace")

	entry, err := store.AddWeightEntry(models.NewWeightEntryInput{
		UserID: user.ID, Date: "2024-06-01", Weight: 150, Unit: models.UnitLbs,
	})
	if err != nil {
		t.Fatalf("AddWeightEntry() error = %v", err)
	}

	if err := store.DeleteWeightEntry(entry.ID); err != nil {
		t.Fatalf("DeleteWeightEntry() error = %v", err)
	}
	if err := store.DeleteWeightEntry(entry.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("second DeleteWeightEntry() error = %v, want ErrNotFound", err)
	}

	entries, _ := store.GetWeightEntries(user.ID, "", "")
	if len(entries) != 0 {
		t.Errorf("entries after delete = %d, want 0", len(entries))
	}
}
