// ABOUTME: Weight entry storage operations for SQLite
// ABOUTME: One entry per (user, date); adding again replaces the earlier entry
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/harper/habits/internal/models"
)

const weightColumns = `id, user_id, date, weight, unit, notes, created_at`

// weightRow is the stored shape of a weight entry
type weightRow struct {
	ID        string         `db:"id"`
	UserID    string         `db:"user_id"`
	Date      string         `db:"date"`
	Weight    float64        `db:"weight"`
	Unit      string         `db:"unit"`
	Notes     sql.NullString `db:"notes"`
	CreatedAt string         `db:"created_at"`
}

func (r *weightRow) toModel() models.WeightEntry {
	return models.WeightEntry{
		ID:        r.ID,
		UserID:    r.UserID,
		Date:      r.Date,
		Weight:    r.Weight,
		Unit:      models.WeightUnit(r.Unit),
		Notes:     r.Notes.String,
		CreatedAt: r.CreatedAt,
	}
}

// WeightStore handles weight entry persistence
type WeightStore struct {
	db  *DB
	now func() time.Time
}

// NewWeightStore creates a new WeightStore. A nil clock means time.Now.
func NewWeightStore(db *DB, now func() time.Time) *WeightStore {
	if now == nil {
		now = time.Now
	}
	return &WeightStore{db: db, now: now}
}

// List returns a user's entries newest first. Empty bounds are open.
func (s *WeightStore) List(userID, startDate, endDate string) ([]models.WeightEntry, error) {
	query := `SELECT ` + weightColumns + ` FROM weight_entries WHERE user_id = ?`
	args := []interface{}{userID}

	if strings.TrimSpace(startDate) != "" {
		if _, err := models.ParseDate(startDate); err != nil {
			return nil, err
		}
		query += ` AND date >= ?`
		args = append(args, startDate)
	}
	if strings.TrimSpace(endDate) != "" {
		if _, err := models.ParseDate(endDate); err != nil {
			return nil, err
		}
		query += ` AND date <= ?`
		args = append(args, endDate)
	}
	query += ` ORDER BY date DESC`

	var rows []weightRow
	if err := s.db.Select(&rows, query, args...); err != nil {
		return nil, fmt.Errorf("list weight entries: %w", err)
	}

	entries := make([]models.WeightEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, rows[i].toModel())
	}
	return entries, nil
}

// Add records a weigh-in, replacing any entry for the same user and date
func (s *WeightStore) Add(in models.NewWeightEntryInput) (*models.WeightEntry, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	entry := models.WeightEntry{
		ID:        models.NewID(models.WeightIDPrefix),
		UserID:    in.UserID,
		Date:      strings.TrimSpace(in.Date),
		Weight:    in.Weight,
		Unit:      in.Unit,
		Notes:     in.Notes,
		CreatedAt: models.FormatTimestamp(s.now()),
	}

	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO weight_entries (`+weightColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.UserID, entry.Date, entry.Weight, string(entry.Unit),
		nullString(entry.Notes), entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("add weight entry: %w", translateError(err))
	}

	return &entry, nil
}

// Delete removes a weight entry
func (s *WeightStore) Delete(id string) error {
	result, err := s.db.Exec(`DELETE FROM weight_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete weight entry: %w", err)
	}
	return requireAffected(result, "weight entry", id)
}
