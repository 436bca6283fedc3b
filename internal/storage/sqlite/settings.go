// ABOUTME: Settings storage operations for SQLite
// ABOUTME: Implements the singleton preferences row (id = 1)
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/harper/habits/internal/models"
	"github.com/jmoiron/sqlx"
)

// settingsRow is the stored shape of the settings singleton
type settingsRow struct {
	LastActiveUserID sql.NullString `db:"last_active_user_id"`
	WeightUnit       string         `db:"weight_unit"`
	Theme            string         `db:"theme"`
	FirstDayOfWeek   int            `db:"first_day_of_week"`
}

func (r *settingsRow) toModel() models.Settings {
	s := models.Settings{
		WeightUnit:     models.WeightUnit(r.WeightUnit),
		Theme:          models.Theme(r.Theme),
		FirstDayOfWeek: r.FirstDayOfWeek,
	}
	if r.LastActiveUserID.Valid {
		id := r.LastActiveUserID.String
		s.LastActiveUserID = &id
	}
	return s
}

const settingsQuery = `
	SELECT last_active_user_id, weight_unit, theme, first_day_of_week
	FROM settings
	WHERE id = 1
`

// SettingsStore handles settings persistence
type SettingsStore struct {
	db *DB
}

// NewSettingsStore creates a new SettingsStore
func NewSettingsStore(db *DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Get returns the settings, falling back to defaults if the row is missing
func (s *SettingsStore) Get() (*models.Settings, error) {
	var row settingsRow
	err := s.db.Get(&row, settingsQuery)
	if errors.Is(err, sql.ErrNoRows) {
		defaults := models.DefaultSettings()
		return &defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}

	settings := row.toModel()
	return &settings, nil
}

// Update applies a sparse patch to the singleton row
func (s *SettingsStore) Update(patch models.SettingsPatch) (*models.Settings, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var settings models.Settings
	err := s.db.withTx(func(tx *sqlx.Tx) error {
		var row settingsRow
		err := tx.Get(&row, settingsQuery)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			settings = models.DefaultSettings()
		case err != nil:
			return err
		default:
			settings = row.toModel()
		}

		patch.Apply(&settings)

		var lastActive sql.NullString
		if settings.LastActiveUserID != nil {
			lastActive = nullString(*settings.LastActiveUserID)
		}

		_, err = tx.Exec(`
			INSERT INTO settings (id, last_active_user_id, weight_unit, theme, first_day_of_week)
			VALUES (1, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				last_active_user_id = excluded.last_active_user_id,
				weight_unit = excluded.weight_unit,
				theme = excluded.theme,
				first_day_of_week = excluded.first_day_of_week
		`, lastActive, string(settings.WeightUnit), string(settings.Theme), settings.FirstDayOfWeek)
		return translateError(err)
	})
	if err != nil {
		return nil, fmt.Errorf("update settings: %w", err)
	}

	return &settings, nil
}
