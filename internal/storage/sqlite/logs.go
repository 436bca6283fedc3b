// ABOUTME: Daily log storage operations for SQLite
// ABOUTME: Toggle is an atomic insert-or-flip keyed on (user, goal, date)
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harper/habits/internal/models"
	"github.com/jmoiron/sqlx"
)

const logColumns = `id, user_id, goal_id, date, completed, value, notes, created_at, updated_at`

// logRow is the stored shape of a daily log
type logRow struct {
	ID        string          `db:"id"`
	UserID    string          `db:"user_id"`
	GoalID    string          `db:"goal_id"`
	Date      string          `db:"date"`
	Completed bool            `db:"completed"`
	Value     sql.NullFloat64 `db:"value"`
	Notes     sql.NullString  `db:"notes"`
	CreatedAt string          `db:"created_at"`
	UpdatedAt string          `db:"updated_at"`
}

func (r *logRow) toModel() models.DailyLog {
	return models.DailyLog{
		ID:        r.ID,
		UserID:    r.UserID,
		GoalID:    r.GoalID,
		Date:      r.Date,
		Completed: r.Completed,
		Value:     floatPtr(r.Value),
		Notes:     r.Notes.String,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// LogStore handles daily log persistence
type LogStore struct {
	db  *DB
	now func() time.Time
}

// NewLogStore creates a new LogStore. A nil clock means time.Now.
func NewLogStore(db *DB, now func() time.Time) *LogStore {
	if now == nil {
		now = time.Now
	}
	return &LogStore{db: db, now: now}
}

// ListByUser returns a user's logs between start and end inclusive, newest first
func (s *LogStore) ListByUser(userID, startDate, endDate string) ([]models.DailyLog, error) {
	if _, err := models.ParseDate(startDate); err != nil {
		return nil, err
	}
	if _, err := models.ParseDate(endDate); err != nil {
		return nil, err
	}

	var rows []logRow
	if err := s.db.Select(&rows, `
		SELECT `+logColumns+`
		FROM daily_logs
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date DESC, created_at
	`, userID, startDate, endDate); err != nil {
		return nil, fmt.Errorf("list daily logs: %w", err)
	}

	logs := make([]models.DailyLog, 0, len(rows))
	for i := range rows {
		logs = append(logs, rows[i].toModel())
	}
	return logs, nil
}

// GetForDate returns the log for a (user, goal, date) triple, or nil
func (s *LogStore) GetForDate(userID, goalID, date string) (*models.DailyLog, error) {
	var row logRow
	err := s.db.Get(&row, `
		SELECT `+logColumns+`
		FROM daily_logs
		WHERE user_id = ? AND goal_id = ? AND date = ?
	`, userID, goalID, date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get daily log: %w", err)
	}

	log := row.toModel()
	return &log, nil
}

// Toggle creates a completed log for the triple, or flips the existing one
func (s *LogStore) Toggle(userID, goalID, date string) (*models.DailyLog, error) {
	if _, err := models.ParseDate(date); err != nil {
		return nil, err
	}

	var log models.DailyLog
	err := s.db.withTx(func(tx *sqlx.Tx) error {
		if err := checkGoalOwner(tx, userID, goalID); err != nil {
			return err
		}

		stamp := models.FormatTimestamp(s.now())
		if _, err := tx.Exec(`
			INSERT INTO daily_logs (id, user_id, goal_id, date, completed, created_at, updated_at)
			VALUES (?, ?, ?, ?, 1, ?, ?)
			ON CONFLICT(user_id, goal_id, date) DO UPDATE SET
				completed = NOT daily_logs.completed,
				updated_at = excluded.updated_at
		`, models.NewID(models.LogIDPrefix), userID, goalID, date, stamp, stamp); err != nil {
			return translateError(err)
		}

		var row logRow
		if err := tx.Get(&row, `
			SELECT `+logColumns+`
			FROM daily_logs
			WHERE user_id = ? AND goal_id = ? AND date = ?
		`, userID, goalID, date); err != nil {
			return err
		}
		log = row.toModel()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("toggle daily log: %w", err)
	}

	return &log, nil
}

// Update applies a sparse patch and bumps updated_at
func (s *LogStore) Update(id string, patch models.DailyLogPatch) (*models.DailyLog, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var log models.DailyLog
	err := s.db.withTx(func(tx *sqlx.Tx) error {
		var row logRow
		err := tx.Get(&row, `SELECT `+logColumns+` FROM daily_logs WHERE id = ?`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("daily log %s: %w", id, models.ErrNotFound)
		}
		if err != nil {
			return err
		}

		log = row.toModel()
		patch.Apply(&log)
		log.UpdatedAt = models.FormatTimestamp(s.now())

		_, err = tx.Exec(`
			UPDATE daily_logs
			SET completed = ?, value = ?, notes = ?, updated_at = ?
			WHERE id = ?
		`, log.Completed, nullFloat(log.Value), nullString(log.Notes), log.UpdatedAt, id)
		return translateError(err)
	})
	if err != nil {
		return nil, fmt.Errorf("update daily log: %w", err)
	}

	return &log, nil
}

// CompletedDates returns the dates a goal was completed, newest first
func (s *LogStore) CompletedDates(goalID string) ([]string, error) {
	var dates []string
	if err := s.db.Select(&dates, `
		SELECT date
		FROM daily_logs
		WHERE goal_id = ? AND completed = 1
		ORDER BY date DESC
	`, goalID); err != nil {
		return nil, fmt.Errorf("list completed dates: %w", err)
	}
	return dates, nil
}

// checkGoalOwner rejects logging a goal under a user who does not own it.
// A missing goal is left for the foreign key to reject.
func checkGoalOwner(tx *sqlx.Tx, userID, goalID string) error {
	var owner string
	err := tx.Get(&owner, `SELECT user_id FROM goals WHERE id = ?`, goalID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	if owner != userID {
		return fmt.Errorf("%w: goal %s does not belong to user %s", models.ErrInvalidInput, goalID, userID)
	}
	return nil
}
