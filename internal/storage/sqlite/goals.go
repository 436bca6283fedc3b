// ABOUTME: Goal storage operations for SQLite
// ABOUTME: Implements CRUD and active-goal queries for a user's habits
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harper/habits/internal/models"
	"github.com/jmoiron/sqlx"
)

const goalColumns = `id, user_id, name, type, frequency, target_value, unit, is_active, created_at, updated_at`

// goalRow is the stored shape of a goal
type goalRow struct {
	ID          string          `db:"id"`
	UserID      string          `db:"user_id"`
	Name        string          `db:"name"`
	Type        string          `db:"type"`
	Frequency   string          `db:"frequency"`
	TargetValue sql.NullFloat64 `db:"target_value"`
	Unit        sql.NullString  `db:"unit"`
	IsActive    bool            `db:"is_active"`
	CreatedAt   string          `db:"created_at"`
	UpdatedAt   string          `db:"updated_at"`
}

func (r *goalRow) toModel() models.Goal {
	return models.Goal{
		ID:          r.ID,
		UserID:      r.UserID,
		Name:        r.Name,
		Type:        models.GoalType(r.Type),
		Frequency:   models.Frequency(r.Frequency),
		TargetValue: floatPtr(r.TargetValue),
		Unit:        r.Unit.String,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func goalsFromRows(rows []goalRow) []models.Goal {
	goals := make([]models.Goal, 0, len(rows))
	for i := range rows {
		goals = append(goals, rows[i].toModel())
	}
	return goals
}

// GoalStore handles goal persistence
type GoalStore struct {
	db  *DB
	now func() time.Time
}

// NewGoalStore creates a new GoalStore. A nil clock means time.Now.
func NewGoalStore(db *DB, now func() time.Time) *GoalStore {
	if now == nil {
		now = time.Now
	}
	return &GoalStore{db: db, now: now}
}

// ListByUser returns all of a user's goals, oldest first
func (s *GoalStore) ListByUser(userID string) ([]models.Goal, error) {
	var rows []goalRow
	if err := s.db.Select(&rows, `
		SELECT `+goalColumns+`
		FROM goals
		WHERE user_id = ?
		ORDER BY created_at, id
	`, userID); err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goalsFromRows(rows), nil
}

// ListActiveByUser returns the goals that currently count toward completion
func (s *GoalStore) ListActiveByUser(userID string) ([]models.Goal, error) {
	var rows []goalRow
	if err := s.db.Select(&rows, `
		SELECT `+goalColumns+`
		FROM goals
		WHERE user_id = ? AND is_active = 1
		ORDER BY created_at, id
	`, userID); err != nil {
		return nil, fmt.Errorf("list active goals: %w", err)
	}
	return goalsFromRows(rows), nil
}

// Get retrieves a goal by ID, returning nil if not found
func (s *GoalStore) Get(id string) (*models.Goal, error) {
	var row goalRow
	err := s.db.Get(&row, `SELECT `+goalColumns+` FROM goals WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}

	goal := row.toModel()
	return &goal, nil
}

// Create inserts a goal for an existing user
func (s *GoalStore) Create(in models.NewGoalInput) (*models.Goal, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	stamp := models.FormatTimestamp(s.now())
	goal := models.Goal{
		ID:          models.NewID(models.GoalIDPrefix),
		UserID:      in.UserID,
		Name:        strings.TrimSpace(in.Name),
		Type:        in.Type,
		Frequency:   in.Frequency,
		TargetValue: in.TargetValue,
		Unit:        in.Unit,
		IsActive:    in.Active(),
		CreatedAt:   stamp,
		UpdatedAt:   stamp,
	}

	if err := insertGoal(s.db.Conn(), &goal); err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}
	return &goal, nil
}

// Update applies a sparse patch and bumps updated_at
func (s *GoalStore) Update(id string, patch models.GoalPatch) (*models.Goal, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var goal models.Goal
	err := s.db.withTx(func(tx *sqlx.Tx) error {
		var row goalRow
		err := tx.Get(&row, `SELECT `+goalColumns+` FROM goals WHERE id = ?`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("goal %s: %w", id, models.ErrNotFound)
		}
		if err != nil {
			return err
		}

		goal = row.toModel()
		patch.Apply(&goal)
		goal.UpdatedAt = models.FormatTimestamp(s.now())

		_, err = tx.Exec(`
			UPDATE goals
			SET name = ?, type = ?, frequency = ?, target_value = ?, unit = ?, is_active = ?, updated_at = ?
			WHERE id = ?
		`, goal.Name, string(goal.Type), string(goal.Frequency), nullFloat(goal.TargetValue),
			nullString(goal.Unit), goal.IsActive, goal.UpdatedAt, id)
		return translateError(err)
	})
	if err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}

	return &goal, nil
}

// Delete removes a goal; its daily logs cascade
func (s *GoalStore) Delete(id string) error {
	result, err := s.db.Exec(`DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return requireAffected(result, "goal", id)
}

// insertGoal writes a fully built goal using either the DB or a transaction
func insertGoal(ex sqlx.Execer, g *models.Goal) error {
	_, err := ex.Exec(`
		INSERT INTO goals (`+goalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, g.ID, g.UserID, g.Name, string(g.Type), string(g.Frequency), nullFloat(g.TargetValue),
		nullString(g.Unit), g.IsActive, g.CreatedAt, g.UpdatedAt)
	return translateError(err)
}
