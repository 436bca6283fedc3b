// ABOUTME: User profile storage operations for SQLite
// ABOUTME: Creates profiles with their default goal and keeps display names in sync
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

const userColumns = `id, name, first_name, last_name, birthday, profile_photo, avatar_color, created_at`

// userRow is the stored shape of a user
type userRow struct {
	ID           string         `db:"id"`
	Name         string         `db:"name"`
	FirstName    sql.NullString `db:"first_name"`
	LastName     sql.NullString `db:"last_name"`
	Birthday     sql.NullString `db:"birthday"`
	ProfilePhoto sql.NullString `db:"profile_photo"`
	AvatarColor  string         `db:"avatar_color"`
	CreatedAt    string         `db:"created_at"`
}

func (r *userRow) toModel() models.User {
	return models.User{
		ID:           r.ID,
		Name:         r.Name,
		FirstName:    r.FirstName.String,
		LastName:     r.LastName.String,
		Birthday:     r.Birthday.String,
		ProfilePhoto: r.ProfilePhoto.String,
		AvatarColor:  r.AvatarColor,
		CreatedAt:    r.CreatedAt,
	}
}

// UserStore handles user persistence
type UserStore struct {
	db  *DB
	now func() time.Time
}

// NewUserStore creates a new UserStore. A nil clock means time.Now.
func NewUserStore(db *DB, now func() time.Time) *UserStore {
	if now == nil {
		now = time.Now
	}
	return &UserStore{db: db, now: now}
}

// List returns all users, oldest first
func (s *UserStore) List() ([]models.User, error) {
	var rows []userRow
	if err := s.db.Select(&rows, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]models.User, 0, len(rows))
	for i := range rows {
		users = append(users, rows[i].toModel())
	}
	return users, nil
}

// Get retrieves a user by ID, returning nil if not found
func (s *UserStore) Get(id string) (*models.User, error) {
	var row userRow
	err := s.db.Get(&row, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	user := row.toModel()
	return &user, nil
}

// Create inserts a user together with a default daily Workout goal
func (s *UserStore) Create(in models.NewUserInput) (*models.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	stamp := models.FormatTimestamp(s.now())
	user := models.User{
		ID:           models.NewID(models.UserIDPrefix),
		Name:         models.DisplayName(in.FirstName, in.LastName),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Birthday:     in.Birthday,
		ProfilePhoto: in.ProfilePhoto,
		AvatarColor:  strings.TrimSpace(in.AvatarColor),
		CreatedAt:    stamp,
	}
	workout := models.Goal{
		ID:        models.NewID(models.GoalIDPrefix),
		UserID:    user.ID,
		Name:      models.DefaultGoalName,
		Type:      models.GoalWorkout,
		Frequency: models.FrequencyDaily,
		IsActive:  true,
		CreatedAt: stamp,
		UpdatedAt: stamp,
	}

	err := s.db.withTx(func(tx *sqlx.Tx) error {
		if _, err := tx.Exec(`
			INSERT INTO users (`+userColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, user.ID, user.Name, nullString(user.FirstName), nullString(user.LastName),
			nullString(user.Birthday), nullString(user.ProfilePhoto), user.AvatarColor, user.CreatedAt); err != nil {
			return translateError(err)
		}
		return insertGoal(tx, &workout)
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &user, nil
}

// Update applies a sparse patch. Changing either name half recomputes the
// display name from the resulting first and last name in the same write.
func (s *UserStore) Update(id string, patch models.UserPatch) (*models.User, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	var user models.User
	err := s.db.withTx(func(tx *sqlx.Tx) error {
		var row userRow
		err := tx.Get(&row, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("user %s: %w", id, models.ErrNotFound)
		}
		if err != nil {
			return err
		}

		user = row.toModel()
		patch.Apply(&user)
		if err := user.CheckName(); err != nil {
			return err
		}

		_, err = tx.Exec(`
			UPDATE users
			SET name = ?, first_name = ?, last_name = ?, birthday = ?, profile_photo = ?, avatar_color = ?
			WHERE id = ?
		`, user.Name, nullString(user.FirstName), nullString(user.LastName),
			nullString(user.Birthday), nullString(user.ProfilePhoto), user.AvatarColor, id)
		return translateError(err)
	})
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	return &user, nil
}

// Delete removes a user. Goals, logs, and weight entries go with it through
// ON DELETE CASCADE; settings.last_active_user_id is nulled.
func (s *UserStore) Delete(id string) error {
	result, err := s.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return requireAffected(result, "user", id)
}

// requireAffected turns a zero-row write into ErrNotFound
func requireAffected(result sql.Result, kind, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, models.ErrNotFound)
	}
	return nil
}
