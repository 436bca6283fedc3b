// ABOUTME: Unified Storage layer that wraps all SQLite stores
// ABOUTME: One method per tracker operation; streaks and summaries are derived on read
package sqlite

import (
	"fmt"
	"time"

	"github.com/harper/habits/internal/core"
	"github.com/harper/habits/internal/models"
	"go.uber.org/zap"
)

// Storage manages all persistent tracker data using SQLite
type Storage struct {
	db       *DB
	logger   *zap.Logger
	now      func() time.Time
	users    *UserStore
	goals    *GoalStore
	logs     *LogStore
	weights  *WeightStore
	settings *SettingsStore
}

// Option configures a Storage
type Option func(*options)

type options struct {
	logger *zap.Logger
	now    func() time.Time
}

// WithLogger sets the logger used for schema and write events
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithClock sets the clock that decides what "today" is for streaks
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{logger: zap.NewNop(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.now == nil {
		o.now = time.Now
	}
	return o
}

// NewStorage initializes storage at the default database path
func NewStorage(opts ...Option) (*Storage, error) {
	return NewStorageWithPath(DefaultDBPath(), opts...)
}

// NewStorageWithPath initializes storage with a custom database path
func NewStorageWithPath(dbPath string, opts ...Option) (*Storage, error) {
	o := buildOptions(opts)
	db, err := Open(dbPath, o.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return newStorage(db, o), nil
}

// NewStorageInMemory creates an in-memory storage (for testing)
func NewStorageInMemory(opts ...Option) (*Storage, error) {
	o := buildOptions(opts)
	db, err := OpenInMemory(o.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	return newStorage(db, o), nil
}

func newStorage(db *DB, o options) *Storage {
	return &Storage{
		db:       db,
		logger:   o.logger,
		now:      o.now,
		users:    NewUserStore(db, o.now),
		goals:    NewGoalStore(db, o.now),
		logs:     NewLogStore(db, o.now),
		weights:  NewWeightStore(db, o.now),
		settings: NewSettingsStore(db),
	}
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database path
func (s *Storage) Path() string {
	return s.db.Path()
}

// Users

// GetUsers returns every user, oldest first
func (s *Storage) GetUsers() ([]models.User, error) {
	return s.users.List()
}

// GetUser returns a user or nil
func (s *Storage) GetUser(id string) (*models.User, error) {
	return s.users.Get(id)
}

// CreateUser creates a user and its default Workout goal
func (s *Storage) CreateUser(in models.NewUserInput) (*models.User, error) {
	user, err := s.users.Create(in)
	if err != nil {
		return nil, err
	}
	s.logger.Info("created user", zap.String("user_id", user.ID), zap.String("name", user.Name))
	return user, nil
}

// UpdateUser applies a sparse patch to a user
func (s *Storage) UpdateUser(id string, patch models.UserPatch) (*models.User, error) {
	return s.users.Update(id, patch)
}

// DeleteUser removes a user and everything it owns
func (s *Storage) DeleteUser(id string) error {
	if err := s.users.Delete(id); err != nil {
		return err
	}
	s.logger.Info("deleted user", zap.String("user_id", id))
	return nil
}

// Goals

// GetGoals returns all of a user's goals, active or not
func (s *Storage) GetGoals(userID string) ([]models.Goal, error) {
	return s.goals.ListByUser(userID)
}

// GetGoal returns a goal or nil
func (s *Storage) GetGoal(id string) (*models.Goal, error) {
	return s.goals.Get(id)
}

// CreateGoal creates a goal for an existing user
func (s *Storage) CreateGoal(in models.NewGoalInput) (*models.Goal, error) {
	return s.goals.Create(in)
}

// UpdateGoal applies a sparse patch to a goal
func (s *Storage) UpdateGoal(id string, patch models.GoalPatch) (*models.Goal, error) {
	return s.goals.Update(id, patch)
}

// DeleteGoal removes a goal and its logs
func (s *Storage) DeleteGoal(id string) error {
	return s.goals.Delete(id)
}

// Daily logs

// GetDailyLogs returns a user's logs in [startDate, endDate], newest first
func (s *Storage) GetDailyLogs(userID, startDate, endDate string) ([]models.DailyLog, error) {
	return s.logs.ListByUser(userID, startDate, endDate)
}

// GetLogForDate returns the log for (user, goal, date) or nil
func (s *Storage) GetLogForDate(userID, goalID, date string) (*models.DailyLog, error) {
	return s.logs.GetForDate(userID, goalID, date)
}

// ToggleDailyLog creates a completed log or flips the existing one
func (s *Storage) ToggleDailyLog(userID, goalID, date string) (*models.DailyLog, error) {
	log, err := s.logs.Toggle(userID, goalID, date)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("toggled daily log",
		zap.String("goal_id", goalID),
		zap.String("date", date),
		zap.Bool("completed", log.Completed))
	return log, nil
}

// UpdateDailyLog applies a sparse patch to a log
func (s *Storage) UpdateDailyLog(id string, patch models.DailyLogPatch) (*models.DailyLog, error) {
	return s.logs.Update(id, patch)
}

// Weight entries

// GetWeightEntries returns a user's weigh-ins, newest first. Empty bounds are open.
func (s *Storage) GetWeightEntries(userID, startDate, endDate string) ([]models.WeightEntry, error) {
	return s.weights.List(userID, startDate, endDate)
}

// AddWeightEntry records a weigh-in, replacing one on the same date
func (s *Storage) AddWeightEntry(in models.NewWeightEntryInput) (*models.WeightEntry, error) {
	return s.weights.Add(in)
}

// DeleteWeightEntry removes a weigh-in
func (s *Storage) DeleteWeightEntry(id string) error {
	return s.weights.Delete(id)
}

// Derived views

// GetStreak computes a goal's current and longest streak as of today.
// An unknown goal has no completed dates and yields a zero streak.
func (s *Storage) GetStreak(goalID string) (models.Streak, error) {
	dates, err := s.logs.CompletedDates(goalID)
	if err != nil {
		return models.Streak{}, err
	}
	return core.CalculateStreak(goalID, dates, s.now())
}

// GetDayStatus reports which of a user's active goals were completed on date
func (s *Storage) GetDayStatus(userID, date string) (models.DayStatus, error) {
	if _, err := models.ParseDate(date); err != nil {
		return models.DayStatus{}, err
	}
	logs, err := s.logs.ListByUser(userID, date, date)
	if err != nil {
		return models.DayStatus{}, err
	}
	active, err := s.goals.ListActiveByUser(userID)
	if err != nil {
		return models.DayStatus{}, err
	}
	return core.DayStatus(date, logs, active), nil
}

// GetMonthSummary aggregates a user's logs over month ("YYYY-MM")
func (s *Storage) GetMonthSummary(userID, month string) (models.MonthSummary, error) {
	m, err := models.ParseMonth(month)
	if err != nil {
		return models.MonthSummary{}, err
	}
	logs, err := s.logs.ListByUser(userID, m.FirstDay(), m.LastDay())
	if err != nil {
		return models.MonthSummary{}, err
	}
	active, err := s.goals.ListActiveByUser(userID)
	if err != nil {
		return models.MonthSummary{}, err
	}
	return core.SummarizeMonth(m, logs, active), nil
}

// Settings

// GetSettings returns the settings singleton
func (s *Storage) GetSettings() (*models.Settings, error) {
	return s.settings.Get()
}

// UpdateSettings applies a sparse patch to the settings singleton
func (s *Storage) UpdateSettings(patch models.SettingsPatch) (*models.Settings, error) {
	return s.settings.Update(patch)
}
