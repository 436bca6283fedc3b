// ABOUTME: Tracker façade: the one operation set every transport calls
// ABOUTME: Resolves the store through the gateway and logs each operation
package tracker

import (
	"io"

	"github.com/harper/habits/internal/models"
	"github.com/harper/habits/internal/storage"
	"github.com/harper/habits/internal/storage/sqlite"
	"go.uber.org/zap"
)

// Service exposes the tracker operations over an initialized gateway
type Service struct {
	gw     *storage.Gateway
	logger *zap.Logger
}

// New creates a Service. The gateway must be initialized before the
// first call; until then every operation fails with ErrNotInitialized.
func New(gw *storage.Gateway, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{gw: gw, logger: logger}
}

// Logger returns the service logger
func (s *Service) Logger() *zap.Logger {
	return s.logger
}

// Path returns the database path behind the gateway
func (s *Service) Path() string {
	return s.gw.Path()
}

// store resolves the open store and logs the operation
func (s *Service) store(op string, fields ...zap.Field) (*sqlite.Storage, error) {
	st, err := s.gw.Get()
	if err != nil {
		s.logger.Warn("operation before init", zap.String("op", op), zap.Error(err))
		return nil, err
	}
	s.logger.Debug(op, fields...)
	return st, nil
}

// done logs a failed operation and passes err through
func (s *Service) done(op string, err error) error {
	if err != nil {
		s.logger.Warn("operation failed", zap.String("op", op), zap.Error(err))
	}
	return err
}

// Users

// GetUsers lists every profile, oldest first
func (s *Service) GetUsers() ([]models.User, error) {
	st, err := s.store("getUsers")
	if err != nil {
		return nil, err
	}
	users, err := st.GetUsers()
	return users, s.done("getUsers", err)
}

// GetUser returns a profile, or nil when it does not exist
func (s *Service) GetUser(id string) (*models.User, error) {
	st, err := s.store("getUser", zap.String("user_id", id))
	if err != nil {
		return nil, err
	}
	user, err := st.GetUser(id)
	return user, s.done("getUser", err)
}

// CreateUser creates a profile with its default daily Workout goal
func (s *Service) CreateUser(in models.NewUserInput) (*models.User, error) {
	st, err := s.store("createUser")
	if err != nil {
		return nil, err
	}
	user, err := st.CreateUser(in)
	return user, s.done("createUser", err)
}

// UpdateUser applies a sparse profile patch
func (s *Service) UpdateUser(id string, patch models.UserPatch) (*models.User, error) {
	st, err := s.store("updateUser", zap.String("user_id", id))
	if err != nil {
		return nil, err
	}
	user, err := st.UpdateUser(id, patch)
	return user, s.done("updateUser", err)
}

// DeleteUser removes a profile and cascades to everything it owns
func (s *Service) DeleteUser(id string) error {
	st, err := s.store("deleteUser", zap.String("user_id", id))
	if err != nil {
		return err
	}
	return s.done("deleteUser", st.DeleteUser(id))
}

// Goals

// GetGoals lists a profile's goals
func (s *Service) GetGoals(userID string) ([]models.Goal, error) {
	st, err := s.store("getGoals", zap.String("user_id", userID))
	if err != nil {
		return nil, err
	}
	goals, err := st.GetGoals(userID)
	return goals, s.done("getGoals", err)
}

// GetGoal returns a goal, or nil when it does not exist
func (s *Service) GetGoal(id string) (*models.Goal, error) {
	st, err := s.store("getGoal", zap.String("goal_id", id))
	if err != nil {
		return nil, err
	}
	goal, err := st.GetGoal(id)
	return goal, s.done("getGoal", err)
}

// CreateGoal adds a goal to an existing profile
func (s *Service) CreateGoal(in models.NewGoalInput) (*models.Goal, error) {
	st, err := s.store("createGoal", zap.String("user_id", in.UserID))
	if err != nil {
		return nil, err
	}
	goal, err := st.CreateGoal(in)
	return goal, s.done("createGoal", err)
}

// UpdateGoal applies a sparse goal patch
func (s *Service) UpdateGoal(id string, patch models.GoalPatch) (*models.Goal, error) {
	st, err := s.store("updateGoal", zap.String("goal_id", id))
	if err != nil {
		return nil, err
	}
	goal, err := st.UpdateGoal(id, patch)
	return goal, s.done("updateGoal", err)
}

// DeleteGoal removes a goal and its logs
func (s *Service) DeleteGoal(id string) error {
	st, err := s.store("deleteGoal", zap.String("goal_id", id))
	if err != nil {
		return err
	}
	return s.done("deleteGoal", st.DeleteGoal(id))
}

// Daily logs

// GetDailyLogs lists a profile's logs between two dates, newest first
func (s *Service) GetDailyLogs(userID, startDate, endDate string) ([]models.DailyLog, error) {
	st, err := s.store("getDailyLogs",
		zap.String("user_id", userID), zap.String("start", startDate), zap.String("end", endDate))
	if err != nil {
		return nil, err
	}
	logs, err := st.GetDailyLogs(userID, startDate, endDate)
	return logs, s.done("getDailyLogs", err)
}

// GetLogForDate returns nil when no log exists for the triple
func (s *Service) GetLogForDate(userID, goalID, date string) (*models.DailyLog, error) {
	st, err := s.store("getLogForDate",
		zap.String("user_id", userID), zap.String("goal_id", goalID), zap.String("date", date))
	if err != nil {
		return nil, err
	}
	log, err := st.GetLogForDate(userID, goalID, date)
	return log, s.done("getLogForDate", err)
}

// ToggleDailyLog creates a completed log or flips the existing one
func (s *Service) ToggleDailyLog(userID, goalID, date string) (*models.DailyLog, error) {
	st, err := s.store("toggleDailyLog",
		zap.String("user_id", userID), zap.String("goal_id", goalID), zap.String("date", date))
	if err != nil {
		return nil, err
	}
	log, err := st.ToggleDailyLog(userID, goalID, date)
	return log, s.done("toggleDailyLog", err)
}

// UpdateDailyLog sets completion, value, or notes on a log
func (s *Service) UpdateDailyLog(id string, patch models.DailyLogPatch) (*models.DailyLog, error) {
	st, err := s.store("updateDailyLog", zap.String("log_id", id))
	if err != nil {
		return nil, err
	}
	log, err := st.UpdateDailyLog(id, patch)
	return log, s.done("updateDailyLog", err)
}

// Weight entries

// GetWeightEntries lists weigh-ins newest first; empty bounds are open
func (s *Service) GetWeightEntries(userID, startDate, endDate string) ([]models.WeightEntry, error) {
	st, err := s.store("getWeightEntries", zap.String("user_id", userID))
	if err != nil {
		return nil, err
	}
	entries, err := st.GetWeightEntries(userID, startDate, endDate)
	return entries, s.done("getWeightEntries", err)
}

// AddWeightEntry records a weigh-in, replacing any on the same date
func (s *Service) AddWeightEntry(in models.NewWeightEntryInput) (*models.WeightEntry, error) {
	st, err := s.store("addWeightEntry", zap.String("user_id", in.UserID), zap.String("date", in.Date))
	if err != nil {
		return nil, err
	}
	entry, err := st.AddWeightEntry(in)
	return entry, s.done("addWeightEntry", err)
}

// DeleteWeightEntry removes one weight entry
func (s *Service) DeleteWeightEntry(id string) error {
	st, err := s.store("deleteWeightEntry", zap.String("weight_id", id))
	if err != nil {
		return err
	}
	return s.done("deleteWeightEntry", st.DeleteWeightEntry(id))
}

// Derived views

// GetStreak computes current and longest streak for a goal
func (s *Service) GetStreak(goalID string) (models.Streak, error) {
	st, err := s.store("getStreak", zap.String("goal_id", goalID))
	if err != nil {
		return models.Streak{}, err
	}
	streak, err := st.GetStreak(goalID)
	return streak, s.done("getStreak", err)
}

// GetDayStatus reports which active goals are done on a date
func (s *Service) GetDayStatus(userID, date string) (models.DayStatus, error) {
	st, err := s.store("getDayStatus", zap.String("user_id", userID), zap.String("date", date))
	if err != nil {
		return models.DayStatus{}, err
	}
	status, err := st.GetDayStatus(userID, date)
	return status, s.done("getDayStatus", err)
}

// GetMonthSummary aggregates a user's logs over month ("YYYY-MM")
func (s *Service) GetMonthSummary(userID, month string) (models.MonthSummary, error) {
	st, err := s.store("getMonthSummary", zap.String("user_id", userID), zap.String("month", month))
	if err != nil {
		return models.MonthSummary{}, err
	}
	summary, err := st.GetMonthSummary(userID, month)
	return summary, s.done("getMonthSummary", err)
}

// Settings

// GetSettings returns settings, with defaults when none are stored
func (s *Service) GetSettings() (*models.Settings, error) {
	st, err := s.store("getSettings")
	if err != nil {
		return nil, err
	}
	settings, err := st.GetSettings()
	return settings, s.done("getSettings", err)
}

// UpdateSettings applies a sparse settings patch
func (s *Service) UpdateSettings(patch models.SettingsPatch) (*models.Settings, error) {
	st, err := s.store("updateSettings")
	if err != nil {
		return nil, err
	}
	settings, err := st.UpdateSettings(patch)
	return settings, s.done("updateSettings", err)
}

// Export

// Export writes every profile with its goals, logs, and weigh-ins to w
// in format (yaml, json, or markdown)
func (s *Service) Export(w io.Writer, format string) error {
	st, err := s.store("export", zap.String("format", format))
	if err != nil {
		return err
	}
	return s.done("export", st.WriteExport(w, format))
}
