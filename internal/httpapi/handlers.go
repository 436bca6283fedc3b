// ABOUTME: HTTP handlers, one per tracker operation
// ABOUTME: Path parameters carry ids; JSON bodies carry inputs and sparse patches
package httpapi

import (
	"bytes"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/harper/habits/internal/models"
)

// Users

func (s *Server) getUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.svc.GetUsers()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.svc.GetUser(chi.URLParam(r, "userID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var in models.NewUserInput
	if !s.decode(w, r, &in) {
		return
	}
	user, err := s.svc.CreateUser(in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	var patch models.UserPatch
	if !s.decode(w, r, &patch) {
		return
	}
	user, err := s.svc.UpdateUser(chi.URLParam(r, "userID"), patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteUser(chi.URLParam(r, "userID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Goals

func (s *Server) getGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.svc.GetGoals(chi.URLParam(r, "userID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goals)
}

func (s *Server) getGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := s.svc.GetGoal(chi.URLParam(r, "goalID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (s *Server) createGoal(w http.ResponseWriter, r *http.Request) {
	var in models.NewGoalInput
	if !s.decode(w, r, &in) {
		return
	}
	goal, err := s.svc.CreateGoal(in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, goal)
}

func (s *Server) updateGoal(w http.ResponseWriter, r *http.Request) {
	var patch models.GoalPatch
	if !s.decode(w, r, &patch) {
		return
	}
	goal, err := s.svc.UpdateGoal(chi.URLParam(r, "goalID"), patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, goal)
}

func (s *Server) deleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteGoal(chi.URLParam(r, "goalID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Daily logs

// getDailyLogs reads ?start=YYYY-MM-DD&end=YYYY-MM-DD
func (s *Server) getDailyLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	logs, err := s.svc.GetDailyLogs(chi.URLParam(r, "userID"), q.Get("start"), q.Get("end"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func (s *Server) getLogForDate(w http.ResponseWriter, r *http.Request) {
	log, err := s.svc.GetLogForDate(chi.URLParam(r, "userID"), chi.URLParam(r, "goalID"), chi.URLParam(r, "date"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, log)
}

type toggleRequest struct {
	UserID string `json:"userId"`
	GoalID string `json:"goalId"`
	Date   string `json:"date"`
}

func (s *Server) toggleDailyLog(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	if !s.decode(w, r, &req) {
		return
	}
	log, err := s.svc.ToggleDailyLog(req.UserID, req.GoalID, req.Date)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, log)
}

func (s *Server) updateDailyLog(w http.ResponseWriter, r *http.Request) {
	var patch models.DailyLogPatch
	if !s.decode(w, r, &patch) {
		return
	}
	log, err := s.svc.UpdateDailyLog(chi.URLParam(r, "logID"), patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, log)
}

// Weight

// getWeightEntries reads optional ?start= and ?end= bounds
func (s *Server) getWeightEntries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	entries, err := s.svc.GetWeightEntries(chi.URLParam(r, "userID"), q.Get("start"), q.Get("end"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) addWeightEntry(w http.ResponseWriter, r *http.Request) {
	var in models.NewWeightEntryInput
	if !s.decode(w, r, &in) {
		return
	}
	entry, err := s.svc.AddWeightEntry(in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) deleteWeightEntry(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteWeightEntry(chi.URLParam(r, "weightID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Derived views

func (s *Server) getStreak(w http.ResponseWriter, r *http.Request) {
	streak, err := s.svc.GetStreak(chi.URLParam(r, "goalID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, streak)
}

func (s *Server) getDayStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.svc.GetDayStatus(chi.URLParam(r, "userID"), chi.URLParam(r, "date"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) getMonthSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.svc.GetMonthSummary(chi.URLParam(r, "userID"), chi.URLParam(r, "month"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Settings

func (s *Server) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.svc.GetSettings()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) updateSettings(w http.ResponseWriter, r *http.Request) {
	var patch models.SettingsPatch
	if !s.decode(w, r, &patch) {
		return
	}
	settings, err := s.svc.UpdateSettings(patch)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

var exportContentTypes = map[string]string{
	"json":     "application/json",
	"yaml":     "application/yaml",
	"markdown": "text/markdown; charset=utf-8",
}

// export streams ?format=yaml|json|markdown (default json)
func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}

	var buf bytes.Buffer
	if err := s.svc.Export(&buf, format); err != nil {
		s.writeError(w, err)
		return
	}

	contentType, ok := exportContentTypes[format]
	if !ok {
		contentType = "text/plain; charset=utf-8"
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(buf.Bytes())
}
