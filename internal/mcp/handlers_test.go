// ABOUTME: Tests for MCP tool handlers
// ABOUTME: Drives the handlers with raw tool requests against an in-memory store
package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/harper/habits/internal/models"
	"github.com/harper/habits/internal/storage"
	"github.com/harper/habits/internal/tracker"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

type toolFunc func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

func newTestHandlers(t *testing.T) *Handlers {
	t.Helper()
	gw := storage.NewGateway(storage.MemoryPath, nil)
	if err := gw.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { _ = gw.Close() })
	return NewHandlers(tracker.New(gw, nil), nil)
}

// call invokes a handler and returns its text and error flag
func call(t *testing.T, fn toolFunc, args map[string]any) (string, bool) {
	t.Helper()
	request := mcp.CallToolRequest{}
	request.Params.Arguments = args

	result, err := fn(context.Background(), request)
	if err != nil {
		t.Fatalf("handler returned protocol error: %v", err)
	}
	if len(result.Content) == 0 {
		t.Fatal("handler returned no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want TextContent", result.Content[0])
	}
	return text.Text, result.IsError
}

// decode calls a handler that must succeed and unmarshals its JSON result
func decode(t *testing.T, fn toolFunc, args map[string]any, v interface{}) {
	t.Helper()
	text, isErr := call(t, fn, args)
	if isErr {
		t.Fatalf("tool error: %s", text)
	}
	if err := json.Unmarshal([]byte(text), v); err != nil {
		t.Fatalf("unmarshal %q: %v", text, err)
	}
}

func createUser(t *testing.T, h *Handlers) models.User {
	t.Helper()
	var user models.User
	decode(t, h.CreateUser, map[string]any{
		"first_name":   "Ada",
		"last_name":    "Lovelace",
		"avatar_color": "#ff00ff",
	}, &user)
	return user
}

func TestRegisterTools(t *testing.T) {
	gw := storage.NewGateway(storage.MemoryPath, nil)
	server := mcpserver.NewMCPServer("habits-test", "0.0.0")

	if h := RegisterTools(server, tracker.New(gw, nil), nil); h == nil {
		t.Fatal("RegisterTools() returned nil handlers")
	}
}

func TestUserTools(t *testing.T) {
	h := newTestHandlers(t)
	user := createUser(t, h)

	if user.Name != "Ada Lovelace" {
		t.Errorf("Name = %v, want Ada Lovelace", user.Name)
	}

	var updated models.User
	decode(t, h.UpdateUser, map[string]any{"user_id": user.ID, "first_name": "Augusta"}, &updated)
	if updated.Name != "Augusta Lovelace" {
		t.Errorf("Name = %v, want Augusta Lovelace", updated.Name)
	}

	var list struct {
		Users []models.User `json:"users"`
		Count int           `json:"count"`
	}
	decode(t, h.GetUsers, nil, &list)
	if list.Count != 1 || list.Users[0].ID != user.ID {
		t.Errorf("get_users = %+v", list)
	}

	text, isErr := call(t, h.UpdateUser, map[string]any{"user_id": user.ID})
	if !isErr || !strings.Contains(text, "no updates provided") {
		t.Errorf("empty update = %q (error %v), want no updates error", text, isErr)
	}

	if _, isErr := call(t, h.DeleteUser, map[string]any{"user_id": user.ID}); isErr {
		t.Fatal("delete_user failed")
	}
	text, isErr = call(t, h.GetUser, map[string]any{"user_id": user.ID})
	if isErr || text != "null" {
		t.Errorf("get_user after delete = %q, want null", text)
	}
}

func TestMissingRequiredArgument(t *testing.T) {
	h := newTestHandlers(t)

	text, isErr := call(t, h.ToggleDailyLog, map[string]any{"user_id": "user_x", "date": "2024-06-01"})
	if !isErr || !strings.Contains(text, "goal_id") {
		t.Errorf("toggle without goal_id = %q, want goal_id error", text)
	}
}

func TestGoalAndLogTools(t *testing.T) {
	h := newTestHandlers(t)
	user := createUser(t, h)

	var goal models.Goal
	decode(t, h.CreateGoal, map[string]any{
		"user_id":      user.ID,
		"name":         "Read",
		"type":         "custom",
		"target_value": 20.0,
		"unit":         "pages",
	}, &goal)
	if goal.Frequency != models.FrequencyDaily || !goal.IsActive {
		t.Errorf("defaults not applied: %+v", goal)
	}

	var cleared models.Goal
	decode(t, h.UpdateGoal, map[string]any{"goal_id": goal.ID, "clear_target_value": true}, &cleared)
	if cleared.TargetValue != nil {
		t.Errorf("TargetValue = %v, want nil", *cleared.TargetValue)
	}

	args := map[string]any{"user_id": user.ID, "goal_id": goal.ID, "date": "2024-06-01"}
	var log models.DailyLog
	decode(t, h.ToggleDailyLog, args, &log)
	if !log.Completed {
		t.Error("first toggle should complete")
	}

	var noted models.DailyLog
	decode(t, h.UpdateDailyLog, map[string]any{"log_id": log.ID, "notes": "chapter 3", "value": 22.0}, &noted)
	if noted.Notes != "chapter 3" || noted.Value == nil || *noted.Value != 22 || !noted.Completed {
		t.Errorf("update_daily_log = %+v", noted)
	}

	var logs struct {
		Logs  []models.DailyLog `json:"logs"`
		Count int               `json:"count"`
	}
	decode(t, h.GetDailyLogs, map[string]any{"user_id": user.ID, "start_date": "2024-06-01", "end_date": "2024-06-30"}, &logs)
	if logs.Count != 1 {
		t.Errorf("get_daily_logs count = %d, want 1", logs.Count)
	}

	var status models.DayStatus
	decode(t, h.GetDayStatus, map[string]any{"user_id": user.ID, "date": "2024-06-01"}, &status)
	if status.TotalGoals != 2 || len(status.CompletedGoalIDs) != 1 {
		t.Errorf("get_day_status = %+v", status)
	}

	var summary models.MonthSummary
	decode(t, h.GetMonthSummary, map[string]any{"user_id": user.ID, "month": "2024-06"}, &summary)
	if summary.PartialDays != 1 || summary.StreakDays != 1 {
		t.Errorf("get_month_summary = %+v", summary)
	}

	var streak models.Streak
	decode(t, h.GetStreak, map[string]any{"goal_id": goal.ID}, &streak)
	if streak.LongestStreak != 1 {
		t.Errorf("get_streak = %+v", streak)
	}

	text, isErr := call(t, h.ToggleDailyLog, map[string]any{"user_id": user.ID, "goal_id": "goal_missing", "date": "2024-06-01"})
	if !isErr || !strings.Contains(text, "referential violation") {
		t.Errorf("toggle missing goal = %q", text)
	}
}

func TestWeightAndSettingsTools(t *testing.T) {
	h := newTestHandlers(t)
	user := createUser(t, h)

	var entry models.WeightEntry
	decode(t, h.AddWeightEntry, map[string]any{
		"user_id": user.ID, "date": "2024-06-01", "weight": 61.5, "unit": "kg",
	}, &entry)

	var list struct {
		Entries []models.WeightEntry `json:"entries"`
	}
	decode(t, h.GetWeightEntries, map[string]any{"user_id": user.ID}, &list)
	if len(list.Entries) != 1 || list.Entries[0].Weight != 61.5 {
		t.Errorf("get_weight_entries = %+v", list)
	}

	if _, isErr := call(t, h.DeleteWeightEntry, map[string]any{"weight_id": entry.ID}); isErr {
		t.Error("delete_weight_entry failed")
	}

	var settings models.Settings
	decode(t, h.UpdateSettings, map[string]any{
		"last_active_user_id": user.ID,
		"theme":               "dark",
		"first_day_of_week":   1.0,
	}, &settings)
	if settings.Theme != models.ThemeDark || settings.FirstDayOfWeek != 1 || settings.LastActiveUserID == nil {
		t.Errorf("update_settings = %+v", settings)
	}

	text, isErr := call(t, h.UpdateSettings, map[string]any{"theme": "neon"})
	if !isErr || !strings.Contains(text, "invalid input") {
		t.Errorf("bad theme = %q", text)
	}

	text, isErr = call(t, h.UpdateSettings, map[string]any{"first_day_of_week": 1.5})
	if !isErr || !strings.Contains(text, "whole number") {
		t.Errorf("fractional first_day_of_week = %q", text)
	}
	decode(t, h.GetSettings, map[string]any{}, &settings)
	if settings.FirstDayOfWeek != 1 {
		t.Errorf("FirstDayOfWeek = %d after rejected update, want 1", settings.FirstDayOfWeek)
	}
}

func TestExportTool(t *testing.T) {
	h := newTestHandlers(t)
	user := createUser(t, h)

	text, isErr := call(t, h.Export, map[string]any{"format": "yaml"})
	if isErr {
		t.Fatalf("export_data error: %s", text)
	}
	if !strings.Contains(text, user.ID) || !strings.Contains(text, "tool: habits") {
		t.Errorf("export_data = %q", text)
	}
}
