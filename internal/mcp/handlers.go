// ABOUTME: MCP tool handler implementations for the habits server
// ABOUTME: Decodes tool arguments into tracker calls and returns JSON results
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/harper/habits/internal/models"
	"github.com/harper/habits/internal/tracker"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	svc    *tracker.Service
	logger *zap.Logger
}

// NewHandlers creates handlers over a tracker service
func NewHandlers(svc *tracker.Service, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{svc: svc, logger: logger}
}

// jsonResult marshals v as the tool's text result
func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// failed turns a tracker error into a tool error the agent can read
func (h *Handlers) failed(action string, err error) (*mcp.CallToolResult, error) {
	h.logger.Debug("tool failed", zap.String("action", action), zap.Error(err))
	return mcp.NewToolResultError(fmt.Sprintf("failed to %s: %v", action, err)), nil
}

// required extracts a required string argument or explains what is missing
func required(request mcp.CallToolRequest, key string) (string, *mcp.CallToolResult) {
	v, err := request.RequireString(key)
	if err != nil || v == "" {
		return "", mcp.NewToolResultError(fmt.Sprintf("%s argument is required and must be a string", key))
	}
	return v, nil
}

// Profiles

// GetUsers handles the get_users tool
func (h *Handlers) GetUsers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	users, err := h.svc.GetUsers()
	if err != nil {
		return h.failed("list users", err)
	}
	return jsonResult(map[string]interface{}{"users": users, "count": len(users)})
}

// GetUser handles the get_user tool
func (h *Handlers) GetUser(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, bad := required(request, "user_id")
	if bad != nil {
		return bad, nil
	}
	user, err := h.svc.GetUser(id)
	if err != nil {
		return h.failed("get user", err)
	}
	return jsonResult(user)
}

// CreateUser handles the create_user tool
func (h *Handlers) CreateUser(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	user, err := h.svc.CreateUser(models.NewUserInput{
		FirstName:    request.GetString("first_name", ""),
		LastName:     request.GetString("last_name", ""),
		Birthday:     request.GetString("birthday", ""),
		ProfilePhoto: request.GetString("profile_photo", ""),
		AvatarColor:  request.GetString("avatar_color", ""),
	})
	if err != nil {
		return h.failed("create user", err)
	}
	return jsonResult(user)
}

// UpdateUser handles the update_user tool
func (h *Handlers) UpdateUser(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, bad := required(request, "user_id")
	if bad != nil {
		return bad, nil
	}
	args := request.GetArguments()
	user, err := h.svc.UpdateUser(id, models.UserPatch{
		Name:         optString(args, "name"),
		FirstName:    optString(args, "first_name"),
		LastName:     optString(args, "last_name"),
		Birthday:     optString(args, "birthday"),
		ProfilePhoto: optString(args, "profile_photo"),
		AvatarColor:  optString(args, "avatar_color"),
	})
	if err != nil {
		return h.failed("update user", err)
	}
	return jsonResult(user)
}

// DeleteUser handles the delete_user tool
func (h *Handlers) DeleteUser(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, bad := required(request, "user_id")
	if bad != nil {
		return bad, nil
	}
	if err := h.svc.DeleteUser(id); err != nil {
		return h.failed("delete user", err)
	}
	return jsonResult(map[string]interface{}{"success": true, "user_id": id})
}

// Goals

// GetGoals handles the get_goals tool
func (h *Handlers) GetGoals(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, bad := required(request, "user_id")
	if bad != nil {
		return bad, nil
	}
	goals, err := h.svc.GetGoals(userID)
	if err != nil {
		return h.failed("list goals", err)
	}
	return jsonResult(map[string]interface{}{"goals": goals, "count": len(goals)})
}

// GetGoal handles the get_goal tool
func (h *Handlers) GetGoal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, bad := required(request, "goal_id")
	if bad != nil {
		return bad, nil
	}
	goal, err := h.svc.GetGoal(id)
	if err != nil {
		return h.failed("get goal", err)
	}
	return jsonResult(goal)
}

// CreateGoal handles the create_goal tool
func (h *Handlers) CreateGoal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, bad := required(request, "user_id")
	if bad != nil {
		return bad, nil
	}
	args := request.GetArguments()
	goal, err := h.svc.CreateGoal(models.NewGoalInput{
		UserID:      userID,
		Name:        request.GetString("name", ""),
		Type:        models.GoalType(request.GetString("type", "")),
		Frequency:   models.Frequency(request.GetString("frequency", string(models.FrequencyDaily))),
		TargetValue: optFloat(args, "target_value"),
		Unit:        request.GetString("unit", ""),
		IsActive:    optBool(args, "is_active"),
	})
	if err != nil {
		return h.failed("create goal", err)
	}
	return jsonResult(goal)
}

// UpdateGoal handles the update_goal tool
func (h *Handlers) UpdateGoal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, bad := required(request, "goal_id")
	if bad != nil {
		return bad, nil
	}
	args := request.GetArguments()
	patch := models.GoalPatch{
		Name:             optString(args, "name"),
		TargetValue:      optFloat(args, "target_value"),
		ClearTargetValue: request.GetBool("clear_target_value", false),
		Unit:             optString(args, "unit"),
		IsActive:         optBool(args, "is_active"),
	}
	if t := optString(args, "type"); t != nil {
		gt := models.GoalType(*t)
		patch.Type = &gt
	}
	if f := optString(args, "frequency"); f != nil {
		freq := models.Frequency(*f)
		patch.Frequency = &freq
	}

	goal, err := h.svc.UpdateGoal(id, patch)
	if err != nil {
		return h.failed("update goal", err)
	}
	return jsonResult(goal)
}

// DeleteGoal handles the delete_goal tool
func (h *Handlers) DeleteGoal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, bad := required(request, "goal_id")
	if bad != nil {
		return bad, nil
	}
	if err := h.svc.DeleteGoal(id); err != nil {
		return h.failed("delete goal", err)
	}
	return jsonResult(map[string]interface{}{"success": true, "goal_id": id})
}

// Daily logs

// GetDailyLogs handles the get_daily_logs tool
func (h *Handlers) GetDailyLogs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, bad := required(request, "user_id")
	if bad != nil {
		return bad, nil
	}
	start, bad := required(request, "start_date")
	if bad != nil {
		return bad, nil
	}
	end, bad := required(request, "end_date")
	if bad != nil {
		return bad, nil
	}
	logs, err := h.svc.GetDailyLogs(userID, start, end)
	if err != nil {
		return h.failed("list daily logs", err)
	}
	return jsonResult(map[string]interface{}{"logs": logs, "count": len(logs)})
}

// GetLogForDate handles the get_log_for_date tool
func (h *Handlers) GetLogForDate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, goalID, date, bad := logTriple(request)
	if bad != nil {
		return bad, nil
	}
	log, err := h.svc.GetLogForDate(userID, goalID, date)
	if err != nil {
		return h.failed("get daily log", err)
	}
	return jsonResult(log)
}

// ToggleDailyLog handles the toggle_daily_log tool
func (h *Handlers) ToggleDailyLog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, goalID, date, bad := logTriple(request)
	if bad != nil {
		return bad, nil
	}
	log, err := h.svc.ToggleDailyLog(userID, goalID, date)
	if err != nil {
		return h.failed("toggle daily log", err)
	}
	return jsonResult(log)
}

// UpdateDailyLog handles the update_daily_log tool
func (h *Handlers) UpdateDailyLog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, bad := required(request, "log_id")
	if bad != nil {
		return bad, nil
	}
	args := request.GetArguments()
	log, err := h.svc.UpdateDailyLog(id, models.DailyLogPatch{
		Completed:  optBool(args, "completed"),
		Value:      optFloat(args, "value"),
		ClearValue: request.GetBool("clear_value", false),
		Notes:      optString(args, "notes"),
	})
	if err != nil {
		return h.failed("update daily log", err)
	}
	return jsonResult(log)
}

// Weight

// GetWeightEntries handles the get_weight_entries tool
func (h *Handlers) GetWeightEntries(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, bad := required(request, "user_id")
	if bad != nil {
		return bad, nil
	}
	entries, err := h.svc.GetWeightEntries(userID,
		request.GetString("start_date", ""), request.GetString("end_date", ""))
	if err != nil {
		return h.failed("list weight entries", err)
	}
	return jsonResult(map[string]interface{}{"entries": entries, "count": len(entries)})
}

// AddWeightEntry handles the add_weight_entry tool
func (h *Handlers) AddWeightEntry(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, bad := required(request, "user_id")
	if bad != nil {
		return bad, nil
	}
	date, bad := required(request, "date")
	if bad != nil {
		return bad, nil
	}
	weight, err := request.RequireFloat("weight")
	if err != nil {
		return mcp.NewToolResultError("weight argument is required and must be a number"), nil
	}
	entry, err := h.svc.AddWeightEntry(models.NewWeightEntryInput{
		UserID: userID,
		Date:   date,
		Weight: weight,
		Unit:   models.WeightUnit(request.GetString("unit", "")),
		Notes:  request.GetString("notes", ""),
	})
	if err != nil {
		return h.failed("add weight entry", err)
	}
	return jsonResult(entry)
}

// DeleteWeightEntry handles the delete_weight_entry tool
func (h *Handlers) DeleteWeightEntry(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, bad := required(request, "weight_id")
	if bad != nil {
		return bad, nil
	}
	if err := h.svc.DeleteWeightEntry(id); err != nil {
		return h.failed("delete weight entry", err)
	}
	return jsonResult(map[string]interface{}{"success": true, "weight_id": id})
}

// Derived views

// GetStreak handles the get_streak tool
func (h *Handlers) GetStreak(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	goalID, bad := required(request, "goal_id")
	if bad != nil {
		return bad, nil
	}
	streak, err := h.svc.GetStreak(goalID)
	if err != nil {
		return h.failed("compute streak", err)
	}
	return jsonResult(streak)
}

// GetMonthSummary handles the get_month_summary tool
func (h *Handlers) GetMonthSummary(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, bad := required(request, "user_id")
	if bad != nil {
		return bad, nil
	}
	month, bad := required(request, "month")
	if bad != nil {
		return bad, nil
	}
	summary, err := h.svc.GetMonthSummary(userID, month)
	if err != nil {
		return h.failed("summarize month", err)
	}
	return jsonResult(summary)
}

// GetDayStatus handles the get_day_status tool
func (h *Handlers) GetDayStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, bad := required(request, "user_id")
	if bad != nil {
		return bad, nil
	}
	date, bad := required(request, "date")
	if bad != nil {
		return bad, nil
	}
	status, err := h.svc.GetDayStatus(userID, date)
	if err != nil {
		return h.failed("get day status", err)
	}
	return jsonResult(status)
}

// Settings

// GetSettings handles the get_settings tool
func (h *Handlers) GetSettings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	settings, err := h.svc.GetSettings()
	if err != nil {
		return h.failed("get settings", err)
	}
	return jsonResult(settings)
}

// UpdateSettings handles the update_settings tool
func (h *Handlers) UpdateSettings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	patch := models.SettingsPatch{
		LastActiveUserID: optString(args, "last_active_user_id"),
	}
	if u := optString(args, "weight_unit"); u != nil {
		unit := models.WeightUnit(*u)
		patch.WeightUnit = &unit
	}
	if t := optString(args, "theme"); t != nil {
		theme := models.Theme(*t)
		patch.Theme = &theme
	}
	if f := optFloat(args, "first_day_of_week"); f != nil {
		if *f != math.Trunc(*f) {
			return mcp.NewToolResultError(fmt.Sprintf("first_day_of_week must be a whole number, got %v", *f)), nil
		}
		day := int(*f)
		patch.FirstDayOfWeek = &day
	}

	settings, err := h.svc.UpdateSettings(patch)
	if err != nil {
		return h.failed("update settings", err)
	}
	return jsonResult(settings)
}

// Export handles the export_data tool
func (h *Handlers) Export(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var buf bytes.Buffer
	if err := h.svc.Export(&buf, request.GetString("format", "yaml")); err != nil {
		return h.failed("export data", err)
	}
	return mcp.NewToolResultText(buf.String()), nil
}

// logTriple extracts the (user, goal, date) arguments shared by log tools
func logTriple(request mcp.CallToolRequest) (string, string, string, *mcp.CallToolResult) {
	userID, bad := required(request, "user_id")
	if bad != nil {
		return "", "", "", bad
	}
	goalID, bad := required(request, "goal_id")
	if bad != nil {
		return "", "", "", bad
	}
	date, bad := required(request, "date")
	if bad != nil {
		return "", "", "", bad
	}
	return userID, goalID, date, nil
}

// optString returns a pointer to a present string argument, nil when absent
func optString(args map[string]any, key string) *string {
	if raw, exists := args[key]; exists {
		if s, ok := raw.(string); ok {
			return &s
		}
	}
	return nil
}

// optFloat returns a pointer to a present numeric argument, nil when absent
func optFloat(args map[string]any, key string) *float64 {
	if raw, exists := args[key]; exists {
		switch v := raw.(type) {
		case float64:
			return &v
		case int:
			f := float64(v)
			return &f
		}
	}
	return nil
}

// optBool returns a pointer to a present boolean argument, nil when absent
func optBool(args map[string]any, key string) *bool {
	if raw, exists := args[key]; exists {
		if b, ok := raw.(bool); ok {
			return &b
		}
	}
	return nil
}
