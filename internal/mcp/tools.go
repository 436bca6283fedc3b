// ABOUTME: MCP tool definitions and registration for the habits server
// ABOUTME: One tool per tracker operation, with JSON schemas for arguments
package mcp

import (
	"github.com/harper/habits/internal/tracker"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, svc *tracker.Service, logger *zap.Logger) *Handlers {
	handlers := NewHandlers(svc, logger)

	// Profiles
	server.AddTool(mcp.NewTool("get_users",
		mcp.WithDescription("List every profile, oldest first."),
	), handlers.GetUsers)

	server.AddTool(mcp.NewTool("get_user",
		mcp.WithDescription("Get one profile by id. Returns null when it does not exist."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("Profile id")),
	), handlers.GetUser)

	server.AddTool(mcp.NewTool("create_user",
		mcp.WithDescription("Create a profile. A daily Workout goal is created with it."),
		mcp.WithString("first_name", mcp.Description("First name")),
		mcp.WithString("last_name", mcp.Description("Last name")),
		mcp.WithString("birthday", mcp.Description("Birthday as YYYY-MM-DD")),
		mcp.WithString("profile_photo", mcp.Description("Photo as a data URL")),
		mcp.WithString("avatar_color", mcp.Required(), mcp.Description("Avatar colour, e.g. #ff8800")),
	), handlers.CreateUser)

	server.AddTool(mcp.NewTool("update_user",
		mcp.WithDescription("Update a profile. Only provided fields change; changing first or last name recomputes the display name."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("Profile id")),
		mcp.WithString("name", mcp.Description("Display name")),
		mcp.WithString("first_name", mcp.Description("First name")),
		mcp.WithString("last_name", mcp.Description("Last name")),
		mcp.WithString("birthday", mcp.Description("Birthday as YYYY-MM-DD, empty to clear")),
		mcp.WithString("profile_photo", mcp.Description("Photo as a data URL, empty to clear")),
		mcp.WithString("avatar_color", mcp.Description("Avatar colour")),
	), handlers.UpdateUser)

	server.AddTool(mcp.NewTool("delete_user",
		mcp.WithDescription("Delete a profile with all its goals, logs, and weigh-ins."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("Profile id")),
	), handlers.DeleteUser)

	// Goals
	server.AddTool(mcp.NewTool("get_goals",
		mcp.WithDescription("List a profile's goals, active and inactive."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("Profile id")),
	), handlers.GetGoals)

	server.AddTool(mcp.NewTool("get_goal",
		mcp.WithDescription("Get one goal by id. Returns null when it does not exist."),
		mcp.WithString("goal_id", mcp.Required(), mcp.Description("Goal id")),
	), handlers.GetGoal)

	server.AddTool(mcp.NewTool("create_goal",
		mcp.WithDescription("Create a goal for a profile."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("Profile id")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Goal name")),
		mcp.WithString("type", mcp.Required(), mcp.Enum("workout", "weight", "custom")),
		mcp.WithString("frequency", mcp.Enum("daily", "weekly"), mcp.Description("Defaults to daily")),
		mcp.WithNumber("target_value", mcp.Description("Optional numeric target")),
		mcp.WithString("unit", mcp.Description("Unit for the target")),
		mcp.WithBoolean("is_active", mcp.Description("Defaults to true")),
	), handlers.CreateGoal)

	server.AddTool(mcp.NewTool("update_goal",
		mcp.WithDescription("Update a goal. Only provided fields change."),
		mcp.WithString("goal_id", mcp.Required(), mcp.Description("Goal id")),
		mcp.WithString("name", mcp.Description("Goal name")),
		mcp.WithString("type", mcp.Enum("workout", "weight", "custom")),
		mcp.WithString("frequency", mcp.Enum("daily", "weekly")),
		mcp.WithNumber("target_value", mcp.Description("Numeric target")),
		mcp.WithBoolean("clear_target_value", mcp.Description("Remove the target")),
		mcp.WithString("unit", mcp.Description("Unit, empty to clear")),
		mcp.WithBoolean("is_active", mcp.Description("Whether the goal counts toward daily completion")),
	), handlers.UpdateGoal)

	server.AddTool(mcp.NewTool("delete_goal",
		mcp.WithDescription("Delete a goal and its logs."),
		mcp.WithString("goal_id", mcp.Required(), mcp.Description("Goal id")),
	), handlers.DeleteGoal)

	// Daily logs
	server.AddTool(mcp.NewTool("get_daily_logs",
		mcp.WithDescription("List a profile's daily logs between two dates inclusive, newest first."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("Profile id")),
		mcp.WithString("start_date", mcp.Required(), mcp.Description("YYYY-MM-DD")),
		mcp.WithString("end_date", mcp.Required(), mcp.Description("YYYY-MM-DD")),
	), handlers.GetDailyLogs)

	server.AddTool(mcp.NewTool("get_log_for_date",
		mcp.WithDescription("Get the log for a goal on a date. Returns null when none exists."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("Profile id")),
		mcp.WithString("goal_id", mcp.Required(), mcp.Description("Goal id")),
		mcp.WithString("date", mcp.Required(), mcp.Description("YYYY-MM-DD")),
	), handlers.GetLogForDate)

	server.AddTool(mcp.NewTool("toggle_daily_log",
		mcp.WithDescription("Mark a goal done on a date, or flip it back if already logged."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("Profile id")),
		mcp.WithString("goal_id", mcp.Required(), mcp.Description("Goal id")),
		mcp.WithString("date", mcp.Required(), mcp.Description("YYYY-MM-DD")),
	), handlers.ToggleDailyLog)

	server.AddTool(mcp.NewTool("update_daily_log",
		mcp.WithDescription("Update a daily log. Only provided fields change."),
		mcp.WithString("log_id", mcp.Required(), mcp.Description("Log id")),
		mcp.WithBoolean("completed", mcp.Description("Completion flag")),
		mcp.WithNumber("value", mcp.Description("Recorded value")),
		mcp.WithBoolean("clear_value", mcp.Description("Remove the recorded value")),
		mcp.WithString("notes", mcp.Description("Notes, empty to clear")),
	), handlers.UpdateDailyLog)

	// Weight
	server.AddTool(mcp.NewTool("get_weight_entries",
		mcp.WithDescription("List a profile's weigh-ins newest first, optionally bounded by dates."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("Profile id")),
		mcp.WithString("start_date", mcp.Description("YYYY-MM-DD")),
		mcp.WithString("end_date", mcp.Description("YYYY-MM-DD")),
	), handlers.GetWeightEntries)

	server.AddTool(mcp.NewTool("add_weight_entry",
		mcp.WithDescription("Record a weigh-in. Replaces any weigh-in on the same date."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("Profile id")),
		mcp.WithString("date", mcp.Required(), mcp.Description("YYYY-MM-DD")),
		mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight, must be positive")),
		mcp.WithString("unit", mcp.Required(), mcp.Enum("lbs", "kg")),
		mcp.WithString("notes", mcp.Description("Optional notes")),
	), handlers.AddWeightEntry)

	server.AddTool(mcp.NewTool("delete_weight_entry",
		mcp.WithDescription("Delete a weigh-in."),
		mcp.WithString("weight_id", mcp.Required(), mcp.Description("Weight entry id")),
	), handlers.DeleteWeightEntry)

	// Derived views
	server.AddTool(mcp.NewTool("get_streak",
		mcp.WithDescription("Current and longest consecutive-day streak for a goal."),
		mcp.WithString("goal_id", mcp.Required(), mcp.Description("Goal id")),
	), handlers.GetStreak)

	server.AddTool(mcp.NewTool("get_month_summary",
		mcp.WithDescription("Completed, partial, and logged days for a profile over one month."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("Profile id")),
		mcp.WithString("month", mcp.Required(), mcp.Description("YYYY-MM")),
	), handlers.GetMonthSummary)

	server.AddTool(mcp.NewTool("get_day_status",
		mcp.WithDescription("Which active goals a profile completed on a date."),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("Profile id")),
		mcp.WithString("date", mcp.Required(), mcp.Description("YYYY-MM-DD")),
	), handlers.GetDayStatus)

	// Settings
	server.AddTool(mcp.NewTool("get_settings",
		mcp.WithDescription("App settings: last active profile, weight unit, theme, week start."),
	), handlers.GetSettings)

	server.AddTool(mcp.NewTool("update_settings",
		mcp.WithDescription("Update app settings. Only provided fields change."),
		mcp.WithString("last_active_user_id", mcp.Description("Profile id, empty to clear")),
		mcp.WithString("weight_unit", mcp.Enum("lbs", "kg")),
		mcp.WithString("theme", mcp.Enum("light", "dark", "system")),
		mcp.WithNumber("first_day_of_week", mcp.Description("0 for Sunday, 1 for Monday")),
	), handlers.UpdateSettings)

	server.AddTool(mcp.NewTool("export_data",
		mcp.WithDescription("Export every profile with goals, logs, and weigh-ins."),
		mcp.WithString("format", mcp.Enum("yaml", "json", "markdown"), mcp.Description("Defaults to yaml")),
	), handlers.Export)

	return handlers
}
