// ABOUTME: Derived, never-persisted views computed from daily logs
// ABOUTME: Streak, DayStatus, and MonthSummary
package models

// Streak is the consecutive-day completion run for one goal
type Streak struct {
	GoalID            string  `json:"goalId"`
	CurrentStreak     int     `json:"currentStreak"`
	LongestStreak     int     `json:"longestStreak"`
	LastCompletedDate *string `json:"lastCompletedDate"`
}

// DayStatus reports which active goals were completed on a date
type DayStatus struct {
	Date             string   `json:"date"`
	CompletedGoalIDs []string `json:"completedGoalIds"`
	TotalGoals       int      `json:"totalGoals"`
	IsComplete       bool     `json:"isComplete"`
}

// MonthSummary aggregates a user's logs over one calendar month
type MonthSummary struct {
	Month         string `json:"month"`
	TotalDays     int    `json:"totalDays"`
	CompletedDays int    `json:"completedDays"`
	PartialDays   int    `json:"partialDays"`
	StreakDays    int    `json:"streakDays"`
}
