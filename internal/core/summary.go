// ABOUTME: Day status and month summary derived from daily logs
// ABOUTME: Completion counts are compared with the currently active goal count
package core

import "github.com/harper/habits/internal/models"

// DayStatus reports which active goals have a completed log on date
func DayStatus(date string, logs []models.DailyLog, activeGoals []models.Goal) models.DayStatus {
	done := make(map[string]bool)
	for _, l := range logs {
		if l.Date == date && l.Completed {
			done[l.GoalID] = true
		}
	}

	status := models.DayStatus{
		Date:             date,
		CompletedGoalIDs: []string{},
		TotalGoals:       len(activeGoals),
	}
	for _, g := range activeGoals {
		if done[g.ID] {
			status.CompletedGoalIDs = append(status.CompletedGoalIDs, g.ID)
		}
	}
	status.IsComplete = status.TotalGoals > 0 && len(status.CompletedGoalIDs) == status.TotalGoals

	return status
}

// SummarizeMonth counts fully and partially completed days in month.
// Each date's completed-log count is compared with the current number of
// active goals: equal and non-zero is complete, fewer but non-zero is
// partial. A day with more completions than active goals (logs for goals
// since paused) is neither. StreakDays is the number of completed logs in
// the month, whatever the goal's current state.
func SummarizeMonth(month models.Month, logs []models.DailyLog, activeGoals []models.Goal) models.MonthSummary {
	summary := models.MonthSummary{
		Month:     month.String(),
		TotalDays: month.Days(),
	}

	first, last := month.FirstDay(), month.LastDay()
	perDay := make(map[string]int)
	for _, l := range logs {
		if !l.Completed || l.Date < first || l.Date > last {
			continue
		}
		summary.StreakDays++
		perDay[l.Date]++
	}

	total := len(activeGoals)
	for _, n := range perDay {
		switch {
		case total > 0 && n == total:
			summary.CompletedDays++
		case n > 0 && n < total:
			summary.PartialDays++
		}
	}

	return summary
}
