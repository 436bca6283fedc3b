// ABOUTME: Streak calculation over a goal's completed-log dates
// ABOUTME: Current streak must end today or yesterday; longest is the best run ever
package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/harper/habits/internal/models"
)

// CalculateStreak computes the current and longest streak for a goal from
// the dates (YYYY-MM-DD) on which it was completed. today is read in its
// own location, so callers pass local time.
func CalculateStreak(goalID string, completedDates []string, today time.Time) (models.Streak, error) {
	streak := models.Streak{GoalID: goalID}

	days, err := parseDescending(completedDates)
	if err != nil {
		return streak, err
	}
	if len(days) == 0 {
		return streak, nil
	}

	last := models.FormatDate(days[0])
	streak.LastCompletedDate = &last
	streak.CurrentStreak = currentRun(days, models.CalendarDay(today))
	streak.LongestStreak = longestRun(days)

	return streak, nil
}

// currentRun counts consecutive days back from the newest completion,
// provided that completion is today or yesterday
func currentRun(days []time.Time, today time.Time) int {
	newest := days[0]
	if !newest.Equal(today) && !newest.Equal(today.AddDate(0, 0, -1)) {
		return 0
	}

	present := make(map[time.Time]bool, len(days))
	for _, d := range days {
		present[d] = true
	}

	count := 0
	for anchor := newest; present[anchor]; anchor = anchor.AddDate(0, 0, -1) {
		count++
	}
	return count
}

// longestRun walks the descending dates and tracks the longest chain of
// one-day steps
func longestRun(days []time.Time) int {
	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		switch daysBetween(days[i], days[i-1]) {
		case 0:
			continue
		case 1:
			run++
		default:
			if run > longest {
				longest = run
			}
			run = 1
		}
	}
	if run > longest {
		longest = run
	}
	return longest
}

// parseDescending parses dates and sorts them newest first
func parseDescending(dates []string) ([]time.Time, error) {
	days := make([]time.Time, 0, len(dates))
	for _, s := range dates {
		d, err := models.ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("parse completed date: %w", err)
		}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days, nil
}

// daysBetween returns whole calendar days from earlier to later.
// Both values are UTC midnights, so the division is exact.
func daysBetween(earlier, later time.Time) int {
	return int(later.Sub(earlier).Hours() / 24)
}
