// ABOUTME: CLI commands for derived progress views
// ABOUTME: Streak for a goal, completion for a day, and a month summary
package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

// NewStreakCmd creates the streak command
func NewStreakCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "streak <goal-id>",
		Short: "Show current and longest streak for a goal",
		Long: `Show current and longest streak for a goal.

The current streak counts back from today, or from yesterday when
today is not done yet.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService()
			if err != nil {
				return err
			}
			defer cleanup()

			streak, err := svc.GetStreak(args[0])
			if err != nil {
				return fmt.Errorf("computing streak: %w", err)
			}
			if useJSON() {
				return printJSON(cmd.OutOrStdout(), streak)
			}

			last := "never"
			if streak.LastCompletedDate != nil {
				last = *streak.LastCompletedDate
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Current: %d day(s)\n", streak.CurrentStreak)
			fmt.Fprintf(out, "Longest: %d day(s)\n", streak.LongestStreak)
			fmt.Fprintf(out, "Last:    %s\n", last)
			return nil
		},
	}
}

// NewDayCmd creates the day command
func NewDayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "day <user-id> [date]",
		Short: "Show which active goals are done for a day",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService()
			if err != nil {
				return err
			}
			defer cleanup()

			status, err := svc.GetDayStatus(args[0], dateArg(args, 1))
			if err != nil {
				return fmt.Errorf("getting day status: %w", err)
			}
			if useJSON() {
				return printJSON(cmd.OutOrStdout(), status)
			}

			mark := "○"
			if status.IsComplete {
				mark = "✓"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s: %d of %d goal(s) done\n",
				mark, status.Date, len(status.CompletedGoalIDs), status.TotalGoals)
			if len(status.CompletedGoalIDs) > 0 && verbose {
				fmt.Fprintf(out, "  %s\n", strings.Join(status.CompletedGoalIDs, ", "))
			}
			return nil
		},
	}
}

// NewMonthCmd creates the month command
func NewMonthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month <user-id> [YYYY-MM]",
		Short: "Summarize a month of completions",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			month := time.Now().Format("2006-01")
			if len(args) > 1 {
				month = args[1]
			}

			svc, cleanup, err := openService()
			if err != nil {
				return err
			}
			defer cleanup()

			summary, err := svc.GetMonthSummary(args[0], month)
			if err != nil {
				return fmt.Errorf("summarizing month: %w", err)
			}
			if useJSON() {
				return printJSON(cmd.OutOrStdout(), summary)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", summary.Month)
			fmt.Fprintf(out, "  Complete days: %d / %d\n", summary.CompletedDays, summary.TotalDays)
			fmt.Fprintf(out, "  Partial days:  %d\n", summary.PartialDays)
			fmt.Fprintf(out, "  Goals done:    %d\n", summary.StreakDays)
			return nil
		},
	}
}
