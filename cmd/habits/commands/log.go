// ABOUTME: CLI commands for daily logs
// ABOUTME: Toggle completion, attach notes and values, and list a date range
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/habits/internal/models"
)

// NewLogCmd creates the log command group
func NewLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "log",
		Aliases: []string{"logs"},
		Short:   "Record and review daily completions",
	}

	cmd.AddCommand(newLogListCmd())
	cmd.AddCommand(newLogToggleCmd())
	cmd.AddCommand(newLogShowCmd())
	cmd.AddCommand(newLogUpdateCmd())

	return cmd
}

func newLogListCmd() *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "list <user-id>",
		Short: "List a profile's logs in a date range, newest first",
		Example: `  habits log list user_123 --start 2024-06-01 --end 2024-06-30`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if end == "" {
				end = today()
			}
			if start == "" {
				s, err := models.AddDays(end, -29)
				if err != nil {
					return err
				}
				start = s
			}

			svc, cleanup, err := openService()
			if err != nil {
				return err
			}
			defer cleanup()

			logs, err := svc.GetDailyLogs(args[0], start, end)
			if err != nil {
				return fmt.Errorf("listing logs: %w", err)
			}
			if useJSON() {
				return printJSON(cmd.OutOrStdout(), logs)
			}
			if len(logs) == 0 {
				info(cmd, "No logs between %s and %s\n", start, end)
				return nil
			}

			w := newTable(cmd.OutOrStdout())
			fmt.Fprintf(w, "DATE\tGOAL\tDONE\tVALUE\tNOTES\tID\n")
			for _, l := range logs {
				fmt.Fprintf(w, "%s\t%s\t%t\t%s\t%s\t%s\n",
					l.Date, l.GoalID, l.Completed, formatValue(l.Value), truncate(l.Notes, 30), l.ID)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "First date, inclusive (default 29 days before --end)")
	cmd.Flags().StringVar(&end, "end", "", "Last date, inclusive (default today)")

	return cmd
}

func newLogToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <user-id> <goal-id> [date]",
		Short: "Flip a goal's completion for a day",
		Long: `Flip a goal's completion for a day (default today).

The first toggle for a day marks it complete; the next one clears it.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService()
			if err != nil {
				return err
			}
			defer cleanup()

			log, err := svc.ToggleDailyLog(args[0], args[1], dateArg(args, 2))
			if err != nil {
				return fmt.Errorf("toggling log: %w", err)
			}
			if useJSON() {
				return printJSON(cmd.OutOrStdout(), log)
			}
			if log.Completed {
				info(cmd, "✓ %s done on %s\n", log.GoalID, log.Date)
			} else {
				info(cmd, "○ %s not done on %s\n", log.GoalID, log.Date)
			}
			return nil
		},
	}
}

func newLogShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <user-id> <goal-id> [date]",
		Short: "Show the log for one goal and day",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService()
			if err != nil {
				return err
			}
			defer cleanup()

			date := dateArg(args, 2)
			log, err := svc.GetLogForDate(args[0], args[1], date)
			if err != nil {
				return fmt.Errorf("getting log: %w", err)
			}
			if useJSON() {
				return printJSON(cmd.OutOrStdout(), log)
			}
			if log == nil {
				info(cmd, "No log for %s on %s\n", args[1], date)
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s on %s\n", log.GoalID, log.Date)
			fmt.Fprintf(out, "  Completed: %t\n", log.Completed)
			fmt.Fprintf(out, "  Value:     %s\n", formatValue(log.Value))
			if log.Notes != "" {
				fmt.Fprintf(out, "  Notes:     %s\n", log.Notes)
			}
			fmt.Fprintf(out, "  ID:        %s\n", log.ID)
			return nil
		},
	}
}

func newLogUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <log-id>",
		Short: "Set completion, value, or notes on a log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := models.DailyLogPatch{
				Completed: changedBool(cmd, "completed"),
				Value:     changedFloat(cmd, "value"),
				Notes:     changedString(cmd, "notes"),
			}
			patch.ClearValue, _ = cmd.Flags().GetBool("clear-value")

			svc, cleanup, err := openService()
			if err != nil {
				return err
			}
			defer cleanup()

			log, err := svc.UpdateDailyLog(args[0], patch)
			if err != nil {
				return fmt.Errorf("updating log: %w", err)
			}
			if useJSON() {
				return printJSON(cmd.OutOrStdout(), log)
			}
			info(cmd, "✓ Updated log %s\n", log.ID)
			return nil
		},
	}

	cmd.Flags().Bool("completed", false, "Completion state")
	cmd.Flags().Float64("value", 0, "Recorded value")
	cmd.Flags().Bool("clear-value", false, "Remove the recorded value")
	cmd.Flags().String("notes", "", "Notes (empty clears)")
	cmd.MarkFlagsMutuallyExclusive("value", "clear-value")

	return cmd
}
