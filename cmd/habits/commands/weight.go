// ABOUTME: CLI commands for weight entries
// ABOUTME: Record one weight per profile per day and review the history
package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/harper/habits/internal/models"
)

// NewWeightCmd creates the weight command group
func NewWeightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weight",
		Short: "Record and review weight",
		Long: `Record and review weight.

A profile has at most one entry per day; adding another for the same
day replaces it.`,
	}

	cmd.AddCommand(newWeightListCmd())
	cmd.AddCommand(newWeightAddCmd())
	cmd.AddCommand(newWeightDeleteCmd())

	return cmd
}

func newWeightListCmd() *cobra.Command {
	var start, end string

	cmd := &cobra.Command{
		Use:   "list <user-id>",
		Short: "List weight entries, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService()
			if err != nil {
				return err
			}
			defer cleanup()

			entries, err := svc.GetWeightEntries(args[0], start, end)
			if err != nil {
				return fmt.Errorf("listing weights: %w", err)
			}
			if useJSON() {
				return printJSON(cmd.OutOrStdout(), entries)
			}
			if len(entries) == 0 {
				info(cmd, "No weight entries found\n")
				return nil
			}

			w := newTable(cmd.OutOrStdout())
			fmt.Fprintf(w, "DATE\tWEIGHT\tNOTES\tID\n")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\n",
					e.Date, strconv.FormatFloat(e.Weight, 'f', -1, 64), e.Unit, truncate(e.Notes, 30), e.ID)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "First date, inclusive")
	cmd.Flags().StringVar(&end, "end", "", "Last date, inclusive")

	return cmd
}

func newWeightAddCmd() *cobra.Command {
	var date, unit, notes string

	cmd := &cobra.Command{
		Use:   "add <user-id> <weight>",
		Short: "Record a weight for a day",
		Long: `Record a weight for a day (default today).

The unit defaults to the weight unit in settings.`,
		Example: `  habits weight add user_123 172.4
  habits weight add user_123 78.2 --unit kg --date 2024-06-01`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			weight, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("weight %q: %w", args[1], models.ErrInvalidInput)
			}

			svc, cleanup, err := openService()
			if err != nil {
				return err
			}
			defer cleanup()

			if unit == "" {
				settings, err := svc.GetSettings()
				if err != nil {
					return fmt.Errorf("reading settings: %w", err)
				}
				unit = string(settings.WeightUnit)
			}
			if date == "" {
				date = today()
			}

			entry, err := svc.AddWeightEntry(models.NewWeightEntryInput{
				UserID: args[0],
				Date:   date,
				Weight: weight,
				Unit:   models.WeightUnit(unit),
				Notes:  notes,
			})
			if err != nil {
				return fmt.Errorf("adding weight: %w", err)
			}
			if useJSON() {
				return printJSON(cmd.OutOrStdout(), entry)
			}
			info(cmd, "✓ Recorded %s %s on %s\n", args[1], entry.Unit, entry.Date)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&unit, "unit", "", "lbs or kg (default from settings)")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")

	return cmd
}

func newWeightDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <weight-id>",
		Short: "Delete a weight entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService()
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.DeleteWeightEntry(args[0]); err != nil {
				return fmt.Errorf("deleting weight: %w", err)
			}
			info(cmd, "✓ Deleted weight entry %s\n", args[0])
			return nil
		},
	}
}
