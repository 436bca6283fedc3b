// ABOUTME: CLI commands for goals
// ABOUTME: List, add, update, and delete a profile's goals
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/habits/internal/models"
)

// NewGoalCmd creates the goal command group
func NewGoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "goal",
		Aliases: []string{"goals"},
		Short:   "Manage goals",
		Long: `Manage the goals a profile tracks.

Goal types are workout, weight, or custom. Frequency is daily or weekly.
Inactive goals keep their history but drop out of day and month summaries.`,
	}

	cmd.AddCommand(newGoalListCmd())
	cmd.AddCommand(newGoalAddCmd())
	cmd.AddCommand(newGoalUpdateCmd())
	cmd.AddCommand(newGoalDeleteCmd())

	return cmd
}

func newGoalListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <user-id>",
		Short: "List a profile's goals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService()
			if err != nil {
				return err
			}
			defer cleanup()

			goals, err := svc.GetGoals(args[0])
			if err != nil {
				return fmt.Errorf("listing goals: %w", err)
			}
			if useJSON() {
				return printJSON(cmd.OutOrStdout(), goals)
			}
			if len(goals) == 0 {
				info(cmd, "No goals found\n")
				return nil
			}

			w := newTable(cmd.OutOrStdout())
			fmt.Fprintf(w, "NAME\tTYPE\tFREQUENCY\tTARGET\tACTIVE\tID\n")
			for _, g := range goals {
				target := formatValue(g.TargetValue)
				if g.TargetValue != nil && g.Unit != "" {
					target += " " + g.Unit
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%t\t%s\n",
					truncate(g.Name, 30), g.Type, g.Frequency, target, g.IsActive, g.ID)
			}
			return w.Flush()
		},
	}
}

func newGoalAddCmd() *cobra.Command {
	var (
		name      string
		goalType  string
		frequency string
		target    float64
		unit      string
		inactive  bool
	)

	cmd := &cobra.Command{
		Use:   "add <user-id>",
		Short: "Add a goal to a profile",
		Example: `  habits goal add user_123 --name "Run" --target 5 --unit km
  habits goal add user_123 --name "Weigh in" --type weight --frequency weekly`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			active := !inactive
			in := models.NewGoalInput{
				UserID:    args[0],
				Name:      name,
				Type:      models.GoalType(goalType),
				Frequency: models.Frequency(frequency),
				Unit:      unit,
				IsActive:  &active,
			}
			if cmd.Flags().Changed("target") {
				in.TargetValue = &target
			}

			svc, cleanup, err := openService()
			if err != nil {
				return err
			}
			defer cleanup()

			goal, err := svc.CreateGoal(in)
			if err != nil {
				return fmt.Errorf("creating goal: %w", err)
			}
			if useJSON() {
				return printJSON(cmd.OutOrStdout(), goal)
			}
			info(cmd, "✓ Created goal %q (%s)\n", goal.Name, goal.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Goal name (required)")
	cmd.Flags().StringVar(&goalType, "type", string(models.GoalCustom), "Goal type: workout, weight, or custom")
	cmd.Flags().StringVar(&frequency, "frequency", string(models.FrequencyDaily), "daily or weekly")
	cmd.Flags().Float64Var(&target, "target", 0, "Target value")
	cmd.Flags().StringVar(&unit, "unit", "", "Unit for the target value")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "Create the goal paused")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newGoalUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <goal-id>",
		Short: "Update a goal",
		Long:  `Update a goal. Only the flags you pass change.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := models.GoalPatch{
				Name:        changedString(cmd, "name"),
				TargetValue: changedFloat(cmd, "target"),
				Unit:        changedString(cmd, "unit"),
				IsActive:    changedBool(cmd, "active"),
			}
			patch.ClearTargetValue, _ = cmd.Flags().GetBool("clear-target")
			if t := changedString(cmd, "type"); t != nil {
				gt := models.GoalType(*t)
				patch.Type = &gt
			}
			if f := changedString(cmd, "frequency"); f != nil {
				freq := models.Frequency(*f)
				patch.Frequency = &freq
			}

			svc, cleanup, err := openService()
			if err != nil {
				return err
			}
			defer cleanup()

			goal, err := svc.UpdateGoal(args[0], patch)
			if err != nil {
				return fmt.Errorf("updating goal: %w", err)
			}
			if useJSON() {
				return printJSON(cmd.OutOrStdout(), goal)
			}
			info(cmd, "✓ Updated goal %q (%s)\n", goal.Name, goal.ID)
			return nil
		},
	}

	cmd.Flags().String("name", "", "Goal name")
	cmd.Flags().String("type", "", "Goal type: workout, weight, or custom")
	cmd.Flags().String("frequency", "", "daily or weekly")
	cmd.Flags().Float64("target", 0, "Target value")
	cmd.Flags().Bool("clear-target", false, "Remove the target value")
	cmd.Flags().String("unit", "", "Unit for the target value (empty clears)")
	cmd.Flags().Bool("active", true, "Whether the goal counts toward summaries")
	cmd.MarkFlagsMutuallyExclusive("target", "clear-target")

	return cmd
}

func newGoalDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <goal-id>",
		Short: "Delete a goal and its logs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService()
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.DeleteGoal(args[0]); err != nil {
				return fmt.Errorf("deleting goal: %w", err)
			}
			info(cmd, "✓ Deleted goal %s\n", args[0])
			return nil
		},
	}
}
