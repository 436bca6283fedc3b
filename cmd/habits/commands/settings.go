// ABOUTME: CLI commands for application settings
// ABOUTME: Show and change weight unit, theme, week start, and active profile
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/harper/habits/internal/models"
)

// NewSettingsCmd creates the settings command group
func NewSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change settings",
	}

	cmd.AddCommand(newSettingsShowCmd())
	cmd.AddCommand(newSettingsSetCmd())

	return cmd
}

func newSettingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService()
			if err != nil {
				return err
			}
			defer cleanup()

			settings, err := svc.GetSettings()
			if err != nil {
				return fmt.Errorf("reading settings: %w", err)
			}
			if useJSON() {
				return printJSON(cmd.OutOrStdout(), settings)
			}

			data, err := yaml.Marshal(settings)
			if err != nil {
				return fmt.Errorf("marshaling YAML: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newSettingsSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings",
		Example: `  habits settings set --weight-unit kg
  habits settings set --active-user user_123 --theme dark`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := models.SettingsPatch{
				LastActiveUserID: changedString(cmd, "active-user"),
				FirstDayOfWeek:   changedInt(cmd, "first-day"),
			}
			if u := changedString(cmd, "weight-unit"); u != nil {
				unit := models.WeightUnit(*u)
				patch.WeightUnit = &unit
			}
			if t := changedString(cmd, "theme"); t != nil {
				theme := models.Theme(*t)
				patch.Theme = &theme
			}

			svc, cleanup, err := openService()
			if err != nil {
				return err
			}
			defer cleanup()

			settings, err := svc.UpdateSettings(patch)
			if err != nil {
				return fmt.Errorf("updating settings: %w", err)
			}
			if useJSON() {
				return printJSON(cmd.OutOrStdout(), settings)
			}
			info(cmd, "✓ Settings saved\n")
			return nil
		},
	}

	cmd.Flags().String("weight-unit", "", "lbs or kg")
	cmd.Flags().String("theme", "", "light, dark, or system")
	cmd.Flags().Int("first-day", 0, "First day of week, 0 (Sunday) to 6")
	cmd.Flags().String("active-user", "", "Last active profile id")

	return cmd
}
