// ABOUTME: Export command writes every profile and its history
// ABOUTME: Supports YAML, JSON, and Markdown to stdout or a file
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewExportCmd creates the export command
func NewExportCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all data",
		Long: `Export settings, profiles, goals, logs, and weights.

YAML and JSON exports are complete backups; Markdown is a readable report
with streaks per goal.`,
		Example: `  habits export > backup.yaml
  habits export --format json -o backup.json
  habits export --format markdown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := openService()
			if err != nil {
				return err
			}
			defer cleanup()

			if output == "" {
				return svc.Export(cmd.OutOrStdout(), format)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			if err := svc.Export(f, format); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			info(cmd, "✓ Exported to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "Export format: yaml, json, or markdown")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")

	return cmd
}
