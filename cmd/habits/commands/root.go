// ABOUTME: Root command and global flags for the habits CLI
// ABOUTME: Wires every subcommand and the shared verbose/quiet/format/db flags
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
	dbPath       string
)

const banner = `
██   ██  █████  ██████  ██ ████████ ███████
██   ██ ██   ██ ██   ██ ██    ██    ██
███████ ███████ ██████  ██    ██    ███████
██   ██ ██   ██ ██   ██ ██    ██         ██
██   ██ ██   ██ ██████  ██    ██    ███████
`

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habits",
		Short: "Local-first habit and fitness tracker",
		Long: banner + `
Track daily goals, streaks, and weight for everyone in the household.

Data lives in a single SQLite file under your XDG data directory
(override with --db or HABITS_DB_PATH). The same data is available to
LLM agents through 'habits mcp'.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (debug logging)")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress informational output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, table, or json")
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (default from HABITS_DB_PATH or XDG data dir)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(NewUserCmd())
	cmd.AddCommand(NewGoalCmd())
	cmd.AddCommand(NewLogCmd())
	cmd.AddCommand(NewWeightCmd())
	cmd.AddCommand(NewStreakCmd())
	cmd.AddCommand(NewDayCmd())
	cmd.AddCommand(NewMonthCmd())
	cmd.AddCommand(NewSettingsCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
