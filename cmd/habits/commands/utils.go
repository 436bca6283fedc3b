// ABOUTME: Shared helpers for CLI commands
// ABOUTME: Opens the tracker service and renders output as tables or JSON
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harper/habits/internal/config"
	"github.com/harper/habits/internal/logging"
	"github.com/harper/habits/internal/models"
	"github.com/harper/habits/internal/storage"
	"github.com/harper/habits/internal/tracker"
)

// openService loads config, builds a stderr logger, and opens the store.
// The returned func closes the store and flushes the logger.
func openService() (*tracker.Service, func(), error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}

	logger, err := logging.New(cliLogLevel(cfg), cfg.LogDevelopment)
	if err != nil {
		return nil, nil, fmt.Errorf("initializing logger: %w", err)
	}

	gw := storage.NewGateway(cfg.DBPath, logger)
	if err := gw.Init(); err != nil {
		_ = logger.Sync()
		return nil, nil, fmt.Errorf("initializing storage: %w", err)
	}

	cleanup := func() {
		if err := gw.Close(); err != nil {
			logger.Warn("closing storage", zap.Error(err))
		}
		_ = logger.Sync()
	}
	return tracker.New(gw, logger), cleanup, nil
}

// cliLogLevel keeps the CLI quiet unless asked otherwise
func cliLogLevel(cfg *config.Config) string {
	switch {
	case verbose:
		return "debug"
	case quiet:
		return "error"
	case os.Getenv("HABITS_LOG_LEVEL") != "":
		return cfg.LogLevel
	default:
		return "warn"
	}
}

// useJSON reports whether output should be JSON rather than a table
func useJSON() bool {
	return outputFormat == "json"
}

func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// info prints a status line unless --quiet is set
func info(cmd *cobra.Command, format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), format, args...)
	}
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatTime renders a stored timestamp relative to now
func formatTime(ts string, now time.Time) string {
	t, err := time.Parse(models.TimestampLayout, ts)
	if err != nil {
		return ts
	}
	diff := now.Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
	return t.Local().Format("2006-01-02")
}

// formatValue renders an optional number, or "-" when absent
func formatValue(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// today is the local calendar date
func today() string {
	return models.FormatDate(time.Now())
}

// dateArg returns args[i] when present, otherwise today
func dateArg(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return today()
}

// changedString returns a pointer to the flag value when the flag was set
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func changedFloat(cmd *cobra.Command, name string) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetFloat64(name)
	return &v
}

func changedBool(cmd *cobra.Command, name string) *bool {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}

func changedInt(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt(name)
	return &v
}
