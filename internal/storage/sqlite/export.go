// ABOUTME: Export functionality for tracker data
// ABOUTME: Supports YAML, JSON, and Markdown export formats
package sqlite

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/habits/internal/models"
	"gopkg.in/yaml.v3"
)

// Export formats
const (
	FormatYAML     = "yaml"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// ExportData represents the complete exportable data structure
type ExportData struct {
	Version    string          `yaml:"version" json:"version"`
	ExportedAt string          `yaml:"exported_at" json:"exportedAt"`
	Tool       string          `yaml:"tool" json:"tool"`
	Settings   models.Settings `yaml:"settings" json:"settings"`
	Users      []ExportUser    `yaml:"users" json:"users"`
}

// ExportUser is a user with everything it owns
type ExportUser struct {
	ID        string         `yaml:"id" json:"id"`
	Name      string         `yaml:"name" json:"name"`
	FirstName string         `yaml:"first_name,omitempty" json:"firstName,omitempty"`
	LastName  string         `yaml:"last_name,omitempty" json:"lastName,omitempty"`
	Birthday  string         `yaml:"birthday,omitempty" json:"birthday,omitempty"`
	Color     string         `yaml:"avatar_color" json:"avatarColor"`
	CreatedAt string         `yaml:"created_at" json:"createdAt"`
	Goals     []ExportGoal   `yaml:"goals" json:"goals"`
	Weights   []ExportWeight `yaml:"weights,omitempty" json:"weights,omitempty"`
}

// ExportGoal is a goal with its completion history
type ExportGoal struct {
	ID          string      `yaml:"id" json:"id"`
	Name        string      `yaml:"name" json:"name"`
	Type        string      `yaml:"type" json:"type"`
	Frequency   string      `yaml:"frequency" json:"frequency"`
	TargetValue *float64    `yaml:"target_value,omitempty" json:"targetValue,omitempty"`
	Unit        string      `yaml:"unit,omitempty" json:"unit,omitempty"`
	IsActive    bool        `yaml:"is_active" json:"isActive"`
	Logs        []ExportLog `yaml:"logs,omitempty" json:"logs,omitempty"`
}

// ExportLog is one daily log for export
type ExportLog struct {
	Date      string   `yaml:"date" json:"date"`
	Completed bool     `yaml:"completed" json:"completed"`
	Value     *float64 `yaml:"value,omitempty" json:"value,omitempty"`
	Notes     string   `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// ExportWeight is one weigh-in for export
type ExportWeight struct {
	Date   string  `yaml:"date" json:"date"`
	Weight float64 `yaml:"weight" json:"weight"`
	Unit   string  `yaml:"unit" json:"unit"`
	Notes  string  `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// Export exports all data from storage
func (s *Storage) Export() (*ExportData, error) {
	data := &ExportData{
		Version:    "1.0",
		ExportedAt: models.FormatTimestamp(s.now()),
		Tool:       "habits",
		Users:      []ExportUser{},
	}

	settings, err := s.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	data.Settings = *settings

	users, err := s.GetUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	for _, user := range users {
		exportUser := ExportUser{
			ID:        user.ID,
			Name:      user.Name,
			FirstName: user.FirstName,
			LastName:  user.LastName,
			Birthday:  user.Birthday,
			Color:     user.AvatarColor,
			CreatedAt: user.CreatedAt,
			Goals:     []ExportGoal{},
		}

		goals, err := s.GetGoals(user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list goals: %w", err)
		}
		for _, goal := range goals {
			logs, err := s.goalHistory(goal.ID)
			if err != nil {
				return nil, err
			}
			exportUser.Goals = append(exportUser.Goals, ExportGoal{
				ID:          goal.ID,
				Name:        goal.Name,
				Type:        string(goal.Type),
				Frequency:   string(goal.Frequency),
				TargetValue: goal.TargetValue,
				Unit:        goal.Unit,
				IsActive:    goal.IsActive,
				Logs:        logs,
			})
		}

		weights, err := s.GetWeightEntries(user.ID, "", "")
		if err != nil {
			return nil, fmt.Errorf("failed to list weight entries: %w", err)
		}
		for _, w := range weights {
			exportUser.Weights = append(exportUser.Weights, ExportWeight{
				Date:   w.Date,
				Weight: w.Weight,
				Unit:   string(w.Unit),
				Notes:  w.Notes,
			})
		}

		data.Users = append(data.Users, exportUser)
	}

	return data, nil
}

// goalHistory returns every log for a goal, oldest first
func (s *Storage) goalHistory(goalID string) ([]ExportLog, error) {
	var rows []logRow
	if err := s.db.Select(&rows, `
		SELECT `+logColumns+`
		FROM daily_logs
		WHERE goal_id = ?
		ORDER BY date
	`, goalID); err != nil {
		return nil, fmt.Errorf("failed to query logs: %w", err)
	}

	logs := make([]ExportLog, 0, len(rows))
	for i := range rows {
		l := rows[i].toModel()
		logs = append(logs, ExportLog{
			Date:      l.Date,
			Completed: l.Completed,
			Value:     l.Value,
			Notes:     l.Notes,
		})
	}
	return logs, nil
}

// WriteExport encodes the export in format to w
func (s *Storage) WriteExport(w io.Writer, format string) error {
	data, err := s.Export()
	if err != nil {
		return err
	}

	switch strings.ToLower(format) {
	case FormatYAML, "yml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return encoder.Close()
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	case FormatMarkdown, "md":
		return s.writeMarkdown(w, data)
	default:
		return fmt.Errorf("%w: unknown export format %q", models.ErrInvalidInput, format)
	}
}

// ExportToFile writes the export in format to outputPath
func (s *Storage) ExportToFile(outputPath, format string) error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(outputPath) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return s.WriteExport(file, format)
}

func (s *Storage) writeMarkdown(w io.Writer, data *ExportData) error {
	_, _ = fmt.Fprintf(w, "# Habits Export - %s\n\n", models.FormatDate(s.now()))
	_, _ = fmt.Fprintf(w, "Generated: %s\n\n", data.ExportedAt)

	for _, user := range data.Users {
		_, _ = fmt.Fprintf(w, "## %s\n\n", user.Name)

		if len(user.Goals) > 0 {
			_, _ = fmt.Fprintln(w, "| Goal | Type | Active | Completed | Current | Longest |")
			_, _ = fmt.Fprintln(w, "|------|------|--------|-----------|---------|---------|")
			for _, goal := range user.Goals {
				streak, err := s.GetStreak(goal.ID)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(w, "| %s | %s | %t | %d | %d | %d |\n",
					goal.Name, goal.Type, goal.IsActive, completedCount(goal.Logs),
					streak.CurrentStreak, streak.LongestStreak)
			}
			_, _ = fmt.Fprintln(w)
		}

		if len(user.Weights) > 0 {
			_, _ = fmt.Fprintln(w, "### Weight")
			_, _ = fmt.Fprintln(w)
			for _, entry := range user.Weights {
				_, _ = fmt.Fprintf(w, "- %s: %.1f %s\n", entry.Date, entry.Weight, entry.Unit)
			}
			_, _ = fmt.Fprintln(w)
		}
	}

	return nil
}

func completedCount(logs []ExportLog) int {
	n := 0
	for _, l := range logs {
		if l.Completed {
			n++
		}
	}
	return n
}
