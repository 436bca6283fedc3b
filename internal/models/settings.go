// ABOUTME: Settings is the singleton row of app-wide preferences
// ABOUTME: Holds the last active profile, weight unit, theme, and week start
package models

// Theme is the UI colour scheme preference
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Valid reports whether t is a known theme
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark || t == ThemeSystem
}

// First day of week values
const (
	WeekStartsSunday = 0
	WeekStartsMonday = 1
)

// Settings holds app-wide preferences
type Settings struct {
	LastActiveUserID *string    `json:"lastActiveUserId" yaml:"last_active_user_id"`
	WeightUnit       WeightUnit `json:"weightUnit" yaml:"weight_unit"`
	Theme            Theme      `json:"theme" yaml:"theme"`
	FirstDayOfWeek   int        `json:"firstDayOfWeek" yaml:"first_day_of_week"`
}

// DefaultSettings is what a fresh install starts with
func DefaultSettings() Settings {
	return Settings{
		WeightUnit:     UnitLbs,
		Theme:          ThemeSystem,
		FirstDayOfWeek: WeekStartsSunday,
	}
}

// SettingsPatch is a sparse update. An empty LastActiveUserID clears it.
type SettingsPatch struct {
	LastActiveUserID *string     `json:"lastActiveUserId,omitempty"`
	WeightUnit       *WeightUnit `json:"weightUnit,omitempty"`
	Theme            *Theme      `json:"theme,omitempty"`
	FirstDayOfWeek   *int        `json:"firstDayOfWeek,omitempty"`
}

// IsEmpty reports whether no field is present
func (p *SettingsPatch) IsEmpty() bool {
	return p.LastActiveUserID == nil && p.WeightUnit == nil && p.Theme == nil && p.FirstDayOfWeek == nil
}

// Validate checks the present fields
func (p *SettingsPatch) Validate() error {
	if p.IsEmpty() {
		return ErrNoUpdates
	}
	if p.WeightUnit != nil && !p.WeightUnit.Valid() {
		return invalidf("weight unit %q must be lbs or kg", *p.WeightUnit)
	}
	if p.Theme != nil && !p.Theme.Valid() {
		return invalidf("theme %q must be light, dark or system", *p.Theme)
	}
	if p.FirstDayOfWeek != nil && *p.FirstDayOfWeek != WeekStartsSunday && *p.FirstDayOfWeek != WeekStartsMonday {
		return invalidf("first day of week must be 0 (Sunday) or 1 (Monday), got %d", *p.FirstDayOfWeek)
	}
	return nil
}

// Apply merges the patch into s
func (p *SettingsPatch) Apply(s *Settings) {
	if p.LastActiveUserID != nil {
		if *p.LastActiveUserID == "" {
			s.LastActiveUserID = nil
		} else {
			id := *p.LastActiveUserID
			s.LastActiveUserID = &id
		}
	}
	if p.WeightUnit != nil {
		s.WeightUnit = *p.WeightUnit
	}
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.FirstDayOfWeek != nil {
		s.FirstDayOfWeek = *p.FirstDayOfWeek
	}
}
