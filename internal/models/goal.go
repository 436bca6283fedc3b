// ABOUTME: Goal represents a recurring habit owned by a single user
// ABOUTME: Includes the goal type and frequency enums plus create/patch inputs
package models

import "strings"

// GoalType classifies what a goal tracks
type GoalType string

const (
	GoalWorkout GoalType = "workout"
	GoalWeight  GoalType = "weight"
	GoalCustom  GoalType = "custom"
)

// Valid reports whether t is a known goal type
func (t GoalType) Valid() bool {
	switch t {
	case GoalWorkout, GoalWeight, GoalCustom:
		return true
	}
	return false
}

// Frequency is how often a goal is expected to be completed
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// Valid reports whether f is a known frequency
func (f Frequency) Valid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}

// Goal is a trackable habit
type Goal struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Type        GoalType  `json:"type"`
	Frequency   Frequency `json:"frequency"`
	TargetValue *float64  `json:"targetValue,omitempty"`
	Unit        string    `json:"unit,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
}

// NewGoalInput carries the fields for goal creation. A nil IsActive
// creates an active goal.
type NewGoalInput struct {
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Type        GoalType  `json:"type"`
	Frequency   Frequency `json:"frequency"`
	TargetValue *float64  `json:"targetValue,omitempty"`
	Unit        string    `json:"unit,omitempty"`
	IsActive    *bool     `json:"isActive,omitempty"`
}

// Active reports whether the goal should be created active
func (in *NewGoalInput) Active() bool {
	return in.IsActive == nil || *in.IsActive
}

// Validate checks the creation request
func (in *NewGoalInput) Validate() error {
	if strings.TrimSpace(in.UserID) == "" {
		return invalidf("user id cannot be empty")
	}
	if strings.TrimSpace(in.Name) == "" {
		return invalidf("goal name cannot be empty")
	}
	if !in.Type.Valid() {
		return invalidf("goal type %q must be workout, weight or custom", in.Type)
	}
	if !in.Frequency.Valid() {
		return invalidf("frequency %q must be daily or weekly", in.Frequency)
	}
	return nil
}

// GoalPatch is a sparse update. ClearTargetValue removes the target;
// an empty Unit clears the unit.
type GoalPatch struct {
	Name             *string    `json:"name,omitempty"`
	Type             *GoalType  `json:"type,omitempty"`
	Frequency        *Frequency `json:"frequency,omitempty"`
	TargetValue      *float64   `json:"targetValue,omitempty"`
	ClearTargetValue bool       `json:"clearTargetValue,omitempty"`
	Unit             *string    `json:"unit,omitempty"`
	IsActive         *bool      `json:"isActive,omitempty"`
}

// IsEmpty reports whether no field is present
func (p *GoalPatch) IsEmpty() bool {
	return p.Name == nil && p.Type == nil && p.Frequency == nil &&
		p.TargetValue == nil && !p.ClearTargetValue && p.Unit == nil && p.IsActive == nil
}

// Validate checks the present fields
func (p *GoalPatch) Validate() error {
	if p.IsEmpty() {
		return ErrNoUpdates
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return invalidf("goal name cannot be empty")
	}
	if p.Type != nil && !p.Type.Valid() {
		return invalidf("goal type %q must be workout, weight or custom", *p.Type)
	}
	if p.Frequency != nil && !p.Frequency.Valid() {
		return invalidf("frequency %q must be daily or weekly", *p.Frequency)
	}
	if p.TargetValue != nil && p.ClearTargetValue {
		return invalidf("targetValue and clearTargetValue are mutually exclusive")
	}
	return nil
}

// Apply merges the patch into g
func (p *GoalPatch) Apply(g *Goal) {
	if p.Name != nil {
		g.Name = strings.TrimSpace(*p.Name)
	}
	if p.Type != nil {
		g.Type = *p.Type
	}
	if p.Frequency != nil {
		g.Frequency = *p.Frequency
	}
	if p.TargetValue != nil {
		v := *p.TargetValue
		g.TargetValue = &v
	}
	if p.ClearTargetValue {
		g.TargetValue = nil
	}
	if p.Unit != nil {
		g.Unit = *p.Unit
	}
	if p.IsActive != nil {
		g.IsActive = *p.IsActive
	}
}
