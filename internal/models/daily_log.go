// ABOUTME: DailyLog is one day's completion record for one goal
// ABOUTME: At most one exists per (user, goal, date)
package models

// DailyLog records whether a goal was completed on a calendar date
type DailyLog struct {
	ID        string   `json:"id"`
	UserID    string   `json:"userId"`
	GoalID    string   `json:"goalId"`
	Date      string   `json:"date"`
	Completed bool     `json:"completed"`
	Value     *float64 `json:"value,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

// DailyLogPatch is a sparse update of a log's mutable fields
type DailyLogPatch struct {
	Completed  *bool    `json:"completed,omitempty"`
	Value      *float64 `json:"value,omitempty"`
	ClearValue bool     `json:"clearValue,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
}

// IsEmpty reports whether no field is present
func (p *DailyLogPatch) IsEmpty() bool {
	return p.Completed == nil && p.Value == nil && !p.ClearValue && p.Notes == nil
}

// Validate checks the present fields
func (p *DailyLogPatch) Validate() error {
	if p.IsEmpty() {
		return ErrNoUpdates
	}
	if p.Value != nil && p.ClearValue {
		return invalidf("value and clearValue are mutually exclusive")
	}
	return nil
}

// Apply merges the patch into l
func (p *DailyLogPatch) Apply(l *DailyLog) {
	if p.Completed != nil {
		l.Completed = *p.Completed
	}
	if p.Value != nil {
		v := *p.Value
		l.Value = &v
	}
	if p.ClearValue {
		l.Value = nil
	}
	if p.Notes != nil {
		l.Notes = *p.Notes
	}
}
