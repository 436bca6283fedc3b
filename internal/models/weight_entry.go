// ABOUTME: WeightEntry is a body-weight reading for one user on one date
// ABOUTME: A second entry for the same date replaces the first
package models

import "strings"

// WeightUnit is the unit a weight is recorded in
type WeightUnit string

const (
	UnitLbs WeightUnit = "lbs"
	UnitKg  WeightUnit = "kg"
)

// Valid reports whether u is a known weight unit
func (u WeightUnit) Valid() bool {
	return u == UnitLbs || u == UnitKg
}

// WeightEntry is a single weigh-in
type WeightEntry struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Date      string     `json:"date"`
	Weight    float64    `json:"weight"`
	Unit      WeightUnit `json:"unit"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt string     `json:"createdAt"`
}

// NewWeightEntryInput carries the fields for adding a weigh-in
type NewWeightEntryInput struct {
	UserID string     `json:"userId"`
	Date   string     `json:"date"`
	Weight float64    `json:"weight"`
	Unit   WeightUnit `json:"unit"`
	Notes  string     `json:"notes,omitempty"`
}

// Validate checks the request
func (in *NewWeightEntryInput) Validate() error {
	if strings.TrimSpace(in.UserID) == "" {
		return invalidf("user id cannot be empty")
	}
	if _, err := ParseDate(in.Date); err != nil {
		return err
	}
	if in.Weight <= 0 {
		return invalidf("weight must be positive, got %v", in.Weight)
	}
	if !in.Unit.Valid() {
		return invalidf("unit %q must be lbs or kg", in.Unit)
	}
	return nil
}
