// ABOUTME: Tests for create inputs and sparse patches
// ABOUTME: Verifies validation, empty-patch rejection, and display name recomputation
package models

import (
	"errors"
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestDisplayName(t *testing.T) {
	tests := []struct {
		first, last, want string
	}{
		{"Ada", "Lovelace", "Ada Lovelace"},
		{"Ada", "", "Ada"},
		{"", "Lovelace", "Lovelace"},
		{"  ", "", ""},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.first, tt.last); got != tt.want {
			t.Errorf("DisplayName(%q, %q) = %q, want %q", tt.first, tt.last, got, tt.want)
		}
	}
}

func TestNewUserInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      NewUserInput
		wantErr string
	}{
		{"valid", NewUserInput{FirstName: "Ada", LastName: "Lovelace", AvatarColor: "#ff6600"}, ""},
		{"missing names", NewUserInput{AvatarColor: "#ff6600"}, "name is required"},
		{"missing color", NewUserInput{FirstName: "Ada"}, "avatar color"},
		{"bad birthday", NewUserInput{FirstName: "Ada", AvatarColor: "blue", Birthday: "1815-13-10"}, "YYYY-MM-DD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("Validate() error should wrap ErrInvalidInput")
			}
		})
	}
}

func TestUserPatchEmpty(t *testing.T) {
	p := &UserPatch{}
	err := p.Validate()
	if !errors.Is(err, ErrNoUpdates) {
		t.Fatalf("Validate() error = %v, want ErrNoUpdates", err)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("ErrNoUpdates should wrap ErrInvalidInput")
	}
	if err.Error() != "invalid input: no updates provided" {
		t.Errorf("error message = %q", err.Error())
	}
}

func TestUserPatchBlankName(t *testing.T) {
	if err := (&UserPatch{Name: strPtr("  ")}).Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Validate() blank name error = %v, want ErrInvalidInput", err)
	}

	u := &User{Name: "Ada Lovelace", FirstName: "Ada", LastName: "Lovelace"}
	(&UserPatch{FirstName: strPtr(""), LastName: strPtr("")}).Apply(u)
	if err := u.CheckName(); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("CheckName() after clearing both halves = %v, want ErrInvalidInput", err)
	}

	u.LastName = "Lovelace"
	u.Name = DisplayName(u.FirstName, u.LastName)
	if err := u.CheckName(); err != nil {
		t.Errorf("CheckName() = %v, want nil", err)
	}
}

func TestUserPatchApplyRecomputesName(t *testing.T) {
	u := &User{Name: "Ada Lovelace", FirstName: "Ada", LastName: "Lovelace"}

	(&UserPatch{FirstName: strPtr("Augusta")}).Apply(u)
	if u.Name != "Augusta Lovelace" {
		t.Errorf("Name = %q, want %q", u.Name, "Augusta Lovelace")
	}

	(&UserPatch{LastName: strPtr("King")}).Apply(u)
	if u.Name != "Augusta King" {
		t.Errorf("Name = %q, want %q", u.Name, "Augusta King")
	}

	// An explicit name only sticks when the halves are untouched
	(&UserPatch{Name: strPtr("  Countess  ")}).Apply(u)
	if u.Name != "Countess" {
		t.Errorf("Name = %q, want %q", u.Name, "Countess")
	}

	(&UserPatch{Name: strPtr("ignored"), FirstName: strPtr("Ada")}).Apply(u)
	if u.Name != "Ada King" {
		t.Errorf("Name = %q, want %q", u.Name, "Ada King")
	}
}

func TestGoalInputValidate(t *testing.T) {
	valid := NewGoalInput{UserID: "user_1", Name: "Read", Type: GoalCustom, Frequency: FrequencyDaily}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if !valid.Active() {
		t.Error("Active() without IsActive should default to true")
	}
	paused := false
	withFlag := valid
	withFlag.IsActive = &paused
	if withFlag.Active() {
		t.Error("Active() with IsActive=false should be false")
	}

	badType := valid
	badType.Type = "sleep"
	if err := badType.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Validate() with bad type error = %v", err)
	}

	badFreq := valid
	badFreq.Frequency = "monthly"
	if err := badFreq.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Validate() with bad frequency error = %v", err)
	}

	noName := valid
	noName.Name = "  "
	if err := noName.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Validate() with blank name error = %v", err)
	}
}

func TestGoalPatch(t *testing.T) {
	if err := (&GoalPatch{}).Validate(); !errors.Is(err, ErrNoUpdates) {
		t.Errorf("empty patch error = %v, want ErrNoUpdates", err)
	}

	target := 30.0
	if err := (&GoalPatch{TargetValue: &target, ClearTargetValue: true}).Validate(); err == nil {
		t.Error("conflicting target fields should fail")
	}

	g := &Goal{Name: "Run", TargetValue: &target, Unit: "min", IsActive: true}
	inactive := false
	p := &GoalPatch{ClearTargetValue: true, Unit: strPtr(""), IsActive: &inactive}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	p.Apply(g)
	if g.TargetValue != nil || g.Unit != "" || g.IsActive {
		t.Errorf("Apply() = %+v, want cleared target/unit and inactive", g)
	}
}

func TestDailyLogPatch(t *testing.T) {
	if err := (&DailyLogPatch{}).Validate(); !errors.Is(err, ErrNoUpdates) {
		t.Errorf("empty patch error = %v, want ErrNoUpdates", err)
	}

	done := true
	v := 5.5
	l := &DailyLog{}
	(&DailyLogPatch{Completed: &done, Value: &v, Notes: strPtr("felt good")}).Apply(l)
	if !l.Completed || l.Value == nil || *l.Value != 5.5 || l.Notes != "felt good" {
		t.Errorf("Apply() = %+v", l)
	}

	(&DailyLogPatch{ClearValue: true}).Apply(l)
	if l.Value != nil {
		t.Errorf("Value = %v, want nil", *l.Value)
	}
}

func TestWeightEntryInputValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      NewWeightEntryInput
		wantErr bool
	}{
		{"valid lbs", NewWeightEntryInput{UserID: "u", Date: "2024-06-01", Weight: 180, Unit: UnitLbs}, false},
		{"valid kg", NewWeightEntryInput{UserID: "u", Date: "2024-06-01", Weight: 81.6, Unit: UnitKg}, false},
		{"zero weight", NewWeightEntryInput{UserID: "u", Date: "2024-06-01", Weight: 0, Unit: UnitKg}, true},
		{"bad unit", NewWeightEntryInput{UserID: "u", Date: "2024-06-01", Weight: 80, Unit: "stone"}, true},
		{"bad date", NewWeightEntryInput{UserID: "u", Date: "yesterday", Weight: 80, Unit: UnitKg}, true},
		{"no user", NewWeightEntryInput{Date: "2024-06-01", Weight: 80, Unit: UnitKg}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSettingsPatch(t *testing.T) {
	if err := (&SettingsPatch{}).Validate(); !errors.Is(err, ErrNoUpdates) {
		t.Errorf("empty patch error = %v, want ErrNoUpdates", err)
	}

	badDay := 3
	if err := (&SettingsPatch{FirstDayOfWeek: &badDay}).Validate(); err == nil {
		t.Error("first day of week 3 should fail")
	}

	badTheme := Theme("sepia")
	if err := (&SettingsPatch{Theme: &badTheme}).Validate(); err == nil {
		t.Error("unknown theme should fail")
	}

	s := DefaultSettings()
	(&SettingsPatch{LastActiveUserID: strPtr("user_1")}).Apply(&s)
	if s.LastActiveUserID == nil || *s.LastActiveUserID != "user_1" {
		t.Fatalf("LastActiveUserID = %v, want user_1", s.LastActiveUserID)
	}
	(&SettingsPatch{LastActiveUserID: strPtr("")}).Apply(&s)
	if s.LastActiveUserID != nil {
		t.Errorf("LastActiveUserID = %v, want nil", *s.LastActiveUserID)
	}
}

func TestNewIDPrefix(t *testing.T) {
	a := NewID(GoalIDPrefix)
	b := NewID(GoalIDPrefix)
	if !strings.HasPrefix(a, "goal_") {
		t.Errorf("NewID() = %q, want goal_ prefix", a)
	}
	if a == b {
		t.Errorf("NewID() returned duplicate %q", a)
	}
}
