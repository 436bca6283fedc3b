// ABOUTME: User represents one tracker profile with display and avatar data
// ABOUTME: Owns goals, daily logs (through goals), and weight entries
package models

import "strings"

// DefaultGoalName is the goal created alongside every new profile
const DefaultGoalName = "Workout"

// User is a tracker profile
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	FirstName    string `json:"firstName,omitempty"`
	LastName     string `json:"lastName,omitempty"`
	Birthday     string `json:"birthday,omitempty"`
	ProfilePhoto string `json:"profilePhoto,omitempty"`
	AvatarColor  string `json:"avatarColor"`
	CreatedAt    string `json:"createdAt"`
}

// DisplayName joins first and last name the way profiles show them
func DisplayName(firstName, lastName string) string {
	return strings.TrimSpace(firstName + " " + lastName)
}

// NewUserInput carries the fields for profile creation
type NewUserInput struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Birthday     string `json:"birthday,omitempty"`
	ProfilePhoto string `json:"profilePhoto,omitempty"`
	AvatarColor  string `json:"avatarColor"`
}

// Validate checks the creation request
func (in *NewUserInput) Validate() error {
	if DisplayName(in.FirstName, in.LastName) == "" {
		return invalidf("first or last name is required")
	}
	if strings.TrimSpace(in.AvatarColor) == "" {
		return invalidf("avatar color cannot be empty")
	}
	if in.Birthday != "" {
		if _, err := ParseDate(in.Birthday); err != nil {
			return err
		}
	}
	return nil
}

// UserPatch is a sparse update. Nil fields are left alone; an empty
// Birthday or ProfilePhoto clears the stored value.
type UserPatch struct {
	Name         *string `json:"name,omitempty"`
	FirstName    *string `json:"firstName,omitempty"`
	LastName     *string `json:"lastName,omitempty"`
	Birthday     *string `json:"birthday,omitempty"`
	ProfilePhoto *string `json:"profilePhoto,omitempty"`
	AvatarColor  *string `json:"avatarColor,omitempty"`
}

// IsEmpty reports whether no field is present
func (p *UserPatch) IsEmpty() bool {
	return p.Name == nil && p.FirstName == nil && p.LastName == nil &&
		p.Birthday == nil && p.ProfilePhoto == nil && p.AvatarColor == nil
}

// Validate checks the present fields
func (p *UserPatch) Validate() error {
	if p.IsEmpty() {
		return ErrNoUpdates
	}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return invalidf("name cannot be empty")
	}
	if p.AvatarColor != nil && strings.TrimSpace(*p.AvatarColor) == "" {
		return invalidf("avatar color cannot be empty")
	}
	if p.Birthday != nil && *p.Birthday != "" {
		if _, err := ParseDate(*p.Birthday); err != nil {
			return err
		}
	}
	return nil
}

// CheckName reports a profile left without a display name, which creation
// also refuses
func (u *User) CheckName() error {
	if strings.TrimSpace(u.Name) == "" {
		return invalidf("first or last name is required")
	}
	return nil
}

// Apply merges the patch into u and recomputes the display name when
// either half of the name changed
func (p *UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = strings.TrimSpace(*p.Name)
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.FirstName != nil || p.LastName != nil {
		u.Name = DisplayName(u.FirstName, u.LastName)
	}
	if p.Birthday != nil {
		u.Birthday = *p.Birthday
	}
	if p.ProfilePhoto != nil {
		u.ProfilePhoto = *p.ProfilePhoto
	}
	if p.AvatarColor != nil {
		u.AvatarColor = *p.AvatarColor
	}
}
