// ABOUTME: Tests for user storage operations
// ABOUTME: Verifies CRUD, the default goal, display-name sync, and cascades
package sqlite

import (
	"errors"
	"strings"
	"testing"

	"github.com/harper/habits/internal/models"
)

func TestUserCRUD(t *testing.T) {
	store := newTestStorage(t)

	in := models.NewUserInput{
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Birthday:     "1815-12-10",
		ProfilePhoto: "data:image/png;base64,AAAA",
		AvatarColor:  "#aa00ff",
	}
	user, err := store.CreateUser(in)
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if !strings.HasPrefix(user.ID, "user_") {
		t.Errorf("ID = %v, want user_ prefix", user.ID)
	}
	if user.Name != "Ada Lovelace" {
		t.Errorf("Name = %v, want Ada Lovelace", user.Name)
	}
	if user.CreatedAt != models.FormatTimestamp(testNow) {
		t.Errorf("CreatedAt = %v, want %v", user.CreatedAt, models.FormatTimestamp(testNow))
	}

	// Round-trip
	got, err := store.GetUser(user.ID)
	if err != nil {
		t.Fatalf("GetUser() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetUser() returned nil")
	}
	if *got != *user {
		t.Errorf("GetUser() = %+v, want %+v", *got, *user)
	}

	users, err := store.GetUsers()
	if err != nil {
		t.Fatalf("GetUsers() error = %v", err)
	}
	if len(users) != 1 {
		t.Errorf("GetUsers() count = %d, want 1", len(users))
	}

	if err := store.DeleteUser(user.ID); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}
	got, err = store.GetUser(user.ID)
	if err != nil {
		t.Fatalf("GetUser() after delete error = %v", err)
	}
	if got != nil {
		t.Error("GetUser() after delete should return nil")
	}
}

func TestCreateUserAddsWorkoutGoal(t *testing.T) {
	store := newTestStorage(t)
	_, goal := createTestUser(t, store, "Grace", "Hopper")

	if goal.Name != models.DefaultGoalName {
		t.Errorf("goal Name = %v, want %v", goal.Name, models.DefaultGoalName)
	}
	if goal.Type != models.GoalWorkout || goal.Frequency != models.FrequencyDaily {
		t.Errorf("goal = %s/%s, want workout/daily", goal.Type, goal.Frequency)
	}
	if !goal.IsActive {
		t.Error("default goal should be active")
	}
}

func TestCreateUserValidation(t *testing.T) {
	store := newTestStorage(t)

	tests := []struct {
		name string
		in   models.NewUserInput
	}{
		{"no name", models.NewUserInput{AvatarColor: "#000"}},
		{"no color", models.NewUserInput{FirstName: "A"}},
		{"bad birthday", models.NewUserInput{FirstName: "A", AvatarColor: "#000", Birthday: "12/10/1815"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.CreateUser(tt.in)
			if !errors.Is(err, models.ErrInvalidInput) {
				t.Errorf("CreateUser() error = %v, want ErrInvalidInput", err)
			}
		})
	}

	users, _ := store.GetUsers()
	if len(users) != 0 {
		t.Errorf("rejected creates left %d users", len(users))
	}
}

func TestUpdateUserDisplayNameSync(t *testing.T) {
	store := newTestStorage(t)
	user, _ := createTestUser(t, store, "Ada", "Lovelace")

	updated, err := store.UpdateUser(user.ID, models.UserPatch{FirstName: ptr("Augusta")})
	if err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}
	if updated.Name != "Augusta Lovelace" {
		t.Errorf("Name = %v, want Augusta Lovelace", updated.Name)
	}

	got, _ := store.GetUser(user.ID)
	if got.Name != "Augusta Lovelace" || got.FirstName != "Augusta" || got.LastName != "Lovelace" {
		t.Errorf("stored user = %+v", got)
	}

	// Explicit name sticks when neither half changes
	updated, err = store.UpdateUser(user.ID, models.UserPatch{Name: ptr("  Countess  ")})
	if err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}
	if updated.Name != "Countess" {
		t.Errorf("Name = %v, want Countess", updated.Name)
	}
}

func TestUpdateUserErrors(t *testing.T) {
	store := newTestStorage(t)
	user, _ := createTestUser(t, store, "Ada", "Lovelace")

	_, err := store.UpdateUser(user.ID, models.UserPatch{})
	if !errors.Is(err, models.ErrNoUpdates) {
		t.Errorf("empty patch error = %v, want ErrNoUpdates", err)
	}

	for _, patch := range []models.UserPatch{
		{FirstName: ptr(""), LastName: ptr("")},
		{FirstName: ptr("  "), LastName: ptr("")},
		{Name: ptr("   ")},
	} {
		if _, err := store.UpdateUser(user.ID, patch); !errors.Is(err, models.ErrInvalidInput) {
			t.Errorf("UpdateUser(%+v) error = %v, want ErrInvalidInput", patch, err)
		}
	}
	got, _ := store.GetUser(user.ID)
	if got.Name != "Ada Lovelace" || got.FirstName != "Ada" {
		t.Errorf("rejected updates changed the profile: %+v", got)
	}

	_, err = store.UpdateUser("user_missing", models.UserPatch{AvatarColor: ptr("#fff")})
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("missing user error = %v, want ErrNotFound", err)
	}

	if err := store.DeleteUser("user_missing"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("DeleteUser() missing error = %v, want ErrNotFound", err)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	store := newTestStorage(t)
	user, goal := createTestUser(t, store, "Ada", "Lovelace")
	other, otherGoal := createTestUser(t, store, "Grace", "Hopper")

	if _, err := store.ToggleDailyLog(user.ID, goal.ID, "2024-06-01"); err != nil {
		t.Fatalf("ToggleDailyLog() error = %v", err)
	}
	if _, err := store.ToggleDailyLog(other.ID, otherGoal.ID, "2024-06-01"); err != nil {
		t.Fatalf("ToggleDailyLog() error = %v", err)
	}
	if _, err := store.AddWeightEntry(models.NewWeightEntryInput{
		UserID: user.ID, Date: "2024-06-01", Weight: 150, Unit: models.UnitLbs,
	}); err != nil {
		t.Fatalf("AddWeightEntry() error = %v", err)
	}
	if _, err := store.UpdateSettings(models.SettingsPatch{LastActiveUserID: ptr(user.ID)}); err != nil {
		t.Fatalf("UpdateSettings() error = %v", err)
	}

	if err := store.DeleteUser(user.ID); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}

	for table, want := range map[string]int{"goals": 1, "daily_logs": 1, "weight_entries": 0} {
		var n int
		if err := store.db.Get(&n, `SELECT COUNT(1) FROM `+table+` WHERE user_id = ?`, user.ID); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != 0 {
			t.Errorf("%s has %d orphan rows", table, n)
		}
		var total int
		_ = store.db.Get(&total, `SELECT COUNT(1) FROM `+table)
		if total != want {
			t.Errorf("%s total = %d, want %d (other user untouched)", table, total, want)
		}
	}

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("GetSettings() error = %v", err)
	}
	if settings.LastActiveUserID != nil {
		t.Errorf("LastActiveUserID = %v, want nil after delete", *settings.LastActiveUserID)
	}
}
