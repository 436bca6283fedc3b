// ABOUTME: Shared fixtures for SQLite storage tests
// ABOUTME: Fixed clock, in-memory storage, and a seeded user
package sqlite

import (
	"testing"
	"time"

	"github.com/harper/habits/internal/models"
)

// testNow is 2024-06-05 10:00 local, the "today" of every storage test
var testNow = time.Date(2024, time.June, 5, 10, 0, 0, 0, time.Local)

func fixedClock() time.Time { return testNow }

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	store, err := NewStorageInMemory(WithClock(fixedClock))
	if err != nil {
		t.Fatalf("NewStorageInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// createTestUser creates a user and returns it with its default Workout goal
func createTestUser(t *testing.T, store *Storage, first, last string) (*models.User, models.Goal) {
	t.Helper()
	user, err := store.CreateUser(models.NewUserInput{
		FirstName:   first,
		LastName:    last,
		AvatarColor: "#ff8800",
	})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	goals, err := store.GetGoals(user.ID)
	if err != nil {
		t.Fatalf("GetGoals() error = %v", err)
	}
	if len(goals) != 1 {
		t.Fatalf("default goals = %d, want 1", len(goals))
	}
	return user, goals[0]
}

func ptr[T any](v T) *T { return &v }
