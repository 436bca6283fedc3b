// ABOUTME: Entity identifier generation
// ABOUTME: IDs are kind-prefixed so rows are recognisable while debugging
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ID prefixes by entity kind
const (
	UserIDPrefix   = "user"
	GoalIDPrefix   = "goal"
	LogIDPrefix    = "log"
	WeightIDPrefix = "weight"
)

// NewID returns a unique identifier such as goal_20240601_081500_1a2b3c4d
func NewID(prefix string) string {
	return fmt.Sprintf("%s_%s_%s", prefix, time.Now().Format("20060102_150405"), uuid.New().String()[:8])
}
