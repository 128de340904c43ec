package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task is a to-do item
type Task struct {
	ID          uuid.UUID
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
}

// Validate ensures the task adheres to domain rules
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: task title cannot be empty", ErrInvalidArgument)
	}
	return nil
}
