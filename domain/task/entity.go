package task

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status represents the state of a task.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

// ErrInvalidStatus is returned when a status is not one of the known values.
var ErrInvalidStatus = errors.New("status must be Pending or Completed")

// ErrInvalidDueDate is returned when a deadline cannot be parsed.
var ErrInvalidDueDate = errors.New("invalid due date")

// ParseStatus converts s into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusCompleted:
		return Status(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// dueDateLayouts are tried in order by ParseDueDate. The second and third match
// what an HTML datetime-local input submits.
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDueDate parses a deadline. An empty string means no due date.
func ParseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidDueDate, s)
}

// Task is a unit of work tracked by the store. JSON names follow the table columns.
type Task struct {
	ID            int64      `json:"id"`
	Title         string     `json:"task_title"`
	Category      string     `json:"category"`
	Details       string     `json:"details"`
	PriorityLevel string     `json:"priority_level"`
	DueDate       *time.Time `json:"due_date"`
	Status        Status     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Fields are the mutable columns of a task. Title is the lookup key and never changes.
type Fields struct {
	Category      string     `json:"category"`
	Details       string     `json:"details"`
	PriorityLevel string     `json:"priority_level"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	Status        Status     `json:"status"`
}

// Counts aggregates tasks by status. Statuses other than Pending and Completed
// contribute to Total only.
type Counts struct {
	Total     int64 `json:"total_count"`
	Pending   int64 `json:"pending_count"`
	Completed int64 `json:"completed_count"`
}
