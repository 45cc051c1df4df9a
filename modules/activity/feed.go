package activity

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultCapacity is the number of entries kept when ACTIVITY_CAPACITY is unset.
const DefaultCapacity = 100

// Entry types.
const (
	TypeTaskCreated = "task_created"
	TypeTaskUpdated = "task_updated"
	TypeTaskDeleted = "task_deleted"
)

// Entry is one line of the activity feed.
type Entry struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	TaskID    int64     `json:"task_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Feed is a fixed-size, concurrency-safe log of recent entries.
// Once full, each append overwrites the oldest entry.
type Feed struct {
	mu      sync.RWMutex
	entries []Entry
	next    int
	size    int
}

// NewFeed creates a Feed holding at most capacity entries.
func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Feed{
		entries: make([]Entry, capacity),
	}
}

// Append records a new entry and returns it.
func (f *Feed) Append(entryType string, taskID int64, title, message string) Entry {
	e := Entry{
		ID:        uuid.New().String(),
		Type:      entryType,
		TaskID:    taskID,
		Title:     title,
		Message:   message,
		Timestamp: time.Now(),
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries[f.next] = e
	f.next = (f.next + 1) % len(f.entries)
	if f.size < len(f.entries) {
		f.size++
	}
	return e
}

// Recent returns up to limit entries, newest first. limit is clamped to 1..Cap().
func (f *Feed) Recent(limit int) []Entry {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if limit < 1 {
		limit = 1
	}
	if limit > f.size {
		limit = f.size
	}

	result := make([]Entry, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (f.next - i + len(f.entries)) % len(f.entries)
		result = append(result, f.entries[idx])
	}
	return result
}

// Len returns the number of entries held.
func (f *Feed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.size
}

// Cap returns the maximum number of entries held.
func (f *Feed) Cap() int {
	return len(f.entries)
}
