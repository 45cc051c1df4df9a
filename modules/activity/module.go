package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/example/task-management/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// ActivityModule records task events into a bounded feed.
type ActivityModule struct {
	feed *Feed
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*ActivityModule)(nil)
	_ mono.EventConsumerModule   = (*ActivityModule)(nil)
	_ mono.ServiceProviderModule = (*ActivityModule)(nil)
	_ mono.HealthCheckableModule = (*ActivityModule)(nil)
)

// NewModule creates an ActivityModule sized by ACTIVITY_CAPACITY.
func NewModule() *ActivityModule {
	capacity := DefaultCapacity
	if v := os.Getenv("ACTIVITY_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			capacity = n
		} else {
			log.Printf("[activity] Warning: invalid ACTIVITY_CAPACITY %q, using %d", v, DefaultCapacity)
		}
	}
	return NewModuleWithCapacity(capacity)
}

// NewModuleWithCapacity creates an ActivityModule holding at most capacity entries.
func NewModuleWithCapacity(capacity int) *ActivityModule {
	return &ActivityModule{
		feed: NewFeed(capacity),
	}
}

// Name returns the module name.
func (m *ActivityModule) Name() string {
	return "activity"
}

// RegisterEventConsumers subscribes to the task events.
func (m *ActivityModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskUpdatedV1, m.handleTaskUpdated, m); err != nil {
		return fmt.Errorf("failed to register TaskUpdated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskDeletedV1, m.handleTaskDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskDeleted consumer: %w", err)
	}

	log.Printf("[activity] Registered event consumers: TaskCreated, TaskUpdated, TaskDeleted")
	return nil
}

// RegisterServices registers the recent-activity service.
func (m *ActivityModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "recent-activity", json.Unmarshal, json.Marshal, m.recentActivity,
	); err != nil {
		return fmt.Errorf("failed to register recent-activity service: %w", err)
	}

	log.Printf("[activity] Registered services: recent-activity")
	return nil
}

func (m *ActivityModule) handleTaskCreated(_ context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	log.Printf("[activity] Task created: %d - %s", event.TaskID, event.Title)
	m.feed.Append(TypeTaskCreated, event.TaskID, event.Title,
		fmt.Sprintf("Task '%s' added to %s by user %d", event.Title, categoryOrNone(event.Category), event.UserID))
	return nil
}

func (m *ActivityModule) handleTaskUpdated(_ context.Context, event events.TaskUpdatedEvent, _ *mono.Msg) error {
	log.Printf("[activity] Task updated: %d - %s", event.TaskID, event.Title)
	m.feed.Append(TypeTaskUpdated, event.TaskID, event.Title,
		fmt.Sprintf("Task '%s' is now %s (user %d)", event.Title, event.Status, event.UserID))
	return nil
}

func (m *ActivityModule) handleTaskDeleted(_ context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	log.Printf("[activity] Task deleted: %d by user %d", event.TaskID, event.UserID)
	m.feed.Append(TypeTaskDeleted, event.TaskID, event.Title,
		fmt.Sprintf("Task '%s' deleted by user %d", event.Title, event.UserID))
	return nil
}

func (m *ActivityModule) recentActivity(_ context.Context, req RecentActivityRequest, _ *mono.Msg) (RecentActivityResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = m.feed.Cap()
	}
	return RecentActivityResponse{Entries: m.feed.Recent(limit)}, nil
}

// Feed returns the underlying feed.
func (m *ActivityModule) Feed() *Feed {
	return m.feed
}

// Start starts the module.
func (m *ActivityModule) Start(_ context.Context) error {
	log.Printf("[activity] Module started - keeping the last %d task events", m.feed.Cap())
	return nil
}

// Stop stops the module.
func (m *ActivityModule) Stop(_ context.Context) error {
	log.Println("[activity] Module stopped")
	return nil
}

// Health reports feed occupancy.
func (m *ActivityModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"entries":  m.feed.Len(),
			"capacity": m.feed.Cap(),
		},
	}
}

func categoryOrNone(category string) string {
	if category == "" {
		return "no category"
	}
	return category
}
