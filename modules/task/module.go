package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/task-management/events"
	"github.com/example/task-management/modules/cache"
	"github.com/example/task-management/modules/database"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TaskModule provides the task store services.
type TaskModule struct {
	dbPlugin    *database.PluginModule
	cachePlugin *cache.PluginModule
	eventBus    mono.EventBus
	repo        Repository
	service     *TaskService
}

// Compile-time interface checks.
var (
	_ mono.Module                = (*TaskModule)(nil)
	_ mono.ServiceProviderModule = (*TaskModule)(nil)
	_ mono.EventEmitterModule    = (*TaskModule)(nil)
	_ mono.EventBusAwareModule   = (*TaskModule)(nil)
	_ mono.UsePluginModule       = (*TaskModule)(nil)
	_ mono.HealthCheckableModule = (*TaskModule)(nil)
)

// NewModule creates a TaskModule that reads from the database plugin's pool.
func NewModule() *TaskModule {
	return &TaskModule{}
}

// NewModuleWithRepository creates a TaskModule over repo.
// This constructor enables dependency injection for testing.
func NewModuleWithRepository(repo Repository) *TaskModule {
	return &TaskModule{
		repo: repo,
	}
}

// Name returns the module name.
func (m *TaskModule) Name() string {
	return "task"
}

// SetPlugin receives the database and (optional) cache plugins.
func (m *TaskModule) SetPlugin(alias string, plugin mono.PluginModule) {
	switch alias {
	case "database":
		if p, ok := plugin.(*database.PluginModule); ok {
			m.dbPlugin = p
			log.Println("[task] Database plugin injected")
		}
	case "cache":
		if p, ok := plugin.(*cache.PluginModule); ok {
			m.cachePlugin = p
			log.Println("[task] Cache plugin injected")
		}
	}
}

// SetEventBus receives the event bus used to publish task events.
func (m *TaskModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module publishes.
func (m *TaskModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TaskCreatedV1.ToBase(),
		events.TaskUpdatedV1.ToBase(),
		events.TaskDeletedV1.ToBase(),
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create-task", json.Unmarshal, json.Marshal, m.createTask,
	); err != nil {
		return fmt.Errorf("failed to register create-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list-tasks", json.Unmarshal, json.Marshal, m.listTasks,
	); err != nil {
		return fmt.Errorf("failed to register list-tasks service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update-task-by-title", json.Unmarshal, json.Marshal, m.updateTaskByTitle,
	); err != nil {
		return fmt.Errorf("failed to register update-task-by-title service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update-task", json.Unmarshal, json.Marshal, m.updateTask,
	); err != nil {
		return fmt.Errorf("failed to register update-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-task", json.Unmarshal, json.Marshal, m.deleteTask,
	); err != nil {
		return fmt.Errorf("failed to register delete-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-counts", json.Unmarshal, json.Marshal, m.getCounts,
	); err != nil {
		return fmt.Errorf("failed to register get-counts service: %w", err)
	}

	log.Printf("[task] Registered services: create-task, list-tasks, update-task-by-title, update-task, delete-task, get-counts")
	return nil
}

// Start builds the repository and service. Plugins are already running.
func (m *TaskModule) Start(_ context.Context) error {
	if m.repo == nil {
		if m.dbPlugin == nil || m.dbPlugin.Pool() == nil {
			return fmt.Errorf("database plugin not set - ensure 'database' plugin is registered")
		}
		m.repo = NewPostgresRepository(m.dbPlugin.Pool())
	}

	var c cache.CacheService
	if m.cachePlugin != nil {
		c = m.cachePlugin.Port()
	}
	if c == nil {
		log.Println("[task] Cache not configured, reads go straight to the database")
	}
	if m.eventBus == nil {
		log.Println("[task] Warning: eventBus not set, events will not be published")
	}

	m.service = NewTaskService(m.repo, c, m.eventBus)
	log.Println("[task] Module started")
	return nil
}

// Stop shuts down the module.
func (m *TaskModule) Stop(_ context.Context) error {
	log.Println("[task] Module stopped")
	return nil
}

// Health reports whether the service is wired.
func (m *TaskModule) Health(_ context.Context) mono.HealthStatus {
	if m.service == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "service not initialized",
		}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"cached": m.service.cache != nil,
		},
	}
}

func (m *TaskModule) createTask(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	created, err := m.service.Create(ctx, req.UserID, CreateInput{
		Title:         req.Title,
		Category:      req.Category,
		Details:       req.Details,
		PriorityLevel: req.PriorityLevel,
		DueDate:       req.DueDate,
	})
	if err != nil {
		return TaskResponse{}, err
	}
	return TaskResponse{Task: *created}, nil
}

func (m *TaskModule) listTasks(ctx context.Context, _ ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.service.List(ctx)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return ListTasksResponse{Tasks: tasks}, nil
}

func (m *TaskModule) updateTaskByTitle(ctx context.Context, req UpdateTaskByTitleRequest, _ *mono.Msg) (TaskResponse, error) {
	updated, err := m.service.UpdateByTitle(ctx, req.UserID, req.Title, req.Fields)
	if err != nil {
		return TaskResponse{}, err
	}
	return TaskResponse{Task: *updated}, nil
}

func (m *TaskModule) updateTask(ctx context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	updated, err := m.service.UpdateByID(ctx, req.UserID, req.TaskID, req.Fields)
	if err != nil {
		return TaskResponse{}, err
	}
	return TaskResponse{Task: *updated}, nil
}

func (m *TaskModule) deleteTask(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	deleted, err := m.service.Delete(ctx, req.UserID, req.TaskID)
	if err != nil {
		return TaskResponse{}, err
	}
	return TaskResponse{Task: *deleted}, nil
}

func (m *TaskModule) getCounts(ctx context.Context, _ GetCountsRequest, _ *mono.Msg) (CountsResponse, error) {
	counts, err := m.service.Counts(ctx)
	if err != nil {
		return CountsResponse{}, err
	}
	return CountsResponse{Counts: counts}, nil
}
