package task

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	domain "github.com/example/task-management/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TaskPort defines the task store operations other modules depend on.
type TaskPort interface {
	CreateTask(ctx context.Context, req *CreateTaskRequest) (*domain.Task, error)
	ListTasks(ctx context.Context, userID int64) ([]domain.Task, error)
	UpdateTaskByTitle(ctx context.Context, req *UpdateTaskByTitleRequest) (*domain.Task, error)
	UpdateTask(ctx context.Context, req *UpdateTaskRequest) (*domain.Task, error)
	DeleteTask(ctx context.Context, taskID, userID int64) (*domain.Task, error)
	GetCounts(ctx context.Context, userID int64) (*domain.Counts, error)
}

// taskAdapter wraps ServiceContainer for type-safe cross-module communication.
type taskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new adapter for task services.
// container is the ServiceContainer from the task module received via SetDependencyServiceContainer.
func NewTaskAdapter(container mono.ServiceContainer) TaskPort {
	if container == nil {
		panic("task adapter requires non-nil ServiceContainer")
	}
	return &taskAdapter{container: container}
}

// CreateTask creates a task via the create-task service.
func (a *taskAdapter) CreateTask(ctx context.Context, req *CreateTaskRequest) (*domain.Task, error) {
	var resp TaskResponse
	if err := call(ctx, a.container, "create-task", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

// ListTasks lists every task via the list-tasks service.
func (a *taskAdapter) ListTasks(ctx context.Context, userID int64) ([]domain.Task, error) {
	req := ListTasksRequest{UserID: userID}
	var resp ListTasksResponse
	if err := call(ctx, a.container, "list-tasks", &req, &resp); err != nil {
		return nil, err
	}
	if resp.Tasks == nil {
		resp.Tasks = []domain.Task{}
	}
	return resp.Tasks, nil
}

// UpdateTaskByTitle updates tasks by title via the update-task-by-title service.
func (a *taskAdapter) UpdateTaskByTitle(ctx context.Context, req *UpdateTaskByTitleRequest) (*domain.Task, error) {
	var resp TaskResponse
	if err := call(ctx, a.container, "update-task-by-title", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

// UpdateTask updates a task by id via the update-task service.
func (a *taskAdapter) UpdateTask(ctx context.Context, req *UpdateTaskRequest) (*domain.Task, error) {
	var resp TaskResponse
	if err := call(ctx, a.container, "update-task", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

// DeleteTask deletes a task via the delete-task service.
func (a *taskAdapter) DeleteTask(ctx context.Context, taskID, userID int64) (*domain.Task, error) {
	req := DeleteTaskRequest{TaskID: taskID, UserID: userID}
	var resp TaskResponse
	if err := call(ctx, a.container, "delete-task", &req, &resp); err != nil {
		return nil, err
	}
	return &resp.Task, nil
}

// GetCounts fetches the status breakdown via the get-counts service.
func (a *taskAdapter) GetCounts(ctx context.Context, userID int64) (*domain.Counts, error) {
	req := GetCountsRequest{UserID: userID}
	var resp CountsResponse
	if err := call(ctx, a.container, "get-counts", &req, &resp); err != nil {
		return nil, err
	}
	return &resp.Counts, nil
}

func call[Req, Resp any](ctx context.Context, container mono.ServiceContainer, service string, req *Req, resp *Resp) error {
	if err := helper.CallRequestReplyService(
		ctx,
		container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		return fromRemoteError(service, err)
	}
	return nil
}

// knownErrors are the service errors that survive the trip over the bus as text.
var knownErrors = []error{
	ErrTaskNotFound,
	domain.ErrInvalidStatus,
}

// fromRemoteError restores the sentinel named in a remote error message.
func fromRemoteError(service string, err error) error {
	msg := err.Error()
	for _, known := range knownErrors {
		if strings.Contains(msg, known.Error()) {
			return fmt.Errorf("%s: %w", service, known)
		}
	}
	return fmt.Errorf("%s service call failed: %w", service, err)
}
