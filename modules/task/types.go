package task

import (
	"time"

	domain "github.com/example/task-management/domain/task"
)

// CreateTaskRequest is the payload of the create-task service.
type CreateTaskRequest struct {
	UserID        int64      `json:"user_id"`
	Title         string     `json:"task_title"`
	Category      string     `json:"category"`
	Details       string     `json:"details"`
	PriorityLevel string     `json:"priority_level"`
	DueDate       *time.Time `json:"due_date,omitempty"`
}

// ListTasksRequest is the payload of the list-tasks service.
type ListTasksRequest struct {
	UserID int64 `json:"user_id"`
}

// ListTasksResponse carries every task.
type ListTasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
}

// UpdateTaskByTitleRequest is the payload of the update-task-by-title service.
type UpdateTaskByTitleRequest struct {
	UserID int64         `json:"user_id"`
	Title  string        `json:"task_title"`
	Fields domain.Fields `json:"fields"`
}

// UpdateTaskRequest is the payload of the update-task service.
type UpdateTaskRequest struct {
	UserID int64         `json:"user_id"`
	TaskID int64         `json:"task_id"`
	Fields domain.Fields `json:"fields"`
}

// DeleteTaskRequest is the payload of the delete-task service.
type DeleteTaskRequest struct {
	UserID int64 `json:"user_id"`
	TaskID int64 `json:"task_id"`
}

// TaskResponse carries a single task.
type TaskResponse struct {
	Task domain.Task `json:"task"`
}

// GetCountsRequest is the payload of the get-counts service.
type GetCountsRequest struct {
	UserID int64 `json:"user_id"`
}

// CountsResponse carries the status breakdown.
type CountsResponse struct {
	Counts domain.Counts `json:"counts"`
}
