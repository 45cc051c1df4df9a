package api

import (
	domain "github.com/example/task-management/domain/task"
	"github.com/example/task-management/modules/activity"
)

// SignupRequest represents a sign up request.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateTaskRequest represents a new task submitted by the client.
type CreateTaskRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Deadline    string `json:"deadline"`
}

// UpdateTaskRequest represents a task update. TaskName is ignored by the
// by-id route.
type UpdateTaskRequest struct {
	TaskName    string `json:"taskname"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Deadline    string `json:"deadline"`
	Status      string `json:"status"`
}

// SignupResponse is returned after a successful sign up.
type SignupResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Name    string `json:"name"`
}

// TaskAddedResponse is returned after a task is created.
type TaskAddedResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// TasksResponse carries every task.
type TasksResponse struct {
	Message string        `json:"message"`
	Token   string        `json:"token"`
	Tasks   []domain.Task `json:"tasks"`
}

// UpdatedTaskResponse carries the task after an update.
type UpdatedTaskResponse struct {
	Message     string      `json:"message"`
	UpdatedTask domain.Task `json:"updatedTask"`
}

// DeletedTaskResponse carries the task as it was before deletion.
type DeletedTaskResponse struct {
	Message     string      `json:"message"`
	DeletedTask domain.Task `json:"deletedTask"`
}

// CountsResponse carries the status breakdown.
type CountsResponse struct {
	Message string        `json:"message"`
	Token   string        `json:"token"`
	Counts  domain.Counts `json:"counts"`
}

// ActivityResponse carries recent task activity, newest first.
type ActivityResponse struct {
	Message  string           `json:"message"`
	Activity []activity.Entry `json:"activity"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
