package api

import (
	"errors"
	"log"
	"strconv"

	domain "github.com/example/task-management/domain/task"
	"github.com/example/task-management/modules/activity"
	"github.com/example/task-management/modules/auth"
	"github.com/example/task-management/modules/task"
	"github.com/gofiber/fiber/v2"
)

// defaultActivityLimit is used when GET /api/activity has no limit parameter.
const defaultActivityLimit = 20

// Handlers contains HTTP handlers for the API.
type Handlers struct {
	authPort     auth.AuthPort
	taskPort     task.TaskPort
	activityPort activity.ActivityPort
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(authPort auth.AuthPort, taskPort task.TaskPort, activityPort activity.ActivityPort) *Handlers {
	return &Handlers{
		authPort:     authPort,
		taskPort:     taskPort,
		activityPort: activityPort,
	}
}

// Signup handles account creation.
func (h *Handlers) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Please fill in all fields.")
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return badRequest(c, "Please fill in all fields.")
	}

	resp, err := h.authPort.Register(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingFields):
			return badRequest(c, "Please fill in all fields.")
		case errors.Is(err, auth.ErrEmailInUse):
			return badRequest(c, "Email is already in use.")
		case errors.Is(err, auth.ErrPasswordTooLong):
			return badRequest(c, "Password must be at most 72 bytes.")
		default:
			return internalError(c, "Internal server error.", err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(SignupResponse{
		Message: "Sign up successful!",
		Token:   resp.Token,
	})
}

// Login handles credential checks.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Please provide email and password.")
	}

	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Please provide email and password.")
	}

	resp, err := h.authPort.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingCredentials):
			return badRequest(c, "Please provide email and password.")
		case errors.Is(err, auth.ErrInvalidCredentials):
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid email or password.",
			})
		default:
			return internalError(c, "Internal server error.", err)
		}
	}

	return c.Status(fiber.StatusOK).JSON(LoginResponse{
		Message: "Login successful!",
		Token:   resp.Token,
		Name:    resp.Name,
	})
}

// CreateTask adds a task. New tasks always start Pending.
func (h *Handlers) CreateTask(c *fiber.Ctx) error {
	const failure = "An error occurred while adding the task."

	claims, ok := claimsFrom(c)
	if !ok {
		return unauthorized(c)
	}

	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body.")
	}

	due, err := domain.ParseDueDate(req.Deadline)
	if err != nil {
		return badRequest(c, "Invalid deadline.")
	}

	if _, err := h.taskPort.CreateTask(c.UserContext(), &task.CreateTaskRequest{
		UserID:        claims.UserID,
		Title:         req.Name,
		Category:      req.Category,
		Details:       req.Description,
		PriorityLevel: req.Priority,
		DueDate:       due,
	}); err != nil {
		return internalError(c, failure, err)
	}

	token, err := h.authPort.IssueToken(c.UserContext(), claims.UserID)
	if err != nil {
		return internalError(c, failure, err)
	}

	return c.Status(fiber.StatusOK).JSON(TaskAddedResponse{
		Message: "Task added successfully.",
		Token:   token,
	})
}

// ListTasks returns every task.
func (h *Handlers) ListTasks(c *fiber.Ctx) error {
	const failure = "An error occurred while fetching the tasks."

	claims, ok := claimsFrom(c)
	if !ok {
		return unauthorized(c)
	}

	tasks, err := h.taskPort.ListTasks(c.UserContext(), claims.UserID)
	if err != nil {
		return internalError(c, failure, err)
	}

	token, err := h.authPort.IssueToken(c.UserContext(), claims.UserID)
	if err != nil {
		return internalError(c, failure, err)
	}

	return c.Status(fiber.StatusOK).JSON(TasksResponse{
		Message: "Tasks fetched successfully.",
		Token:   token,
		Tasks:   tasks,
	})
}

// UpdateTaskByTitle overwrites every task whose title equals taskname.
func (h *Handlers) UpdateTaskByTitle(c *fiber.Ctx) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return unauthorized(c)
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body.")
	}

	fields, err := req.fields()
	if err != nil {
		return fieldError(c, err)
	}

	updated, err := h.taskPort.UpdateTaskByTitle(c.UserContext(), &task.UpdateTaskByTitleRequest{
		UserID: claims.UserID,
		Title:  req.TaskName,
		Fields: fields,
	})
	if err != nil {
		return updateError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(UpdatedTaskResponse{
		Message:     "Task updated successfully.",
		UpdatedTask: *updated,
	})
}

// UpdateTask overwrites the task identified by :taskId.
func (h *Handlers) UpdateTask(c *fiber.Ctx) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return unauthorized(c)
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return taskNotFound(c)
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body.")
	}

	fields, err := req.fields()
	if err != nil {
		return fieldError(c, err)
	}

	updated, err := h.taskPort.UpdateTask(c.UserContext(), &task.UpdateTaskRequest{
		UserID: claims.UserID,
		TaskID: taskID,
		Fields: fields,
	})
	if err != nil {
		return updateError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(UpdatedTaskResponse{
		Message:     "Task updated successfully.",
		UpdatedTask: *updated,
	})
}

// DeleteTask removes the task identified by :taskId.
func (h *Handlers) DeleteTask(c *fiber.Ctx) error {
	claims, ok := claimsFrom(c)
	if !ok {
		return unauthorized(c)
	}

	taskID, ok := parseTaskID(c)
	if !ok {
		return taskNotFound(c)
	}

	deleted, err := h.taskPort.DeleteTask(c.UserContext(), taskID, claims.UserID)
	if err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			return taskNotFound(c)
		}
		return internalError(c, "An error occurred while deleting the task.", err)
	}

	return c.Status(fiber.StatusOK).JSON(DeletedTaskResponse{
		Message:     "Task deleted successfully.",
		DeletedTask: *deleted,
	})
}

// GetCounts returns how many tasks exist in total and per status.
func (h *Handlers) GetCounts(c *fiber.Ctx) error {
	const failure = "An error occurred while fetching the task counts."

	claims, ok := claimsFrom(c)
	if !ok {
		return unauthorized(c)
	}

	counts, err := h.taskPort.GetCounts(c.UserContext(), claims.UserID)
	if err != nil {
		return internalError(c, failure, err)
	}

	token, err := h.authPort.IssueToken(c.UserContext(), claims.UserID)
	if err != nil {
		return internalError(c, failure, err)
	}

	return c.Status(fiber.StatusOK).JSON(CountsResponse{
		Message: "Task counts fetched successfully.",
		Token:   token,
		Counts:  *counts,
	})
}

// Activity returns recent task events, newest first.
func (h *Handlers) Activity(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultActivityLimit)

	entries, err := h.activityPort.RecentActivity(c.UserContext(), limit)
	if err != nil {
		return internalError(c, "An error occurred while fetching the activity.", err)
	}

	return c.Status(fiber.StatusOK).JSON(ActivityResponse{
		Message:  "Activity fetched successfully.",
		Activity: entries,
	})
}

// fields validates the mutable columns of an update.
func (r UpdateTaskRequest) fields() (domain.Fields, error) {
	status, err := domain.ParseStatus(r.Status)
	if err != nil {
		return domain.Fields{}, err
	}
	due, err := domain.ParseDueDate(r.Deadline)
	if err != nil {
		return domain.Fields{}, err
	}
	return domain.Fields{
		Category:      r.Category,
		Details:       r.Description,
		PriorityLevel: r.Priority,
		DueDate:       due,
		Status:        status,
	}, nil
}

// parseTaskID reads :taskId. Ids that are not positive integers match no task.
func parseTaskID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("taskId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func fieldError(c *fiber.Ctx, err error) error {
	if errors.Is(err, domain.ErrInvalidDueDate) {
		return badRequest(c, "Invalid deadline.")
	}
	return badRequest(c, "Status must be Pending or Completed.")
}

func updateError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		return taskNotFound(c)
	case errors.Is(err, domain.ErrInvalidStatus):
		return badRequest(c, "Status must be Pending or Completed.")
	default:
		return internalError(c, "An error occurred while updating the task.", err)
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "bad_request",
		Message: message,
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
		Error:   "unauthorized",
		Message: "Access token is required.",
	})
}

func taskNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
		Error:   "not_found",
		Message: "Task not found",
	})
}

// internalError logs err and answers with a fixed message so internals never leak.
func internalError(c *fiber.Ctx, message string, err error) error {
	log.Printf("[api] %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   "internal_error",
		Message: message,
	})
}
