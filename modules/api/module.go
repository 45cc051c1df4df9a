package api

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/example/task-management/modules/activity"
	"github.com/example/task-management/modules/auth"
	"github.com/example/task-management/modules/task"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	nanoid "github.com/jaevor/go-nanoid"
)

// DefaultPort is the listen port when PORT is unset.
const DefaultPort = "5000"

// APIModule is the HTTP API module.
type APIModule struct {
	app          *fiber.App
	port         string
	authPort     auth.AuthPort
	taskPort     task.TaskPort
	activityPort activity.ActivityPort
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule listening on PORT.
func NewModule() *APIModule {
	port := os.Getenv("PORT")
	if port == "" {
		port = DefaultPort
	}
	return &APIModule{port: port}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the list of module dependencies.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "task", "activity"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authPort = auth.NewAuthAdapter(container)
	case "task":
		m.taskPort = task.NewTaskAdapter(container)
	case "activity":
		m.activityPort = activity.NewActivityAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.authPort == nil {
		return fmt.Errorf("auth dependency not set")
	}
	if m.taskPort == nil {
		return fmt.Errorf("task dependency not set")
	}
	if m.activityPort == nil {
		return fmt.Errorf("activity dependency not set")
	}

	app, err := newApp(NewHandlers(m.authPort, m.taskPort, m.activityPort))
	if err != nil {
		return err
	}
	m.app = app

	// Start server in goroutine
	go func() {
		if err := m.app.Listen(":" + m.port); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on :%s", m.port)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.port,
		},
	}
}

// newApp builds the Fiber app with middleware and routes.
func newApp(h *Handlers) (*fiber.App, error) {
	generate, err := nanoid.Standard(21)
	if err != nil {
		return nil, fmt.Errorf("failed to create request id generator: %w", err)
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	// Add middleware
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: generate,
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New())

	setupRoutes(app, h)
	return app, nil
}

// setupRoutes configures all API routes.
func setupRoutes(app *fiber.App, h *Handlers) {
	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	api := app.Group("/api")

	// Public routes
	api.Post("/signup", h.Signup)
	api.Post("/login", h.Login)

	// Protected routes (require a bearer token)
	gate := AuthMiddleware(h.authPort)
	api.Post("/taskmanagement", gate, h.CreateTask)
	api.Get("/getTaskmanagement", gate, h.ListTasks)
	api.Put("/updateTaskmanagement", gate, h.UpdateTaskByTitle)
	api.Put("/updateTaskmanagement/:taskId", gate, h.UpdateTask)
	api.Delete("/deleteTaskmanagement/:taskId", gate, h.DeleteTask)
	api.Get("/getCounts", gate, h.GetCounts)
	api.Get("/activity", gate, h.Activity)
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error."

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
