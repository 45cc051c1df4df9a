package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/task-management/modules/activity"
	"github.com/example/task-management/modules/api"
	"github.com/example/task-management/modules/auth"
	"github.com/example/task-management/modules/cache"
	"github.com/example/task-management/modules/database"
	"github.com/example/task-management/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	redisAddr := os.Getenv("REDIS_ADDR")
	cacheTTL := getEnvDuration("CACHE_TTL", cache.DefaultTTL)

	log.Println("=== Task Management API ===")

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register plugins first; they start before any module.
	// The framework calls SetPlugin(alias, plugin) on modules implementing UsePluginModule.
	if err := app.RegisterPlugin(database.NewPluginModule(), "database"); err != nil {
		log.Fatalf("Failed to register database plugin: %v", err)
	}
	if redisAddr != "" {
		cachePlugin := cache.NewPluginModuleWithConfig(cache.Config{
			Addr: redisAddr,
			TTL:  cacheTTL,
		})
		if err := app.RegisterPlugin(cachePlugin, "cache"); err != nil {
			log.Fatalf("Failed to register cache plugin: %v", err)
		}
	} else {
		log.Println("REDIS_ADDR not set, running without cache")
	}

	// Register modules
	// Order: independent modules first, then dependent modules
	app.Register(auth.NewModule())     // Credential services over the database plugin
	app.Register(task.NewModule())     // Task store services, emits task events
	app.Register(activity.NewModule()) // Consumes task events
	app.Register(api.NewModule())      // Depends on auth, task and activity

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
		log.Printf("Invalid %s %q, using %s", key, value, defaultValue)
	}
	return defaultValue
}

func printStartupInfo() {
	port := os.Getenv("PORT")
	if port == "" {
		port = api.DefaultPort
	}

	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%s):", port)
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /api/signup                          - Create an account")
	log.Println("  POST   /api/login                           - Log in and get a token")
	log.Println("  GET    /health                              - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  POST   /api/taskmanagement                  - Add a task")
	log.Println("  GET    /api/getTaskmanagement               - List all tasks")
	log.Println("  PUT    /api/updateTaskmanagement            - Update tasks by title")
	log.Println("  PUT    /api/updateTaskmanagement/:taskId    - Update a task by id")
	log.Println("  DELETE /api/deleteTaskmanagement/:taskId    - Delete a task")
	log.Println("  GET    /api/getCounts                       - Task counts by status")
	log.Println("  GET    /api/activity?limit=N                - Recent task activity")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
