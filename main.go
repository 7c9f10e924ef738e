package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/task-manager-api/modules/api"
	"github.com/example/task-manager-api/modules/auth"
	"github.com/example/task-manager-api/modules/notification"
	"github.com/example/task-manager-api/modules/tasks"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Task Manager API ===")

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Register modules with the framework.
	// Order: independent modules first, then dependent modules.
	app.Register(auth.NewModule())         // Identity: register, login, verify-token
	app.Register(notification.NewModule()) // Audit trail (subscribes to task events)
	app.Register(tasks.NewModule())        // Core domain (emits task events)
	app.Register(api.NewModule())          // HTTP surface (depends on auth + tasks)

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

func printStartupInfo() {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("REST API Endpoints (http://localhost:3000):")
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /api/v1/auth/register     - Register a new user")
	log.Println("  POST   /api/v1/auth/login        - Login and get a token")
	log.Println("  GET    /health                   - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  GET    /api/v1/auth/me           - Current user's profile")
	log.Println("  POST   /api/v1/tasks             - Create a task")
	log.Println("  GET    /api/v1/tasks             - List your tasks")
	log.Println("  GET    /api/v1/tasks/filter      - Filter by priority/status/due")
	log.Println("  GET    /api/v1/tasks/:id         - Get a task by id")
	log.Println("  PUT    /api/v1/tasks/:id         - Patch a task")
	log.Println("  DELETE /api/v1/tasks/:id         - Delete a task")
	log.Println("")
	log.Println("Configuration: JWT_SECRET, JWT_ISSUER, JWT_AUDIENCE,")
	log.Println("               AUTH_DB_PATH, TASKS_DB_PATH, PORT")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
