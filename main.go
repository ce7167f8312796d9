package main

import (
	"context"
	"log"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"

	"github.com/example/task-tracker-demo/modules/api"
	"github.com/example/task-tracker-demo/modules/broadcast"
	"github.com/example/task-tracker-demo/modules/task"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Task Tracker Demo - Fiber + GORM/SQLite + EventBus Pubsub ===")

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "tasks.db"
	}

	// Create modules
	taskModule := task.NewModule(dbPath, app.Logger())
	broadcastModule := broadcast.NewModule()
	apiModule := api.NewModule(taskModule, app.Logger())

	// Inject broadcast hub into API module
	// (This is done manually because the hub is not exposed via ServiceContainer)
	apiModule.SetHub(broadcastModule.GetHub())

	// Register modules with the framework.
	// Order: independent modules first, then modules with dependencies
	// - task: Core domain (store + service, event emitter)
	// - broadcast: Event consumer (WebSocket fan-out)
	// - api: Driving adapter (Fiber HTTP/WebSocket server, depends on task)
	app.Register(taskModule)
	app.Register(broadcastModule)
	app.Register(apiModule)

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(dbPath)

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

func printStartupInfo(dbPath string) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("Architecture:")
	log.Println("  - HTTP Framework: Fiber with WebSocket support")
	log.Println("  - Storage: GORM + SQLite")
	log.Printf("  - Database: %s", dbPath)
	log.Println("  - Event Bus: NATS JetStream (internal pubsub)")
	log.Println("")
	log.Println("Event-Driven Updates:")
	log.Println("  - TaskCreated events -> broadcast module -> WebSocket clients")
	log.Println("  - TaskUpdated events -> broadcast module -> WebSocket clients")
	log.Println("  - TaskDeleted events -> broadcast module -> WebSocket clients")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%s):", port)
	log.Println("  GET    /health     - Health check")
	log.Println("  POST   /tasks      - Create a new task")
	log.Println("  GET    /tasks      - List all tasks")
	log.Println("  PUT    /tasks/:id  - Update task status")
	log.Println("  DELETE /tasks/:id  - Delete a task")
	log.Println("")
	log.Printf("WebSocket Endpoint (ws://localhost:%s/ws):", port)
	log.Println("  New subscribers receive an initialTasks snapshot, then")
	log.Println("  newTask / taskUpdated / taskDeleted broadcasts")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
