package api

import (
	"context"
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	domain "github.com/example/task-tracker-demo/domain/task"
	"github.com/example/task-tracker-demo/modules/broadcast"
)

// healthHandler handles GET /health.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module":            "api",
			"connected_clients": m.hub.ClientCount(),
		},
	})
}

// createTask handles POST /tasks.
func (m *APIModule) createTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Title is required and must be a non-empty string",
		})
	}

	task, err := m.taskModule.CreateTask(c.UserContext(), req.Title, req.Description)
	if err != nil {
		return m.mapError(c, err, "Internal server error while creating the task")
	}

	return c.Status(fiber.StatusCreated).JSON(TaskResponse{
		Message: "Task created successfully",
		Task:    task,
	})
}

// listTasks handles GET /tasks.
func (m *APIModule) listTasks(c *fiber.Ctx) error {
	tasks, err := m.taskModule.ListTasks(c.UserContext())
	if err != nil {
		return m.mapError(c, err, "Internal server error while retrieving tasks")
	}

	return c.JSON(ListTasksResponse{
		Message: "Tasks retrieved successfully",
		Tasks:   tasks,
		Count:   len(tasks),
	})
}

// updateTaskStatus handles PUT /tasks/:id. Status validation runs
// before id validation, so a bad status is rejected regardless of
// whether the id exists.
func (m *APIModule) updateTaskStatus(c *fiber.Ctx) error {
	var req UpdateTaskStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Status is required and must be a string",
		})
	}

	if err := domain.ValidateStatus(req.Status); err != nil {
		return m.mapError(c, err, "Internal server error while updating the task")
	}

	id, ok := parseTaskID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid task ID",
		})
	}

	task, err := m.taskModule.UpdateTaskStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return m.mapError(c, err, "Internal server error while updating the task")
	}

	return c.JSON(TaskResponse{
		Message: "Task status updated successfully",
		Task:    task,
	})
}

// deleteTask handles DELETE /tasks/:id.
func (m *APIModule) deleteTask(c *fiber.Ctx) error {
	id, ok := parseTaskID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid task ID",
		})
	}

	if err := m.taskModule.DeleteTask(c.UserContext(), id); err != nil {
		return m.mapError(c, err, "Internal server error while deleting the task")
	}

	return c.JSON(DeleteTaskResponse{
		Message:       "Task deleted successfully",
		DeletedTaskID: id,
	})
}

// handleWebSocket handles WebSocket subscribers at /ws. Each new
// subscriber receives a one-time snapshot of the current task list
// before it joins the broadcast set, so the snapshot always precedes
// any mutation event the subscriber will observe.
func (m *APIModule) handleWebSocket(c *websocket.Conn) {
	clientID := uuid.New().String()
	client := &broadcast.Client{ID: clientID, Conn: c}

	// Snapshot is not retried; a failed send leaves the subscription open.
	tasks, err := m.taskModule.ListTasks(context.Background())
	if err != nil {
		log.Printf("[api] Failed to load initial tasks for %s: %v", clientID, err)
	} else if err := c.WriteJSON(broadcast.WSEvent{Type: broadcast.EventInitialTasks, Data: tasks}); err != nil {
		log.Printf("[api] Failed to send initial tasks to %s: %v", clientID, err)
	}

	m.hub.Register(client)
	defer func() {
		m.hub.Unregister(client)
		log.Printf("[api] WebSocket client disconnected: %s", clientID)
	}()

	log.Printf("[api] WebSocket client connected: %s", clientID)

	// Subscribers are read-only; the loop only waits for disconnect.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[api] Read error from %s: %v", clientID, err)
			}
			return
		}
	}
}

// mapError converts service errors to HTTP responses. Storage errors
// surface as a generic 500 body; the cause is logged, never exposed.
func (m *APIModule) mapError(c *fiber.Ctx, err error, storageMessage string) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: ve.Message})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "Task not found"})
	default:
		m.logger.Error("Storage error", "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: storageMessage})
	}
}

// parseTaskID parses the :id path parameter as a positive integer.
func parseTaskID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}
