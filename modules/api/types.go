package api

import domain "github.com/example/task-tracker-demo/domain/task"

// CreateTaskRequest is the body of POST /tasks. Description is a
// pointer so an absent description stays distinguishable from an
// empty one.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// UpdateTaskStatusRequest is the body of PUT /tasks/:id.
type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
}

// TaskResponse is the envelope for single-task responses.
type TaskResponse struct {
	Message string       `json:"message"`
	Task    *domain.Task `json:"task"`
}

// ListTasksResponse is the envelope for GET /tasks.
type ListTasksResponse struct {
	Message string         `json:"message"`
	Tasks   []*domain.Task `json:"tasks"`
	Count   int            `json:"count"`
}

// DeleteTaskResponse is the envelope for DELETE /tasks/:id.
type DeleteTaskResponse struct {
	Message       string `json:"message"`
	DeletedTaskID uint   `json:"deletedTaskId"`
}

// ErrorResponse is the API error body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the API health check response.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}
