package task

import (
	"context"

	"github.com/go-monolith/mono"
)

// Request-reply handlers exposed via the service container. These
// delegate to the module's service operations so NATS clients observe
// the same validation and events as the HTTP API.

// createTask handles the task.create service request.
func (m *Module) createTask(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	task, err := m.CreateTask(ctx, req.Title, req.Description)
	if err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(task), nil
}

// getTask handles the task.get service request.
func (m *Module) getTask(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (TaskResponse, error) {
	task, err := m.GetTask(ctx, req.ID)
	if err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(task), nil
}

// listTasks handles the task.list service request.
func (m *Module) listTasks(ctx context.Context, _ ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.ListTasks(ctx)
	if err != nil {
		return ListTasksResponse{}, err
	}

	response := ListTasksResponse{
		Tasks: make([]TaskResponse, 0, len(tasks)),
		Count: len(tasks),
	}
	for _, task := range tasks {
		response.Tasks = append(response.Tasks, toTaskResponse(task))
	}
	return response, nil
}

// updateTaskStatus handles the task.updateStatus service request.
func (m *Module) updateTaskStatus(ctx context.Context, req UpdateTaskStatusRequest, _ *mono.Msg) (TaskResponse, error) {
	task, err := m.UpdateTaskStatus(ctx, req.ID, req.Status)
	if err != nil {
		return TaskResponse{}, err
	}
	return toTaskResponse(task), nil
}

// deleteTask handles the task.delete service request.
func (m *Module) deleteTask(ctx context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.DeleteTask(ctx, req.ID); err != nil {
		return DeleteTaskResponse{Deleted: false, ID: req.ID}, err
	}
	return DeleteTaskResponse{Deleted: true, ID: req.ID}, nil
}
