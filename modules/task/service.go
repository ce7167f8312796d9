package task

import (
	"context"
	"strings"

	domain "github.com/example/task-tracker-demo/domain/task"
	"github.com/example/task-tracker-demo/events"
)

// CreateTask validates and persists a new task, then publishes a
// TaskCreated event carrying the stored record. The returned task is
// re-read from the store so it reflects server-assigned fields.
func (m *Module) CreateTask(_ context.Context, title string, description *string) (*domain.Task, error) {
	if err := domain.ValidateTitle(title); err != nil {
		return nil, err
	}

	var desc *string
	if description != nil {
		if err := domain.ValidateDescription(*description); err != nil {
			return nil, err
		}
		// An empty description is stored as NULL, same as an absent one.
		if trimmed := strings.TrimSpace(*description); trimmed != "" {
			desc = &trimmed
		}
	}

	task := &domain.Task{
		Title:       strings.TrimSpace(title),
		Description: desc,
		Status:      domain.StatusPending,
	}

	if err := m.repo.Create(task); err != nil {
		return nil, err
	}

	created, err := m.repo.FindByID(task.ID)
	if err != nil {
		return nil, err
	}

	m.publish("TaskCreated", func(p publisher) error {
		return p.taskCreated(events.TaskCreatedEvent{Task: *created})
	})

	return created, nil
}

// GetTask returns a task by id, or domain.ErrNotFound.
func (m *Module) GetTask(_ context.Context, id uint) (*domain.Task, error) {
	return m.repo.FindByID(id)
}

// ListTasks returns all tasks ordered newest-created-first.
func (m *Module) ListTasks(_ context.Context) ([]*domain.Task, error) {
	return m.repo.FindAll()
}

// UpdateTaskStatus validates the status, updates the task and
// publishes a TaskUpdated event carrying the re-read record.
//
// The existence check and the update are two separate store calls; a
// task deleted in between resolves to domain.ErrNotFound.
func (m *Module) UpdateTaskStatus(_ context.Context, id uint, status string) (*domain.Task, error) {
	if err := domain.ValidateStatus(status); err != nil {
		return nil, err
	}

	if _, err := m.repo.FindByID(id); err != nil {
		return nil, err
	}

	affected, err := m.repo.UpdateStatus(id, domain.Status(status))
	if err != nil {
		return nil, err
	}
	if !affected {
		return nil, domain.ErrNotFound
	}

	updated, err := m.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	m.publish("TaskUpdated", func(p publisher) error {
		return p.taskUpdated(events.TaskUpdatedEvent{
			ID:     updated.ID,
			Status: updated.Status,
			Task:   *updated,
		})
	})

	return updated, nil
}

// DeleteTask removes a task and publishes a TaskDeleted event.
func (m *Module) DeleteTask(_ context.Context, id uint) error {
	if _, err := m.repo.FindByID(id); err != nil {
		return err
	}

	affected, err := m.repo.Delete(id)
	if err != nil {
		return err
	}
	if !affected {
		return domain.ErrNotFound
	}

	m.publish("TaskDeleted", func(p publisher) error {
		return p.taskDeleted(events.TaskDeletedEvent{ID: id})
	})

	return nil
}

// publish emits an event through the publisher port. Broadcasting is
// fire-and-forget: a publish failure is logged and never propagated to
// the caller, so the triggering request still succeeds.
func (m *Module) publish(name string, fn func(p publisher) error) {
	if m.pub == nil {
		return
	}
	if err := fn(m.pub); err != nil {
		m.logger.Warn("Failed to publish event", "event", name, "error", err)
	}
}
