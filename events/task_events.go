package events

import (
	"github.com/go-monolith/mono/pkg/helper"

	domain "github.com/example/task-tracker-demo/domain/task"
)

// TaskCreatedEvent is emitted after a task has been persisted.
type TaskCreatedEvent struct {
	Task domain.Task `json:"task"`
}

// TaskUpdatedEvent is emitted after a task status change has been
// persisted. Task carries the re-read post-mutation record.
type TaskUpdatedEvent struct {
	ID     uint          `json:"id"`
	Status domain.Status `json:"status"`
	Task   domain.Task   `json:"task"`
}

// TaskDeletedEvent is emitted after a task has been removed.
type TaskDeletedEvent struct {
	ID uint `json:"id"`
}

// Event definitions for the task domain.
var (
	TaskCreatedV1 = helper.EventDefinition[TaskCreatedEvent](
		"task",
		"TaskCreated",
		"v1",
	)

	TaskUpdatedV1 = helper.EventDefinition[TaskUpdatedEvent](
		"task",
		"TaskUpdated",
		"v1",
	)

	TaskDeletedV1 = helper.EventDefinition[TaskDeletedEvent](
		"task",
		"TaskDeleted",
		"v1",
	)
)
