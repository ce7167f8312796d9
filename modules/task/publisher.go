package task

import (
	"github.com/go-monolith/mono"

	"github.com/example/task-tracker-demo/events"
)

// publisher is the port through which the module emits task events.
// The production implementation wraps the framework EventBus; tests
// substitute a recorder.
type publisher interface {
	taskCreated(event events.TaskCreatedEvent) error
	taskUpdated(event events.TaskUpdatedEvent) error
	taskDeleted(event events.TaskDeletedEvent) error
}

// busPublisher publishes task events on the framework EventBus using
// the versioned event definitions.
type busPublisher struct {
	bus mono.EventBus
}

func (p *busPublisher) taskCreated(event events.TaskCreatedEvent) error {
	return events.TaskCreatedV1.Publish(p.bus, event, nil)
}

func (p *busPublisher) taskUpdated(event events.TaskUpdatedEvent) error {
	return events.TaskUpdatedV1.Publish(p.bus, event, nil)
}

func (p *busPublisher) taskDeleted(event events.TaskDeletedEvent) error {
	return events.TaskDeletedV1.Publish(p.bus, event, nil)
}
