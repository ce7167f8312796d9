package broadcast

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/example/task-tracker-demo/domain/task"
	"github.com/example/task-tracker-demo/events"
)

func setupTestModule(t *testing.T) (*BroadcastModule, *fakeConn) {
	t.Helper()

	module := NewModule()
	require.NoError(t, module.Start(context.Background()))
	t.Cleanup(func() {
		require.NoError(t, module.Stop(context.Background()))
	})

	conn := &fakeConn{}
	module.GetHub().Register(&Client{ID: "subscriber", Conn: conn})
	waitForClients(t, module.GetHub(), 1)
	return module, conn
}

func receiveEvent(t *testing.T, conn *fakeConn) WSEvent {
	t.Helper()
	require.Eventually(t, func() bool {
		return conn.frameCount() == 1
	}, time.Second, 5*time.Millisecond, "expected one broadcast frame")

	var event WSEvent
	require.NoError(t, json.Unmarshal(conn.lastFrame(), &event))
	return event
}

func TestBroadcastModule_TaskCreated(t *testing.T) {
	module, conn := setupTestModule(t)

	created := events.TaskCreatedEvent{
		Task: domain.Task{ID: 1, Title: "Buy milk", Status: domain.StatusPending},
	}
	require.NoError(t, module.handleTaskCreated(context.Background(), created, nil))

	event := receiveEvent(t, conn)
	assert.Equal(t, EventNewTask, event.Type)

	payload, err := json.Marshal(event.Data)
	require.NoError(t, err)

	var task domain.Task
	require.NoError(t, json.Unmarshal(payload, &task))
	assert.Equal(t, uint(1), task.ID)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, domain.StatusPending, task.Status)
}

func TestBroadcastModule_TaskUpdated(t *testing.T) {
	module, conn := setupTestModule(t)

	updated := events.TaskUpdatedEvent{
		ID:     3,
		Status: domain.StatusCompleted,
		Task:   domain.Task{ID: 3, Title: "Buy milk", Status: domain.StatusCompleted},
	}
	require.NoError(t, module.handleTaskUpdated(context.Background(), updated, nil))

	event := receiveEvent(t, conn)
	assert.Equal(t, EventTaskUpdated, event.Type)

	payload, err := json.Marshal(event.Data)
	require.NoError(t, err)

	var got events.TaskUpdatedEvent
	require.NoError(t, json.Unmarshal(payload, &got))
	assert.Equal(t, uint(3), got.ID)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	assert.Equal(t, domain.StatusCompleted, got.Task.Status)
}

func TestBroadcastModule_TaskDeleted(t *testing.T) {
	module, conn := setupTestModule(t)

	require.NoError(t, module.handleTaskDeleted(context.Background(), events.TaskDeletedEvent{ID: 9}, nil))

	event := receiveEvent(t, conn)
	assert.Equal(t, EventTaskDeleted, event.Type)

	payload, err := json.Marshal(event.Data)
	require.NoError(t, err)

	var got events.TaskDeletedEvent
	require.NoError(t, json.Unmarshal(payload, &got))
	assert.Equal(t, uint(9), got.ID)
}

func TestBroadcastModule_Health(t *testing.T) {
	module, _ := setupTestModule(t)

	health := module.Health(context.Background())
	assert.True(t, health.Healthy)
	assert.Equal(t, 1, health.Details["connected_clients"])
}
