package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn implements Conn and records every written frame.
type fakeConn struct {
	mu        sync.Mutex
	frames    [][]byte
	failWrite bool
	closed    bool
}

func (c *fakeConn) WriteMessage(_ int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failWrite {
		return errors.New("write failed")
	}
	frame := make([]byte, len(data))
	copy(frame, data)
	c.frames = append(c.frames, frame)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) frameCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.frames)
}

func (c *fakeConn) lastFrame() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.frames) == 0 {
		return nil
	}
	return c.frames[len(c.frames)-1]
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// startHub runs a hub for the duration of the test.
func startHub(t *testing.T) *Hub {
	t.Helper()

	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(func() {
		cancel()
		hub.Wait()
	})
	return hub
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return hub.ClientCount() == want
	}, time.Second, 5*time.Millisecond, "expected %d clients", want)
}

func TestHub_RegisterUnregister(t *testing.T) {
	hub := startHub(t)

	a := &Client{ID: "a", Conn: &fakeConn{}}
	b := &Client{ID: "b", Conn: &fakeConn{}}

	hub.Register(a)
	hub.Register(b)
	waitForClients(t, hub, 2)

	hub.Unregister(a)
	waitForClients(t, hub, 1)

	// Unregistering an unknown client is a no-op
	hub.Unregister(&Client{ID: "ghost", Conn: &fakeConn{}})
	waitForClients(t, hub, 1)
}

func TestHub_BroadcastReachesAllClients(t *testing.T) {
	hub := startHub(t)

	conns := []*fakeConn{{}, {}, {}}
	for i, conn := range conns {
		hub.Register(&Client{ID: string(rune('a' + i)), Conn: conn})
	}
	waitForClients(t, hub, 3)

	hub.Broadcast(EventNewTask, map[string]any{"id": 1})

	for _, conn := range conns {
		require.Eventually(t, func() bool {
			return conn.frameCount() == 1
		}, time.Second, 5*time.Millisecond)

		var event WSEvent
		require.NoError(t, json.Unmarshal(conn.lastFrame(), &event))
		assert.Equal(t, EventNewTask, event.Type)
	}
}

func TestHub_BroadcastSkipsFailingClient(t *testing.T) {
	hub := startHub(t)

	bad := &fakeConn{failWrite: true}
	good := &fakeConn{}
	hub.Register(&Client{ID: "bad", Conn: bad})
	hub.Register(&Client{ID: "good", Conn: good})
	waitForClients(t, hub, 2)

	hub.Broadcast(EventTaskDeleted, map[string]any{"id": 7})

	// The failing subscriber must not prevent delivery to the rest
	require.Eventually(t, func() bool {
		return good.frameCount() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestHub_UnregisteredClientReceivesNothing(t *testing.T) {
	hub := startHub(t)

	gone := &fakeConn{}
	stays := &fakeConn{}
	client := &Client{ID: "gone", Conn: gone}
	hub.Register(client)
	hub.Register(&Client{ID: "stays", Conn: stays})
	waitForClients(t, hub, 2)

	hub.Unregister(client)
	waitForClients(t, hub, 1)

	hub.Broadcast(EventTaskUpdated, map[string]any{"id": 2})

	require.Eventually(t, func() bool {
		return stays.frameCount() == 1
	}, time.Second, 5*time.Millisecond)
	assert.Zero(t, gone.frameCount())
}

func TestHub_CallsAfterShutdownDoNotBlock(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	cancel()
	hub.Wait()

	// Late calls from handler defers or in-flight consumers must
	// return instead of blocking on a loop nobody drains.
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		client := &Client{ID: "late", Conn: &fakeConn{}}
		hub.Register(client)
		hub.Unregister(client)
		for i := 0; i < cap(hub.broadcast)+1; i++ {
			hub.Broadcast(EventNewTask, nil)
		}
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("hub call blocked after shutdown")
	}
	assert.Zero(t, hub.ClientCount())
}

func TestHub_ShutdownClosesClients(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	conn := &fakeConn{}
	hub.Register(&Client{ID: "a", Conn: conn})
	waitForClients(t, hub, 1)

	cancel()
	hub.Wait()

	assert.True(t, conn.isClosed())
	assert.Zero(t, hub.ClientCount())
}
