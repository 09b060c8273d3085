package websocket

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type remoteRecorder struct {
	mu     sync.Mutex
	rooms  []string
	events [][]byte
}

func (r *remoteRecorder) record(room string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rooms = append(r.rooms, room)
	r.events = append(r.events, data)
}

func (r *remoteRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms)
}

func newBackplanePair(t *testing.T) (*Backplane, *Backplane, func()) {
	t.Helper()
	mr := miniredis.RunT(t)

	clientA := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	clientB := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	a := NewBackplane(clientA, zap.NewNop())
	b := NewBackplane(clientB, zap.NewNop())
	cleanup := func() {
		clientA.Close()
		clientB.Close()
	}
	return a, b, cleanup
}

func TestBackplane_DeliversAcrossInstances(t *testing.T) {
	a, b, cleanup := newBackplanePair(t)
	defer cleanup()

	remote := &remoteRecorder{}
	b.onRemote = remote.record

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go b.Listen(ctx)

	// Subscription setup races the first publish.
	time.Sleep(100 * time.Millisecond)

	a.Publish("user_abc", []byte(`{"event":"notification"}`))

	require.Eventually(t, func() bool { return remote.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	remote.mu.Lock()
	defer remote.mu.Unlock()
	assert.Equal(t, "user_abc", remote.rooms[0])
	assert.JSONEq(t, `{"event":"notification"}`, string(remote.events[0]))
}

func TestBackplane_SkipsOwnEvents(t *testing.T) {
	a, _, cleanup := newBackplanePair(t)
	defer cleanup()

	remote := &remoteRecorder{}
	a.onRemote = remote.record

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.Listen(ctx)

	time.Sleep(100 * time.Millisecond)

	// An instance must not re-deliver what its own hub already fanned out.
	a.Publish("user_abc", []byte(`{"event":"notification"}`))

	time.Sleep(200 * time.Millisecond)
	assert.Zero(t, remote.count())
}
