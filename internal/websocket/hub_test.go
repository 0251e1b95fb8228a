package websocket

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingClient captures what the hub delivers to it
type recordingClient struct {
	id          string
	workspaceID uuid.UUID
	mu          sync.Mutex
	messages    [][]byte
	refuse      bool
	closed      bool
}

func newRecordingClient(id string, workspaceID uuid.UUID) *recordingClient {
	return &recordingClient{id: id, workspaceID: workspaceID}
}

func (r *recordingClient) ID() string { return r.id }
func (r *recordingClient) WorkspaceID() uuid.UUID { return r.workspaceID }

func (r *recordingClient) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *recordingClient) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

func (r *recordingClient) Send(data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.refuse {
		return ErrClientClosed
	}
	r.messages = append(r.messages, data)
	return nil
}

func (r *recordingClient) received() [][]byte {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([][]byte(nil), r.messages...)
}

func (r *recordingClient) types(t *testing.T) []string {
	t.Helper()
	var out []string
	for _, msg := range r.received() {
		var event Event
		require.NoError(t, json.Unmarshal(msg, &event))
		out = append(out, event.Type)
	}
	return out
}

var (
	home   = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	office = uuid.MustParse("22222222-2222-2222-2222-222222222222")
)

func TestHub_GroupsByWorkspace(t *testing.T) {
	hub := NewHub()
	a := newRecordingClient("a", home)
	b := newRecordingClient("b", home)
	c := newRecordingClient("c", office)
	hub.Register(a)
	hub.Register(b)
	hub.Register(c)
	hub.Register(a)

	assert.Equal(t, 2, hub.ClientCount(home))
	assert.Equal(t, 1, hub.ClientCount(office))
	assert.Equal(t, 0, hub.ClientCount(uuid.New()))
	assert.Equal(t, 3, hub.TotalClientCount())

	hub.Unregister(a)
	hub.Unregister(a)
	assert.Equal(t, 1, hub.ClientCount(home))

	hub.Unregister(b)
	hub.Unregister(c)
	assert.Equal(t, 0, hub.TotalClientCount())
}

func TestHub_BroadcastStaysInWorkspace(t *testing.T) {
	hub := NewHub()
	a := newRecordingClient("a", home)
	b := newRecordingClient("b", home)
	other := newRecordingClient("other", office)
	hub.Register(a)
	hub.Register(b)
	hub.Register(other)

	hub.Broadcast(home, TransactionCreated(map[string]interface{}{"id": "tx-42"}))

	assert.Equal(t, []string{"transaction.created"}, a.types(t))
	assert.Equal(t, []string{"transaction.created"}, b.types(t))
	assert.Empty(t, other.received())
}

func TestHub_PreservesEventOrder(t *testing.T) {
	hub := NewHub()
	client := newRecordingClient("a", home)
	hub.Register(client)

	hub.Broadcast(home, TransactionCreated(map[string]interface{}{"id": "1"}))
	hub.Broadcast(home, TransactionUpdated(map[string]interface{}{"id": "1"}))
	hub.Broadcast(home, TransactionDeleted(uuid.New()))

	assert.Equal(t, []string{"transaction.created", "transaction.updated", "transaction.deleted"}, client.types(t))
}

func TestHub_DropsClientsThatRefuse(t *testing.T) {
	hub := NewHub()
	healthy := newRecordingClient("healthy", home)
	stuck := newRecordingClient("stuck", home)
	stuck.refuse = true
	hub.Register(stuck)
	hub.Register(healthy)

	hub.BroadcastRaw(home, "account.created", []byte(`{"type":"account.created"}`))

	require.Len(t, healthy.received(), 1)
	assert.JSONEq(t, `{"type":"account.created"}`, string(healthy.received()[0]))
	assert.Equal(t, 1, hub.ClientCount(home), "refusing client leaves the group")
	assert.Eventually(t, stuck.isClosed, time.Second, 5*time.Millisecond, "refusing client is disconnected")
	assert.False(t, healthy.isClosed())
}

func TestHub_DisconnectsSlowConnection(t *testing.T) {
	hub := NewHub()
	client := NewClient(nil, uuid.New(), hub)
	client.Watch(home)
	require.Equal(t, 1, hub.ClientCount(home))

	// Nothing drains the send buffer, so it fills up
	for i := 0; i <= cap(client.send); i++ {
		hub.Broadcast(home, TransactionCreated(map[string]interface{}{"id": i}))
	}

	assert.Equal(t, 0, hub.ClientCount(home))
	assert.Eventually(t, client.IsClosed, time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, client.Send([]byte("{}")), ErrClientClosed)
}

func TestHub_BroadcastWithoutClients(t *testing.T) {
	hub := NewHub()
	require.NotPanics(t, func() {
		hub.Broadcast(uuid.New(), TransactionCreated(map[string]interface{}{"id": "tx-1"}))
	})
	require.NotPanics(t, func() {
		hub.Unregister(newRecordingClient("ghost", home))
	})
}

func TestHub_ConcurrentAccess(t *testing.T) {
	hub := NewHub()
	workspaces := []uuid.UUID{home, office, uuid.New()}

	clients := make([]*recordingClient, 30)
	for i := range clients {
		clients[i] = newRecordingClient(fmt.Sprintf("client-%d", i), workspaces[i%len(workspaces)])
	}

	var wg sync.WaitGroup
	for _, c := range clients {
		wg.Add(1)
		go func(c *recordingClient) {
			defer wg.Done()
			hub.Register(c)
		}(c)
	}
	wg.Wait()
	assert.Equal(t, len(clients), hub.TotalClientCount())

	for i, c := range clients {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			hub.Broadcast(workspaces[i%len(workspaces)], AccountUpdated(map[string]interface{}{"id": i}))
		}(i)
		go func(c *recordingClient) {
			defer wg.Done()
			hub.Unregister(c)
		}(c)
	}
	wg.Wait()

	assert.Equal(t, 0, hub.TotalClientCount())
}
