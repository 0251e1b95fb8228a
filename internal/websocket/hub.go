package websocket

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrClientClosed is returned when attempting to send to a closed client
var ErrClientClosed = errors.New("client is closed")

// ClientInterface defines the interface that clients must implement.
// Browser connections and in-process ledger subscribers both register as clients.
// Send must not block.
type ClientInterface interface {
	ID() string
	WorkspaceID() uuid.UUID
	Send(data []byte) error
	Close() error
}

// group is the set of clients watching one workspace, in join order
type group struct {
	order   []string
	members map[string]ClientInterface
}

func (g *group) add(c ClientInterface) {
	if _, ok := g.members[c.ID()]; !ok {
		g.order = append(g.order, c.ID())
	}
	g.members[c.ID()] = c
}

func (g *group) remove(id string) bool {
	if _, ok := g.members[id]; !ok {
		return false
	}
	delete(g.members, id)
	for i, other := range g.order {
		if other == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	return true
}

func (g *group) snapshot() []ClientInterface {
	out := make([]ClientInterface, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.members[id])
	}
	return out
}

// Hub fans workspace events out to the clients watching each workspace.
// Events for a workspace reach every member in the order they were broadcast.
type Hub struct {
	groups map[uuid.UUID]*group
	mu     sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{groups: make(map[uuid.UUID]*group)}
}

// Register adds a client to the group of its workspace
func (h *Hub) Register(client ClientInterface) {
	workspaceID := client.WorkspaceID()

	h.mu.Lock()
	g, ok := h.groups[workspaceID]
	if !ok {
		g = &group{members: make(map[string]ClientInterface)}
		h.groups[workspaceID] = g
	}
	g.add(client)
	h.mu.Unlock()

	log.Debug().
		Str("workspace_id", workspaceID.String()).
		Str("client_id", client.ID()).
		Msg("WebSocket client registered")
}

// Unregister removes a client from its workspace group
func (h *Hub) Unregister(client ClientInterface) {
	if h.leave(client.WorkspaceID(), client.ID()) {
		log.Debug().
			Str("workspace_id", client.WorkspaceID().String()).
			Str("client_id", client.ID()).
			Msg("WebSocket client unregistered")
	}
}

func (h *Hub) leave(workspaceID uuid.UUID, clientID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	g, ok := h.groups[workspaceID]
	if !ok || !g.remove(clientID) {
		return false
	}
	if len(g.members) == 0 {
		delete(h.groups, workspaceID)
	}
	return true
}

// Broadcast sends an event to all clients in a specific workspace
func (h *Hub) Broadcast(workspaceID uuid.UUID, event Event) {
	data, err := event.ToJSON()
	if err != nil {
		log.Error().
			Err(err).
			Str("workspace_id", workspaceID.String()).
			Str("event_type", event.Type).
			Msg("Failed to serialize event")
		return
	}
	h.BroadcastRaw(workspaceID, event.Type, data)
}

// BroadcastRaw sends an already serialized event to all clients in a workspace.
// A client that can no longer accept messages is dropped from the group and
// closed, so it reconnects instead of silently missing events.
func (h *Hub) BroadcastRaw(workspaceID uuid.UUID, eventType string, data []byte) {
	h.mu.RLock()
	g, ok := h.groups[workspaceID]
	var members []ClientInterface
	if ok {
		members = g.snapshot()
	}
	h.mu.RUnlock()

	if len(members) == 0 {
		return
	}

	delivered := 0
	for _, c := range members {
		if err := c.Send(data); err != nil {
			log.Warn().
				Err(err).
				Str("workspace_id", workspaceID.String()).
				Str("client_id", c.ID()).
				Msg("Disconnecting client that cannot receive")
			h.leave(workspaceID, c.ID())
			// Closing may wait on a stalled peer
			go c.Close()
			continue
		}
		delivered++
	}

	log.Debug().
		Str("workspace_id", workspaceID.String()).
		Str("event_type", eventType).
		Int("client_count", delivered).
		Msg("Broadcast event")
}

// ClientCount returns the number of clients watching a workspace
func (h *Hub) ClientCount(workspaceID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if g, ok := h.groups[workspaceID]; ok {
		return len(g.members)
	}
	return 0
}

// TotalClientCount returns the number of clients across all workspaces
func (h *Hub) TotalClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, g := range h.groups {
		total += len(g.members)
	}
	return total
}
