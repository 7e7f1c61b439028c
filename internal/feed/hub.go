package feed

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/metorial/homewatch/internal/aggregate"
	"github.com/metorial/homewatch/internal/metrics"
	"github.com/metorial/homewatch/internal/store"
)

const broadcastBuffer = 256

type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Version   uint64      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// frame is an encoded change and the store version it carries.
type frame struct {
	version uint64
	data    []byte
}

// Hub fans store changes out to connected websocket clients. The client set
// is owned by the Run goroutine.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan frame
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	count      atomic.Int64
	logger     *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan frame, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run owns the client set until ctx is cancelled. Run must be called once.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	defer h.closeAll()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.register:
			if !h.greet(client) {
				close(client.send)
				continue
			}
			h.clients[client] = true
			h.setCount()
			h.logger.Debug("Feed client registered",
				zap.String("remote", client.remote),
				zap.Uint64("since", client.since))

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.setCount()
				h.logger.Debug("Feed client unregistered", zap.String("remote", client.remote))
			}

		case f := <-h.broadcast:
			for client := range h.clients {
				if f.version <= client.since {
					continue
				}
				select {
				case client.send <- f.data:
				default:
					h.logger.Warn("Feed client buffer full, dropping", zap.String("remote", client.remote))
					delete(h.clients, client)
					close(client.send)
				}
			}
			h.setCount()
		}
	}
}

// greet queues the current snapshot for a new client and remembers its
// version. It runs on the Run goroutine, so every change published after the
// snapshot is still ahead in the broadcast queue and every change already in
// the queue at or below that version is skipped for this client.
func (h *Hub) greet(client *Client) bool {
	snap := client.store.Snapshot()
	initial, err := EncodeSnapshot(snap)
	if err != nil {
		h.logger.Error("Failed to encode snapshot", zap.Error(err))
		return false
	}
	client.since = snap.Version
	client.send <- initial
	return true
}

func (h *Hub) closeAll() {
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
	h.setCount()
}

func (h *Hub) setCount() {
	h.count.Store(int64(len(h.clients)))
	metrics.FeedClients.Set(float64(len(h.clients)))
}

func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// Publish is a store listener. It never blocks: when the broadcast queue is
// full the event is dropped.
func (h *Hub) Publish(change store.Change) {
	message, err := Encode(change)
	if err != nil {
		h.logger.Error("Failed to encode change", zap.Error(err))
		return
	}

	select {
	case h.broadcast <- frame{version: change.Snapshot.Version, data: message}:
	default:
		h.logger.Warn("Feed broadcast queue full, dropping change",
			zap.String("kind", string(change.Kind)),
			zap.Uint64("version", change.Snapshot.Version))
	}
}

// Encode renders a change as a feed event.
func Encode(change store.Change) ([]byte, error) {
	snap := change.Snapshot
	return json.Marshal(Event{
		ID:        uuid.NewString(),
		Type:      string(change.Kind),
		Version:   snap.Version,
		Timestamp: snap.UpdatedAt,
		Payload:   payloadFor(change.Kind, snap),
	})
}

// EncodeSnapshot renders the full state, sent to each client on connect.
func EncodeSnapshot(snap *store.Snapshot) ([]byte, error) {
	return json.Marshal(Event{
		ID:        uuid.NewString(),
		Type:      "snapshot",
		Version:   snap.Version,
		Timestamp: snap.UpdatedAt,
		Payload:   snap,
	})
}

func payloadFor(kind store.ChangeKind, snap *store.Snapshot) interface{} {
	switch kind {
	case store.ChangeHealth:
		return snap.Health
	case store.ChangePerformance:
		return map[string]interface{}{
			"network":        snap.Network,
			"cpu_history":    snap.CPUHistory,
			"memory_history": snap.MemoryHistory,
		}
	case store.ChangeDevices:
		return map[string]interface{}{
			"devices": snap.Devices,
			"summary": aggregate.SummarizeDevices(snap.Devices),
		}
	case store.ChangeAlerts:
		return map[string]interface{}{
			"alerts":  snap.Alerts,
			"summary": aggregate.SummarizeAlerts(snap.Alerts),
		}
	case store.ChangeAutomations:
		return map[string]interface{}{
			"automation_rules": snap.Rules,
			"summary":          aggregate.SummarizeAutomations(snap.Rules),
		}
	case store.ChangeScenes:
		return snap.Scenes
	default:
		return snap
	}
}
