package websocket

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event is the envelope every room message travels in.
type Event struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

type roomMessage struct {
	room string
	data []byte
}

// UserRoom is the deterministic room name for a recipient.
func UserRoom(userID uuid.UUID) string {
	return "user_" + userID.String()
}

// Hub maintains the set of active clients grouped into rooms and delivers
// published events to every client in a room. Delivery is best-effort: a
// room with no clients drops the event, the persisted notification row is
// what a client reconciles against on reconnect.
type Hub struct {
	rooms map[string]map[*Client]bool

	publish    chan roomMessage
	register   chan *Client
	unregister chan *Client

	backplane *Backplane
	log       *zap.Logger

	stop     chan struct{}
	stopOnce sync.Once
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		publish:    make(chan roomMessage, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
		stop:       make(chan struct{}),
	}
}

// SetBackplane attaches a shared pub/sub backplane so events published on
// one instance reach clients connected to another. Must be called before
// Run.
func (h *Hub) SetBackplane(b *Backplane) {
	h.backplane = b
	b.onRemote = h.deliverLocal
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			clients, ok := h.rooms[client.room]
			if !ok {
				clients = make(map[*Client]bool)
				h.rooms[client.room] = clients
			}
			clients[client] = true
			h.log.Debug("ws client registered", zap.String("room", client.room))

		case client := <-h.unregister:
			if clients, ok := h.rooms[client.room]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.rooms, client.room)
					}
					h.log.Debug("ws client unregistered", zap.String("room", client.room))
				}
			}

		case msg := <-h.publish:
			h.fanOut(msg.room, msg.data)

		case <-h.stop:
			for room, clients := range h.rooms {
				for client := range clients {
					close(client.send)
					delete(clients, client)
				}
				delete(h.rooms, room)
			}
			return
		}
	}
}

// Publish sends an event to every client in the room, and mirrors it onto
// the backplane for other instances. Non-blocking towards the caller.
func (h *Hub) Publish(room, event string, payload interface{}) {
	data, err := json.Marshal(Event{Event: event, Payload: payload})
	if err != nil {
		h.log.Error("ws event marshal failed", zap.String("event", event), zap.Error(err))
		return
	}

	h.deliverLocal(room, data)

	if h.backplane != nil {
		h.backplane.Publish(room, data)
	}
}

func (h *Hub) deliverLocal(room string, data []byte) {
	select {
	case h.publish <- roomMessage{room: room, data: data}:
	case <-h.stop:
	default:
		h.log.Warn("ws publish queue full, event dropped", zap.String("room", room))
	}
}

func (h *Hub) fanOut(room string, data []byte) {
	clients, ok := h.rooms[room]
	if !ok {
		return
	}
	for client := range clients {
		select {
		case client.send <- data:
		default:
			close(client.send)
			delete(clients, client)
		}
	}
	if len(clients) == 0 {
		delete(h.rooms, room)
	}
}

func (h *Hub) Stop() {
	h.stopOnce.Do(func() {
		close(h.stop)
	})
}
