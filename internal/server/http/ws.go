package httpserver

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

const wsIdlePingInterval = 30 * time.Second

type wsMessage struct {
	Type    string          `json:"type"`
	GameID  string          `json:"game_id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type hubEvent struct {
	gameID string
	msg    wsMessage
}

// Hub fans evaluation events out to the websocket clients watching a game.
type Hub struct {
	mu        sync.Mutex
	clients   map[*Client]struct{}
	broadcast chan hubEvent
}

type Client struct {
	gameID string
	send   chan []byte
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*Client]struct{}),
		broadcast: make(chan hubEvent, 64),
	}
}

func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case ev := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients {
				if client.gameID == ev.gameID {
					client.sendJSON(ev.msg)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Publish queues an event for the clients of gameID. Events are dropped
// when the queue is full.
func (h *Hub) Publish(gameID, typ string, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		log.Printf("hub: marshal %s: %v", typ, err)
		return
	}
	select {
	case h.broadcast <- hubEvent{gameID: gameID, msg: wsMessage{Type: typ, GameID: gameID, Payload: payload}}:
	default:
		log.Printf("hub: queue full, dropping %s for %s", typ, gameID)
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (c *Client) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func writeWSWithHeartbeat(conn *websocket.Conn, send <-chan []byte) error {
	ticker := time.NewTicker(wsIdlePingInterval)
	defer ticker.Stop()
	lastWrite := time.Now()
	ping, _ := json.Marshal(wsMessage{Type: "ping"})

	for {
		select {
		case msg, ok := <-send:
			if !ok {
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < wsIdlePingInterval {
				continue
			}
			if err := conn.WriteMessage(websocket.TextMessage, ping); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := s.games.Get(id); err != nil {
		writeGameError(w, err)
		return
	}
	if s.hub == nil {
		writeError(w, http.StatusServiceUnavailable, "websocket hub disabled")
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{gameID: id, send: make(chan []byte, 16)}
	s.hub.Register(client)
	client.sendJSON(wsMessage{Type: "subscribed", GameID: id})

	go func() {
		defer conn.Close()
		_ = writeWSWithHeartbeat(conn, client.send)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			s.hub.Unregister(client)
			return
		}
	}
}
