package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/ttriggs/Connect-Four/internal/service/game"
)

const writeWait = 10 * time.Second

// ServerMessage is everything the server pushes down a match stream.
type ServerMessage struct {
	Type     string         `json:"type"`
	MatchID  string         `json:"matchId,omitempty"`
	Snapshot *game.Snapshot `json:"snapshot,omitempty"`
	Message  string         `json:"message,omitempty"`
}

// ClientMessage is what a viewer may send up a match stream.
type ClientMessage struct {
	Type    string       `json:"type"`
	// Column is required for "move"; nil means the client left it out.
	Column  *int         `json:"column,omitempty"`
	Player1 *seatMessage `json:"player1,omitempty"`
	Player2 *seatMessage `json:"player2,omitempty"`
}

type seatMessage struct {
	Kind       string `json:"kind"`
	Difficulty string `json:"difficulty"`
}

// conn pairs a socket with its write lock; gorilla connections allow only
// one concurrent writer.
type conn struct {
	ws      *websocket.Conn
	writeMu sync.Mutex
}

func (c *conn) send(msg ServerMessage) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(msg)
}

func (c *conn) ping() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// Hub tracks the sockets watching each match and fans snapshots out to
// them. It implements game.Notifier.
type Hub struct {
	matches map[string]map[*conn]struct{}
	mu      sync.RWMutex
	log     zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{matches: make(map[string]map[*conn]struct{}), log: log}
}

func (h *Hub) add(matchID string, ws *websocket.Conn) *conn {
	h.mu.Lock()
	defer h.mu.Unlock()

	c := &conn{ws: ws}
	if h.matches[matchID] == nil {
		h.matches[matchID] = make(map[*conn]struct{})
	}
	h.matches[matchID][c] = struct{}{}
	return c
}

func (h *Hub) remove(matchID string, c *conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	watchers, ok := h.matches[matchID]
	if !ok {
		return
	}
	if _, ok := watchers[c]; ok {
		c.ws.Close()
		delete(watchers, c)
	}
	if len(watchers) == 0 {
		delete(h.matches, matchID)
	}
}

// Watchers returns how many sockets follow matchID.
func (h *Hub) Watchers(matchID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.matches[matchID])
}

func (h *Hub) Notify(matchID string, snapshot game.Snapshot) {
	h.mu.RLock()
	watchers := make([]*conn, 0, len(h.matches[matchID]))
	for c := range h.matches[matchID] {
		watchers = append(watchers, c)
	}
	h.mu.RUnlock()

	msg := ServerMessage{Type: "snapshot", MatchID: matchID, Snapshot: &snapshot}
	for _, c := range watchers {
		if err := c.send(msg); err != nil {
			h.log.Debug().Err(err).Str("match", matchID).Msg("dropping watcher after failed write")
			h.remove(matchID, c)
		}
	}
}

// CloseMatch disconnects every watcher of a deleted match.
func (h *Hub) CloseMatch(matchID, reason string) {
	h.mu.Lock()
	watchers := h.matches[matchID]
	delete(h.matches, matchID)
	h.mu.Unlock()

	for c := range watchers {
		_ = c.send(ServerMessage{Type: "closed", MatchID: matchID, Message: reason})
		c.ws.Close()
	}
}
