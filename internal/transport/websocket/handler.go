package websocket

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/ttriggs/Connect-Four/internal/domain"
	"github.com/ttriggs/Connect-Four/internal/service/game"
	"github.com/ttriggs/Connect-Four/internal/service/player"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Handler serves the per-match snapshot stream.
type Handler struct {
	Hub               *Hub
	SessionManager    *game.SessionManager
	DefaultDifficulty domain.Difficulty
	Upgrader          websocket.Upgrader
	log               zerolog.Logger
}

func NewHandler(hub *Hub, sm *game.SessionManager, allowedOrigins []string, defaultDifficulty domain.Difficulty, log zerolog.Logger) *Handler {
	if defaultDifficulty == "" {
		defaultDifficulty = domain.Easy
	}
	return &Handler{
		Hub:               hub,
		SessionManager:    sm,
		DefaultDifficulty: defaultDifficulty,
		Upgrader: websocket.Upgrader{
			CheckOrigin:     originChecker(allowedOrigins),
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		log: log,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

// ServeMatch upgrades GET /ws/matches/:id. The current snapshot is sent
// immediately and again after every change made through any transport.
func (h *Handler) ServeMatch(c *gin.Context) {
	matchID := c.Param("id")
	session, ok := h.SessionManager.GetSession(matchID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": game.ErrSessionNotFound.Error()})
		return
	}

	ws, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Str("match", matchID).Msg("upgrade failed")
		return
	}

	cn := h.Hub.add(matchID, ws)
	h.log.Debug().Str("match", matchID).Int("watchers", h.Hub.Watchers(matchID)).Msg("watcher connected")
	defer func() {
		h.Hub.remove(matchID, cn)
		h.log.Debug().Str("match", matchID).Msg("watcher disconnected")
	}()

	snap := session.Snapshot()
	if err := cn.send(ServerMessage{Type: "snapshot", MatchID: matchID, Snapshot: &snap}); err != nil {
		return
	}

	ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if err := cn.ping(); err != nil {
					return
				}
			}
		}
	}()

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug().Err(err).Str("match", matchID).Msg("watcher dropped")
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			_ = cn.send(ServerMessage{Type: "error", MatchID: matchID, Message: "invalid message"})
			continue
		}
		h.processMessage(cn, session, msg)
	}
}

// processMessage applies one client command. Accepted commands reach every
// watcher through the hub; rejections only go back to the sender.
func (h *Handler) processMessage(cn *conn, session *game.Session, msg ClientMessage) {
	reject := func(text string, snap game.Snapshot) {
		_ = cn.send(ServerMessage{Type: "error", MatchID: session.ID, Message: text, Snapshot: &snap})
	}

	switch msg.Type {
	case "move":
		if msg.Column == nil {
			reject("move ignored", session.Snapshot())
			return
		}
		if snap, applied := session.Move(*msg.Column); !applied {
			reject("move ignored", snap)
		}

	case "reset":
		if snap, applied := session.Reset(); !applied {
			reject("match is not finished", snap)
		}

	case "start":
		p1, p2, err := h.seats(msg)
		if err != nil {
			reject(err.Error(), session.Snapshot())
			return
		}
		if snap, err := session.Start(p1, p2); err != nil {
			reject(err.Error(), snap)
		}

	default:
		_ = cn.send(ServerMessage{Type: "error", MatchID: session.ID, Message: "unknown message type"})
	}
}

func (h *Handler) seats(msg ClientMessage) (player.Spec, player.Spec, error) {
	p1 := seatMessage{Kind: string(domain.KindHuman)}
	p2 := seatMessage{Kind: string(domain.KindAI)}
	if msg.Player1 != nil {
		p1 = *msg.Player1
	}
	if msg.Player2 != nil {
		p2 = *msg.Player2
	}
	s1, err := player.ParseSpec(p1.Kind, p1.Difficulty, h.DefaultDifficulty)
	if err != nil {
		return s1, player.Spec{}, err
	}
	s2, err := player.ParseSpec(p2.Kind, p2.Difficulty, h.DefaultDifficulty)
	return s1, s2, err
}
