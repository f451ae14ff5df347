package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/ttriggs/Connect-Four/internal/domain"
	"github.com/ttriggs/Connect-Four/internal/service/bot"
	"github.com/ttriggs/Connect-Four/internal/service/game"
	"github.com/ttriggs/Connect-Four/internal/service/player"
)

var humanSeat = player.Spec{Kind: domain.KindHuman}

func newStreamServer(t *testing.T) (*httptest.Server, *game.SessionManager, *Hub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sm := game.NewSessionManager(game.ManagerOptions{Seed: 3, Noise: bot.DefaultNoise, Log: zerolog.Nop()})
	hub := NewHub(zerolog.Nop())
	sm.SetNotifier(hub)
	h := NewHandler(hub, sm, []string{"http://localhost:5173"}, domain.Expert, zerolog.Nop())

	r := gin.New()
	r.GET("/ws/matches/:id", h.ServeMatch)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, sm, hub
}

func column(c int) *int { return &c }

func dial(t *testing.T, srv *httptest.Server, matchID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/matches/" + matchID
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { ws.Close() })
	return ws
}

func read(t *testing.T, ws *websocket.Conn) ServerMessage {
	t.Helper()
	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg ServerMessage
	if err := ws.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func TestStreamSendsSnapshotsAfterMoves(t *testing.T) {
	srv, sm, hub := newStreamServer(t)
	s, err := sm.CreateSession(humanSeat, humanSeat)
	if err != nil {
		t.Fatal(err)
	}

	ws := dial(t, srv, s.ID)
	first := read(t, ws)
	if first.Type != "snapshot" || first.Snapshot == nil || first.Snapshot.MoveCount != 0 {
		t.Fatalf("expected the initial snapshot, got %+v", first)
	}
	if hub.Watchers(s.ID) != 1 {
		t.Fatalf("expected one watcher, got %d", hub.Watchers(s.ID))
	}

	if err := ws.WriteJSON(ClientMessage{Type: "move", Column: column(3)}); err != nil {
		t.Fatal(err)
	}
	moved := read(t, ws)
	if moved.Type != "snapshot" || moved.Snapshot.MoveCount != 1 || moved.Snapshot.LastMove.Column != 3 {
		t.Fatalf("expected snapshot after move, got %+v", moved)
	}

	if err := ws.WriteJSON(ClientMessage{Type: "move", Column: column(9)}); err != nil {
		t.Fatal(err)
	}
	if rejected := read(t, ws); rejected.Type != "error" || rejected.Message != "move ignored" {
		t.Fatalf("expected rejection, got %+v", rejected)
	}
}

func TestStreamRejectsMoveWithoutColumn(t *testing.T) {
	srv, sm, _ := newStreamServer(t)
	s, _ := sm.CreateSession(humanSeat, humanSeat)

	ws := dial(t, srv, s.ID)
	read(t, ws)

	if err := ws.WriteMessage(websocket.TextMessage, []byte(`{"type":"move"}`)); err != nil {
		t.Fatal(err)
	}
	msg := read(t, ws)
	if msg.Type != "error" || msg.Message != "move ignored" {
		t.Fatalf("expected rejection, got %+v", msg)
	}
	if msg.Snapshot == nil || msg.Snapshot.MoveCount != 0 {
		t.Fatalf("board must stay empty, got %+v", msg.Snapshot)
	}
	if got := s.Snapshot().MoveCount; got != 0 {
		t.Fatalf("a move without a column was played, %d pieces on the board", got)
	}
}

func TestStreamSeesMovesFromOtherTransports(t *testing.T) {
	srv, sm, _ := newStreamServer(t)
	s, _ := sm.CreateSession(humanSeat, humanSeat)

	ws := dial(t, srv, s.ID)
	read(t, ws)

	s.Move(0)
	if msg := read(t, ws); msg.Snapshot == nil || msg.Snapshot.MoveCount != 1 {
		t.Fatalf("expected pushed snapshot, got %+v", msg)
	}
}

func TestStreamClosedWhenMatchRemoved(t *testing.T) {
	srv, sm, hub := newStreamServer(t)
	s, _ := sm.CreateSession(humanSeat, humanSeat)

	ws := dial(t, srv, s.ID)
	read(t, ws)

	if err := sm.RemoveSession(s.ID); err != nil {
		t.Fatal(err)
	}
	if msg := read(t, ws); msg.Type != "closed" {
		t.Fatalf("expected closed message, got %+v", msg)
	}
	if hub.Watchers(s.ID) != 0 {
		t.Fatalf("watchers left behind")
	}
}

func TestStreamUnknownMatch(t *testing.T) {
	srv, _, _ := newStreamServer(t)
	resp, err := http.Get(srv.URL + "/ws/matches/missing")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"http://localhost:5173"})
	for origin, want := range map[string]bool{
		"":                      true,
		"http://localhost:5173": true,
		"http://evil.example":   false,
	} {
		r := httptest.NewRequest(http.MethodGet, "/ws/matches/x", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		if got := check(r); got != want {
			t.Fatalf("origin %q: got %v want %v", origin, got, want)
		}
	}
}
