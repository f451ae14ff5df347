package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/ttriggs/Connect-Four/internal/domain"
	"github.com/ttriggs/Connect-Four/internal/service/game"
	"github.com/ttriggs/Connect-Four/internal/service/player"
)

type MatchHandler struct {
	SessionManager    *game.SessionManager
	DefaultDifficulty domain.Difficulty
	log               zerolog.Logger
}

func NewMatchHandler(sm *game.SessionManager, defaultDifficulty domain.Difficulty, log zerolog.Logger) *MatchHandler {
	if defaultDifficulty == "" {
		defaultDifficulty = domain.Easy
	}
	return &MatchHandler{SessionManager: sm, DefaultDifficulty: defaultDifficulty, log: log}
}

type seatRequest struct {
	Kind       string `json:"kind"`
	Difficulty string `json:"difficulty"`
}

type seatsRequest struct {
	Player1 *seatRequest `json:"player1"`
	Player2 *seatRequest `json:"player2"`
}

type moveRequest struct {
	Column *int `json:"column" binding:"required"`
}

type matchResponse struct {
	ID       string        `json:"id"`
	Snapshot game.Snapshot `json:"snapshot"`
}

type difficultyResponse struct {
	Name    domain.Difficulty `json:"name"`
	Bot     string            `json:"bot"`
	Default bool              `json:"default"`
}

// Missing seats default to a human in seat one against an AI at the
// configured difficulty.
func (h *MatchHandler) seats(req seatsRequest) (player.Spec, player.Spec, error) {
	p1 := seatRequest{Kind: string(domain.KindHuman)}
	p2 := seatRequest{Kind: string(domain.KindAI)}
	if req.Player1 != nil {
		p1 = *req.Player1
	}
	if req.Player2 != nil {
		p2 = *req.Player2
	}

	s1, err := h.toSpec(p1)
	if err != nil {
		return player.Spec{}, player.Spec{}, errors.Wrap(err, "player1")
	}
	s2, err := h.toSpec(p2)
	if err != nil {
		return player.Spec{}, player.Spec{}, errors.Wrap(err, "player2")
	}
	return s1, s2, nil
}

func (h *MatchHandler) toSpec(seat seatRequest) (player.Spec, error) {
	return player.ParseSpec(seat.Kind, seat.Difficulty, h.DefaultDifficulty)
}

func bindSeats(c *gin.Context) (seatsRequest, error) {
	var req seatsRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		return req, err
	}
	return req, nil
}

func (h *MatchHandler) session(c *gin.Context) (*game.Session, bool) {
	s, ok := h.SessionManager.GetSession(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": game.ErrSessionNotFound.Error()})
		return nil, false
	}
	return s, true
}

// CreateMatch starts a new local match. AI opening moves are already on
// the board in the response.
func (h *MatchHandler) CreateMatch(c *gin.Context) {
	req, err := bindSeats(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	p1, p2, err := h.seats(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s, err := h.SessionManager.CreateSession(p1, p2)
	if err != nil {
		h.log.Error().Err(err).Msg("create session failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, matchResponse{ID: s.ID, Snapshot: s.Snapshot()})
}

// ListMatches returns every live match.
func (h *MatchHandler) ListMatches(c *gin.Context) {
	c.JSON(http.StatusOK, h.SessionManager.ListSessions())
}

func (h *MatchHandler) GetMatch(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, matchResponse{ID: s.ID, Snapshot: s.Snapshot()})
}

// StartMatch seats new players in a match that was reset to the menu.
func (h *MatchHandler) StartMatch(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	req, err := bindSeats(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	p1, p2, err := h.seats(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snap, err := s.Start(p1, p2)
	if errors.Is(err, game.ErrMatchInProgress) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "snapshot": snap})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, matchResponse{ID: s.ID, Snapshot: snap})
}

// Move plays a human drop. Ignored moves (wrong turn, bad or full column)
// answer 409 with the unchanged snapshot.
func (h *MatchHandler) Move(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "column is required"})
		return
	}

	snap, applied := s.Move(*req.Column)
	if !applied {
		c.JSON(http.StatusConflict, gin.H{"error": "move ignored", "snapshot": snap})
		return
	}
	c.JSON(http.StatusOK, matchResponse{ID: s.ID, Snapshot: snap})
}

func (h *MatchHandler) Reset(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	snap, applied := s.Reset()
	if !applied {
		c.JSON(http.StatusConflict, gin.H{"error": "match is not finished", "snapshot": snap})
		return
	}
	c.JSON(http.StatusOK, matchResponse{ID: s.ID, Snapshot: snap})
}

func (h *MatchHandler) DeleteMatch(c *gin.Context) {
	if err := h.SessionManager.RemoveSession(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MatchHandler) Difficulties(c *gin.Context) {
	out := make([]difficultyResponse, 0, 2)
	for _, d := range []domain.Difficulty{domain.Easy, domain.Expert} {
		out = append(out, difficultyResponse{
			Name:    d,
			Bot:     domain.GetBotName(d),
			Default: d == h.DefaultDifficulty,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *MatchHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "matches": h.SessionManager.ActiveSessions()})
}
