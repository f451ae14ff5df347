package game

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/ttriggs/Connect-Four/internal/domain"
	"github.com/ttriggs/Connect-Four/internal/service/bot"
	"github.com/ttriggs/Connect-Four/internal/service/player"
)

type State string

const (
	StateMenu        State = "menu"
	StatePlayer1Turn State = "player1_turn"
	StatePlayer2Turn State = "player2_turn"
	StateGameOver    State = "game_over"
	StateResetMenu   State = "reset_menu"
)

const (
	ErrMatchInProgress domain.Error = "match already started"
	ErrSessionNotFound domain.Error = "session not found"
)

// Match drives one local game: menu, alternating turns, result screen and
// back. It is not safe for concurrent use; Session serializes access.
type Match struct {
	board   *domain.Board
	logic   *domain.Logic
	picker  *bot.Picker
	players [2]player.Player
	specs   [2]player.Spec
	state   State
	result  string
	last    *player.Move

	// OnMove runs after every committed drop, OnEnd once per finished game.
	OnMove func(m player.Move)
	OnEnd  func(outcome domain.Outcome, result string)
}

func NewMatch(picker *bot.Picker) *Match {
	if picker == nil {
		picker = bot.NewPicker(nil, bot.DefaultNoise)
	}
	board := domain.NewBoard()
	return &Match{
		board:  board,
		logic:  domain.NewLogic(board),
		picker: picker,
		state:  StateMenu,
	}
}

// Start seats both players and hands the first turn to player one.
func (m *Match) Start(p1, p2 player.Spec) error {
	if m.state != StateMenu {
		return ErrMatchInProgress
	}

	var seats [2]player.Player
	for i, spec := range [2]player.Spec{p1, p2} {
		p, err := player.New(domain.PlayerID(i+1), spec, m.logic, m.picker)
		if err != nil {
			return errors.Wrapf(err, "player %d", i+1)
		}
		seats[i] = p
	}

	m.players = seats
	m.specs = [2]player.Spec{p1, p2}
	m.state = StatePlayer1Turn
	return nil
}

func (m *Match) State() State         { return m.state }
func (m *Match) Board() *domain.Board { return m.board }
func (m *Match) Logic() *domain.Logic { return m.logic }
func (m *Match) InMenu() bool         { return m.state == StateMenu }
func (m *Match) GameReset() bool      { return m.state == StateResetMenu }
func (m *Match) Result() string       { return m.result }

func (m *Match) InGameplay() bool {
	return m.state == StatePlayer1Turn || m.state == StatePlayer2Turn
}

// CurrentPlayer is nil outside of a turn.
func (m *Match) CurrentPlayer() player.Player {
	switch m.state {
	case StatePlayer1Turn:
		return m.players[0]
	case StatePlayer2Turn:
		return m.players[1]
	}
	return nil
}

func (m *Match) Players() []player.Player {
	if m.players[0] == nil {
		return nil
	}
	return m.players[:]
}

func (m *Match) HumansTurn() bool {
	p := m.CurrentPlayer()
	return p != nil && p.Kind() == domain.KindHuman
}

func (m *Match) AIsTurn() bool {
	p := m.CurrentPlayer()
	return p != nil && p.Kind() == domain.KindAI
}

// HumanMove plays column for the human whose turn it is. It reports false
// and leaves everything untouched when it is not a human's turn or the
// column cannot take a piece.
func (m *Match) HumanMove(column int) bool {
	if !m.HumansTurn() {
		return false
	}
	move, err := m.CurrentPlayer().TakeTurn(column)
	if err != nil {
		return false
	}
	m.finishTurn(move)
	return true
}

// Update performs at most one step of automatic progress: an AI turn or
// closing a finished game. It reports whether anything changed.
func (m *Match) Update() bool {
	switch {
	case m.AIsTurn():
		move, err := m.CurrentPlayer().TakeTurn(-1)
		if err != nil {
			// finishTurn ends the game on a full board, so an AI is never
			// asked to move without an open column.
			panic(errors.Wrapf(err, "ai %d in state %s", m.CurrentPlayer().ID(), m.state))
		}
		m.finishTurn(move)
		return true
	case m.state == StateGameOver:
		m.EndGame()
		return true
	}
	return false
}

// Advance runs Update until the match waits on a human or the menu.
func (m *Match) Advance() {
	for m.Update() {
	}
}

func (m *Match) finishTurn(move player.Move) {
	m.last = &move
	if m.logic.WinningLineThrough(move.Column, move.Row) || m.board.Full() {
		m.state = StateGameOver
	} else if m.state == StatePlayer1Turn {
		m.state = StatePlayer2Turn
	} else {
		m.state = StatePlayer1Turn
	}

	if m.OnMove != nil {
		m.OnMove(move)
	}
}

// EndGame fixes the result text and moves to the reset menu. It is a
// no-op outside game_over.
func (m *Match) EndGame() {
	if m.state != StateGameOver {
		return
	}
	outcome := m.logic.Outcome()
	if outcome.Status == domain.StatusWon {
		m.result = fmt.Sprintf("Player %d Wins!", outcome.Winner)
	} else {
		m.result = "Game Over: Tie!"
	}
	m.state = StateResetMenu

	if m.OnEnd != nil {
		m.OnEnd(outcome, m.result)
	}
}

// Reset returns to the menu with a fresh board. Only valid from the reset
// menu.
func (m *Match) Reset() bool {
	if m.state != StateResetMenu {
		return false
	}
	m.board.Reset()
	m.players = [2]player.Player{}
	m.specs = [2]player.Spec{}
	m.result = ""
	m.last = nil
	m.state = StateMenu
	return true
}

func (m *Match) Outcome() domain.Outcome {
	return m.logic.Outcome()
}

type PlayerView struct {
	ID         domain.PlayerID   `json:"id"`
	Kind       domain.PlayerKind `json:"kind"`
	Difficulty domain.Difficulty `json:"difficulty,omitempty"`
	Name       string            `json:"name"`
}

// Snapshot is the read-only view handed to presenters.
type Snapshot struct {
	State         State                                        `json:"state"`
	Board         [domain.Rows][domain.Columns]domain.PlayerID `json:"board"`
	CurrentPlayer domain.PlayerID                              `json:"currentPlayer"`
	Players       []PlayerView                                 `json:"players,omitempty"`
	OpenColumns   []int                                        `json:"openColumns"`
	LastMove      *player.Move                                 `json:"lastMove,omitempty"`
	Outcome       domain.Outcome                               `json:"outcome"`
	Result        string                                       `json:"result,omitempty"`
	MoveCount     int                                          `json:"moveCount"`
}

func (m *Match) Snapshot() Snapshot {
	snap := Snapshot{
		State:       m.state,
		Board:       m.board.Grid(),
		OpenColumns: m.board.OpenColumns(),
		Outcome:     m.logic.Outcome(),
		Result:      m.result,
		MoveCount:   m.board.Pieces(),
	}
	if p := m.CurrentPlayer(); p != nil {
		snap.CurrentPlayer = p.ID()
	}
	if m.last != nil {
		last := *m.last
		snap.LastMove = &last
	}
	for i, p := range m.Players() {
		snap.Players = append(snap.Players, PlayerView{
			ID:         p.ID(),
			Kind:       p.Kind(),
			Difficulty: m.specs[i].Difficulty,
			Name:       p.Name(),
		})
	}
	return snap
}
