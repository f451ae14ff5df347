package player

import "github.com/ttriggs/Connect-Four/internal/domain"

type Human struct {
	id    domain.PlayerID
	board *domain.Board
}

func NewHuman(id domain.PlayerID, board *domain.Board) *Human {
	return &Human{id: id, board: board}
}

func (h *Human) ID() domain.PlayerID     { return h.id }
func (h *Human) Kind() domain.PlayerKind { return domain.KindHuman }
func (h *Human) Name() string            { return defaultName(h.id) }

// TakeTurn drops at the clicked column. Bad columns come back as
// ErrOutOfBounds or ErrColumnFull and leave the board as it was.
func (h *Human) TakeTurn(column int) (Move, error) {
	row, err := h.board.Drop(column, h.id)
	if err != nil {
		return Move{}, err
	}
	return Move{Player: h.id, Column: column, Row: row}, nil
}
