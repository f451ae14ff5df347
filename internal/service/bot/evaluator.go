package bot

import (
	"github.com/ttriggs/Connect-Four/internal/domain"
)

const (
	// Score priorities (from highest to lowest)
	SCORE_WIN_NOW   = 10000 // Bot can win immediately
	SCORE_BLOCK_WIN = 1000  // Block opponent's immediate win
	SCORE_GIFT_WIN  = -500  // Opponent wins on top of this move
)

// Baseline favours the centre: more four-in-a-row windows pass through it.
var Baseline = [domain.Columns]int{10, 21, 30, 40, 31, 20, 11}

// ColumnRank is the desirability of each column for one turn. Closed
// columns are never picked whatever their score.
type ColumnRank struct {
	Scores [domain.Columns]int
	Open   [domain.Columns]bool
}

func newColumnRank() ColumnRank {
	return ColumnRank{Scores: Baseline}
}

// Best returns the highest scoring open column, the lowest index on ties.
func (r ColumnRank) Best() (int, bool) {
	best := -1
	for col := 0; col < domain.Columns; col++ {
		if !r.Open[col] {
			continue
		}
		if best < 0 || r.Scores[col] > r.Scores[best] {
			best = col
		}
	}
	return best, best >= 0
}

// evaluateColumn scores a single hypothetical drop. A win short-circuits:
// nothing else matters once the bot can end the game.
func evaluateColumn(board *domain.Board, column int, botPlayer domain.PlayerID) int {
	opponent := botPlayer.Opponent()

	testBoard, row, err := simulateMove(board, column, botPlayer)
	if err != nil {
		return 0
	}
	if domain.NewLogic(testBoard).WinningLineThrough(column, row) {
		return SCORE_WIN_NOW
	}

	score := 0

	// would the opponent win by dropping here instead of us
	if blockBoard, blockRow, err := simulateMove(board, column, opponent); err == nil {
		if domain.NewLogic(blockBoard).WinningLineThrough(column, blockRow) {
			score += SCORE_BLOCK_WIN
		}
	}

	// does our piece give the opponent the cell right above it
	if replyRow, err := testBoard.Drop(column, opponent); err == nil {
		if domain.NewLogic(testBoard).WinningLineThrough(column, replyRow) {
			score += SCORE_GIFT_WIN
		}
	}

	return score
}

// this will simulate a move on a copy and give the result to the caller
func simulateMove(board *domain.Board, column int, player domain.PlayerID) (*domain.Board, int, error) {
	newBoard := board.Clone()
	row, err := newBoard.Drop(column, player)
	if err != nil {
		return nil, -1, err
	}
	return newBoard, row, nil
}
