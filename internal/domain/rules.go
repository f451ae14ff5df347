package domain

// the four line directions as (deltaCol, deltaRow): horizontal, vertical,
// diagonal / and diagonal \
var directions = [4][2]int{
	{1, 0},
	{0, 1},
	{1, 1},
	{1, -1},
}

// Logic answers rule questions about the board it references. It keeps no
// state of its own.
type Logic struct {
	board *Board
}

func NewLogic(board *Board) *Logic {
	return &Logic{board: board}
}

func (l *Logic) Board() *Board {
	return l.board
}

// WinningLineThrough reports whether the piece at (column,row) is part of
// four in a row. Call it right after the drop that placed that piece.
func (l *Logic) WinningLineThrough(column, row int) bool {
	return HasLineThrough(l.board, column, row)
}

// FindWinner returns the owner of the latest completed line, or Empty.
// Only meaningful when GameOver holds and Tie does not.
func (l *Logic) FindWinner() PlayerID {
	if col, row, ok := l.board.LastDrop(); ok && HasLineThrough(l.board, col, row) {
		return l.board.cells[col][row].Owner
	}

	// Drops kept coming after a win (a controller bug), so the last drop is
	// not the line. Fall back to every owned cell.
	for c := 0; c < Columns; c++ {
		for r := 0; r < l.board.heights[c]; r++ {
			if HasLineThrough(l.board, c, r) {
				return l.board.cells[c][r].Owner
			}
		}
	}
	return Empty
}

func (l *Logic) Tie() bool {
	return l.board.Full() && l.FindWinner() == Empty
}

func (l *Logic) GameOver() bool {
	return l.FindWinner() != Empty || l.board.Full()
}

// Outcome folds GameOver, Tie and FindWinner together. The win check runs
// first, so a board that fills up with a winning drop is a win.
func (l *Logic) Outcome() Outcome {
	if winner := l.FindWinner(); winner != Empty {
		return Outcome{Status: StatusWon, Winner: winner}
	}
	if l.board.Full() {
		return Outcome{Status: StatusDraw}
	}
	return Outcome{Status: StatusActive}
}

// HasLineThrough checks only the lines passing through (column,row), which
// is all a single drop can change.
func HasLineThrough(board *Board, column, row int) bool {
	if !InBounds(column, row) {
		return false
	}
	player := board.cells[column][row].Owner
	if player == Empty {
		return false
	}

	for _, d := range directions {
		forward := board.CountInDirection(column, row, d[0], d[1], player)
		backward := board.CountInDirection(column, row, -d[0], -d[1], player)
		if 1+forward+backward >= ToWin {
			return true
		}
	}
	return false
}
