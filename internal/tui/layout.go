package tui

import "github.com/ttriggs/Connect-Four/internal/domain"

const (
	cellWidth   = 5
	cellHeight  = 2
	boardWidth  = domain.Columns*cellWidth + 1
	boardHeight = domain.Rows * cellHeight
	padTop      = 4
	padLeft     = 1
)

const (
	hozRune    = '━'
	hozBotRune = '▅'
	verRune    = '┃'
	pieceRune  = '●'
	markerRune = '▼'
)

// ColumnAt maps a screen x coordinate inside the board to a column.
// Borders and anything outside the board report false.
func ColumnAt(x int) (int, bool) {
	rel := x - padLeft
	if rel <= 0 || rel >= boardWidth-1 {
		return 0, false
	}
	if rel%cellWidth == 0 {
		return 0, false
	}
	col := rel / cellWidth
	if col < 0 || col >= domain.Columns {
		return 0, false
	}
	return col, true
}

// BoardColumnAt is ColumnAt for a full screen position: rows above or
// below the grid hit no column.
func BoardColumnAt(x, y int) (int, bool) {
	if y < padTop || y > padTop+boardHeight {
		return 0, false
	}
	return ColumnAt(x)
}

// cellOrigin is the top-left screen position of the interior of a cell.
// row 0 is the bottom row.
func cellOrigin(col, row int) (int, int) {
	x := padLeft + col*cellWidth + 1
	y := padTop + (domain.Rows-1-row)*cellHeight + 1
	return x, y
}

func markerX(col int) int {
	return padLeft + col*cellWidth + cellWidth/2
}
