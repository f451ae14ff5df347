package domain

// Board is the 7x6 grid. Row 0 is the bottom row, so a column's height is
// also the row the next piece lands on.
type Board struct {
	cells   [Columns][Rows]Cell
	heights [Columns]int
	pieces  int
	lastCol int
	lastRow int
}

func NewBoard() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// Reset empties every cell and counter. The result is indistinguishable
// from a freshly built board.
func (b *Board) Reset() {
	for c := 0; c < Columns; c++ {
		for r := 0; r < Rows; r++ {
			b.cells[c][r] = Cell{Column: c, Row: r}
		}
		b.heights[c] = 0
	}
	b.pieces = 0
	b.lastCol, b.lastRow = -1, -1
}

// Drop lets a piece fall into column and returns the row it landed on.
// A full column is reported with ErrColumnFull and leaves the board untouched.
func (b *Board) Drop(column int, player PlayerID) (int, error) {
	if !inColumnRange(column) {
		return -1, ErrOutOfBounds
	}
	if !player.Valid() {
		return -1, ErrInvalidPlayer
	}

	row := b.heights[column]
	if row >= Rows {
		return -1, ErrColumnFull
	}

	b.cells[column][row].Owner = player
	b.heights[column]++
	b.pieces++
	b.lastCol, b.lastRow = column, row
	return row, nil
}

func (b *Board) Occupancy(column, row int) (PlayerID, error) {
	if !InBounds(column, row) {
		return Empty, ErrOutOfBounds
	}
	return b.cells[column][row].Owner, nil
}

func (b *Board) Cell(column, row int) (Cell, error) {
	if !InBounds(column, row) {
		return Cell{}, ErrOutOfBounds
	}
	return b.cells[column][row], nil
}

// SetToken attaches a presentation token to a cell without touching ownership.
func (b *Board) SetToken(column, row int, token any) error {
	if !InBounds(column, row) {
		return ErrOutOfBounds
	}
	b.cells[column][row].Token = token
	return nil
}

func (b *Board) ColumnOpen(column int) bool {
	return inColumnRange(column) && b.heights[column] < Rows
}

// Height is the fill counter of a column (0..Rows).
func (b *Board) Height(column int) int {
	if !inColumnRange(column) {
		return 0
	}
	return b.heights[column]
}

func (b *Board) OpenColumns() []int {
	open := make([]int, 0, Columns)
	for c := 0; c < Columns; c++ {
		if b.heights[c] < Rows {
			open = append(open, c)
		}
	}
	return open
}

func (b *Board) Pieces() int {
	return b.pieces
}

func (b *Board) Full() bool {
	return b.pieces == Rows*Columns
}

// LastDrop returns the landing cell of the latest drop, ok is false on an
// empty board.
func (b *Board) LastDrop() (column, row int, ok bool) {
	if b.lastCol < 0 {
		return -1, -1, false
	}
	return b.lastCol, b.lastRow, true
}

// this creates a deep copy of the board
func (b *Board) Clone() *Board {
	nb := *b
	return &nb
}

// Grid returns the ownership snapshot with the top row first, the way
// renderers draw it.
func (b *Board) Grid() [Rows][Columns]PlayerID {
	var grid [Rows][Columns]PlayerID
	for c := 0; c < Columns; c++ {
		for r := 0; r < Rows; r++ {
			grid[Rows-1-r][c] = b.cells[c][r].Owner
		}
	}
	return grid
}

// this counts the number of disks in a specific direction, starting next to
// (column,row)
func (b *Board) CountInDirection(column, row, deltaCol, deltaRow int, player PlayerID) int {
	count := 0
	c, r := column+deltaCol, row+deltaRow
	for InBounds(c, r) && b.cells[c][r].Owner == player {
		count++
		c += deltaCol
		r += deltaRow
	}
	return count
}

func InBounds(column, row int) bool {
	return inColumnRange(column) && row >= 0 && row < Rows
}

func inColumnRange(column int) bool {
	return column >= 0 && column < Columns
}
