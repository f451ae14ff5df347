package domain

import (
	"errors"
	"testing"
)

// playAlternating drops pieces into cols, Player1 first.
func playAlternating(t *testing.T, b *Board, cols ...int) {
	t.Helper()
	player := Player1
	for i, col := range cols {
		if _, err := b.Drop(col, player); err != nil {
			t.Fatalf("drop %d into column %d: %v", i, col, err)
		}
		player = player.Opponent()
	}
}

func TestDropLandsOnLowestEmptyRow(t *testing.T) {
	b := NewBoard()

	for want := 0; want < Rows; want++ {
		player := Player1
		if want%2 == 1 {
			player = Player2
		}
		row, err := b.Drop(2, player)
		if err != nil {
			t.Fatalf("drop %d: unexpected error %v", want, err)
		}
		if row != want {
			t.Fatalf("drop %d landed on row %d, want %d", want, row, want)
		}
		owner, _ := b.Occupancy(2, row)
		if owner != player {
			t.Fatalf("cell (2,%d) owned by %d, want %d", row, owner, player)
		}
	}
	if b.Height(2) != Rows {
		t.Fatalf("expected column height %d, got %d", Rows, b.Height(2))
	}
}

func TestGravityAcrossColumns(t *testing.T) {
	b := NewBoard()
	playAlternating(t, b, 0, 0, 3, 6, 3, 3)

	expected := map[[2]int]PlayerID{
		{0, 0}: Player1,
		{0, 1}: Player2,
		{3, 0}: Player1,
		{6, 0}: Player2,
		{3, 1}: Player1,
		{3, 2}: Player2,
	}
	for c := 0; c < Columns; c++ {
		for r := 0; r < Rows; r++ {
			got, err := b.Occupancy(c, r)
			if err != nil {
				t.Fatalf("occupancy(%d,%d): %v", c, r, err)
			}
			if got != expected[[2]int{c, r}] {
				t.Fatalf("occupancy(%d,%d) = %d, want %d", c, r, got, expected[[2]int{c, r}])
			}
		}
	}
	for c := 0; c < Columns; c++ {
		owned := 0
		for r := 0; r < Rows; r++ {
			if owner, _ := b.Occupancy(c, r); owner != Empty {
				owned++
			}
		}
		if owned != b.Height(c) {
			t.Fatalf("column %d: height %d but %d owned cells", c, b.Height(c), owned)
		}
	}
	if b.Pieces() != 6 {
		t.Fatalf("expected 6 pieces, got %d", b.Pieces())
	}
}

func TestDropIntoFullColumnLeavesBoardUntouched(t *testing.T) {
	b := NewBoard()
	playAlternating(t, b, 4, 4, 4, 4, 4, 4, 1)

	before := b.Grid()
	piecesBefore := b.Pieces()
	lastCol, lastRow, _ := b.LastDrop()

	row, err := b.Drop(4, Player2)
	if !errors.Is(err, ErrColumnFull) {
		t.Fatalf("expected ErrColumnFull, got %v", err)
	}
	if row != -1 {
		t.Fatalf("expected row -1 for a rejected drop, got %d", row)
	}
	if b.Grid() != before {
		t.Fatalf("board changed after a rejected drop")
	}
	if b.Pieces() != piecesBefore {
		t.Fatalf("piece count changed after a rejected drop")
	}
	if c, r, _ := b.LastDrop(); c != lastCol || r != lastRow {
		t.Fatalf("last drop moved to (%d,%d) after a rejected drop", c, r)
	}
	if b.ColumnOpen(4) {
		t.Fatalf("column 4 should be reported closed")
	}
}

func TestDropRejectsBadInput(t *testing.T) {
	b := NewBoard()

	if _, err := b.Drop(-1, Player1); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds for column -1, got %v", err)
	}
	if _, err := b.Drop(Columns, Player1); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("expected ErrOutOfBounds for column %d, got %v", Columns, err)
	}
	if _, err := b.Drop(0, Empty); !errors.Is(err, ErrInvalidPlayer) {
		t.Fatalf("expected ErrInvalidPlayer, got %v", err)
	}
	if b.Pieces() != 0 {
		t.Fatalf("rejected drops must not place pieces")
	}
}

func TestOccupancyOutOfBounds(t *testing.T) {
	b := NewBoard()
	cases := [][2]int{{-1, 0}, {0, -1}, {Columns, 0}, {0, Rows}, {9, 9}}
	for _, tc := range cases {
		if _, err := b.Occupancy(tc[0], tc[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("occupancy(%d,%d): expected ErrOutOfBounds, got %v", tc[0], tc[1], err)
		}
	}
	if b.ColumnOpen(-1) || b.ColumnOpen(Columns) {
		t.Fatalf("out of range columns must not be open")
	}
}

func TestResetMatchesFreshBoard(t *testing.T) {
	b := NewBoard()
	playAlternating(t, b, 3, 3, 2, 4, 1, 0, 6, 6, 6)
	if err := b.SetToken(3, 0, "red-disc"); err != nil {
		t.Fatalf("set token: %v", err)
	}

	b.Reset()
	fresh := NewBoard()

	if b.Grid() != fresh.Grid() {
		t.Fatalf("reset board differs from a fresh one")
	}
	for c := 0; c < Columns; c++ {
		if b.Height(c) != 0 || !b.ColumnOpen(c) {
			t.Fatalf("column %d not empty after reset", c)
		}
	}
	cell, _ := b.Cell(3, 0)
	if cell.Token != nil || !cell.IsEmpty() {
		t.Fatalf("cell (3,0) kept state after reset: %+v", cell)
	}
	if _, _, ok := b.LastDrop(); ok {
		t.Fatalf("reset board should have no last drop")
	}
	if b.Pieces() != 0 {
		t.Fatalf("reset board should have no pieces")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := NewBoard()
	playAlternating(t, b, 3, 4)

	clone := b.Clone()
	if _, err := clone.Drop(3, Player1); err != nil {
		t.Fatalf("drop on clone: %v", err)
	}
	if b.Height(3) != 1 {
		t.Fatalf("original board changed through its clone")
	}
	if clone.Height(3) != 2 {
		t.Fatalf("clone did not record its own drop")
	}
}

func TestGridPutsTopRowFirst(t *testing.T) {
	b := NewBoard()
	playAlternating(t, b, 5)

	grid := b.Grid()
	if grid[Rows-1][5] != Player1 {
		t.Fatalf("bottom row should be last in the grid, got %v", grid)
	}
	if grid[0][5] != Empty {
		t.Fatalf("top row should still be empty")
	}
}

func TestOpenColumns(t *testing.T) {
	b := NewBoard()
	playAlternating(t, b, 0, 0, 0, 0, 0, 0)

	open := b.OpenColumns()
	if len(open) != Columns-1 || open[0] != 1 {
		t.Fatalf("expected columns 1..6 open, got %v", open)
	}
}
