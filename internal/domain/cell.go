package domain

// Cell is one board position. Owner is Empty until a drop claims it.
type Cell struct {
	Column int
	Row    int
	Owner  PlayerID
	// Token belongs to the presentation layer (sprite, colour, ...).
	Token any
}

func (c Cell) IsEmpty() bool {
	return c.Owner == Empty
}
