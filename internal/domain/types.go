package domain

import "strings"

var BotNames = map[Difficulty]string{
	Easy:   "Alice",
	Expert: "Charles",
}

func GetBotName(difficulty Difficulty) string {
	if name, ok := BotNames[difficulty]; ok {
		return name
	}
	return "BOT"
}

type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// Opponent returns the other seat. Empty has no opponent.
func (p PlayerID) Opponent() PlayerID {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return Empty
}

func (p PlayerID) Valid() bool {
	return p == Player1 || p == Player2
}

const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

type PlayerKind string

const (
	KindHuman PlayerKind = "human"
	KindAI    PlayerKind = "ai"
)

// Difficulty only means something for AI players.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Expert Difficulty = "expert"
)

func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case Easy:
		return Easy, nil
	case Expert:
		return Expert, nil
	}
	return "", ErrUnknownDifficulty
}

// Outcome is derived from the board on demand and never stored.
type Outcome struct {
	Status GameStatus `json:"status"`
	Winner PlayerID   `json:"winner"`
}

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// basic error that can occur
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrColumnFull        Error = "column is full"
	ErrOutOfBounds       Error = "coordinates out of bounds"
	ErrInvalidPlayer     Error = "invalid player"
	ErrNoLegalMove       Error = "no legal move left on the board"
	ErrUnknownDifficulty Error = "unknown difficulty"
)
