package bot

import (
	"math/rand"
	"time"

	"github.com/ttriggs/Connect-Four/internal/domain"
)

// Noise bounds the random offset added to every column below Expert.
// Both ends are inclusive.
type Noise struct {
	Min int
	Max int
}

var DefaultNoise = Noise{Min: -10, Max: 20}

// Picker chooses a column for an AI player. It is single-ply: one
// hypothetical drop per column, no search.
type Picker struct {
	rng   *rand.Rand
	noise Noise
}

// NewPicker keeps rng for all noise draws; a nil rng is seeded from the
// clock.
func NewPicker(rng *rand.Rand, noise Noise) *Picker {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if noise.Max < noise.Min {
		noise.Min, noise.Max = noise.Max, noise.Min
	}
	return &Picker{rng: rng, noise: noise}
}

// NewSeededPicker is NewPicker with a fixed seed. Seed 0 means time-seeded.
func NewSeededPicker(seed int64, noise Noise) *Picker {
	if seed == 0 {
		return NewPicker(nil, noise)
	}
	return NewPicker(rand.New(rand.NewSource(seed)), noise)
}

// CalculateBestMove selects the column botPlayer should play. A board
// without an open column is a caller bug and reported as ErrNoLegalMove.
func (p *Picker) CalculateBestMove(logic *domain.Logic, botPlayer domain.PlayerID, difficulty domain.Difficulty) (int, error) {
	rank := p.Rank(logic, botPlayer, difficulty)
	col, ok := rank.Best()
	if !ok {
		return -1, domain.ErrNoLegalMove
	}
	return col, nil
}

// Rank rebuilds the column ranking from scratch for this turn.
func (p *Picker) Rank(logic *domain.Logic, botPlayer domain.PlayerID, difficulty domain.Difficulty) ColumnRank {
	board := logic.Board()
	rank := newColumnRank()

	if difficulty != domain.Expert {
		p.addRankNoise(&rank)
	}

	for col := 0; col < domain.Columns; col++ {
		if !board.ColumnOpen(col) {
			continue
		}
		rank.Open[col] = true
		rank.Scores[col] += evaluateColumn(board, col, botPlayer)
	}
	return rank
}

func (p *Picker) addRankNoise(rank *ColumnRank) {
	span := p.noise.Max - p.noise.Min + 1
	for col := range rank.Scores {
		rank.Scores[col] += p.noise.Min + p.rng.Intn(span)
	}
}
