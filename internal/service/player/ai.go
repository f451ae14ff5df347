package player

import (
	"github.com/pkg/errors"
	"github.com/ttriggs/Connect-Four/internal/domain"
	"github.com/ttriggs/Connect-Four/internal/service/bot"
)

// AI owns everything difficulty related; Human carries none of it.
type AI struct {
	id         domain.PlayerID
	difficulty domain.Difficulty
	logic      *domain.Logic
	picker     *bot.Picker
}

func NewAI(id domain.PlayerID, difficulty domain.Difficulty, logic *domain.Logic, picker *bot.Picker) *AI {
	if picker == nil {
		picker = bot.NewPicker(nil, bot.DefaultNoise)
	}
	return &AI{id: id, difficulty: difficulty, logic: logic, picker: picker}
}

func (a *AI) ID() domain.PlayerID           { return a.id }
func (a *AI) Kind() domain.PlayerKind       { return domain.KindAI }
func (a *AI) Name() string                  { return domain.GetBotName(a.difficulty) }
func (a *AI) Difficulty() domain.Difficulty { return a.difficulty }
func (a *AI) Expert() bool                  { return a.difficulty == domain.Expert }

// TakeTurn ignores column: the picker decides.
func (a *AI) TakeTurn(int) (Move, error) {
	col, err := a.picker.CalculateBestMove(a.logic, a.id, a.difficulty)
	if err != nil {
		return Move{}, err
	}

	row, err := a.logic.Board().Drop(col, a.id)
	if err != nil {
		return Move{}, errors.Wrapf(err, "picker chose column %d", col)
	}
	return Move{Player: a.id, Column: col, Row: row}, nil
}
