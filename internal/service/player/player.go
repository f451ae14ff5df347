package player

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/ttriggs/Connect-Four/internal/domain"
	"github.com/ttriggs/Connect-Four/internal/service/bot"
)

// Move is a committed drop.
type Move struct {
	Player domain.PlayerID `json:"player"`
	Column int             `json:"column"`
	Row    int             `json:"row"`
}

// Player takes one turn per call: exactly one drop on success, none on error.
type Player interface {
	ID() domain.PlayerID
	Kind() domain.PlayerKind
	Name() string
	// TakeTurn drops into column. AI players ignore column and choose their own.
	TakeTurn(column int) (Move, error)
}

// Spec describes a seat before the match starts.
type Spec struct {
	Kind       domain.PlayerKind `json:"kind"`
	Difficulty domain.Difficulty `json:"difficulty,omitempty"`
}

func (s Spec) Validate() error {
	switch s.Kind {
	case domain.KindHuman:
		return nil
	case domain.KindAI:
		if s.Difficulty != domain.Easy && s.Difficulty != domain.Expert {
			return errors.Wrapf(domain.ErrUnknownDifficulty, "difficulty %q", s.Difficulty)
		}
		return nil
	}
	return errors.Errorf("unknown player kind %q", s.Kind)
}

// ParseSpec reads a seat from user input. AI seats without a difficulty
// get fallback.
func ParseSpec(kind, difficulty string, fallback domain.Difficulty) (Spec, error) {
	spec := Spec{Kind: domain.PlayerKind(strings.ToLower(strings.TrimSpace(kind)))}
	if spec.Kind == domain.KindAI {
		spec.Difficulty = fallback
		if strings.TrimSpace(difficulty) != "" {
			d, err := domain.ParseDifficulty(difficulty)
			if err != nil {
				return spec, errors.Wrapf(err, "difficulty %q", difficulty)
			}
			spec.Difficulty = d
		}
	}
	return spec, spec.Validate()
}

// New builds the seat described by spec. Both variants share the match's
// board through logic.
func New(id domain.PlayerID, spec Spec, logic *domain.Logic, picker *bot.Picker) (Player, error) {
	if !id.Valid() {
		return nil, domain.ErrInvalidPlayer
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if spec.Kind == domain.KindAI {
		return NewAI(id, spec.Difficulty, logic, picker), nil
	}
	return NewHuman(id, logic.Board()), nil
}

func defaultName(id domain.PlayerID) string {
	return fmt.Sprintf("Player %d", id)
}
