package tui

import (
	"github.com/ttriggs/Connect-Four/internal/domain"
	"github.com/ttriggs/Connect-Four/internal/service/player"
)

type seatOption struct {
	label string
	spec  player.Spec
}

var seatOptions = []seatOption{
	{"Human", player.Spec{Kind: domain.KindHuman}},
	{"AI (Easy)", player.Spec{Kind: domain.KindAI, Difficulty: domain.Easy}},
	{"AI (Expert)", player.Spec{Kind: domain.KindAI, Difficulty: domain.Expert}},
}

// menu is the seat picker shown while the match sits in the menu state.
type menu struct {
	seat    int
	choices [2]int
}

func newMenu() menu {
	return menu{choices: [2]int{0, 2}}
}

func (m *menu) up()   { m.seat = 0 }
func (m *menu) down() { m.seat = 1 }

func (m *menu) cycle(delta int) {
	n := len(seatOptions)
	m.choices[m.seat] = ((m.choices[m.seat]+delta)%n + n) % n
}

func (m *menu) specs() (player.Spec, player.Spec) {
	return seatOptions[m.choices[0]].spec, seatOptions[m.choices[1]].spec
}

func (m *menu) label(seat int) string {
	return seatOptions[m.choices[seat]].label
}
