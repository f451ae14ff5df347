// Package tui is the terminal front end for local matches.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"
	"github.com/ttriggs/Connect-Four/internal/domain"
	"github.com/ttriggs/Connect-Four/internal/service/game"
)

// aiDelay paces AI turns so they can be followed on screen.
const aiDelay = 400 * time.Millisecond

var pieceColors = map[domain.PlayerID]tcell.Color{
	domain.Player1: tcell.ColorRed,
	domain.Player2: tcell.ColorYellow,
}

// UI owns the screen and a single match.
type UI struct {
	screen tcell.Screen
	match  *game.Match
	menu   menu
	cursor int
	style  tcell.Style
	log    zerolog.Logger
}

func New(screen tcell.Screen, match *game.Match, log zerolog.Logger) *UI {
	return &UI{
		screen: screen,
		match:  match,
		menu:   newMenu(),
		cursor: domain.Columns / 2,
		style:  tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite),
		log:    log,
	}
}

// Run blocks until the user quits or ctx is cancelled.
func (u *UI) Run(ctx context.Context) error {
	u.screen.EnableMouse()
	u.draw()

	events := make(chan tcell.Event)
	quit := make(chan struct{})
	go u.screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(aiDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if u.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			u.step()
		}
		u.draw()
	}
}

// step is the update half of the loop: one AI turn or closing a finished
// game per tick.
func (u *UI) step() {
	if u.match.Update() && u.match.GameReset() {
		u.log.Info().Str("result", u.match.Result()).Msg("game finished")
	}
}

// handleEvent applies one input event and reports whether to quit.
func (u *UI) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		u.screen.Sync()
	case *tcell.EventKey:
		return u.handleKey(ev)
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 == 0 {
			return false
		}
		x, y := ev.Position()
		col, ok := BoardColumnAt(x, y)
		if !ok {
			return false
		}
		u.cursor = col
		if u.match.HumansTurn() {
			u.match.HumanMove(col)
		}
	}
	return false
}

func (u *UI) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case ' ':
			u.confirm()
		}
	case tcell.KeyEnter:
		u.confirm()
	case tcell.KeyLeft:
		if u.match.InMenu() {
			u.menu.cycle(-1)
		} else if u.cursor > 0 {
			u.cursor--
		}
	case tcell.KeyRight:
		if u.match.InMenu() {
			u.menu.cycle(1)
		} else if u.cursor < domain.Columns-1 {
			u.cursor++
		}
	case tcell.KeyUp:
		u.menu.up()
	case tcell.KeyDown:
		u.menu.down()
	}
	return false
}

// confirm is Enter/Space: start from the menu, drop during a human turn,
// back to the menu from the result screen.
func (u *UI) confirm() {
	switch {
	case u.match.InMenu():
		p1, p2 := u.menu.specs()
		if err := u.match.Start(p1, p2); err != nil {
			u.log.Error().Err(err).Msg("start failed")
		}
	case u.match.HumansTurn():
		u.match.HumanMove(u.cursor)
	case u.match.GameReset():
		u.match.Reset()
		u.cursor = domain.Columns / 2
	}
}

func (u *UI) draw() {
	u.screen.Clear()
	u.print(10, 1, "Connect Four", u.style)

	if u.match.InMenu() {
		u.drawMenu()
	} else {
		u.drawBoard()
		u.drawStatus()
	}
	u.screen.Show()
}

func (u *UI) drawMenu() {
	u.print(padLeft, padTop, "Choose players (Up/Down seat, Left/Right option)", u.style)
	for seat := 0; seat < 2; seat++ {
		style := u.style
		prefix := "  "
		if u.menu.seat == seat {
			style = style.Reverse(true)
			prefix = "> "
		}
		u.print(padLeft, padTop+2+seat, fmt.Sprintf("%sPlayer %d: %s", prefix, seat+1, u.menu.label(seat)), style)
	}
	u.print(padLeft, padTop+5, "<enter> start   <q> quit", u.style)
}

func (u *UI) drawBoard() {
	grid := u.style.Foreground(tcell.ColorGray)
	for h := 0; h <= boardHeight; h++ {
		for w := 0; w < boardWidth; w++ {
			x, y := w+padLeft, h+padTop
			switch {
			case w%cellWidth == 0:
				u.screen.SetContent(x, y, verRune, nil, grid)
			case h == boardHeight:
				u.screen.SetContent(x, y, hozBotRune, nil, grid)
			case h%cellHeight == 0:
				u.screen.SetContent(x, y, hozRune, nil, grid)
			}
		}
	}

	board := u.match.Board()
	for col := 0; col < domain.Columns; col++ {
		for row := 0; row < board.Height(col); row++ {
			owner, _ := board.Occupancy(col, row)
			x, y := cellOrigin(col, row)
			u.screen.SetContent(x+1, y, pieceRune, nil, u.style.Foreground(pieceColors[owner]))
		}
		u.print(markerX(col), padTop+boardHeight+1, fmt.Sprintf("%d", col+1), u.style)
	}

	if p := u.match.CurrentPlayer(); p != nil && u.match.HumansTurn() {
		u.screen.SetContent(markerX(u.cursor), padTop-1, markerRune, nil, u.style.Foreground(pieceColors[p.ID()]))
	}
}

func (u *UI) drawStatus() {
	x := boardWidth + 4
	var lines []string
	switch {
	case u.match.InGameplay():
		p := u.match.CurrentPlayer()
		lines = append(lines, fmt.Sprintf("%s to move", p.Name()))
		if u.match.AIsTurn() {
			lines = append(lines, "thinking...")
		} else {
			lines = append(lines, "<left/right> aim   <enter> drop")
		}
	case u.match.GameReset():
		lines = append(lines, u.match.Result(), "<space> play again")
	}
	lines = append(lines, "<q> quit")

	for i, line := range lines {
		u.print(x, padTop+i*2, line, u.style)
	}
}

func (u *UI) print(x, y int, str string, style tcell.Style) {
	for _, c := range str {
		var comb []rune
		w := runewidth.RuneWidth(c)
		if w == 0 {
			comb = []rune{c}
			c = ' '
			w = 1
		}
		u.screen.SetContent(x, y, c, comb, style)
		x += w
	}
}
