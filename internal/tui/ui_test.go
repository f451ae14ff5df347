package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/ttriggs/Connect-Four/internal/domain"
	"github.com/ttriggs/Connect-Four/internal/service/bot"
	"github.com/ttriggs/Connect-Four/internal/service/game"
)

func newTestUI(t *testing.T) *UI {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(80, 25)
	t.Cleanup(screen.Fini)

	match := game.NewMatch(bot.NewSeededPicker(11, bot.DefaultNoise))
	return New(screen, match, zerolog.Nop())
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func char(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func click(x, y int) *tcell.EventMouse {
	return tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone)
}

// startHumans picks Human for both seats and starts the match.
func startHumans(t *testing.T, u *UI) {
	t.Helper()
	u.handleEvent(key(tcell.KeyDown))
	u.handleEvent(key(tcell.KeyRight))
	u.handleEvent(key(tcell.KeyEnter))
	for _, p := range u.match.Players() {
		if p.Kind() != domain.KindHuman {
			t.Fatalf("expected two humans, got %s for player %d", p.Kind(), p.ID())
		}
	}
}

func TestColumnAt(t *testing.T) {
	tests := []struct {
		x    int
		col  int
		want bool
	}{
		{padLeft, 0, false},
		{padLeft + 1, 0, true},
		{padLeft + cellWidth - 1, 0, true},
		{padLeft + cellWidth, 0, false},
		{padLeft + cellWidth + 1, 1, true},
		{padLeft + 6*cellWidth + 2, 6, true},
		{padLeft + boardWidth - 1, 0, false},
		{padLeft + boardWidth + 10, 0, false},
		{-3, 0, false},
	}
	for _, tt := range tests {
		col, ok := ColumnAt(tt.x)
		if ok != tt.want || (ok && col != tt.col) {
			t.Errorf("ColumnAt(%d) = %d, %v; want %d, %v", tt.x, col, ok, tt.col, tt.want)
		}
	}
	for col := 0; col < domain.Columns; col++ {
		if got, ok := ColumnAt(markerX(col)); !ok || got != col {
			t.Errorf("marker of column %d maps to %d, %v", col, got, ok)
		}
	}
}

func TestMenuDefaultsToHumanVersusExpert(t *testing.T) {
	u := newTestUI(t)
	u.handleEvent(key(tcell.KeyEnter))

	if u.match.State() != game.StatePlayer1Turn {
		t.Fatalf("enter in the menu should start the match, got %s", u.match.State())
	}
	snap := u.match.Snapshot()
	if snap.Players[0].Kind != domain.KindHuman || snap.Players[1].Difficulty != domain.Expert {
		t.Fatalf("unexpected seats %+v", snap.Players)
	}
}

func TestMenuCyclesOptions(t *testing.T) {
	u := newTestUI(t)
	u.handleEvent(key(tcell.KeyLeft))
	if got := u.menu.label(0); got != "AI (Expert)" {
		t.Fatalf("left from Human should wrap to Expert, got %q", got)
	}
	u.handleEvent(key(tcell.KeyDown))
	u.handleEvent(key(tcell.KeyRight))
	if got := u.menu.label(1); got != "Human" {
		t.Fatalf("right from Expert should wrap to Human, got %q", got)
	}
}

func TestKeyboardDropThenAIAnswers(t *testing.T) {
	u := newTestUI(t)
	u.handleEvent(key(tcell.KeyEnter))

	u.handleEvent(key(tcell.KeyLeft))
	u.handleEvent(char(' '))
	if h := u.match.Board().Height(2); h != 1 {
		t.Fatalf("expected a piece in column 2, height %d", h)
	}
	if !u.match.AIsTurn() {
		t.Fatalf("AI should be on turn")
	}

	u.step()
	if u.match.State() != game.StatePlayer1Turn || u.match.Board().Pieces() != 2 {
		t.Fatalf("AI should have answered, got %s with %d pieces", u.match.State(), u.match.Board().Pieces())
	}
}

func TestCursorStaysOnBoard(t *testing.T) {
	u := newTestUI(t)
	startHumans(t, u)
	for i := 0; i < 10; i++ {
		u.handleEvent(key(tcell.KeyRight))
	}
	if u.cursor != domain.Columns-1 {
		t.Fatalf("cursor ran off the right edge: %d", u.cursor)
	}
	for i := 0; i < 10; i++ {
		u.handleEvent(key(tcell.KeyLeft))
	}
	if u.cursor != 0 {
		t.Fatalf("cursor ran off the left edge: %d", u.cursor)
	}
}

func TestMouseClickDropsInColumn(t *testing.T) {
	u := newTestUI(t)
	startHumans(t, u)

	u.handleEvent(click(markerX(5), padTop+3))
	if h := u.match.Board().Height(5); h != 1 {
		t.Fatalf("click should drop into column 5, height %d", h)
	}

	u.handleEvent(click(padLeft+cellWidth, padTop+3))
	if u.match.Board().Pieces() != 1 {
		t.Fatalf("click on a border must be ignored")
	}
}

func TestClickOutsideBoardRowsIsIgnored(t *testing.T) {
	u := newTestUI(t)
	startHumans(t, u)

	for _, y := range []int{0, padTop - 1, padTop + boardHeight + 1, padTop + boardHeight + 6} {
		u.handleEvent(click(markerX(2), y))
	}
	if n := u.match.Board().Pieces(); n != 0 {
		t.Fatalf("clicks above or below the grid dropped %d pieces", n)
	}

	u.handleEvent(click(markerX(2), padTop+boardHeight))
	if h := u.match.Board().Height(2); h != 1 {
		t.Fatalf("click on the bottom edge should still drop, height %d", h)
	}
}

func TestSpaceResetsFinishedGame(t *testing.T) {
	u := newTestUI(t)
	startHumans(t, u)
	for _, col := range []int{0, 1, 0, 1, 0, 1, 0} {
		u.handleEvent(click(markerX(col), padTop))
	}
	u.step()
	if !u.match.GameReset() || u.match.Result() != "Player 1 Wins!" {
		t.Fatalf("expected finished game, got %s %q", u.match.State(), u.match.Result())
	}

	u.draw()
	u.handleEvent(char(' '))
	if !u.match.InMenu() || u.match.Board().Pieces() != 0 {
		t.Fatalf("space should reset to an empty menu, got %s", u.match.State())
	}
}

func TestQuitKeys(t *testing.T) {
	u := newTestUI(t)
	for _, ev := range []*tcell.EventKey{key(tcell.KeyEscape), char('q'), key(tcell.KeyCtrlC)} {
		if !u.handleEvent(ev) {
			t.Fatalf("%v should quit", ev.Name())
		}
	}
	if u.handleEvent(char('x')) {
		t.Fatalf("other keys must not quit")
	}
}

func TestDrawRendersTitleAndPieces(t *testing.T) {
	u := newTestUI(t)
	u.draw()
	if r, _, _, _ := u.screen.GetContent(10, 1); r != 'C' {
		t.Fatalf("expected title at (10,1), got %q", r)
	}

	startHumans(t, u)
	u.handleEvent(click(markerX(3), padTop))
	u.draw()

	x, y := cellOrigin(3, 0)
	r, _, style, _ := u.screen.GetContent(x+1, y)
	if r != pieceRune {
		t.Fatalf("expected a piece at the bottom of column 4, got %q", r)
	}
	if fg, _, _ := style.Decompose(); fg != pieceColors[domain.Player1] {
		t.Fatalf("piece should use player one's colour")
	}
}
