package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/ttriggs/Connect-Four/internal/config"
	"github.com/ttriggs/Connect-Four/internal/logger"
	"github.com/ttriggs/Connect-Four/internal/service/bot"
	"github.com/ttriggs/Connect-Four/internal/service/game"
	"github.com/ttriggs/Connect-Four/internal/tui"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadConfig()

	tcell.SetEncodingFallback(tcell.EncodingFallbackASCII)
	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal().Err(err).Msg("new screen")
	}
	if err := screen.Init(); err != nil {
		log.Fatal().Err(err).Msg("screen init")
	}

	// tcell owns the terminal from here, so logs only go to TUI_LOG_FILE.
	out, closeLog := logOutput(cfg.TUILogFile)
	defer closeLog()
	root := logger.New(cfg.LogLevel, false, out)

	picker := bot.NewSeededPicker(cfg.AISeed, bot.Noise{Min: cfg.AINoiseMin, Max: cfg.AINoiseMax})
	match := game.NewMatch(picker)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = tui.New(screen, match, logger.For(root, "tui")).Run(ctx)
	screen.Fini()
	if err != nil && err != context.Canceled {
		log.Fatal().Err(err).Msg("tui stopped")
	}
}

func logOutput(path string) (io.Writer, func()) {
	if path == "" {
		return io.Discard, func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return io.Discard, func() {}
	}
	return f, func() { f.Close() }
}
