package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/zhouzirui/z-tavern/widget/internal/config"
	"github.com/zhouzirui/z-tavern/widget/internal/model/persona"
	"github.com/zhouzirui/z-tavern/widget/internal/render"
	"github.com/zhouzirui/z-tavern/widget/internal/service/chat"
	"github.com/zhouzirui/z-tavern/widget/internal/tui"
)

func main() {
	// The alt screen owns stdout, so nothing is logged there before exit.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		log.Fatalf("failed to open log file: %v", err)
	}
	defer closeLog()

	assistant := persona.Default(persona.NewMemoryStore(persona.Seed())).WithResponses(cfg.Widget.Responses)
	chatService := chat.NewService(chat.Config{
		Persona: assistant,
		Delay:   cfg.Widget.ReplyDelay,
		Logger:  logger,
	})
	defer chatService.Close()

	ctx := context.Background()
	renderer := render.New(cfg.Widget.Location, assistant)

	events, unsubscribe := tui.Subscribe(chatService)
	model := tui.New(ctx, chatService, renderer, events, logger)

	_, runErr := tea.NewProgram(model, tea.WithAltScreen()).Run()
	unsubscribe()
	if runErr != nil {
		logger.Error("widget exited", slog.Any("error", runErr))
		log.Fatalf("widget error: %v", runErr)
	}

	transcript := chatService.LoadTranscript(ctx)
	if len(transcript) > 0 {
		render.WriteTranscript(os.Stdout, renderer.Rows(transcript))
	}
}

func newLogger(cfg config.LogConfig) (*slog.Logger, func(), error) {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(slog.NewTextHandler(f, opts)), func() { _ = f.Close() }, nil
}
