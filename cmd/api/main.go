package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/zhouzirui/z-tavern/widget/internal/config"
	"github.com/zhouzirui/z-tavern/widget/internal/handler"
	"github.com/zhouzirui/z-tavern/widget/internal/model/persona"
	"github.com/zhouzirui/z-tavern/widget/internal/render"
	"github.com/zhouzirui/z-tavern/widget/internal/service/chat"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.Level}))
	slog.SetDefault(logger)

	// 初始化角色与会话
	personaStore := persona.NewMemoryStore(persona.Seed())
	assistant := persona.Default(personaStore).WithResponses(cfg.Widget.Responses)

	chatService := chat.NewService(chat.Config{
		Persona: assistant,
		Delay:   cfg.Widget.ReplyDelay,
		Logger:  logger,
	})
	defer chatService.Close()

	logger.Info("chat session ready",
		slog.String("persona", assistant.ID),
		slog.Int("responses", len(assistant.Responses)),
		slog.Duration("reply_delay", cfg.Widget.ReplyDelay),
		slog.String("timezone", cfg.Widget.Timezone),
	)

	renderer := render.New(cfg.Widget.Location, assistant)
	router := handler.NewRouter(personaStore, chatService, renderer, cfg.Server, logger)

	startServer(ctx, cfg.Server, router, logger)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, logger *slog.Logger) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("chat widget backend listening", slog.String("addr", addr))
	if err := runServer(ctx, srv); err != nil {
		logger.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
