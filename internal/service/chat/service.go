package chat

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/zhouzirui/z-tavern/widget/internal/model/chat"
	"github.com/zhouzirui/z-tavern/widget/internal/model/persona"
)

// Config customizes a Service. Zero values fall back to the reference behavior.
type Config struct {
	Persona persona.Persona
	Delay   time.Duration
	Clock   clockwork.Clock
	Random  RandomSource
	Logger  *slog.Logger
}

// Service owns the single in-memory chat session shown by the widget.
type Service struct {
	hub          *Hub
	store        *Store
	orchestrator *Orchestrator
	persona      persona.Persona
	log          *slog.Logger
}

// NewService bootstraps an empty session.
func NewService(cfg Config) *Service {
	if cfg.Persona.ID == "" {
		cfg.Persona = persona.Seed()[0]
	}
	if len(cfg.Persona.Responses) == 0 {
		cfg.Persona = cfg.Persona.WithResponses(persona.Seed()[0].Responses)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	hub := NewHub()
	store := NewStore(cfg.Clock, hub)
	orchestrator := NewOrchestrator(store, OrchestratorConfig{
		Clock:     cfg.Clock,
		Delay:     cfg.Delay,
		Responses: cfg.Persona.Responses,
		Random:    cfg.Random,
		Scroller:  hubScroller{hub: hub, store: store},
		Logger:    cfg.Logger,
	})

	return &Service{
		hub:          hub,
		store:        store,
		orchestrator: orchestrator,
		persona:      cfg.Persona,
		log:          cfg.Logger,
	}
}

// Send submits user content to the session.
func (s *Service) Send(_ context.Context, content string) (chat.Message, error) {
	return s.orchestrator.Send(content)
}

// Snapshot returns the current session state.
func (s *Service) Snapshot(_ context.Context) chat.State {
	return chat.State{
		Messages: s.store.Messages(),
		IsTyping: s.store.IsTyping(),
		Phase:    s.orchestrator.Phase(),
	}
}

// LoadTranscript returns the stored messages in display order.
func (s *Service) LoadTranscript(_ context.Context) []chat.Message {
	return s.store.Messages()
}

// IsTyping reports whether a bot reply is pending.
func (s *Service) IsTyping() bool {
	return s.store.IsTyping()
}

// Reset re-initializes the session as a page reload would.
func (s *Service) Reset(ctx context.Context) chat.State {
	s.orchestrator.Reset()
	s.log.Info("session reset")
	return s.Snapshot(ctx)
}

// Subscribe registers l for session events.
func (s *Service) Subscribe(l Listener) func() {
	return s.hub.Subscribe(l)
}

// Persona returns the bot persona answering in this session.
func (s *Service) Persona() persona.Persona {
	return s.persona
}

// Close releases the pending timer.
func (s *Service) Close() {
	s.orchestrator.Close()
}
