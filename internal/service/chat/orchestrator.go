package chat

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/zhouzirui/z-tavern/widget/internal/model/chat"
	"github.com/zhouzirui/z-tavern/widget/internal/model/persona"
)

// DefaultReplyDelay is the simulated latency before the bot answers.
const DefaultReplyDelay = 1500 * time.Millisecond

var (
	ErrReplyPending = errors.New("reply already pending")
	ErrEmptyContent = errors.New("message content is empty")
)

// OrchestratorConfig wires the collaborators of an Orchestrator.
type OrchestratorConfig struct {
	Clock     clockwork.Clock
	Delay     time.Duration
	Responses []string
	Random    RandomSource
	Scroller  Scroller
	Logger    *slog.Logger
}

// Orchestrator drives the send/respond flow: a user send moves the session to
// awaiting_reply and a single timer brings it back to idle with a bot message.
type Orchestrator struct {
	store     *Store
	clock     clockwork.Clock
	delay     time.Duration
	responses []string
	random    RandomSource
	scroller  Scroller
	log       *slog.Logger

	mu         sync.Mutex
	awaiting   atomic.Bool
	pending    clockwork.Timer
	generation uint64
}

// NewOrchestrator binds an orchestrator to store. Without responses it answers
// with the default persona's canned replies.
func NewOrchestrator(store *Store, cfg OrchestratorConfig) *Orchestrator {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultReplyDelay
	}
	if len(cfg.Responses) == 0 {
		cfg.Responses = persona.Seed()[0].Responses
	}
	if cfg.Random == nil {
		cfg.Random = DefaultRandom
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Orchestrator{
		store:     store,
		clock:     cfg.Clock,
		delay:     cfg.Delay,
		responses: append([]string(nil), cfg.Responses...),
		random:    cfg.Random,
		scroller:  cfg.Scroller,
		log:       cfg.Logger,
	}
}

// scrollTo runs after the message event reached every listener.
func (o *Orchestrator) scrollTo(message chat.Message) {
	if o.scroller != nil {
		o.scroller.ScrollTo(message.ID)
	}
}

// Send appends a user message, raises the typing flag and schedules the bot reply.
// A send while a reply is pending, or with blank content, changes nothing.
func (o *Orchestrator) Send(content string) (chat.Message, error) {
	if strings.TrimSpace(content) == "" {
		return chat.Message{}, ErrEmptyContent
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.awaiting.Load() {
		o.log.Debug("send ignored while reply pending")
		return chat.Message{}, ErrReplyPending
	}

	o.awaiting.Store(true)
	o.generation++
	generation := o.generation

	message := o.store.AddMessage(content, chat.SenderUser)
	o.scrollTo(message)
	o.store.SetIsTyping(true)
	o.pending = o.clock.AfterFunc(o.delay, func() { o.deliver(generation) })

	o.log.Debug("user message appended", slog.String("id", message.ID), slog.Duration("delay", o.delay))
	return message, nil
}

func (o *Orchestrator) deliver(generation uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if generation != o.generation || !o.awaiting.Load() {
		return
	}

	reply := PickReply(o.responses, o.random)
	message := o.store.AddMessage(reply, chat.SenderBot)
	o.scrollTo(message)
	o.pending = nil
	o.awaiting.Store(false)
	o.store.SetIsTyping(false)

	o.log.Debug("bot reply appended", slog.String("id", message.ID))
}

// Phase reports the current state of the send/respond flow.
func (o *Orchestrator) Phase() chat.Phase {
	if o.awaiting.Load() {
		return chat.PhaseAwaitingReply
	}
	return chat.PhaseIdle
}

// Reset cancels a pending reply and empties the store.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.generation++
	if o.pending != nil {
		o.pending.Stop()
		o.pending = nil
	}
	o.awaiting.Store(false)
	o.store.Reset()
}

// Close drops a pending reply and leaves the session idle.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.generation++
	if o.pending != nil {
		o.pending.Stop()
		o.pending = nil
	}
	if o.awaiting.Swap(false) {
		o.store.SetIsTyping(false)
	}
}
