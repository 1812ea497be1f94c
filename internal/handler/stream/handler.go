package stream

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	chatService "github.com/zhouzirui/z-tavern/widget/internal/service/chat"
	"github.com/zhouzirui/z-tavern/widget/pkg/utils"
)

// eventBuffer bounds the events queued for one slow client.
const eventBuffer = 64

// Handler pushes session changes to browsers via Server-Sent Events.
type Handler struct {
	chatSvc   *chatService.Service
	heartbeat time.Duration
	log       *slog.Logger
}

// New creates a new stream handler
func New(chatSvc *chatService.Service, heartbeat time.Duration, log *slog.Logger) *Handler {
	if heartbeat <= 0 {
		heartbeat = 15 * time.Second
	}
	return &Handler{
		chatSvc:   chatSvc,
		heartbeat: heartbeat,
		log:       log,
	}
}

// RegisterRoutes 注册事件流路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/stream", h.handleStream)
}

// handleStream sends a snapshot first, then every session event until the client leaves.
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	ctx := r.Context()
	q := newQueue(eventBuffer)
	unsubscribe := h.chatSvc.Subscribe(func(ev chatService.Event) {
		if !q.push(ev) {
			h.log.Warn("sse client too slow, dropping event", slog.String("kind", string(ev.Kind)))
		}
	})
	defer unsubscribe()

	utils.SetupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	if err := utils.SendSSEEvent(w, flusher, "snapshot", h.chatSvc.Snapshot(ctx)); err != nil {
		h.log.Warn("sse snapshot failed", slog.Any("error", err))
		return
	}

	h.log.Debug("sse stream opened")
	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.log.Debug("sse stream closed")
			return
		case ev := <-q.events:
			if err := utils.SendSSEEvent(w, flusher, string(ev.Kind), ev); err != nil {
				h.log.Debug("sse write failed", slog.Any("error", err))
				return
			}
		case <-q.resync:
			// 丢弃过的事件无法补发，清空队列后用快照覆盖
			q.drain()
			if err := utils.SendSSEEvent(w, flusher, "snapshot", h.chatSvc.Snapshot(ctx)); err != nil {
				h.log.Debug("sse resync failed", slog.Any("error", err))
				return
			}
		case t := <-ticker.C:
			if err := utils.SendSSEComment(w, flusher, "heartbeat "+t.UTC().Format(time.RFC3339)); err != nil {
				return
			}
		}
	}
}
