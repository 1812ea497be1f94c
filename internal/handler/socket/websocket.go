package socket

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	chatService "github.com/zhouzirui/z-tavern/widget/internal/service/chat"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 54 * time.Second
	writeWait    = 10 * time.Second
	outboxSize   = 64
)

// Handler WebSocket聊天处理器
type Handler struct {
	chatSvc  *chatService.Service
	upgrader websocket.Upgrader
	log      *slog.Logger
}

// New 创建WebSocket处理器
func New(chatSvc *chatService.Service, allowedOrigins []string, log *slog.Logger) *Handler {
	return &Handler{
		chatSvc: chatSvc,
		log:     log,
		upgrader: websocket.Upgrader{
			CheckOrigin:     originChecker(allowedOrigins),
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册WebSocket路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws", h.handleWebSocket)
}

type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// SendMessage 文本消息
type SendMessage struct {
	Content string `json:"content"`
}

type outgoingMessage struct {
	Type      string `json:"type"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

func originChecker(allowed []string) func(r *http.Request) bool {
	for _, origin := range allowed {
		if origin == "*" {
			return func(*http.Request) bool { return true }
		}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, candidate := range allowed {
			if candidate == origin {
				return true
			}
		}
		return false
	}
}

// handleWebSocket 处理WebSocket连接
func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", slog.Any("error", err))
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	outbox := make(chan outgoingMessage, outboxSize)
	resync := make(chan struct{}, 1)
	unsubscribe := h.chatSvc.Subscribe(func(ev chatService.Event) {
		h.enqueueEvent(outbox, resync, ev)
	})
	defer unsubscribe()

	go h.writeLoop(ctx, cancel, conn, outbox, resync)

	h.enqueue(outbox, "snapshot", h.chatSvc.Snapshot(ctx))
	h.log.Debug("websocket connected", slog.String("remote", r.RemoteAddr))

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn("websocket read error", slog.Any("error", err))
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))

		h.handleMessage(ctx, outbox, &msg)
	}
}

func (h *Handler) handleMessage(ctx context.Context, outbox chan<- outgoingMessage, msg *inboundMessage) {
	switch msg.Type {
	case "send":
		var payload SendMessage
		if err := json.Unmarshal(msg.Data, &payload); err != nil {
			h.enqueue(outbox, "error", map[string]string{"message": "invalid send payload"})
			return
		}
		h.enqueue(outbox, "submission", h.chatSvc.Submit(ctx, payload.Content))
	case "reset":
		h.chatSvc.Reset(ctx)
	case "snapshot":
		h.enqueue(outbox, "snapshot", h.chatSvc.Snapshot(ctx))
	default:
		h.enqueue(outbox, "error", map[string]string{"message": "unsupported message type: " + msg.Type})
	}
}

func (h *Handler) enqueue(outbox chan<- outgoingMessage, kind string, data any) bool {
	msg := outgoingMessage{Type: kind, Data: data, Timestamp: time.Now().UnixMilli()}
	select {
	case outbox <- msg:
		return true
	default:
		h.log.Warn("websocket client too slow, dropping message", slog.String("type", kind))
		return false
	}
}

// enqueueEvent queues a session event; a dropped event asks the writer for a fresh snapshot.
func (h *Handler) enqueueEvent(outbox chan<- outgoingMessage, resync chan<- struct{}, ev chatService.Event) {
	if h.enqueue(outbox, string(ev.Kind), ev) {
		return
	}
	select {
	case resync <- struct{}{}:
	default:
	}
}

// writeLoop is the only writer on conn.
func (h *Handler) writeLoop(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, outbox <-chan outgoingMessage, resync <-chan struct{}) {
	defer cancel()
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		case msg := <-outbox:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				h.log.Debug("websocket write failed", slog.Any("error", err))
				conn.Close()
				return
			}
		case <-resync:
			msg := outgoingMessage{Type: "snapshot", Data: h.chatSvc.Snapshot(ctx), Timestamp: time.Now().UnixMilli()}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				h.log.Debug("websocket resync failed", slog.Any("error", err))
				conn.Close()
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				conn.Close()
				return
			}
		}
	}
}
