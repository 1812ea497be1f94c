// Package page serves the server-rendered widget for browsers without JavaScript.
package page

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/z-tavern/widget/internal/render"
	chatService "github.com/zhouzirui/z-tavern/widget/internal/service/chat"
)

// maxFormBytes caps the submitted form.
const maxFormBytes = 16 << 10

// Handler 渲染聊天页面并处理表单提交
type Handler struct {
	chatSvc  *chatService.Service
	renderer render.Renderer
	log      *slog.Logger
}

// New 创建页面处理器
func New(chatSvc *chatService.Service, renderer render.Renderer, log *slog.Logger) *Handler {
	return &Handler{chatSvc: chatSvc, renderer: renderer, log: log}
}

// RegisterRoutes 注册页面路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.handlePage)
	r.Post("/send", h.handleSend)
}

// handlePage 输出当前会话的 HTML 视图
func (h *Handler) handlePage(w http.ResponseWriter, r *http.Request) {
	view := h.renderer.View(h.chatSvc.Snapshot(r.Context()))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := render.WriteHTML(w, view); err != nil {
		h.log.Error("render page failed", slog.Any("error", err))
	}
}

// handleSend submits the form and sends the browser back to the newest message.
func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	result := h.chatSvc.Submit(r.Context(), r.PostForm.Get("content"))
	if !result.Accepted {
		h.log.Debug("form submission ignored", slog.String("reason", result.Reason))
	}

	http.Redirect(w, r, "/#latest", http.StatusSeeOther)
}
