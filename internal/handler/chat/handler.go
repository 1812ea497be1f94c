package chat

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/z-tavern/widget/internal/render"
	chatService "github.com/zhouzirui/z-tavern/widget/internal/service/chat"
	"github.com/zhouzirui/z-tavern/widget/pkg/utils"
)

// Handler 聊天服务的HTTP处理器
type Handler struct {
	chatSvc  *chatService.Service
	renderer render.Renderer
	log      *slog.Logger
}

// New 创建聊天处理器
func New(chatSvc *chatService.Service, renderer render.Renderer, log *slog.Logger) *Handler {
	return &Handler{
		chatSvc:  chatSvc,
		renderer: renderer,
		log:      log,
	}
}

// RegisterRoutes 注册聊天相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/session", h.handleGetSession)
	r.Post("/session", h.handleResetSession)
	r.Get("/messages", h.handleListMessages)
	r.Post("/messages", h.handleSendMessage)
	r.Get("/view", h.handleView)
}

// handleGetSession 返回当前会话快照
func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.chatSvc.Snapshot(r.Context()))
}

// handleResetSession 重新初始化会话
func (h *Handler) handleResetSession(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusCreated, h.chatSvc.Reset(r.Context()))
}

func (h *Handler) handleListMessages(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.chatSvc.LoadTranscript(r.Context()))
}

// handleSendMessage 提交用户消息
func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Content string `json:"content"`
	}

	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := h.chatSvc.Submit(r.Context(), payload.Content)
	if !result.Accepted {
		h.log.Debug("submission ignored", slog.String("reason", result.Reason))
		utils.RespondJSON(w, http.StatusOK, result)
		return
	}

	utils.RespondJSON(w, http.StatusAccepted, result)
}

func (h *Handler) handleView(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.renderer.View(h.chatSvc.Snapshot(r.Context())))
}
