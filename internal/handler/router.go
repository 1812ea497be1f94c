package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/z-tavern/widget/internal/config"
	"github.com/zhouzirui/z-tavern/widget/internal/handler/chat"
	"github.com/zhouzirui/z-tavern/widget/internal/handler/page"
	"github.com/zhouzirui/z-tavern/widget/internal/handler/persona"
	"github.com/zhouzirui/z-tavern/widget/internal/handler/socket"
	"github.com/zhouzirui/z-tavern/widget/internal/handler/stream"
	middlewarePkg "github.com/zhouzirui/z-tavern/widget/internal/middleware"
	personaModel "github.com/zhouzirui/z-tavern/widget/internal/model/persona"
	"github.com/zhouzirui/z-tavern/widget/internal/render"
	chatService "github.com/zhouzirui/z-tavern/widget/internal/service/chat"
	"github.com/zhouzirui/z-tavern/widget/pkg/utils"
)

// NewRouter wires HTTP routes to the chat session.
func NewRouter(personas personaModel.Store, chatSvc *chatService.Service, renderer render.Renderer, serverCfg config.ServerConfig, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(log.Handler(), slog.LevelInfo),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(serverCfg.AllowedOrigins))

	// Create handlers
	personaHandler := persona.New(personas)
	chatHandler := chat.New(chatSvc, renderer, log)
	streamHandler := stream.New(chatSvc, serverCfg.StreamHeartbeat, log)
	socketHandler := socket.New(chatSvc, serverCfg.AllowedOrigins, log)
	pageHandler := page.New(chatSvc, renderer, log)

	pageHandler.RegisterRoutes(r)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		personaHandler.RegisterRoutes(api)
		chatHandler.RegisterRoutes(api)
		streamHandler.RegisterRoutes(api)
		socketHandler.RegisterRoutes(api)
	})

	return r
}
