package page

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/z-tavern/widget/internal/model/persona"
	"github.com/zhouzirui/z-tavern/widget/internal/render"
	chatservice "github.com/zhouzirui/z-tavern/widget/internal/service/chat"
)

func setupRouter(t *testing.T) (*chi.Mux, *chatservice.Service) {
	t.Helper()
	chatSvc := chatservice.NewService(chatservice.Config{Clock: clockwork.NewFakeClock()})
	t.Cleanup(chatSvc.Close)

	r := chi.NewRouter()
	New(chatSvc, render.New(time.UTC, persona.Seed()[0]), slog.New(slog.NewTextHandler(io.Discard, nil))).RegisterRoutes(r)
	return r, chatSvc
}

func submit(r http.Handler, content string) *httptest.ResponseRecorder {
	form := url.Values{"content": {content}}
	req := httptest.NewRequest(http.MethodPost, "/send", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestFormSubmitRedirectsToLatest(t *testing.T) {
	req := require.New(t)
	r, chatSvc := setupRouter(t)

	resp := submit(r, "Hi there")
	req.Equal(http.StatusSeeOther, resp.Code)
	req.Equal("/#latest", resp.Header().Get("Location"))
	req.Len(chatSvc.LoadTranscript(t.Context()), 1)

	page := httptest.NewRecorder()
	r.ServeHTTP(page, httptest.NewRequest(http.MethodGet, "/", nil))
	req.Equal(http.StatusOK, page.Code)
	req.Contains(page.Body.String(), "Hi there")
	req.Contains(page.Body.String(), "AI is typing...")
}

func TestBlankFormSubmitChangesNothing(t *testing.T) {
	req := require.New(t)
	r, chatSvc := setupRouter(t)

	resp := submit(r, "  ")
	req.Equal(http.StatusSeeOther, resp.Code)
	req.Empty(chatSvc.LoadTranscript(t.Context()))
	req.False(chatSvc.IsTyping())
}
