package socket

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	chatservice "github.com/zhouzirui/z-tavern/widget/internal/service/chat"
)

type frame struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

func dial(t *testing.T) (*websocket.Conn, *chatservice.Service, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	chatSvc := chatservice.NewService(chatservice.Config{Clock: clock})
	t.Cleanup(chatSvc.Close)

	r := chi.NewRouter()
	New(chatSvc, []string{"*"}, slog.New(slog.NewTextHandler(io.Discard, nil))).RegisterRoutes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn, chatSvc, clock
}

func readUntil(t *testing.T, conn *websocket.Conn, kind string) frame {
	t.Helper()
	for {
		var f frame
		require.NoError(t, conn.ReadJSON(&f))
		if f.Type == kind {
			return f
		}
	}
}

func TestSendOverSocketRoundTrip(t *testing.T) {
	req := require.New(t)
	conn, chatSvc, clock := dial(t)

	snapshot := readUntil(t, conn, "snapshot")
	req.Equal(false, snapshot.Data["isTyping"])

	req.NoError(conn.WriteJSON(map[string]any{"type": "send", "data": map[string]string{"content": "Hi there"}}))

	submission := readUntil(t, conn, "submission")
	req.Equal(true, submission.Data["accepted"])
	req.True(chatSvc.IsTyping())

	clock.Advance(chatservice.DefaultReplyDelay)
	for {
		f := readUntil(t, conn, "message")
		message := f.Data["message"].(map[string]any)
		if message["sender"] == "bot" {
			break
		}
	}
	typing := readUntil(t, conn, "typing")
	req.Equal(false, typing.Data["isTyping"])
}

func TestUnsupportedTypeReportsError(t *testing.T) {
	conn, _, _ := dial(t)
	readUntil(t, conn, "snapshot")

	require.NoError(t, conn.WriteJSON(map[string]any{"type": "audio"}))
	f := readUntil(t, conn, "error")
	require.Contains(t, f.Data["message"], "unsupported")
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"http://allowed.test"})

	r := httptest.NewRequest("GET", "/ws", nil)
	r.Header.Set("Origin", "http://allowed.test")
	require.True(t, check(r))

	r.Header.Set("Origin", "http://evil.test")
	require.False(t, check(r))
}

func TestDroppedEventRequestsSnapshot(t *testing.T) {
	req := require.New(t)
	h := New(chatservice.NewService(chatservice.Config{Clock: clockwork.NewFakeClock()}), []string{"*"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	outbox := make(chan outgoingMessage, 1)
	resync := make(chan struct{}, 1)

	h.enqueueEvent(outbox, resync, chatservice.Event{Kind: chatservice.EventMessage})
	req.Len(outbox, 1)
	req.Empty(resync)

	h.enqueueEvent(outbox, resync, chatservice.Event{Kind: chatservice.EventScroll})
	h.enqueueEvent(outbox, resync, chatservice.Event{Kind: chatservice.EventTyping})
	req.Len(outbox, 1)
	req.Len(resync, 1)
}
