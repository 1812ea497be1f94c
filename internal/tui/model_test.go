package tui

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/z-tavern/widget/internal/model/chat"
	"github.com/zhouzirui/z-tavern/widget/internal/model/persona"
	"github.com/zhouzirui/z-tavern/widget/internal/render"
	chatservice "github.com/zhouzirui/z-tavern/widget/internal/service/chat"
)

func newModel(t *testing.T) (*Model, *chatservice.Service, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	svc := chatservice.NewService(chatservice.Config{Clock: clock})
	t.Cleanup(svc.Close)

	events, unsubscribe := Subscribe(svc)
	t.Cleanup(unsubscribe)

	m := New(context.Background(), svc, render.New(time.UTC, persona.Seed()[0]), events, slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return m, svc, clock
}

func drain(m *Model) {
	for {
		select {
		case ev := <-m.events:
			m.Update(eventMsg{ev: ev})
		default:
			return
		}
	}
}

func TestEnterSubmitsAndShowsTyping(t *testing.T) {
	req := require.New(t)
	m, svc, _ := newModel(t)

	m.text.SetValue("Hi there")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	drain(m)

	messages := svc.LoadTranscript(context.Background())
	req.Len(messages, 1)
	req.Equal(chat.SenderUser, messages[0].Sender)
	req.Empty(m.text.Value())
	req.True(m.input.Disabled())
	req.Contains(m.View(), "Hi there")
	req.Contains(m.View(), "AI is typing...")
	req.True(m.viewport.AtBottom())
}

func TestEnterWhileTypingKeepsText(t *testing.T) {
	req := require.New(t)
	m, svc, clock := newModel(t)

	m.text.SetValue("first")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	drain(m)

	m.text.SetValue("second")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	req.Equal("second", m.text.Value())
	req.Len(svc.LoadTranscript(context.Background()), 1)

	clock.Advance(chatservice.DefaultReplyDelay)
	req.Eventually(func() bool { return !svc.IsTyping() }, time.Second, time.Millisecond)
	drain(m)

	req.False(m.input.Disabled())
	req.NotContains(m.View(), "AI is typing...")
	req.Contains(m.View(), "AI Assistant")

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	req.Empty(m.text.Value())
	req.Len(svc.LoadTranscript(context.Background()), 3)
}

func TestBlankEnterDoesNothing(t *testing.T) {
	req := require.New(t)
	m, svc, _ := newModel(t)

	m.text.SetValue("   ")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	req.Empty(svc.LoadTranscript(context.Background()))
	req.False(svc.IsTyping())
}

func TestQuitKeys(t *testing.T) {
	m, _, _ := newModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}
