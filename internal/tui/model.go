// Package tui is the terminal rendition of the chat widget built on Bubble Tea.
package tui

import (
	"context"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zhouzirui/z-tavern/widget/internal/render"
	chatservice "github.com/zhouzirui/z-tavern/widget/internal/service/chat"
	"github.com/zhouzirui/z-tavern/widget/internal/widget"
)

const (
	headerHeight = 3
	inputHeight  = 2
	eventBuffer  = 128
)

var (
	frameStyle   = lipgloss.NewStyle().Padding(0, 1)
	dividerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e5e7eb"))
	dotsStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af"))
)

// eventMsg carries a session event into the update loop.
type eventMsg struct{ ev chatservice.Event }

// Subscribe buffers session events for the program. The listener never blocks
// the publisher; the model re-reads the snapshot on every event, so a dropped
// event only delays a redraw.
func Subscribe(svc *chatservice.Service) (<-chan chatservice.Event, func()) {
	events := make(chan chatservice.Event, eventBuffer)
	unsubscribe := svc.Subscribe(func(ev chatservice.Event) {
		select {
		case events <- ev:
		default:
		}
	})
	return events, unsubscribe
}

func waitForEvent(events <-chan chatservice.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return eventMsg{ev: ev}
	}
}

// Model is the Bubble Tea model of the widget: header, scrolling message list
// with typing indicator, and an input line bound to the typing flag.
type Model struct {
	ctx      context.Context
	svc      *chatservice.Service
	renderer render.Renderer
	terminal render.Terminal
	events   <-chan chatservice.Event
	log      *slog.Logger

	input    *widget.Input
	text     textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	view  render.View
	ready bool
}

// New builds the model. events should come from Subscribe on the same service.
func New(ctx context.Context, svc *chatservice.Service, renderer render.Renderer, events <-chan chatservice.Event, log *slog.Logger) *Model {
	text := textinput.New()
	text.Placeholder = "Type your message..."
	text.Prompt = "> "
	text.CharLimit = 2000
	text.Focus()

	m := &Model{
		ctx:      ctx,
		svc:      svc,
		renderer: renderer,
		events:   events,
		log:      log,
		text:     text,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Points), spinner.WithStyle(dotsStyle)),
	}
	m.input = widget.NewInput(m.send)
	m.refresh()
	return m
}

func (m *Model) send(content string) {
	if _, err := m.svc.Send(m.ctx, content); err != nil {
		m.log.Debug("send ignored", slog.Any("error", err))
	}
}

// Init starts the cursor blink, the spinner and the event pump.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, waitForEvent(m.events))
}

// Update handles keys, resizes, session events and spinner ticks.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			m.submit()
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		var cmd tea.Cmd
		m.text, cmd = m.text.Update(msg)
		return m, cmd

	case eventMsg:
		m.refresh()
		if msg.ev.Kind == chatservice.EventScroll || msg.ev.Kind == chatservice.EventReset {
			m.viewport.GotoBottom()
		}
		return m, waitForEvent(m.events)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.view.Typing != nil {
			m.redraw()
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.text, cmd = m.text.Update(msg)
	return m, cmd
}

// submit hands the edited line to the input control; the line is cleared only
// when the control actually fired.
func (m *Model) submit() {
	m.input.SetText(m.text.Value())
	if m.input.Submit() {
		m.text.Reset()
	}
}

func (m *Model) resize(width, height int) {
	bodyHeight := max(height-headerHeight-inputHeight, 1)
	m.terminal.Width = max(width-2, 0)
	if !m.ready {
		m.viewport = viewport.New(width, bodyHeight)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = bodyHeight
	}
	m.text.Width = max(width-4, 1)
	m.redraw()
	m.viewport.GotoBottom()
}

// refresh re-reads the session and re-binds the input to the typing flag.
func (m *Model) refresh() {
	state := m.svc.Snapshot(m.ctx)
	m.view = m.renderer.View(state)
	m.input.SetDisabled(m.view.InputDisabled)
	if m.view.InputDisabled {
		m.text.Placeholder = "Waiting for reply..."
	} else {
		m.text.Placeholder = "Type your message..."
	}
	m.redraw()
}

func (m *Model) redraw() {
	if !m.ready {
		return
	}
	frame := ""
	if m.view.Typing != nil {
		frame = m.spinner.View()
	}
	m.viewport.SetContent(m.terminal.Messages(m.view, frame))
}

// View draws the whole widget.
func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}
	divider := dividerStyle.Render(strings.Repeat("─", max(m.viewport.Width, 0)))
	return lipgloss.JoinVertical(lipgloss.Left,
		frameStyle.Render(m.terminal.Header(m.view)),
		divider,
		m.viewport.View(),
		divider,
		m.text.View(),
	)
}
