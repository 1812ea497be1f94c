package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerTitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#1f2937")).
				Bold(true)

	headerTaglineStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#6b7280"))

	botRowStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#f3f4f6")).
			Foreground(lipgloss.Color("#1f2937")).
			Padding(0, 1)

	userRowStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#eff6ff")).
			Foreground(lipgloss.Color("#1f2937")).
			Padding(0, 1)

	botBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a855f7"))

	userBadgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3b82f6"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4b5563")).
			Bold(true)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ca3af"))

	typingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6b7280")).
			Italic(true)
)

// Terminal draws views for a terminal of the given width.
type Terminal struct {
	Width int
}

// Header renders the title block.
func (t Terminal) Header(view View) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		headerTitleStyle.Render(view.Title),
		headerTaglineStyle.Render(view.Tagline),
	)
}

// Row renders one message as a tinted block: badge, label and time, then content.
func (t Terminal) Row(row Row) string {
	style, badge := userRowStyle, userBadgeStyle
	if row.IsBot() {
		style, badge = botRowStyle, botBadgeStyle
	}
	if t.Width > 2 {
		style = style.Width(t.Width)
	}

	head := badge.Render(row.Icon) + " " + labelStyle.Render(row.Label) + "  " + timeStyle.Render(row.Time)
	return style.Render(head + "\n" + row.Content)
}

// Messages renders the message list followed by the typing indicator, if any.
// frame replaces the static dots so callers can animate them.
func (t Terminal) Messages(view View, frame string) string {
	blocks := make([]string, 0, len(view.Rows)+1)
	for _, row := range view.Rows {
		blocks = append(blocks, t.Row(row))
	}
	if view.Typing != nil {
		dots := view.Typing.Dots
		if frame != "" {
			dots = frame
		}
		blocks = append(blocks, typingStyle.Render(dots+" "+view.Typing.Label))
	}
	return strings.Join(blocks, "\n\n")
}
