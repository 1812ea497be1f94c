// Package render turns session state into what the widget shows: message rows,
// the typing indicator and the surrounding view.
package render

import (
	"time"

	"github.com/samber/lo"

	"github.com/zhouzirui/z-tavern/widget/internal/model/chat"
	"github.com/zhouzirui/z-tavern/widget/internal/model/persona"
)

const (
	BotIcon  = "🤖"
	UserIcon = "👤"
)

// Labels names the two senders.
type Labels struct {
	Bot  string
	User string
}

// DefaultLabels matches the assistant persona.
var DefaultLabels = Labels{Bot: "AI Assistant", User: "You"}

// Row is the read-only representation of one message.
type Row struct {
	ID      string      `json:"id"`
	Sender  chat.Sender `json:"sender"`
	Icon    string      `json:"icon"`
	Label   string      `json:"label"`
	Content string      `json:"content"`
	Time    string      `json:"time"`
}

// IsBot reports whether the row belongs to the bot.
func (r Row) IsBot() bool {
	return r.Sender == chat.SenderBot
}

// Renderer maps messages to rows for one display location.
type Renderer struct {
	Location *time.Location
	Labels   Labels
	persona  persona.Persona
}

// New returns a renderer showing times in loc and labelling the bot after p.
func New(loc *time.Location, p persona.Persona) Renderer {
	labels := DefaultLabels
	if p.Name != "" {
		labels.Bot = p.Name
	}
	return Renderer{Location: loc, Labels: labels, persona: p}
}

// RenderMessage renders m with the default labels.
func RenderMessage(m chat.Message, loc *time.Location) Row {
	return Renderer{Location: loc, Labels: DefaultLabels}.Message(m)
}

// Message renders a single message. The content is passed through untouched.
func (r Renderer) Message(m chat.Message) Row {
	row := Row{
		ID:      m.ID,
		Sender:  m.Sender,
		Icon:    UserIcon,
		Label:   r.Labels.User,
		Content: m.Content,
		Time:    FormatTime(m.Timestamp, r.Location),
	}
	if m.FromBot() {
		row.Icon = BotIcon
		row.Label = r.Labels.Bot
	}
	return row
}

// Rows renders messages in display order.
func (r Renderer) Rows(messages []chat.Message) []Row {
	return lo.Map(messages, func(m chat.Message, _ int) Row {
		return r.Message(m)
	})
}

// FormatTime formats t as hour:minute in loc, or in the local zone when loc is nil.
func FormatTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("15:04")
}
