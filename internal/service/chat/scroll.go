//go:generate go run go.uber.org/mock/mockgen -source=scroll.go -destination=mocks/mock_scroller.go -package=mocks
package chat

// Scroller keeps a view positioned on the newest message.
type Scroller interface {
	ScrollTo(messageID string)
}

// hubScroller turns scroll requests into scroll events for every attached view.
type hubScroller struct {
	hub   *Hub
	store *Store
}

func (s hubScroller) ScrollTo(messageID string) {
	s.hub.Publish(Event{Kind: EventScroll, Target: messageID, IsTyping: s.store.IsTyping()})
}
