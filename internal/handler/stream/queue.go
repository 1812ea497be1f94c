package stream

import chatService "github.com/zhouzirui/z-tavern/widget/internal/service/chat"

// queue buffers events for one client and flags a resync once it overflows.
type queue struct {
	events chan chatService.Event
	resync chan struct{}
}

func newQueue(size int) *queue {
	return &queue{
		events: make(chan chatService.Event, size),
		resync: make(chan struct{}, 1),
	}
}

// push never blocks. It reports false when ev was dropped.
func (q *queue) push(ev chatService.Event) bool {
	select {
	case q.events <- ev:
		return true
	default:
	}
	select {
	case q.resync <- struct{}{}:
	default:
	}
	return false
}

// drain discards the queued events; a snapshot supersedes them.
func (q *queue) drain() {
	for {
		select {
		case <-q.events:
		default:
			return
		}
	}
}
