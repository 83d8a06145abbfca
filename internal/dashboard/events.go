package dashboard

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dotcommander/cognishield/internal/emergency"
)

// EventMsg carries a countdown transition into the update loop.
type EventMsg emergency.Event

// EventSink returns a buffered channel and a handler that feeds it. The
// handler never blocks: when the buffer is full the event is dropped, since
// the next frame reads the countdown snapshot anyway.
func EventSink(size int) (<-chan emergency.Event, func(emergency.Event)) {
	ch := make(chan emergency.Event, size)
	return ch, func(ev emergency.Event) {
		select {
		case ch <- ev:
		default:
		}
	}
}

// waitForEvent blocks on the channel and hands the next event to Update.
func waitForEvent(ch <-chan emergency.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return EventMsg(ev)
	}
}
