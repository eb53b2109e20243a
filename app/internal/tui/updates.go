package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marketconnect/riskmap-agent/app/domain/entities"
)

// StateMsg carries a fresh session snapshot into the program.
type StateMsg entities.SessionState

// Latest is a one-slot mailbox that always holds the newest state. Publish
// never blocks, so the session goroutine can call it while the program is
// busy calling back into the session.
type Latest struct {
	ch chan entities.SessionState
}

// NewLatest creates an empty mailbox.
func NewLatest() *Latest {
	return &Latest{ch: make(chan entities.SessionState, 1)}
}

// Publish replaces any unread state with s. It must have a single caller.
func (l *Latest) Publish(s entities.SessionState) {
	for {
		select {
		case l.ch <- s:
			return
		default:
			select {
			case <-l.ch:
			default:
			}
		}
	}
}

// Wait returns a command that delivers the next published state.
func (l *Latest) Wait() tea.Cmd {
	return func() tea.Msg {
		return StateMsg(<-l.ch)
	}
}
