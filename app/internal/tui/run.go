package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marketconnect/riskmap-agent/app/internal/agent"
	"github.com/marketconnect/riskmap-agent/app/internal/session"
)

// Run mounts a fresh session and shows the screen until the user quits.
// The session and its exchanges are discarded on exit.
func Run(asker agent.Asker, info agent.Info, opts ...tea.ProgramOption) error {
	updates := NewLatest()
	l := session.NewLog(asker, session.WithOnChange(updates.Publish))
	defer l.Close()

	p := tea.NewProgram(New(l, updates, info), opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
