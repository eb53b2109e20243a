// Package tui is the interactive terminal version of the risk map screen.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marketconnect/riskmap-agent/app/domain/entities"
	"github.com/marketconnect/riskmap-agent/app/internal/agent"
	"github.com/marketconnect/riskmap-agent/app/internal/zones"
)

const (
	defaultWidth  = 80
	questionLines = 10
)

// Submitter is the session log as seen by the screen.
type Submitter interface {
	Submit(rawText string) error
	Snapshot() entities.SessionState
}

// Model is the bubbletea model for the risk map screen.
type Model struct {
	log     Submitter
	updates *Latest
	info    agent.Info

	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model

	state         entities.SessionState
	zones         []entities.Zone
	selectedZone  int
	showQuestions bool
	width         int
}

// New builds the screen for a session log. updates may be nil when the
// caller refreshes state itself.
func New(log Submitter, updates *Latest, info agent.Info) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask something about React Native..."
	ti.CharLimit = 500
	ti.Width = defaultWidth - 12

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		log:          log,
		updates:      updates,
		info:         info,
		input:        ti,
		spinner:      sp,
		viewport:     viewport.New(defaultWidth, questionLines),
		state:        log.Snapshot(),
		zones:        zones.All(),
		selectedZone: -1,
		width:        defaultWidth,
	}
	m.refreshQuestions()
	return m
}

func (m Model) Init() tea.Cmd {
	if m.updates == nil {
		return textinput.Blink
	}
	return tea.Batch(textinput.Blink, m.updates.Wait())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-12, 10)
		m.viewport.Width = msg.Width
		m.refreshQuestions()
		return m, nil

	case StateMsg:
		m.state = entities.SessionState(msg)
		m.refreshQuestions()
		var cmds []tea.Cmd
		if m.updates != nil {
			cmds = append(cmds, m.updates.Wait())
		}
		if m.state.Pending {
			cmds = append(cmds, m.spinner.Tick)
		}
		return m, tea.Batch(cmds...)

	case spinner.TickMsg:
		if !m.state.Pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.showQuestions = !m.showQuestions
			if m.showQuestions {
				return m, m.input.Focus()
			}
			m.input.Blur()
			return m, nil
		case "up":
			m.selectedZone = max(m.selectedZone-1, 0)
			return m, nil
		case "down":
			m.selectedZone = min(m.selectedZone+1, len(m.zones)-1)
			return m, nil
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case "enter":
			return m.submit()
		}
	}

	if !m.showQuestions {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit hands the input to the session log and clears it right away when
// the log accepts it.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if !m.showQuestions {
		return m, nil
	}
	err := m.log.Submit(m.input.Value())
	switch {
	case err == nil:
		m.input.SetValue("")
		m.state.Pending = true
		return m, m.spinner.Tick
	case errors.Is(err, entities.ErrEmptyQuestion), errors.Is(err, entities.ErrRequestPending):
		return m, nil
	default:
		return m, tea.Quit
	}
}

func (m *Model) refreshQuestions() {
	if len(m.state.Exchanges) == 0 {
		m.viewport.SetContent(subtleStyle.Render("No questions yet. Ask something about React Native."))
		return
	}
	var b strings.Builder
	for i, ex := range m.state.Exchanges {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(youStyle.Render("You: ") + ex.Question + "\n")
		answer := ex.Answer
		if ex.Failed {
			answer = errorStyle.Render(answer)
		}
		b.WriteString("  " + agentStyle.Render("Agent: ") + answer + "\n")
		u := ex.Usage()
		b.WriteString(faintStyle.Render(fmt.Sprintf("  Prompt: %d | Resp: %d | Total: %d   %s",
			u.PromptTokens, u.CompletionTokens, u.TotalTokens, ex.OccurredAt.Format("15:04:05"))) + "\n")
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoTop()
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Risk zone map") + "\n\n")

	legend := make([]string, 0, len(zones.Levels()))
	for _, lvl := range zones.Levels() {
		legend = append(legend, LevelDot(lvl.Level)+" "+subtleStyle.Render(lvl.Label))
	}
	b.WriteString(strings.Join(legend, "  ") + "\n\n")

	for i, z := range m.zones {
		cursor := "  "
		title := z.Title
		if i == m.selectedZone {
			cursor = selectStyle.Render("> ")
			title = selectStyle.Render(title)
		}
		b.WriteString(fmt.Sprintf("%s%s %-12s %s  %s\n", cursor, LevelDot(z.Level), title,
			faintStyle.Render(fmt.Sprintf("(%.4f, %.4f) r=%dm", z.Latitude, z.Longitude, z.Radius)),
			LevelLabel(z.Level)))
	}
	b.WriteString("\n")

	arrow := "▼"
	if m.showQuestions {
		arrow = "▲"
	}
	b.WriteString(sectionStyle.Render("React Native questions") + " " + subtleStyle.Render(arrow) + "\n")

	if m.showQuestions {
		config := fmt.Sprintf("Model: %s   Temperature: %s\nTotal tokens used: %s",
			modelStyle.Render(m.info.Model),
			tempStyle.Render(fmt.Sprintf("%g", m.info.Temperature)),
			tokensStyle.Render(fmt.Sprintf("%d", m.state.CumulativeTokens)))
		b.WriteString(configStyle.Render(config) + "\n")

		send := sendStyle.Render("Send")
		if m.state.Pending {
			send = m.spinner.View()
		}
		b.WriteString(m.input.View() + " " + send + "\n\n")
		b.WriteString(m.viewport.View() + "\n")
	}

	b.WriteString("\n" + faintStyle.Render("tab questions • ↑/↓ zones • pgup/pgdown scroll • enter send • esc quit"))
	return b.String()
}
