package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/marketconnect/riskmap-agent/app/internal/zones"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#171717")).Padding(0, 1)
	subtleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af"))
	faintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4b5563"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff"))
	configStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#404040")).Padding(0, 1)
	modelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff"))
	tempStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#facc15"))
	tokensStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#22d3ee"))
	youStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#60a5fa"))
	agentStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ade80"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ef4444"))
	selectStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f97316"))
	sendStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#3b82f6")).Padding(0, 1)
)

// LevelDot renders a colored marker for a severity level.
func LevelDot(level int) string {
	lvl, ok := zones.Level(level)
	if !ok {
		return "?"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(lvl.Color)).Render("●")
}

// LevelLabel renders a severity label in its palette color.
func LevelLabel(level int) string {
	lvl, ok := zones.Level(level)
	if !ok {
		return "unknown"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(lvl.Color)).Render(lvl.Label)
}
