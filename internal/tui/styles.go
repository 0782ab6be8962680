package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/logduck/logduck/internal/logparse"
)

// Palette shared across the viewer.
var (
	ColorBlue   = lipgloss.Color("#00B4D8")
	ColorNavy   = lipgloss.Color("#03045E")
	ColorGray   = lipgloss.Color("#6C757D")
	ColorWhite  = lipgloss.Color("#F8F9FA")
	ColorYellow = lipgloss.Color("#FFD60A")
	ColorRed    = lipgloss.Color("#EF476F")
	ColorGreen  = lipgloss.Color("#06D6A0")
	ColorOrange = lipgloss.Color("#FB8500")
	ColorPurple = lipgloss.Color("#9D4EDD")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	statusLineStyle = lipgloss.NewStyle().
			Background(ColorNavy).
			Foreground(ColorWhite)

	selectedRowStyle = lipgloss.NewStyle().
				Background(ColorNavy).
				Foreground(ColorWhite).
				Bold(true)

	errorTextStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	dimTextStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	panelBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(ColorGray)

	presetKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)
)

// levelStyle returns the level-colored style for a log row.
func levelStyle(level logparse.Level) lipgloss.Style {
	switch level {
	case logparse.LevelTrace:
		return lipgloss.NewStyle().Foreground(ColorGray)
	case logparse.LevelDebug:
		return lipgloss.NewStyle().Foreground(ColorPurple)
	case logparse.LevelInfo:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case logparse.LevelWarn:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case logparse.LevelError:
		return lipgloss.NewStyle().Foreground(ColorRed)
	case logparse.LevelFatal:
		return lipgloss.NewStyle().Foreground(ColorOrange).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(ColorWhite)
}
