package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vklychkov/gemduel/internal/grid"
)

// tileStyles maps tile colors to lipgloss styles.
var tileStyles = map[grid.Color]lipgloss.Style{
	grid.Red:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	grid.Blue:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	grid.Green:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	grid.Yellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	grid.Black:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	grid.Empty:  lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
}

// tileGlyphs are the board characters per color.
var tileGlyphs = map[grid.Color]string{
	grid.Red:    "●",
	grid.Blue:   "◆",
	grid.Green:  "■",
	grid.Yellow: "▲",
	grid.Black:  "◈",
	grid.Empty:  "·",
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("13"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Reverse(true)

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Bold(true)

	frozenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")).
			Faint(true)

	ignitedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("208")).
			Bold(true)

	matchedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Blink(true)

	activeNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	toastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Italic(true)

	gameOverStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("13")).
			Padding(1, 3).
			Bold(true)

	shopTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11"))
)
