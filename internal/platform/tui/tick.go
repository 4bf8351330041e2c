// Package tui provides the Bubble Tea integration for gemduel: the duel
// board, class picker, shop overlay and battle history views.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg drives animation stepping and the AI turn delay.
type TickMsg time.Time

// tickRate is how many animation steps run per second. Each tick
// acknowledges one stage of outstanding animations, so cascades unfold
// visibly instead of snapping.
const tickRate = 8

func tickCmd() tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
