package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vklychkov/gemduel/internal/storage"
)

// HistoryModel shows recent battles in a scrollable table.
type HistoryModel struct {
	table table.Model
	err   error
}

// NewHistoryModel loads recent battle records into a table.
func NewHistoryModel(store *storage.Store, limit int) HistoryModel {
	columns := []table.Column{
		{Title: "When", Width: 17},
		{Title: "Class", Width: 12},
		{Title: "Vs", Width: 12},
		{Title: "#", Width: 3},
		{Title: "Winner", Width: 7},
		{Title: "Turns", Width: 6},
		{Title: "Combo", Width: 6},
		{Title: "Dealt", Width: 6},
		{Title: "Taken", Width: 6},
	}

	var rows []table.Row
	var loadErr error
	records, err := store.RecentBattles(limit)
	if err != nil {
		loadErr = err
	}
	for _, r := range records {
		rows = append(rows, table.Row{
			r.CreatedAt.Format("2006-01-02 15:04"),
			r.ClassID,
			r.OpponentClassID,
			strconv.Itoa(r.BattleNumber),
			r.Winner,
			strconv.Itoa(r.Turns),
			strconv.Itoa(r.MaxCombo),
			strconv.Itoa(r.DamageDealt),
			strconv.Itoa(r.DamageTaken),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return HistoryModel{table: t, err: loadErr}
}

func (m HistoryModel) Init() tea.Cmd {
	return nil
}

func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m HistoryModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("could not load history: %v\n", m.err)
	}
	header := titleStyle.Render("battle history")
	hint := dimStyle.Render("↑/↓ scroll · q quit")
	return header + "\n" + panelStyle.Render(m.table.View()) + "\n" + hint + "\n"
}

// RunHistory shows the battle history table in the current terminal.
func RunHistory(store *storage.Store, limit int) error {
	p := tea.NewProgram(NewHistoryModel(store, limit))
	_, err := p.Run()
	return err
}
