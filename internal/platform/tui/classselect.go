package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vklychkov/gemduel/internal/content"
)

// ClassSelectModel is the opening screen: pick a class, start the run.
type ClassSelectModel struct {
	cfg     Config
	classes []content.Class
	cursor  int
	width   int
	height  int
	err     error
}

// NewClassSelectModel builds the class picker from the registry.
func NewClassSelectModel(cfg Config) ClassSelectModel {
	infos := content.ListClasses()
	classes := make([]content.Class, 0, len(infos))
	for _, info := range infos {
		c, err := content.ClassByID(info.ID)
		if err != nil {
			continue
		}
		classes = append(classes, c)
	}
	return ClassSelectModel{cfg: cfg, classes: classes}
}

func (m ClassSelectModel) Init() tea.Cmd {
	return nil
}

func (m ClassSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k", "w":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j", "s":
			if m.cursor < len(m.classes)-1 {
				m.cursor++
			}
		case "enter", " ":
			if len(m.classes) == 0 {
				return m, nil
			}
			duel, err := NewDuelModel(m.cfg, m.classes[m.cursor].ID)
			if err != nil {
				m.err = err
				return m, nil
			}
			duel.width = m.width
			duel.height = m.height
			return duel, duel.Init()
		}
	}
	return m, nil
}

func (m ClassSelectModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("gemduel"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("choose your class"))
	b.WriteString("\n\n")

	for i, c := range m.classes {
		marker := "  "
		name := c.Name
		if i == m.cursor {
			marker = "> "
			name = activeNameStyle.Render(name)
		}
		b.WriteString(fmt.Sprintf("%s%s  %s\n", marker, name, dimStyle.Render(fmt.Sprintf("%d hp", c.MaxHealth))))
	}

	if len(m.classes) > 0 {
		c := m.classes[m.cursor]
		var detail []string
		detail = append(detail, c.Description)
		for _, sk := range c.Skills {
			detail = append(detail, fmt.Sprintf("· %s (%d %s) — %s", sk.Name, sk.Cost.Amount, sk.Cost.Color, sk.Description))
		}
		b.WriteString("\n")
		b.WriteString(panelStyle.Render(strings.Join(detail, "\n")))
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(m.err.Error()))
	}

	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("↑/↓ choose · enter start · q quit"))

	if m.width > 0 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
	}
	return b.String()
}

// Run starts the interactive game in the current terminal.
func Run(cfg Config) error {
	p := tea.NewProgram(NewClassSelectModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RunDuel skips the class picker and starts a run with the given class.
func RunDuel(cfg Config, classID string) error {
	duel, err := NewDuelModel(cfg, classID)
	if err != nil {
		return err
	}
	p := tea.NewProgram(duel, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
