package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vklychkov/gemduel/internal/config"
	"github.com/vklychkov/gemduel/internal/content"
	"github.com/vklychkov/gemduel/internal/engine"
	"github.com/vklychkov/gemduel/internal/event"
	"github.com/vklychkov/gemduel/internal/grid"
	"github.com/vklychkov/gemduel/internal/player"
	"github.com/vklychkov/gemduel/internal/storage"
)

// Config carries what every TUI view needs to build a battle.
type Config struct {
	Store   *storage.Store
	Balance config.Balance
	Seed    int64
}

// aiDelayTicks is how many ticks the AI waits before moving, so its turn
// reads as a deliberate action instead of an instant flicker.
const aiDelayTicks = 6

// maxToasts bounds the combat log panel.
const maxToasts = 6

// toastLog collects combat messages from the event bus. Shared by pointer
// because Bubble Tea models are values.
type toastLog struct {
	entries []string
}

func (l *toastLog) push(msg string) {
	l.entries = append(l.entries, msg)
	if len(l.entries) > maxToasts {
		l.entries = l.entries[len(l.entries)-maxToasts:]
	}
}

// DuelModel is the Bubble Tea model for a running duel.
type DuelModel struct {
	battle *engine.Battle
	cfg    Config

	keys       DuelKeyMap
	help       help.Model
	healthBars map[player.Side]progress.Model

	cursor   grid.Coord
	shopOpen bool
	shopIdx  int
	toasts   *toastLog

	width    int
	height   int
	saved    bool // battle record written for the current game over
	aiTicks  int
	quitting bool
}

// NewDuelModel creates the duel view for the chosen class.
func NewDuelModel(cfg Config, classID string) (DuelModel, error) {
	battle, err := engine.New(engine.Options{
		Seed:       cfg.Seed,
		Balance:    cfg.Balance,
		HumanClass: classID,
	})
	if err != nil {
		return DuelModel{}, err
	}

	m := DuelModel{
		battle: battle,
		cfg:    cfg,
		keys:   DefaultDuelKeyMap(),
		help:   help.New(),
		healthBars: map[player.Side]progress.Model{
			player.Human: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
			player.AI:    progress.New(progress.WithScaledGradient("#d75f5f", "#870000"), progress.WithoutPercentage()),
		},
		toasts: &toastLog{},
	}
	m.subscribeToasts()
	return m, nil
}

// subscribeToasts feeds the combat log from the event bus.
func (m DuelModel) subscribeToasts() {
	bus := m.battle.Bus()
	log := m.toasts

	bus.On(event.TypeDamageDealt, func(ev event.Event) {
		d, ok := ev.Payload.(event.DamagePayload)
		if !ok || d.Applied <= 0 {
			return
		}
		log.push(fmt.Sprintf("%s hits %s for %d", d.Source, d.Target, d.Applied))
	})
	bus.On(event.TypeSkillCast, func(ev event.Event) {
		sc, ok := ev.Payload.(event.SkillCastPayload)
		if !ok {
			return
		}
		log.push(fmt.Sprintf("%s casts %s", sc.Side, sc.SkillID))
	})
	bus.On(event.TypeStatusEffectApplied, func(ev event.Event) {
		se, ok := ev.Payload.(event.StatusEffectAppliedPayload)
		if !ok {
			return
		}
		log.push(fmt.Sprintf("%s gains %s", se.Side, se.Name))
	})
	bus.On(event.TypeMatch, func(ev event.Event) {
		mp, ok := ev.Payload.(event.MatchPayload)
		if !ok || mp.Combo < 2 {
			return
		}
		log.push(fmt.Sprintf("%s combo x%d", mp.Side, mp.Combo))
	})
	bus.On(event.TypeGameOver, func(ev event.Event) {
		g, ok := ev.Payload.(event.GameOverPayload)
		if !ok {
			return
		}
		log.push(fmt.Sprintf("%s wins the battle", g.Winner))
	})
}

// Init starts the tick loop.
func (m DuelModel) Init() tea.Cmd {
	return tickCmd()
}

// Update handles messages and updates the model state.
func (m DuelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m DuelModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.battle.Phase() == engine.PhaseGameOver {
		return m.handleGameOverKey(msg)
	}
	if m.shopOpen {
		return m.handleShopKey(msg)
	}
	return m.handleBoardKey(msg)
}

func (m DuelModel) handleGameOverKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Next):
		if m.battle.NextBattle() {
			m.saved = false
		}
	case key.Matches(msg, m.keys.Reset):
		m.battle.ResetGame()
		m.saved = false
		m.toasts.entries = nil
		m.subscribeToasts()
	}
	return m, nil
}

func (m DuelModel) handleShopKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	offers := m.battle.Offers()
	switch {
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Shop):
		m.shopOpen = false
	case key.Matches(msg, m.keys.Up):
		if m.shopIdx > 0 {
			m.shopIdx--
		}
	case key.Matches(msg, m.keys.Down):
		if m.shopIdx < len(offers)-1 {
			m.shopIdx++
		}
	case key.Matches(msg, m.keys.Select):
		if m.shopIdx < len(offers) {
			if m.battle.PurchaseBlessing(offers[m.shopIdx].ID) {
				m.toasts.push("blessing acquired: " + offers[m.shopIdx].Name)
			} else {
				m.toasts.push("cannot afford " + offers[m.shopIdx].Name)
			}
		}
	case key.Matches(msg, m.keys.Forge):
		if m.battle.ConvertBlessingsToItem() {
			m.toasts.push("relic forged from blessings")
		}
	}
	return m, nil
}

func (m DuelModel) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	humanTurn := m.battle.Current() == player.Human && m.battle.Phase() == engine.PhaseIdle

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor.Row > 0 {
			m.cursor.Row--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor.Row < grid.Size-1 {
			m.cursor.Row++
		}
	case key.Matches(msg, m.keys.Left):
		if m.cursor.Col > 0 {
			m.cursor.Col--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor.Col < grid.Size-1 {
			m.cursor.Col++
		}
	case key.Matches(msg, m.keys.Select):
		if humanTurn {
			m.battle.SelectTile(m.cursor.Row, m.cursor.Col)
		}
	case key.Matches(msg, m.keys.Skill1), key.Matches(msg, m.keys.Skill2), key.Matches(msg, m.keys.Skill3):
		if humanTurn {
			m.toggleSkillKey(msg.String())
		}
	case key.Matches(msg, m.keys.Shop):
		if humanTurn {
			m.shopOpen = true
			m.shopIdx = 0
		}
	case key.Matches(msg, m.keys.Forge):
		if humanTurn && m.battle.ConvertBlessingsToItem() {
			m.toasts.push("relic forged from blessings")
		}
	case key.Matches(msg, m.keys.Cancel):
		// Cancel targeting mode or clear the selection.
		st := m.battle.Player(player.Human)
		if st.ActiveSkillID != "" {
			m.battle.ToggleSkill(player.Human, st.ActiveSkillID)
		} else if sel := m.battle.Selected(); sel != nil {
			m.battle.SelectTile(sel.Row, sel.Col)
		}
	}
	return m, nil
}

func (m DuelModel) toggleSkillKey(k string) {
	skills := m.battle.Player(player.Human).EquippedSkills
	idx := int(k[0] - '1')
	if idx < 0 || idx >= len(skills) {
		return
	}
	m.battle.ToggleSkill(player.Human, skills[idx])
}

func (m DuelModel) handleTick() (tea.Model, tea.Cmd) {
	b := m.battle

	switch b.Phase() {
	case engine.PhaseAwaitingAnimations:
		// Acknowledge one stage per tick; the next stage's animations
		// surface on the following tick.
		for _, a := range b.PendingAnimations() {
			b.CompleteAnimation(a.ID)
		}

	case engine.PhaseIdle:
		if b.Current() == player.AI {
			m.aiTicks++
			if m.aiTicks >= aiDelayTicks {
				m.aiTicks = 0
				b.AITakeTurn()
			}
		} else {
			m.aiTicks = 0
		}

	case engine.PhaseGameOver:
		if !m.saved {
			m.saveBattleRecord()
			m.saved = true
		}
	}

	return m, tickCmd()
}

// saveBattleRecord persists the finished battle. Best effort; play
// continues without storage.
func (m DuelModel) saveBattleRecord() {
	if m.cfg.Store == nil {
		return
	}
	stats := m.battle.Stats()
	battleNum, _ := m.battle.BattleCounters()
	_, err := m.cfg.Store.SaveBattle(storage.BattleRecord{
		Seed:            m.battle.Seed(),
		ClassID:         m.battle.Player(player.Human).ClassName,
		OpponentClassID: m.battle.Player(player.AI).ClassName,
		BattleNumber:    battleNum,
		Winner:          string(m.battle.Winner()),
		Turns:           m.battle.Turn(),
		MaxCombo:        stats.MaxCombo,
		DamageDealt:     stats.DamageDealt,
		DamageTaken:     stats.DamageTaken,
		BlessingsBought: stats.BlessingsBought,
	})
	if err != nil {
		m.toasts.push("history not saved: " + err.Error())
	}
}

// View renders the duel.
func (m DuelModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	left := boardStyle.Render(m.viewBoard())
	right := lipgloss.JoinVertical(lipgloss.Left,
		m.viewPlayer(player.AI),
		m.viewPlayer(player.Human),
		panelStyle.Render(m.viewSkills()),
	)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
	b.WriteString("\n")

	if m.shopOpen {
		b.WriteString(panelStyle.Render(m.viewShop()))
		b.WriteString("\n")
	}
	if m.battle.Phase() == engine.PhaseGameOver {
		b.WriteString(m.viewGameOver())
		b.WriteString("\n")
	}

	b.WriteString(m.viewToasts())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m DuelModel) viewHeader() string {
	cur, max := m.battle.BattleCounters()
	turn := fmt.Sprintf("battle %d/%d · turn %d", cur, max, m.battle.Turn())

	whose := "your turn"
	if m.battle.Current() == player.AI {
		whose = "opponent's turn"
	}
	if combo := m.battle.Combo(); combo > 1 {
		whose = fmt.Sprintf("combo x%d", combo)
	}

	return titleStyle.Render("gemduel") + "  " + dimStyle.Render(turn) + "  " + whose
}

func (m DuelModel) viewBoard() string {
	snapshot := m.battle.GridSnapshot()
	selected := m.battle.Selected()
	targeting := m.battle.Player(player.Human).ActiveSkillID != ""

	var rows []string
	for r := 0; r < grid.Size; r++ {
		var cells []string
		for c := 0; c < grid.Size; c++ {
			t := snapshot[r][c]
			cell := tileGlyphs[t.Color]

			style := tileStyles[t.Color]
			switch {
			case t.IsMatched:
				style = matchedStyle
			case t.IsIgnited:
				style = ignitedStyle
			case t.IsFrozen:
				style = frozenStyle
			}

			rendered := style.Render(cell)
			pos := grid.Coord{Row: r, Col: c}
			if pos == m.cursor {
				marker := cursorStyle
				if targeting {
					marker = ignitedStyle.Reverse(true)
				}
				rendered = marker.Render(cell)
			} else if selected != nil && *selected == pos {
				rendered = selectedStyle.Render(cell)
			}
			cells = append(cells, rendered)
		}
		rows = append(rows, strings.Join(cells, " "))
	}
	return strings.Join(rows, "\n")
}

func (m DuelModel) viewPlayer(side player.Side) string {
	st := m.battle.Player(side)
	class := m.battle.Class(side)

	name := class.Name
	if side == player.AI {
		name += " (AI)"
	}
	if m.battle.Current() == side {
		name = activeNameStyle.Render(name)
	}

	bar := m.healthBars[side].ViewAs(float64(st.Health) / float64(st.MaxHealth))
	hp := fmt.Sprintf("%d/%d", st.Health, st.MaxHealth)
	if st.Defense > 0 {
		hp += fmt.Sprintf(" 🛡%d", st.Defense)
	}

	lines := []string{name, bar + " " + hp, m.viewResources(st)}
	if statuses := m.viewStatuses(st); statuses != "" {
		lines = append(lines, statuses)
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (m DuelModel) viewResources(st *player.State) string {
	var parts []string
	for _, c := range grid.MatchableColors {
		parts = append(parts, tileStyles[c].Render(fmt.Sprintf("%s %d", tileGlyphs[c], st.MatchedColors[c])))
	}
	if black := st.MatchedColors[grid.Black]; black > 0 {
		parts = append(parts, tileStyles[grid.Black].Render(fmt.Sprintf("%s %d", tileGlyphs[grid.Black], black)))
	}
	return strings.Join(parts, "  ")
}

func (m DuelModel) viewStatuses(st *player.State) string {
	if len(st.StatusEffects) == 0 {
		return ""
	}
	names := make([]string, 0, len(st.StatusEffects))
	for _, se := range st.StatusEffects {
		names = append(names, fmt.Sprintf("%s(%d)", se.Name, se.TurnsRemaining))
	}
	sort.Strings(names)
	return dimStyle.Render(strings.Join(names, " "))
}

func (m DuelModel) viewSkills() string {
	st := m.battle.Player(player.Human)
	var lines []string
	for i, id := range st.EquippedSkills {
		skill, err := content.SkillByID(id)
		if err != nil {
			continue
		}
		line := fmt.Sprintf("%d %s (%d %s)", i+1, skill.Name, skill.Cost.Amount, skill.Cost.Color)
		switch {
		case st.ActiveSkillID == id:
			line = activeNameStyle.Render(line + " ← pick a target")
		case !st.CanAfford(skill.Cost.Color, skill.Cost.Amount):
			line = dimStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m DuelModel) viewShop() string {
	offers := m.battle.Offers()
	lines := []string{shopTitleStyle.Render("Blessing Shop")}
	for i, offer := range offers {
		line := fmt.Sprintf("%s (%d %s, ", offer.Name, offer.Cost.Amount, offer.Cost.Color)
		if offer.Duration > 0 {
			line += fmt.Sprintf("%d turns)", offer.Duration)
		} else {
			line += "permanent)"
		}
		line += " — " + offer.Description
		if i == m.shopIdx {
			line = cursorStyle.Render(line)
		}
		lines = append(lines, line)
	}
	if blessings := m.battle.Blessings(); len(blessings) > 0 {
		names := make([]string, 0, len(blessings))
		for _, bl := range blessings {
			if bl.Duration > 0 {
				names = append(names, fmt.Sprintf("%s(%d)", bl.Name, bl.TurnsRemaining))
			} else {
				names = append(names, bl.Name)
			}
		}
		lines = append(lines, dimStyle.Render("owned: "+strings.Join(names, ", ")))
	}
	lines = append(lines, dimStyle.Render("enter buy · f forge relic · esc close"))
	return strings.Join(lines, "\n")
}

func (m DuelModel) viewGameOver() string {
	var msg string
	if m.battle.Winner() == player.Human {
		cur, max := m.battle.BattleCounters()
		if m.battle.RunComplete() || cur >= max {
			msg = "Victory! The run is complete.\n\nr restart run · q quit"
		} else {
			msg = "Victory!\n\nn next battle · r restart run · q quit"
		}
	} else {
		msg = "Defeated.\n\nr restart run · q quit"
	}
	return gameOverStyle.Render(msg)
}

func (m DuelModel) viewToasts() string {
	if len(m.toasts.entries) == 0 {
		return ""
	}
	return toastStyle.Render(strings.Join(m.toasts.entries, "\n"))
}
