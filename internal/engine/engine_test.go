package engine

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vklychkov/gemduel/internal/effect"
	"github.com/vklychkov/gemduel/internal/event"
	"github.com/vklychkov/gemduel/internal/grid"
	"github.com/vklychkov/gemduel/internal/player"
)

func testBattle(t *testing.T, opts Options) *Battle {
	t.Helper()
	if opts.Seed == 0 {
		opts.Seed = 42
	}
	opts.Logger = log.New(io.Discard)
	b, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return b
}

// setBoard overwrites the board from row strings; see the color letters
// below. Used to pin down exact cascade scenarios.
func setBoard(t *testing.T, b *Battle, rows [grid.Size]string) {
	t.Helper()
	colors := map[byte]grid.Color{
		'R': grid.Red, 'B': grid.Blue, 'G': grid.Green,
		'Y': grid.Yellow, 'K': grid.Black, '.': grid.Empty,
	}
	for r, row := range rows {
		if len(row) != grid.Size {
			t.Fatalf("row %d has length %d", r, len(row))
		}
		for c := 0; c < grid.Size; c++ {
			color, ok := colors[row[c]]
			if !ok {
				t.Fatalf("unknown tile letter %q", row[c])
			}
			b.board.Set(r, c, grid.Tile{Color: color})
		}
	}
}

// checker is a full board with no matches and plenty of legal moves.
func checker() [grid.Size]string {
	var rows [grid.Size]string
	for r := 0; r < grid.Size; r++ {
		if r%2 == 0 {
			rows[r] = "RBRBRBRB"
		} else {
			rows[r] = "GYGYGYGY"
		}
	}
	return rows
}

// nearMatch is the checker board with row 0 arranged so that swapping
// (0,2) and (0,3) lines up three reds.
func nearMatch() [grid.Size]string {
	rows := checker()
	rows[0] = "RRBRGYGY"
	return rows
}

func TestSwapWithoutMatchReverts(t *testing.T) {
	b := testBattle(t, Options{AutoAck: true})
	setBoard(t, b, checker())
	before := b.board.Snapshot()

	if b.SwapTiles(0, 0, 0, 1) {
		t.Fatal("matchless swap should be rejected")
	}
	if b.board.Snapshot() != before {
		t.Error("board mutated by a rejected swap")
	}
	if b.Phase() != PhaseIdle || b.Current() != player.Human {
		t.Errorf("phase=%v current=%v after rejected swap", b.Phase(), b.Current())
	}
}

func TestSwapOfFrozenTileRejected(t *testing.T) {
	b := testBattle(t, Options{AutoAck: true})
	setBoard(t, b, nearMatch())
	b.board.UpdateTile(0, 2, grid.TilePatch{IsFrozen: grid.BoolPtr(true)})

	if b.SwapTiles(0, 2, 0, 3) {
		t.Fatal("swap of a frozen tile should be rejected")
	}
}

func TestSwapResolvesGainsResourcesAndHandsOff(t *testing.T) {
	b := testBattle(t, Options{AutoAck: true})
	setBoard(t, b, nearMatch())

	if !b.SwapTiles(0, 2, 0, 3) {
		t.Fatal("matching swap rejected")
	}
	if got := b.Player(player.Human).MatchedColors[grid.Red]; got < 3 {
		t.Errorf("human red resources = %d, want >= 3", got)
	}
	if b.Phase() != PhaseIdle {
		t.Errorf("phase = %v after auto-acked resolution, want Idle", b.Phase())
	}
	if b.Current() != player.AI {
		t.Errorf("current = %v after human swap, want ai", b.Current())
	}
	if b.Turn() != 2 {
		t.Errorf("turn = %d, want 2", b.Turn())
	}
}

func TestAnimationBarrierStepsResolution(t *testing.T) {
	b := testBattle(t, Options{})
	setBoard(t, b, nearMatch())

	if !b.SwapTiles(0, 2, 0, 3) {
		t.Fatal("matching swap rejected")
	}
	if b.Phase() != PhaseAwaitingAnimations {
		t.Fatalf("phase = %v, want AwaitingAnimations", b.Phase())
	}
	if got := len(b.PendingAnimations()); got != 3 {
		t.Fatalf("pending explode animations = %d, want 3", got)
	}

	if b.CompleteAnimation(999999) {
		t.Error("unknown animation ID acknowledged")
	}

	// Drain stage by stage until resolution leaves the barrier.
	for steps := 0; b.Phase() == PhaseAwaitingAnimations; steps++ {
		if steps > 512 {
			t.Fatal("animation stepping did not terminate")
		}
		pending := b.PendingAnimations()
		if len(pending) == 0 {
			t.Fatal("awaiting animations with nothing pending")
		}
		id := pending[0].ID
		if !b.CompleteAnimation(id) {
			t.Fatalf("acknowledging %d failed", id)
		}
		if b.CompleteAnimation(id) {
			t.Errorf("animation %d acknowledged twice", id)
		}
	}

	if b.Phase() != PhaseIdle || b.Current() != player.AI {
		t.Errorf("phase=%v current=%v after drain, want Idle/ai", b.Phase(), b.Current())
	}
}

func TestSelectTileSwapFlow(t *testing.T) {
	b := testBattle(t, Options{AutoAck: true})
	setBoard(t, b, nearMatch())

	if !b.SelectTile(0, 2) {
		t.Fatal("first selection rejected")
	}
	if sel := b.Selected(); sel == nil || *sel != (grid.Coord{Row: 0, Col: 2}) {
		t.Fatalf("selected = %v, want (0,2)", sel)
	}

	// Same cell deselects.
	b.SelectTile(0, 2)
	if b.Selected() != nil {
		t.Fatal("reselecting the same cell should deselect")
	}

	// Adjacent second selection performs the swap.
	b.SelectTile(0, 2)
	if !b.SelectTile(0, 3) {
		t.Fatal("adjacent selection should swap")
	}
	if b.Selected() != nil {
		t.Error("selection should clear after a swap")
	}
	if b.Current() != player.AI {
		t.Errorf("current = %v after resolved swap, want ai", b.Current())
	}
}

func TestUntargetedSkillCastsImmediately(t *testing.T) {
	b := testBattle(t, Options{AutoAck: true, HumanClass: "pyromancer"})
	setBoard(t, b, checker())
	human := b.Player(player.Human)
	human.MatchedColors[grid.Red] = 6
	b.Player(player.AI).Health = 50

	if !b.ToggleSkill(player.Human, "fireball") {
		t.Fatal("fireball cast rejected")
	}
	if got := b.Player(player.AI).Health; got != 40 {
		t.Errorf("ai health = %d, want 40", got)
	}
	if got := human.MatchedColors[grid.Red]; got != 0 {
		t.Errorf("red after cast = %d, want 0", got)
	}
	if human.SkillCasts["fireball"] != 1 {
		t.Error("cast not recorded")
	}
	// Fireball does not end the turn.
	if b.Current() != player.Human {
		t.Errorf("current = %v, want human", b.Current())
	}
}

func TestUnaffordableSkillRejected(t *testing.T) {
	b := testBattle(t, Options{AutoAck: true, HumanClass: "pyromancer"})
	setBoard(t, b, checker())
	b.Player(player.Human).MatchedColors[grid.Red] = 5 // fireball costs 6

	if b.ToggleSkill(player.Human, "fireball") {
		t.Fatal("unaffordable cast accepted")
	}
	if got := b.Player(player.Human).MatchedColors[grid.Red]; got != 5 {
		t.Errorf("red = %d after rejected cast, want 5", got)
	}
}

func TestTargetedSkillArmsAndCasts(t *testing.T) {
	b := testBattle(t, Options{AutoAck: true}) // warden
	setBoard(t, b, checker())
	human := b.Player(player.Human)
	human.MatchedColors[grid.Blue] = 3

	if !b.ToggleSkill(player.Human, "frost_grip") {
		t.Fatal("arming frost_grip rejected")
	}
	if human.ActiveSkillID != "frost_grip" {
		t.Fatalf("active skill = %q, want frost_grip", human.ActiveSkillID)
	}

	// Toggling again cancels with no cost.
	b.ToggleSkill(player.Human, "frost_grip")
	if human.ActiveSkillID != "" {
		t.Fatal("toggling the armed skill should cancel targeting")
	}

	b.ToggleSkill(player.Human, "frost_grip")
	if !b.SelectTile(4, 4) {
		t.Fatal("targeted cast rejected")
	}
	if !b.board.At(4, 4).IsFrozen {
		t.Error("target tile not frozen")
	}
	if human.MatchedColors[grid.Blue] != 0 {
		t.Error("cost not spent on targeted cast")
	}
	if human.ActiveSkillID != "" {
		t.Error("active skill not cleared after cast")
	}
}

func TestTargetColorRestriction(t *testing.T) {
	b := testBattle(t, Options{AutoAck: true, HumanClass: "shadowblade"})
	setBoard(t, b, checker())
	human := b.Player(player.Human)
	human.MatchedColors[grid.Yellow] = 2
	// The corner's row and column neighbors differ, so no recolor of it
	// can open a match.
	b.board.Set(7, 7, grid.Tile{Color: grid.Black})

	b.ToggleSkill(player.Human, "reap")
	if b.UseSkill(0, 0) {
		t.Fatal("reap accepted a non-black target")
	}
	if human.MatchedColors[grid.Yellow] != 2 {
		t.Error("cost spent on a rejected target")
	}

	aiBefore := b.Player(player.AI).Health
	if !b.UseSkill(7, 7) {
		t.Fatal("reap rejected a black target")
	}
	if got := aiBefore - b.Player(player.AI).Health; got != 8 {
		t.Errorf("reap damage = %d, want 8", got)
	}
	if b.board.At(7, 7).Color == grid.Black {
		t.Error("reaped tile still black")
	}
}

func TestEndsTurnSkillHandsOff(t *testing.T) {
	b := testBattle(t, Options{AutoAck: true, HumanClass: "shadowblade"})
	setBoard(t, b, checker())
	human := b.Player(player.Human)
	human.MatchedColors[grid.Yellow] = 8

	if !b.ToggleSkill(player.Human, "shadowstep") {
		t.Fatal("shadowstep cast rejected")
	}
	// Shadowstep ends the turn but grants an extra one, so the human
	// acts again.
	if b.Current() != player.Human {
		t.Errorf("current = %v, want human via extra turn", b.Current())
	}
	if b.Turn() != 2 {
		t.Errorf("turn = %d, want 2", b.Turn())
	}
}

func TestExtraTurnConsumedOnce(t *testing.T) {
	b := testBattle(t, Options{AutoAck: true})
	setBoard(t, b, checker())
	b.Player(player.Human).AddStatusEffect(player.StatusEffect{
		Name:           "momentum",
		TurnsRemaining: 3,
		ExtraTurn:      true,
	})

	b.finishTurn()
	if b.Current() != player.Human {
		t.Fatal("extra turn not honored")
	}
	b.finishTurn()
	if b.Current() != player.AI {
		t.Fatal("extra turn applied twice")
	}
}

func TestGameOverAndBattleProgression(t *testing.T) {
	b := testBattle(t, Options{AutoAck: true, HumanClass: "pyromancer"})
	setBoard(t, b, checker())
	b.Player(player.Human).MatchedColors[grid.Red] = 6
	b.Player(player.AI).Health = 5

	var over *event.GameOverPayload
	b.Bus().On(event.TypeGameOver, func(ev event.Event) {
		p := ev.Payload.(event.GameOverPayload)
		over = &p
	})

	if !b.ToggleSkill(player.Human, "fireball") {
		t.Fatal("fireball cast rejected")
	}
	if b.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v, want GameOver", b.Phase())
	}
	if b.Winner() != player.Human {
		t.Errorf("winner = %v, want human", b.Winner())
	}
	if over == nil || over.Winner != player.Human {
		t.Error("game over event not observed")
	}

	if !b.NextBattle() {
		t.Fatal("NextBattle rejected after a human win")
	}
	cur, _ := b.BattleCounters()
	if cur != 2 {
		t.Errorf("battle counter = %d, want 2", cur)
	}
	if b.Phase() != PhaseIdle || b.Current() != player.Human || b.Turn() != 1 {
		t.Errorf("phase=%v current=%v turn=%d after NextBattle", b.Phase(), b.Current(), b.Turn())
	}
	if b.Player(player.AI).Health != b.Player(player.AI).MaxHealth {
		t.Error("ai not restored for the next battle")
	}
}

func TestPurchaseBlessingSpendOrReject(t *testing.T) {
	b := testBattle(t, Options{AutoAck: true})
	setBoard(t, b, checker())
	offers := b.Offers()
	if len(offers) == 0 {
		t.Fatal("no shop offers")
	}
	offer := offers[0]
	human := b.Player(player.Human)
	human.MatchedColors = map[grid.Color]int{}

	if b.PurchaseBlessing(offer.ID) {
		t.Fatal("purchase accepted with an empty pool")
	}
	if len(b.Blessings()) != 0 {
		t.Error("rejected purchase still recorded")
	}

	human.MatchedColors[offer.Cost.Color] = offer.Cost.Amount
	if !b.PurchaseBlessing(offer.ID) {
		t.Fatal("affordable purchase rejected")
	}
	if human.MatchedColors[offer.Cost.Color] != 0 {
		t.Error("cost not deducted")
	}
	collected := b.Blessings()
	if len(collected) != 1 || collected[0].ID != offer.ID {
		t.Fatalf("collected = %v, want exactly %s", collected, offer.ID)
	}
	for _, o := range b.Offers() {
		if o.ID == offer.ID {
			t.Error("purchased blessing still on offer")
		}
	}
}

func TestEquipUnequipRebindsEffects(t *testing.T) {
	b := testBattle(t, Options{AutoAck: true}) // warden passive: +1 defense
	human := b.Player(player.Human)
	base := human.Defense

	human.AddToInventory(player.Item{ID: "aegis_plate", Name: "Aegis Plate", Slot: player.SlotArmor})
	if !b.EquipItem(player.Human, "aegis_plate") {
		t.Fatal("equip rejected")
	}
	if human.Defense != base+3 {
		t.Errorf("defense = %d after equip, want %d", human.Defense, base+3)
	}

	if !b.UnequipItem(player.Human, player.SlotArmor) {
		t.Fatal("unequip rejected")
	}
	if human.Defense != base {
		t.Errorf("defense = %d after unequip, want %d", human.Defense, base)
	}
	if len(human.Inventory) != 1 {
		t.Errorf("inventory size = %d after unequip, want 1", len(human.Inventory))
	}
}

func TestConvertBlessingsForgesRelic(t *testing.T) {
	b := testBattle(t, Options{AutoAck: true})
	human := b.Player(player.Human)
	ctx := b.contextFor(player.Human)

	b.ledger.Add(effect.Blessing{ID: "a"}, player.Human, ctx)
	b.ledger.Add(effect.Blessing{ID: "b"}, player.Human, ctx)

	if !b.ConvertBlessingsToItem() {
		t.Fatal("conversion rejected with blessings collected")
	}
	if len(b.Blessings()) != 0 {
		t.Error("blessings survived conversion")
	}
	if len(human.Inventory) != 1 || human.Inventory[0].ID != "blessed_relic_2" {
		t.Fatalf("inventory = %v, want the forged relic", human.Inventory)
	}

	base := human.Defense
	if !b.EquipItem(player.Human, "blessed_relic_2") {
		t.Fatal("equipping the relic rejected")
	}
	if human.Defense != base+2 {
		t.Errorf("defense = %d after relic, want %d", human.Defense, base+2)
	}

	if b.ConvertBlessingsToItem() {
		t.Error("conversion accepted with nothing to consume")
	}
}

func TestAITakesItsTurn(t *testing.T) {
	b := testBattle(t, Options{AutoAck: true})
	setBoard(t, b, nearMatch())

	if b.AITakeTurn() {
		t.Fatal("AI acted on the human's turn")
	}
	if !b.SwapTiles(0, 2, 0, 3) {
		t.Fatal("matching swap rejected")
	}
	if b.Current() != player.AI {
		t.Fatalf("current = %v, want ai", b.Current())
	}

	if !b.AITakeTurn() {
		t.Fatal("AI found no action")
	}
	if b.Phase() != PhaseIdle {
		t.Errorf("phase = %v after AI turn, want Idle", b.Phase())
	}
}

func TestResetGameRestoresOpeningState(t *testing.T) {
	b := testBattle(t, Options{AutoAck: true, HumanClass: "pyromancer"})
	setBoard(t, b, nearMatch())
	b.SwapTiles(0, 2, 0, 3)
	b.Player(player.Human).Health = 1

	b.ResetGame()

	human := b.Player(player.Human)
	if human.Health != human.MaxHealth {
		t.Error("health not restored")
	}
	// The pyromancer passive reapplies on reset.
	if human.MatchedColors[grid.Red] != 2 {
		t.Errorf("red = %d after reset, want the passive grant of 2", human.MatchedColors[grid.Red])
	}
	if b.Turn() != 1 || b.Current() != player.Human || b.Phase() != PhaseIdle {
		t.Errorf("turn=%d current=%v phase=%v after reset", b.Turn(), b.Current(), b.Phase())
	}
	cur, _ := b.BattleCounters()
	if cur != 1 {
		t.Errorf("battle counter = %d after reset, want 1", cur)
	}
}

func TestIgnitedTileDealsDamageWhenCleared(t *testing.T) {
	b := testBattle(t, Options{AutoAck: true})
	setBoard(t, b, nearMatch())
	b.board.UpdateTile(0, 0, grid.TilePatch{IsIgnited: grid.BoolPtr(true)})
	aiBefore := b.Player(player.AI).Health

	if !b.SwapTiles(0, 2, 0, 3) {
		t.Fatal("matching swap rejected")
	}
	lost := aiBefore - b.Player(player.AI).Health
	if lost < b.balance.Combat.IgniteDamage {
		t.Errorf("ai lost %d health, want at least the ignite damage of %d",
			lost, b.balance.Combat.IgniteDamage)
	}
}
