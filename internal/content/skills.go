package content

import (
	"github.com/vklychkov/gemduel/internal/effect"
	"github.com/vklychkov/gemduel/internal/grid"
)

// Skill is one castable ability. Casting consumes the cost, fires the
// skill-cast event and applies the effect list; targeted skills
// additionally act on the chosen cell. A cast does not end the turn unless
// EndsTurn is set.
type Skill struct {
	ID          string
	Name        string
	Description string
	Cost        effect.Cost

	// NeedsTarget marks skills that enter targeting mode when selected.
	NeedsTarget bool
	// TargetColor, when set, restricts clickable tiles while targeting.
	TargetColor *grid.Color
	// EndsTurn passes the turn after casting.
	EndsTurn bool

	// Effects are applied in order on cast.
	Effects []effect.Effect
	// OnTarget runs the targeted part of the cast. Returns false if the
	// target is unusable; the cast is then rejected before any cost is
	// spent.
	OnTarget func(ctx effect.Context, target grid.Coord) bool
}

// Targeted skill helpers shared by the class definitions.

func freezeTarget(ctx effect.Context, target grid.Coord) bool {
	return ctx.Grid().UpdateTile(target.Row, target.Col, grid.TilePatch{
		IsFrozen: grid.BoolPtr(true),
	})
}

func igniteTarget(ctx effect.Context, target grid.Coord) bool {
	t := ctx.Grid().At(target.Row, target.Col)
	if t.Color == grid.Empty {
		return false
	}
	return ctx.Grid().UpdateTile(target.Row, target.Col, grid.TilePatch{
		IsIgnited: grid.BoolPtr(true),
	})
}

func brandTarget(ctx effect.Context, target grid.Coord) bool {
	t := ctx.Grid().At(target.Row, target.Col)
	if t.Color == grid.Empty || t.Color == grid.Black {
		return false
	}
	return ctx.Grid().UpdateTile(target.Row, target.Col, grid.TilePatch{
		Color: grid.ColorPtr(grid.Black),
	})
}

// reapTarget consumes a black tile: damage now, and the tile returns to
// the normal color pool so the board stays matchable.
func reapTarget(ctx effect.Context, target grid.Coord) bool {
	t := ctx.Grid().At(target.Row, target.Col)
	if t.Color != grid.Black {
		return false
	}
	fresh := grid.MatchableColors[ctx.RNG().Intn(len(grid.MatchableColors))]
	ctx.Grid().UpdateTile(target.Row, target.Col, grid.TilePatch{
		Color: grid.ColorPtr(fresh),
	})
	ctx.DealDamage(ctx.Owner().Side.Opponent(), 8)
	return true
}
