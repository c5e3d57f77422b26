package flappy

import (
	"math"

	"github.com/vovakirdan/flapdojo/internal/core"
)

// Obstacle is a vertical pair of segments with a passable gap.
// Width and gap height come from the shared config.
type Obstacle struct {
	X    float64 // Left edge, decreases every tick
	GapY float64 // Top of the gap
}

// TopBox returns the collision box for the top segment.
func (o Obstacle) TopBox(width float64) core.Box {
	return core.NewBox(o.X, 0, width, o.GapY)
}

// BottomBox returns the collision box for the bottom segment.
func (o Obstacle) BottomBox(width, gap, viewH float64) core.Box {
	bottomY := o.GapY + gap
	return core.NewBox(o.X, bottomY, width, math.Max(0, viewH-bottomY))
}

// spawn creates an obstacle at the right edge together with its token.
func (w *World) spawn() {
	oc := w.cfg.Obstacles
	span := math.Max(0, w.vp.H-oc.Gap-oc.TopMargin-oc.BottomMargin)
	gapY := oc.TopMargin + w.rng.Float64()*span

	w.obstacles = append(w.obstacles, Obstacle{X: w.vp.W, GapY: gapY})
	w.spawned++
	w.spawnToken(gapY)
}

// advanceObstacles scrolls obstacles, checks collisions unless grace is
// active, and removes the ones that left the canvas. Each removal scores.
func (w *World) advanceObstacles(grace bool) {
	width := w.cfg.Obstacles.Width
	gap := w.cfg.Obstacles.Gap
	player := w.actor.Box()

	kept := w.obstacles[:0]
	for _, o := range w.obstacles {
		o.X -= w.cfg.Physics.ScrollSpeed

		if !grace {
			if player.Intersects(o.TopBox(width)) || player.Intersects(o.BottomBox(width, gap, w.vp.H)) {
				w.endGame()
			}
		}

		if o.X+width <= 0 {
			w.score++
			w.evaluateTiers()
			continue
		}
		kept = append(kept, o)
	}
	w.obstacles = kept
}
