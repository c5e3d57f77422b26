package flappy

import (
	"math"

	"github.com/vovakirdan/flapdojo/internal/core"
)

// Token is a collectible bonus placed inside an obstacle gap.
type Token struct {
	X, Y  float64
	Size  float64
	Value int
	Large bool // High-value variant
}

// Box returns the token's bounding box.
func (t Token) Box() core.Box {
	return core.NewBox(t.X, t.Y, t.Size, t.Size)
}

// spawnToken places a token in the gap starting at gapY.
// Every LargeEvery-th obstacle carries a large token.
func (w *World) spawnToken(gapY float64) {
	tc := w.cfg.Tokens
	gap := w.cfg.Obstacles.Gap

	large := w.spawned%tc.LargeEvery == 0
	size, value := tc.SmallSize, tc.SmallValue
	if large {
		size, value = tc.LargeSize, tc.LargeValue
	}

	// The token's top edge lies in the inset band; a large token may
	// overhang the bottom of the gap.
	y := gapY + tc.GapInset + w.rng.Float64()*math.Max(0, gap-2*tc.GapInset)

	w.tokens = append(w.tokens, Token{
		X:     w.vp.W + tc.OffsetX,
		Y:     y,
		Size:  size,
		Value: value,
		Large: large,
	})
}

// advanceTokens scrolls tokens, collects the ones touching the actor and
// drops the ones that left the canvas.
func (w *World) advanceTokens() {
	player := w.actor.Box()

	kept := w.tokens[:0]
	for _, t := range w.tokens {
		t.X -= w.cfg.Physics.ScrollSpeed

		if player.Intersects(t.Box()) {
			w.coins += t.Value
			w.emit(core.Event{Kind: core.EventCoin, Value: t.Value})
			continue
		}
		if t.X+t.Size <= 0 {
			continue
		}
		kept = append(kept, t)
	}
	w.tokens = kept
}
