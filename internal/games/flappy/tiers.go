package flappy

import (
	"sort"

	"github.com/vovakirdan/flapdojo/internal/config"
	"github.com/vovakirdan/flapdojo/internal/core"
)

// Tier is one rung of the belt ladder.
type Tier struct {
	Name      string
	Threshold int
	Color     core.Color
}

// TierLadder tracks the tier awarded in the current session.
// The awarded tier only moves up until Reset.
type TierLadder struct {
	tiers   []Tier // Ascending by threshold
	awarded int
}

// NewTierLadder builds a ladder from config. Unknown colors fall back to white.
func NewTierLadder(cfg []config.TierConfig) *TierLadder {
	tiers := make([]Tier, 0, len(cfg))
	for _, tc := range cfg {
		c, ok := core.ParseColor(tc.Color)
		if !ok {
			c = core.ColorWhite
		}
		tiers = append(tiers, Tier{Name: tc.Name, Threshold: tc.Score, Color: c})
	}
	sort.SliceStable(tiers, func(i, j int) bool {
		return tiers[i].Threshold < tiers[j].Threshold
	})
	return &TierLadder{tiers: tiers}
}

// Current returns the awarded tier.
func (l *TierLadder) Current() Tier {
	if len(l.tiers) == 0 {
		return Tier{Color: core.ColorWhite}
	}
	return l.tiers[l.awarded]
}

// Index returns the position of the awarded tier in the ladder.
func (l *TierLadder) Index() int {
	return l.awarded
}

// Len returns the number of tiers.
func (l *TierLadder) Len() int {
	return len(l.tiers)
}

// Evaluate scans from the highest threshold down and awards the first tier
// reached by score that is above the current one.
func (l *TierLadder) Evaluate(score int) (Tier, bool) {
	cur := l.Current().Threshold
	for i := len(l.tiers) - 1; i > l.awarded; i-- {
		t := l.tiers[i]
		if t.Threshold <= score && t.Threshold > cur {
			l.awarded = i
			return t, true
		}
	}
	return Tier{}, false
}

// Reset returns the ladder to its lowest tier.
func (l *TierLadder) Reset() {
	l.awarded = 0
}

// evaluateTiers runs after every score increment.
func (w *World) evaluateTiers() {
	if w.tiers == nil {
		return
	}
	t, ok := w.tiers.Evaluate(w.score)
	if !ok {
		return
	}
	w.actor.Color = t.Color
	if idx := w.tiers.Index(); idx > w.bestTier {
		w.bestTier = idx
	}
	w.emit(core.Event{
		Kind:  core.EventTierUp,
		Value: t.Threshold,
		Label: t.Name,
		Color: t.Color,
	})
}
