package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flapdojo/internal/core"
)

// Celebration timing: the banner fades over opacity 1 -> 0.
const (
	celebrateInterval = 50 * time.Millisecond
	celebrateFade     = 0.02
)

// celebrateTickMsg advances the celebration started as generation gen.
type celebrateTickMsg struct {
	gen int
}

// celebration is a time-boxed banner shown after a tier upgrade.
// It never blocks the simulation; a newer start or cancel invalidates
// the pending ticks of older ones.
type celebration struct {
	gen     int
	active  bool
	label   string
	color   core.Color
	opacity float64
}

func celebrateTick(gen int) tea.Cmd {
	return tea.Tick(celebrateInterval, func(time.Time) tea.Msg {
		return celebrateTickMsg{gen: gen}
	})
}

// start shows a new banner, replacing any running one.
func (c *celebration) start(label string, color core.Color) tea.Cmd {
	c.gen++
	c.active = true
	c.label = label
	c.color = color
	c.opacity = 1
	return celebrateTick(c.gen)
}

// cancel hides the banner and drops its pending ticks.
func (c *celebration) cancel() {
	c.gen++
	c.active = false
	c.opacity = 0
}

// update fades the banner. Ticks of stale generations are ignored.
func (c *celebration) update(msg celebrateTickMsg) tea.Cmd {
	if msg.gen != c.gen || !c.active {
		return nil
	}
	c.opacity -= celebrateFade
	if c.opacity <= 1e-9 {
		c.active = false
		c.opacity = 0
		return nil
	}
	return celebrateTick(c.gen)
}

// draw paints the banner over the top of the screen.
// Terminals have no alpha, so the last third of the fade is drawn dim.
func (c celebration) draw(dst *core.Screen) {
	if !c.active {
		return
	}

	text := fmt.Sprintf(" ★ %s! ★ ", c.label)
	color := c.color
	if color == core.ColorBlack {
		color = core.ColorLightGray
	}
	if c.opacity < 0.33 {
		color = core.ColorDarkGray
	}

	y := core.Min(3, dst.Height()-1)
	dst.DrawTextCentered(y, text, color)
}
