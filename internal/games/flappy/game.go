// Package flappy implements a Flappy Bird-style game with an optional belt
// ladder. The player keeps an actor airborne through gaps in scrolling
// obstacles and collects tokens that pay for revives.
package flappy

import (
	"math/rand"

	"github.com/vovakirdan/flapdojo/internal/config"
	"github.com/vovakirdan/flapdojo/internal/core"
	"github.com/vovakirdan/flapdojo/internal/registry"
)

// Game IDs of the registered variants.
const (
	ClassicID = "flappy"
	DojoID    = "flappy_dojo"
)

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown values use the
// config as loaded.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// Game adapts a World to the registry.Game interface.
type Game struct {
	id      string
	title   string
	variant Variant

	cfg      config.FlappyConfig
	runtime  core.RuntimeConfig
	world    *World
	store    core.ProgressStore
	progress core.Progress

	pendingJump bool // Press during play, applied by the next Step
}

// NewClassic creates the plain variant: no tiers, no revive.
func NewClassic() *Game {
	return &Game{id: ClassicID, title: "Flappy Classic"}
}

// NewDojo creates the belt variant with tiers and revives.
func NewDojo() *Game {
	return &Game{
		id:      DojoID,
		title:   "Flappy Dojo",
		variant: Variant{Tiers: true, Revive: true},
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// SetProgressStore attaches persistence and loads the stored progress.
// If the load fails the session plays from zero and never saves, so the
// stored row is not overwritten.
func (g *Game) SetProgressStore(s core.ProgressStore) {
	g.store = nil
	if s == nil {
		return
	}
	p, err := s.LoadProgress(g.id)
	if err != nil {
		return
	}
	g.store = s
	g.progress = p
	if g.world != nil {
		g.world.SetProgress(p)
	}
}

// Reset builds a fresh world for the given screen.
// Persisted counters carry over from the previous world.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	// Load game config
	cfg, err := config.LoadFlappy(configPath)
	if err != nil {
		cfg = config.DefaultFlappyConfig()
	}
	if difficultyPreset != "" {
		config.ApplyFlappyPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	if g.world != nil {
		g.progress = g.world.Progress()
	}

	vp := core.NewViewport(runtime.ScreenW, runtime.ScreenH, core.ViewportSpec{
		MaxW:   cfg.Viewport.MaxWidth,
		MaxH:   cfg.Viewport.MaxHeight,
		Margin: cfg.Viewport.Margin,
		CellW:  cfg.Viewport.CellWidth,
		CellH:  cfg.Viewport.CellHeight,
	})

	g.pendingJump = false
	g.world = NewWorld(cfg, vp, rand.New(rand.NewSource(runtime.Seed)), g.variant)
	g.world.SetProgress(g.progress)
	g.world.OnSave(g.persist)
}

// persist is the world's save hook.
func (g *Game) persist(p core.Progress) {
	g.progress = p
	if g.store == nil {
		return
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	g.store.SaveProgress(g.id, p)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.world == nil {
		return core.StepResult{}
	}
	if g.pendingJump {
		in.Set(core.ActionJump)
		g.pendingJump = false
	}
	return g.world.Step(in)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	return g.world.State()
}

// Flush persists progress, e.g. when the player quits mid-session.
func (g *Game) Flush() {
	if g.world != nil {
		g.world.Flush()
	}
}

// World exposes the simulation, mainly for tests and tools.
func (g *Game) World() *World {
	return g.world
}

// Click handles a pointer press on a screen cell.
// While the game is over the overlay buttons are hit-tested; otherwise any
// press queues a jump for the next Step, like a key press. Presses while
// paused are ignored. Returns true if the press was used.
func (g *Game) Click(col, row int) bool {
	if g.world == nil {
		return false
	}
	st := g.world.State()
	if st.Paused {
		return false
	}
	if !st.GameOver {
		g.pendingJump = true
		return true
	}
	x, y := g.world.Viewport().ToWorld(col, row)
	return g.ClickAt(x, y)
}

// ClickAt hit-tests the game-over overlay at a world point.
func (g *Game) ClickAt(x, y float64) bool {
	if g.world == nil || !g.world.State().GameOver {
		return false
	}
	tryAgain, revive := overlayButtons(g.world.Viewport())
	if tryAgain.Contains(x, y) {
		g.world.Restart()
		return true
	}
	if g.world.CanRevive() && revive.Contains(x, y) {
		return g.world.Revive()
	}
	return false
}

// overlayButtons returns the Try Again and Revive regions.
func overlayButtons(vp core.Viewport) (tryAgain, revive core.Box) {
	x := vp.W / 4
	w := vp.W / 2
	tryAgain = core.NewBox(x, vp.H/2+30, w, 40)
	revive = core.NewBox(x, vp.H/2+80, w, 40)
	return tryAgain, revive
}

// Register the game variants with the registry
func init() {
	registry.Register(ClassicID, func() registry.Game {
		return NewClassic()
	})
	registry.Register(DojoID, func() registry.Game {
		return NewDojo()
	})
}
