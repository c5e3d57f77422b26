package flappy

import (
	"github.com/vovakirdan/flapdojo/internal/config"
	"github.com/vovakirdan/flapdojo/internal/core"
)

// Rand is the random source used for obstacle and token placement.
// *rand.Rand satisfies it; tests inject scripted sources.
type Rand interface {
	Float64() float64
}

// Variant selects the optional rules of a game mode.
type Variant struct {
	Tiers  bool // Belt ladder with color upgrades
	Revive bool // Paid continue with a collision grace period
}

// Actor is the player-controlled falling entity.
type Actor struct {
	X, Y  float64 // Top-left corner; X never changes
	Vel   float64 // Vertical velocity, negative = up
	W, H  float64
	Phase int // Animation phase, cycles every tick
	Color core.Color
}

// Box returns the actor's bounding box.
func (a Actor) Box() core.Box {
	return core.NewBox(a.X, a.Y, a.W, a.H)
}

// World owns all mutable state of one play session.
// It is driven by exactly one goroutine; the renderer only reads it.
type World struct {
	cfg     config.FlappyConfig
	vp      core.Viewport
	rng     Rand
	variant Variant

	actor     Actor
	obstacles []Obstacle
	tokens    []Token
	tiers     *TierLadder // nil when the variant has no tiers

	score    int
	best     int
	coins    int
	bestTier int
	spawned  int // Obstacles spawned this session, decides token size
	frame    int

	over   bool
	paused bool
	grace  int // Remaining grace ticks after a revive

	events []core.Event
	save   func(core.Progress)
}

// NewWorld creates a session ready for its first tick.
func NewWorld(cfg config.FlappyConfig, vp core.Viewport, rng Rand, variant Variant) *World {
	w := &World{
		cfg:       cfg,
		vp:        vp,
		rng:       rng,
		variant:   variant,
		obstacles: make([]Obstacle, 0, 8),
		tokens:    make([]Token, 0, 8),
	}
	if variant.Tiers && len(cfg.Tiers) > 0 {
		w.tiers = NewTierLadder(cfg.Tiers)
	}
	w.resetActor()
	return w
}

// SetProgress seeds the persisted counters, typically at session start.
func (w *World) SetProgress(p core.Progress) {
	w.best = p.BestScore
	w.coins = p.TotalCoins
	w.bestTier = p.BestTier
}

// Progress returns the counters that outlive a session.
func (w *World) Progress() core.Progress {
	return core.Progress{
		BestScore:  w.best,
		TotalCoins: w.coins,
		BestTier:   w.bestTier,
	}
}

// OnSave registers the single persistence hook.
// It is invoked at game over, restart, revive and on Flush.
func (w *World) OnSave(fn func(core.Progress)) {
	w.save = fn
}

// Flush persists progress outside a state transition (e.g. on quit).
func (w *World) Flush() {
	w.saveProgress()
}

func (w *World) saveProgress() {
	if w.save != nil {
		w.save(w.Progress())
	}
}

// resetActor puts the actor back at its starting position.
func (w *World) resetActor() {
	w.actor = Actor{
		X:     w.cfg.Player.X,
		Y:     w.vp.H / 2,
		W:     w.cfg.Player.Width,
		H:     w.cfg.Player.Height,
		Color: core.ColorWhite,
	}
	if w.tiers != nil {
		w.actor.Color = w.tiers.Current().Color
	}
}

// Step advances the simulation by one tick.
// While the game is over only Restart and Revive are processed.
func (w *World) Step(in core.InputFrame) core.StepResult {
	if w.over {
		if in.Has(core.ActionRestart) {
			w.Restart()
		} else if in.Has(core.ActionRevive) {
			w.Revive()
		}
		return w.result()
	}

	if in.Has(core.ActionPause) {
		w.paused = !w.paused
	}
	if w.paused {
		return w.result()
	}

	if in.Has(core.ActionJump) {
		w.Jump()
	}

	// Integrate
	w.actor.Vel += w.cfg.Physics.Gravity
	w.actor.Y += w.actor.Vel

	// Boundary check runs regardless of grace
	if w.actor.Y+w.actor.H > w.vp.H || w.actor.Y < 0 {
		w.endGame()
	}

	if w.frame%w.cfg.Obstacles.SpawnEvery == 0 {
		w.spawn()
	}

	grace := w.decayGrace()
	w.advanceObstacles(grace)
	w.advanceTokens()

	w.actor.Phase = (w.actor.Phase + 1) % w.cfg.Player.PhasePeriod
	w.frame++

	// Finalize after the whole tick so late score increments still count
	if w.over {
		if w.score > w.best {
			w.best = w.score
		}
		w.saveProgress()
	}

	return w.result()
}

// result packages the state and drains the pending events.
func (w *World) result() core.StepResult {
	res := core.StepResult{State: w.State(), Events: w.events}
	w.events = nil
	return res
}

func (w *World) emit(e core.Event) {
	w.events = append(w.events, e)
}

// Jump sets the upward velocity. It is a no-op while the game is over.
func (w *World) Jump() bool {
	if w.over {
		return false
	}
	w.actor.Vel = w.cfg.Physics.JumpImpulse
	w.emit(core.Event{Kind: core.EventJump})
	return true
}

// endGame enters the terminal state once per session.
func (w *World) endGame() {
	if w.over {
		return
	}
	w.over = true
	w.emit(core.Event{Kind: core.EventHit})
}

// decayGrace reports whether this tick is a grace tick and consumes it.
func (w *World) decayGrace() bool {
	if w.grace <= 0 {
		return false
	}
	w.grace--
	return true
}

// Restart begins a new session. Best score and coins carry over.
func (w *World) Restart() {
	w.over = false
	w.paused = false
	w.score = 0
	w.spawned = 0
	w.frame = 0
	w.grace = 0
	w.obstacles = w.obstacles[:0]
	w.tokens = w.tokens[:0]
	if w.tiers != nil {
		w.tiers.Reset()
	}
	w.resetActor()
	w.saveProgress()
}

// CanRevive reports whether Revive would succeed now.
func (w *World) CanRevive() bool {
	return w.variant.Revive && w.over && w.coins >= w.cfg.Revive.Cost
}

// Revive spends coins to continue the current session.
// Obstacles, tokens and score are kept; obstacle collisions are ignored
// for the configured number of grace ticks.
func (w *World) Revive() bool {
	if !w.CanRevive() {
		return false
	}
	w.coins -= w.cfg.Revive.Cost
	w.over = false
	w.actor.Y = w.vp.H / 2
	w.actor.Vel = 0
	w.grace = w.cfg.Revive.GraceTicks
	w.saveProgress()
	return true
}

// State returns the current game state.
func (w *World) State() core.GameState {
	st := core.GameState{
		Score:     w.score,
		BestScore: w.best,
		Coins:     w.coins,
		GameOver:  w.over,
		Paused:    w.paused,
		CanRevive: w.CanRevive(),
	}
	if w.tiers != nil {
		st.Tier = w.tiers.Current().Name
	}
	return st
}

// Actor returns a copy of the actor.
func (w *World) Actor() Actor { return w.actor }

// Obstacles returns the live obstacles. Callers must not modify them.
func (w *World) Obstacles() []Obstacle { return w.obstacles }

// Tokens returns the live tokens. Callers must not modify them.
func (w *World) Tokens() []Token { return w.tokens }

// Viewport returns the world canvas.
func (w *World) Viewport() core.Viewport { return w.vp }

// Frame returns the number of simulated ticks since the last restart.
func (w *World) Frame() int { return w.frame }

// GraceTicks returns the remaining grace ticks.
func (w *World) GraceTicks() int { return w.grace }

// Tier returns the current tier, if the variant has tiers.
func (w *World) Tier() (Tier, bool) {
	if w.tiers == nil {
		return Tier{}, false
	}
	return w.tiers.Current(), true
}
