package flappy

import (
	"math"
	"testing"

	"github.com/vovakirdan/flapdojo/internal/config"
	"github.com/vovakirdan/flapdojo/internal/core"
)

// seqRand returns a fixed cycle of values.
type seqRand struct {
	vals []float64
	i    int
}

func (r *seqRand) Float64() float64 {
	if len(r.vals) == 0 {
		return 0
	}
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

var testViewport = core.Viewport{W: 400, H: 500, CellW: 8, CellH: 16}

func newTestWorld(variant Variant) *World {
	return NewWorld(config.DefaultFlappyConfig(), testViewport, &seqRand{vals: []float64{0.5}}, variant)
}

var dojo = Variant{Tiers: true, Revive: true}

// hold keeps the actor at mid height for the next tick.
// With rand 0.5 the default gap spans [185, 305], so the actor stays inside it.
func hold(w *World) {
	w.actor.Y = 250
	w.actor.Vel = -w.cfg.Physics.Gravity
}

// crash forces a boundary game over on the next tick.
func crash(w *World) core.StepResult {
	w.actor.Y = -50
	w.actor.Vel = 0
	return w.Step(core.NewInputFrame())
}

func countEvents(res core.StepResult, kind core.EventKind) int {
	n := 0
	for _, e := range res.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestJumpAndFirstTick(t *testing.T) {
	w := newTestWorld(Variant{})
	if w.actor.Y != 250 || w.actor.Vel != 0 {
		t.Fatalf("start: Y=%v Vel=%v, want 250, 0", w.actor.Y, w.actor.Vel)
	}

	w.Step(core.NewInputFrame())
	if w.actor.Vel != 0.5 {
		t.Errorf("Vel after one tick = %v, want 0.5", w.actor.Vel)
	}
	if w.actor.Y != 250.5 {
		t.Errorf("Y after one tick = %v, want 250.5", w.actor.Y)
	}

	if !w.Jump() {
		t.Fatal("Jump() returned false during play")
	}
	if w.actor.Vel != -8 {
		t.Errorf("Vel after jump = %v, want -8", w.actor.Vel)
	}

	res := w.Step(core.NewInputFrame())
	if countEvents(res, core.EventJump) != 1 {
		t.Errorf("expected queued jump event in next result, got %v", res.Events)
	}
}

func TestEulerIntegration(t *testing.T) {
	const n = 10
	w := newTestWorld(Variant{})
	for i := 0; i < n; i++ {
		w.Step(core.NewInputFrame())
	}

	if w.actor.Vel != n*0.5 {
		t.Errorf("Vel = %v, want %v", w.actor.Vel, n*0.5)
	}
	wantY := 250 + 0.5*float64(n*(n+1))/2
	if w.actor.Y != wantY {
		t.Errorf("Y = %v, want %v", w.actor.Y, wantY)
	}
}

func TestJumpInputResetsVelocity(t *testing.T) {
	w := newTestWorld(Variant{})
	for i := 0; i < 5; i++ {
		w.Step(core.NewInputFrame())
	}
	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	w.Step(in)

	// Jump replaces velocity, then gravity is applied in the same tick
	if w.actor.Vel != -7.5 {
		t.Errorf("Vel = %v, want -7.5", w.actor.Vel)
	}
}

func TestBoundaryEndsGameWithoutClamping(t *testing.T) {
	tests := []struct {
		name string
		y    float64
	}{
		{"top", -1},
		{"bottom", 480},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(Variant{})
			w.actor.Y = tt.y
			res := w.Step(core.NewInputFrame())

			if !res.State.GameOver {
				t.Fatal("expected game over")
			}
			if want := tt.y + 0.5; w.actor.Y != want {
				t.Errorf("Y = %v, want unclamped %v", w.actor.Y, want)
			}
			if countEvents(res, core.EventHit) != 1 {
				t.Errorf("hit events = %d, want 1", countEvents(res, core.EventHit))
			}
		})
	}
}

func TestGameOverFreezesState(t *testing.T) {
	w := newTestWorld(dojo)
	for i := 0; i < 20; i++ {
		w.Step(core.NewInputFrame())
	}
	crash(w)

	actor := w.Actor()
	frame := w.Frame()
	obstacles := append([]Obstacle(nil), w.Obstacles()...)
	tokens := append([]Token(nil), w.Tokens()...)
	state := w.State()

	if w.Jump() {
		t.Error("Jump() should be a no-op while game over")
	}

	for i := 0; i < 30; i++ {
		in := core.NewInputFrame()
		in.Set(core.ActionJump)
		in.Set(core.ActionPause)
		res := w.Step(in)
		if len(res.Events) != 0 {
			t.Fatalf("tick %d produced events %v", i, res.Events)
		}
	}

	if w.Actor() != actor {
		t.Errorf("actor changed: %+v -> %+v", actor, w.Actor())
	}
	if w.Frame() != frame {
		t.Errorf("frame changed: %d -> %d", frame, w.Frame())
	}
	if w.State() != state {
		t.Errorf("state changed: %+v -> %+v", state, w.State())
	}
	if len(w.Obstacles()) != len(obstacles) || len(w.Tokens()) != len(tokens) {
		t.Fatal("entity lists changed")
	}
	for i := range obstacles {
		if w.Obstacles()[i] != obstacles[i] {
			t.Errorf("obstacle %d changed", i)
		}
	}
}

func TestObstacleScrollsAndExitsAtComputedTick(t *testing.T) {
	w := newTestWorld(Variant{})
	width := w.cfg.Obstacles.Width
	speed := w.cfg.Physics.ScrollSpeed
	wantTicks := int(math.Ceil((testViewport.W + width) / speed))

	hold(w)
	w.Step(core.NewInputFrame())
	if len(w.obstacles) != 1 {
		t.Fatalf("obstacles after first tick = %d, want 1", len(w.obstacles))
	}
	prevX := w.obstacles[0].X
	if prevX != testViewport.W-speed {
		t.Fatalf("first obstacle X = %v, want %v", prevX, testViewport.W-speed)
	}

	for tick := 2; tick <= wantTicks; tick++ {
		hold(w)
		res := w.Step(core.NewInputFrame())
		if res.State.GameOver {
			t.Fatalf("unexpected game over at tick %d", tick)
		}
		for _, o := range w.obstacles {
			if o.X+width <= 0 {
				t.Fatalf("tick %d: obstacle left at X=%v", tick, o.X)
			}
		}

		if tick < wantTicks {
			if got := w.obstacles[0].X; got != prevX-speed {
				t.Fatalf("tick %d: X = %v, want %v", tick, got, prevX-speed)
			}
			prevX = w.obstacles[0].X
			if res.State.Score != 0 {
				t.Fatalf("tick %d: score = %d before removal", tick, res.State.Score)
			}
		}
	}

	if w.score != 1 {
		t.Errorf("score after %d ticks = %d, want 1", wantTicks, w.score)
	}
}

func TestCollisionDoesNotScore(t *testing.T) {
	w := newTestWorld(Variant{})
	w.frame = 1 // Skip the spawn
	w.obstacles = append(w.obstacles, Obstacle{X: 60, GapY: 400})

	res := w.Step(core.NewInputFrame())
	if !res.State.GameOver {
		t.Fatal("expected collision game over")
	}
	if res.State.Score != 0 {
		t.Errorf("score = %d, want 0", res.State.Score)
	}
}

func TestScoreCountsRemovalInCrashTick(t *testing.T) {
	w := newTestWorld(Variant{})
	w.frame = 1
	w.obstacles = append(w.obstacles, Obstacle{X: -48, GapY: 100})
	w.actor.Y = -50

	res := w.Step(core.NewInputFrame())
	if !res.State.GameOver {
		t.Fatal("expected game over")
	}
	if res.State.Score != 1 || res.State.BestScore != 1 {
		t.Errorf("score/best = %d/%d, want 1/1", res.State.Score, res.State.BestScore)
	}
}

func TestBestScoreNeverDecreases(t *testing.T) {
	w := newTestWorld(Variant{})
	scores := []int{5, 2, 7, 0, 3}
	want := []int{5, 5, 7, 7, 7}

	for i, s := range scores {
		w.score = s
		res := crash(w)
		if res.State.BestScore != want[i] {
			t.Errorf("session %d: best = %d, want %d", i, res.State.BestScore, want[i])
		}
		w.Restart()
		if w.State().BestScore != want[i] {
			t.Errorf("session %d: best after restart = %d, want %d", i, w.State().BestScore, want[i])
		}
	}
}

func TestTokenCollection(t *testing.T) {
	w := newTestWorld(Variant{})
	w.frame = 1
	w.coins = 3
	w.tokens = append(w.tokens, Token{X: 60, Y: 255, Size: 10, Value: 1})

	hold(w)
	res := w.Step(core.NewInputFrame())

	if w.coins != 4 {
		t.Errorf("coins = %d, want 4", w.coins)
	}
	if len(w.tokens) != 0 {
		t.Errorf("token not removed, %d left", len(w.tokens))
	}
	if countEvents(res, core.EventCoin) != 1 {
		t.Errorf("coin events = %d, want 1", countEvents(res, core.EventCoin))
	}
}

func TestTokensLeavingCanvasAreDropped(t *testing.T) {
	w := newTestWorld(Variant{})
	w.frame = 1
	w.tokens = append(w.tokens, Token{X: -8, Y: 10, Size: 10, Value: 1})

	hold(w)
	w.Step(core.NewInputFrame())

	if len(w.tokens) != 0 {
		t.Errorf("tokens = %d, want 0", len(w.tokens))
	}
	if w.coins != 0 {
		t.Errorf("coins = %d, want 0", w.coins)
	}
}

func TestSpawnPlacement(t *testing.T) {
	w := newTestWorld(Variant{})
	for i := 0; i < 20; i++ {
		w.spawn()
	}

	gap := w.cfg.Obstacles.Gap
	for i, tok := range w.tokens {
		o := w.obstacles[i]
		wantLarge := (i+1)%w.cfg.Tokens.LargeEvery == 0
		if tok.Large != wantLarge {
			t.Errorf("token %d: large = %v, want %v", i, tok.Large, wantLarge)
		}
		if wantLarge && (tok.Value != 10 || tok.Size != 20) {
			t.Errorf("token %d: large value/size = %d/%v", i, tok.Value, tok.Size)
		}
		if !wantLarge && (tok.Value != 1 || tok.Size != 10) {
			t.Errorf("token %d: small value/size = %d/%v", i, tok.Value, tok.Size)
		}
		inset := w.cfg.Tokens.GapInset
		if tok.Y < o.GapY+inset || tok.Y > o.GapY+gap-inset {
			t.Errorf("token %d at Y=%v outside band [%v, %v]", i, tok.Y, o.GapY+inset, o.GapY+gap-inset)
		}
		if tok.X != testViewport.W+w.cfg.Tokens.OffsetX {
			t.Errorf("token %d: X = %v", i, tok.X)
		}
	}
	if w.spawned != 20 {
		t.Errorf("spawned = %d, want 20", w.spawned)
	}
}

func TestLargeTokenKeepsRandomOffset(t *testing.T) {
	w := NewWorld(config.DefaultFlappyConfig(), testViewport, &seqRand{vals: []float64{0.99}}, Variant{})
	w.spawned = w.cfg.Tokens.LargeEvery - 1

	w.spawn()

	tok := w.tokens[0]
	if !tok.Large {
		t.Fatal("expected a large token")
	}
	tc := w.cfg.Tokens
	want := w.obstacles[0].GapY + tc.GapInset + 0.99*(w.cfg.Obstacles.Gap-2*tc.GapInset)
	if math.Abs(tok.Y-want) > 1e-9 {
		t.Errorf("Y = %v, want %v", tok.Y, want)
	}
}

func TestSpawnGapWithinMargins(t *testing.T) {
	tests := []struct {
		name string
		r    float64
		vp   core.Viewport
		want float64
	}{
		{"low", 0, testViewport, 20},
		{"mid", 0.5, testViewport, 185},
		{"degenerate viewport", 0.9, core.Viewport{W: 100, H: 100, CellW: 8, CellH: 16}, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWorld(config.DefaultFlappyConfig(), tt.vp, &seqRand{vals: []float64{tt.r}}, Variant{})
			w.spawn()
			if got := w.obstacles[0].GapY; got != tt.want {
				t.Errorf("GapY = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTierLadderMonotonic(t *testing.T) {
	l := NewTierLadder(config.DefaultFlappyConfig().Tiers)

	steps := []struct {
		score int
		want  string
		ok    bool
	}{
		{5, "White Belt", false},
		{10, "Yellow Belt", true},
		{5, "Yellow Belt", false},
		{25, "Green Belt", true},
		{15, "Green Belt", false},
		{55, "Black Belt", true},
		{60, "Black Belt", false},
	}

	for _, s := range steps {
		_, ok := l.Evaluate(s.score)
		if ok != s.ok {
			t.Errorf("Evaluate(%d) ok = %v, want %v", s.score, ok, s.ok)
		}
		if got := l.Current().Name; got != s.want {
			t.Errorf("after Evaluate(%d) current = %q, want %q", s.score, got, s.want)
		}
	}

	l.Reset()
	if l.Current().Name != "White Belt" {
		t.Errorf("after Reset current = %q", l.Current().Name)
	}
}

func TestTierUpOnScore(t *testing.T) {
	w := newTestWorld(dojo)
	w.frame = 1
	w.score = 9
	w.obstacles = append(w.obstacles, Obstacle{X: -48, GapY: 100})

	hold(w)
	res := w.Step(core.NewInputFrame())

	if res.State.Tier != "Yellow Belt" {
		t.Errorf("tier = %q, want Yellow Belt", res.State.Tier)
	}
	if w.actor.Color != core.ColorYellow {
		t.Errorf("actor color = %v, want yellow", w.actor.Color)
	}
	if countEvents(res, core.EventTierUp) != 1 {
		t.Fatalf("tier-up events = %d, want 1", countEvents(res, core.EventTierUp))
	}
	if w.Progress().BestTier != 1 {
		t.Errorf("best tier = %d, want 1", w.Progress().BestTier)
	}
}

func TestClassicHasNoTiersOrRevive(t *testing.T) {
	w := newTestWorld(Variant{})
	w.coins = 100
	crash(w)

	if _, ok := w.Tier(); ok {
		t.Error("classic world should have no tiers")
	}
	if w.CanRevive() || w.Revive() {
		t.Error("classic world should not revive")
	}
	if w.State().Tier != "" {
		t.Errorf("tier label = %q, want empty", w.State().Tier)
	}
}

func TestReviveRequiresCost(t *testing.T) {
	w := newTestWorld(dojo)
	w.coins = 9
	crash(w)

	if w.CanRevive() {
		t.Error("CanRevive with 9 coins")
	}
	if w.Revive() {
		t.Error("Revive succeeded with 9 coins")
	}
	if w.coins != 9 {
		t.Errorf("coins = %d, want 9", w.coins)
	}
}

func TestReviveKeepsSession(t *testing.T) {
	w := newTestWorld(dojo)
	for i := 0; i < 10; i++ {
		hold(w)
		w.Step(core.NewInputFrame())
	}
	w.score = 4
	w.coins = 12
	crash(w)
	obstacles := len(w.obstacles)

	if !w.CanRevive() {
		t.Fatal("expected CanRevive with 12 coins")
	}
	if !w.Revive() {
		t.Fatal("Revive failed")
	}

	if w.coins != 2 {
		t.Errorf("coins = %d, want 2", w.coins)
	}
	if w.over {
		t.Error("still game over after revive")
	}
	if w.score != 4 {
		t.Errorf("score = %d, want kept 4", w.score)
	}
	if len(w.obstacles) != obstacles {
		t.Errorf("obstacles = %d, want kept %d", len(w.obstacles), obstacles)
	}
	if w.actor.Y != 250 || w.actor.Vel != 0 {
		t.Errorf("actor Y/Vel = %v/%v, want 250/0", w.actor.Y, w.actor.Vel)
	}
	if w.grace != w.cfg.Revive.GraceTicks {
		t.Errorf("grace = %d, want %d", w.grace, w.cfg.Revive.GraceTicks)
	}
}

func TestGraceSuppressesCollisionForExactTicks(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Revive.GraceTicks = 5
	w := NewWorld(cfg, testViewport, &seqRand{vals: []float64{0.5}}, dojo)
	w.frame = 1
	w.coins = 10
	crash(w)
	if !w.Revive() {
		t.Fatal("Revive failed")
	}

	// A full-height column that overlaps the actor for many ticks
	w.obstacles = append(w.obstacles[:0], Obstacle{X: 64, GapY: 500})

	for tick := 1; tick <= cfg.Revive.GraceTicks; tick++ {
		hold(w)
		if res := w.Step(core.NewInputFrame()); res.State.GameOver {
			t.Fatalf("game over during grace tick %d", tick)
		}
	}
	hold(w)
	if res := w.Step(core.NewInputFrame()); !res.State.GameOver {
		t.Error("collision should resume after grace")
	}
}

func TestGraceDoesNotSuppressBoundary(t *testing.T) {
	w := newTestWorld(dojo)
	w.coins = 10
	crash(w)
	w.Revive()

	w.actor.Y = -10
	if res := w.Step(core.NewInputFrame()); !res.State.GameOver {
		t.Error("boundary check should run during grace")
	}
}

func TestReviveInputWhileOver(t *testing.T) {
	w := newTestWorld(dojo)
	w.coins = 10
	crash(w)

	in := core.NewInputFrame()
	in.Set(core.ActionRevive)
	res := w.Step(in)
	if res.State.GameOver {
		t.Error("revive input did not revive")
	}
	if res.State.Coins != 0 {
		t.Errorf("coins = %d, want 0", res.State.Coins)
	}
}

func TestRestart(t *testing.T) {
	w := newTestWorld(dojo)
	for i := 0; i < 80; i++ {
		hold(w)
		w.Step(core.NewInputFrame())
	}
	w.score = 12
	w.coins = 30
	w.evaluateTiers()
	crash(w)
	w.Revive()
	crash(w)

	in := core.NewInputFrame()
	in.Set(core.ActionRestart)
	w.Step(in)

	if w.over || w.paused {
		t.Error("over/paused not cleared")
	}
	if w.score != 0 || w.spawned != 0 || w.frame != 0 || w.grace != 0 {
		t.Errorf("counters not reset: score=%d spawned=%d frame=%d grace=%d", w.score, w.spawned, w.frame, w.grace)
	}
	if len(w.obstacles) != 0 || len(w.tokens) != 0 {
		t.Error("entity lists not emptied")
	}
	if w.actor.Y != 250 || w.actor.Vel != 0 || w.actor.Phase != 0 {
		t.Errorf("actor not reset: %+v", w.actor)
	}
	if tier, _ := w.Tier(); tier.Name != "White Belt" || w.actor.Color != core.ColorWhite {
		t.Errorf("tier not reset: %q color=%v", tier.Name, w.actor.Color)
	}
	if w.best != 12 {
		t.Errorf("best = %d, want 12", w.best)
	}
	if w.coins != 20 {
		t.Errorf("coins = %d, want 20 after one revive", w.coins)
	}
}

func TestPauseToggle(t *testing.T) {
	w := newTestWorld(Variant{})
	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)

	w.Step(pause)
	before := w.Actor()
	for i := 0; i < 10; i++ {
		w.Step(core.NewInputFrame())
	}
	if w.Actor() != before || w.Frame() != 0 {
		t.Error("paused world advanced")
	}

	w.Step(pause)
	if w.Frame() != 1 {
		t.Errorf("frame after unpause = %d, want 1", w.Frame())
	}
}

func TestPhaseCycles(t *testing.T) {
	w := newTestWorld(Variant{})
	for i := 1; i <= 7; i++ {
		hold(w)
		w.Step(core.NewInputFrame())
		if want := i % w.cfg.Player.PhasePeriod; w.actor.Phase != want {
			t.Errorf("tick %d: phase = %d, want %d", i, w.actor.Phase, want)
		}
	}
}

func TestProgressSavedAtTransitions(t *testing.T) {
	var saves []core.Progress
	w := newTestWorld(dojo)
	w.OnSave(func(p core.Progress) { saves = append(saves, p) })
	w.SetProgress(core.Progress{BestScore: 3, TotalCoins: 15})

	for i := 0; i < 50; i++ {
		hold(w)
		w.Step(core.NewInputFrame())
	}
	if len(saves) != 0 {
		t.Fatalf("saves during play = %d, want 0", len(saves))
	}

	w.score = 8
	crash(w)
	w.Revive()
	crash(w)
	w.Restart()
	w.Flush()

	if len(saves) != 5 {
		t.Fatalf("saves = %d, want 5", len(saves))
	}
	if saves[0].BestScore != 8 {
		t.Errorf("best saved at game over = %d, want 8", saves[0].BestScore)
	}
	if saves[1].TotalCoins != saves[0].TotalCoins-10 {
		t.Errorf("revive save coins = %d, want %d", saves[1].TotalCoins, saves[0].TotalCoins-10)
	}
}
