package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score     int    // Current score
	BestScore int    // Best score across sessions
	Coins     int    // Total collected token value
	Tier      string // Label of the current progress tier, empty if the game has none
	GameOver  bool   // Whether the game has ended
	Paused    bool   // Whether the game is paused
	CanRevive bool   // Whether a revive is currently affordable
}

// EventKind identifies a one-shot notification produced by a tick.
type EventKind int

const (
	EventJump   EventKind = iota // Actor jumped
	EventHit                     // Game over by collision or boundary
	EventCoin                    // Token collected
	EventTierUp                  // New progress tier awarded
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventJump:
		return "jump"
	case EventHit:
		return "hit"
	case EventCoin:
		return "coin"
	case EventTierUp:
		return "tier-up"
	default:
		return "unknown"
	}
}

// Event is a side effect for the platform (audio, overlays).
// Games never wait on events being handled.
type Event struct {
	Kind  EventKind
	Value int    // Token value for EventCoin
	Label string // Tier label for EventTierUp
	Color Color  // Tier color for EventTierUp
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// Progress is the per-game state persisted across sessions.
type Progress struct {
	BestScore  int
	TotalCoins int
	BestTier   int // Index of the highest tier ever awarded
}

// ProgressStore loads and saves Progress by game ID.
type ProgressStore interface {
	LoadProgress(gameID string) (Progress, error)
	SaveProgress(gameID string, p Progress) error
}
