// Package config provides YAML-based game configuration loading and
// difficulty presets for flapdojo.
package config

// FlappyConfig contains all configuration for the Flappy games.
// Distances are world units; durations are ticks.
type FlappyConfig struct {
	Physics   FlappyPhysics   `yaml:"physics"`
	Viewport  FlappyViewport  `yaml:"viewport"`
	Player    FlappyPlayer    `yaml:"player"`
	Obstacles FlappyObstacles `yaml:"obstacles"`
	Tokens    FlappyTokens    `yaml:"tokens"`
	Revive    FlappyRevive    `yaml:"revive"`
	Tiers     []TierConfig    `yaml:"tiers"`
	Audio     AudioConfig     `yaml:"audio"`
}

// FlappyPhysics defines the fixed-step integration constants.
type FlappyPhysics struct {
	Gravity     float64 `yaml:"gravity"`
	JumpImpulse float64 `yaml:"jump_impulse"` // Negative = up
	ScrollSpeed float64 `yaml:"scroll_speed"`
}

// FlappyViewport defines how the world canvas is derived from the terminal.
type FlappyViewport struct {
	MaxWidth   float64 `yaml:"max_width"`
	MaxHeight  float64 `yaml:"max_height"`
	Margin     float64 `yaml:"margin"`
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
}

// FlappyPlayer defines the actor.
type FlappyPlayer struct {
	X           float64 `yaml:"x"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	PhasePeriod int     `yaml:"phase_period"`
}

// FlappyObstacles defines obstacle pairs.
type FlappyObstacles struct {
	Width        float64 `yaml:"width"`
	Gap          float64 `yaml:"gap"`
	SpawnEvery   int     `yaml:"spawn_every"`
	TopMargin    float64 `yaml:"top_margin"`
	BottomMargin float64 `yaml:"bottom_margin"`
}

// FlappyTokens defines bonus pickups spawned inside each gap.
type FlappyTokens struct {
	OffsetX    float64 `yaml:"offset_x"`
	GapInset   float64 `yaml:"gap_inset"`
	SmallSize  float64 `yaml:"small_size"`
	SmallValue int     `yaml:"small_value"`
	LargeSize  float64 `yaml:"large_size"`
	LargeValue int     `yaml:"large_value"`
	LargeEvery int     `yaml:"large_every"`
}

// FlappyRevive defines the paid continue and its grace period.
type FlappyRevive struct {
	Cost       int `yaml:"cost"`
	GraceTicks int `yaml:"grace_ticks"`
}

// TierConfig is one rung of the belt ladder.
type TierConfig struct {
	Name  string `yaml:"name"`
	Score int    `yaml:"score"`
	Color string `yaml:"color"`
}

// AudioConfig controls sound cues.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"` // 0.0 to 1.0
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a CLI value to a preset.
// Unknown or empty values return "" which means use the config as loaded.
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
