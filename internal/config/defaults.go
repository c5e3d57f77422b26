package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default Flappy configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Physics: FlappyPhysics{
			Gravity:     0.5,
			JumpImpulse: -8,
			ScrollSpeed: 3,
		},
		Viewport: FlappyViewport{
			MaxWidth:   400,
			MaxHeight:  500,
			Margin:     20,
			CellWidth:  8,
			CellHeight: 16,
		},
		Player: FlappyPlayer{
			X:           50,
			Width:       34,
			Height:      24,
			PhasePeriod: 3,
		},
		Obstacles: FlappyObstacles{
			Width:        50,
			Gap:          120,
			SpawnEvery:   75,
			TopMargin:    20,
			BottomMargin: 30,
		},
		Tokens: FlappyTokens{
			OffsetX:    10,
			GapInset:   10,
			SmallSize:  10,
			SmallValue: 1,
			LargeSize:  20,
			LargeValue: 10,
			LargeEvery: 10,
		},
		Revive: FlappyRevive{
			Cost:       10,
			GraceTicks: 60,
		},
		Tiers: []TierConfig{
			{Name: "White Belt", Score: 0, Color: "white"},
			{Name: "Yellow Belt", Score: 10, Color: "yellow"},
			{Name: "Green Belt", Score: 20, Color: "green"},
			{Name: "Blue Belt", Score: 30, Color: "blue"},
			{Name: "Red Belt", Score: 40, Color: "red"},
			{Name: "Black Belt", Score: 50, Color: "black"},
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "flappy", "flappy_dojo":
		return defaultFlappyYAML
	default:
		return nil
	}
}
