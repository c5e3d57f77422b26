package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate for unusable values.
var ErrInvalidConfig = errors.New("config: invalid")

// LoadFlappy loads the Flappy configuration.
// Search order: customPath -> ~/.flapdojo/configs/flappy.yaml -> ./configs/flappy.yaml -> embedded default.
// Values missing from a file keep their defaults.
func LoadFlappy(customPath string) (FlappyConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return FlappyConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseFlappy(data)
		if err != nil {
			return FlappyConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("flappy.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseFlappy(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "flappy.yaml")); err == nil {
		if cfg, err := parseFlappy(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseFlappy(defaultFlappyYAML)
	if err != nil {
		return DefaultFlappyConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseFlappy decodes YAML over the defaults and validates the result.
func parseFlappy(data []byte) (FlappyConfig, error) {
	cfg := DefaultFlappyConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return FlappyConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return FlappyConfig{}, err
	}
	return cfg, nil
}

// Validate reports the first value that would make the simulation degenerate.
func (c FlappyConfig) Validate() error {
	switch {
	case c.Physics.ScrollSpeed <= 0:
		return fmt.Errorf("%w: physics.scroll_speed must be positive", ErrInvalidConfig)
	case c.Viewport.CellWidth <= 0 || c.Viewport.CellHeight <= 0:
		return fmt.Errorf("%w: viewport cell size must be positive", ErrInvalidConfig)
	case c.Player.Width <= 0 || c.Player.Height <= 0:
		return fmt.Errorf("%w: player size must be positive", ErrInvalidConfig)
	case c.Player.PhasePeriod <= 0:
		return fmt.Errorf("%w: player.phase_period must be positive", ErrInvalidConfig)
	case c.Obstacles.Width <= 0 || c.Obstacles.Gap <= 0:
		return fmt.Errorf("%w: obstacle width and gap must be positive", ErrInvalidConfig)
	case c.Obstacles.SpawnEvery <= 0:
		return fmt.Errorf("%w: obstacles.spawn_every must be positive", ErrInvalidConfig)
	case c.Tokens.SmallSize <= 0 || c.Tokens.LargeSize <= 0:
		return fmt.Errorf("%w: token sizes must be positive", ErrInvalidConfig)
	case c.Tokens.LargeEvery <= 0:
		return fmt.Errorf("%w: tokens.large_every must be positive", ErrInvalidConfig)
	case c.Revive.Cost < 0 || c.Revive.GraceTicks < 0:
		return fmt.Errorf("%w: revive cost and grace must not be negative", ErrInvalidConfig)
	}

	for i := 1; i < len(c.Tiers); i++ {
		if c.Tiers[i].Score <= c.Tiers[i-1].Score {
			return fmt.Errorf("%w: tier %q must have a higher score than %q", ErrInvalidConfig, c.Tiers[i].Name, c.Tiers[i-1].Name)
		}
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".flapdojo", "configs", filename)
}

// ApplyFlappyPreset adjusts the config for a difficulty preset.
// Presets only change values fixed for the whole session.
func ApplyFlappyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Physics.ScrollSpeed = 2
		cfg.Obstacles.Gap = 150
		cfg.Obstacles.SpawnEvery = 90
	case DifficultyNormal:
		// Config as loaded
	case DifficultyHard:
		cfg.Physics.ScrollSpeed = 4
		cfg.Obstacles.Gap = 100
		cfg.Obstacles.SpawnEvery = 60
	}
}
