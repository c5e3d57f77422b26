package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flapdojo/internal/audio"
	"github.com/vovakirdan/flapdojo/internal/config"
	"github.com/vovakirdan/flapdojo/internal/core"
	"github.com/vovakirdan/flapdojo/internal/games/flappy"
	"github.com/vovakirdan/flapdojo/internal/platform/tui"
	"github.com/vovakirdan/flapdojo/internal/registry"
	"github.com/vovakirdan/flapdojo/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagMute       bool
	flagLogFile    string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified variant.

Controls:
  Space/Up/W/Click  - Flap
  P                 - Pause
  R                 - Restart (after game over)
  V                 - Revive with coins (Dojo, after game over)
  Ctrl+S            - Save a screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy    - Slower scroll, wider gaps
  normal  - Config values as-is
  hard    - Faster scroll, tighter gaps

Examples:
  flapdojo play flappy
  flapdojo play flappy_dojo --difficulty hard
  flapdojo play flappy --config ./my-flappy.yaml --mute
  flapdojo play flappy_dojo --log-file /tmp/flapdojo.log`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd} {
		c.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
		c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
		c.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
		c.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	}
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'flapdojo list' to see available games)", gameID)
	}

	logger, closeLog, err := openLogger(flagLogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	applyGameFlags()

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	player := newPlayer(logger)
	defer player.Close()

	opts := tui.Options{Audio: player, Logger: logger}.WithStore(store)
	if err := tui.Run(game, runtimeConfig(), opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// applyGameFlags passes config and difficulty to the game package before
// instances are created.
func applyGameFlags() {
	flappy.SetConfigPath(flagConfig)
	flappy.SetDifficultyPreset(flagDifficulty)
}

// runtimeConfig builds the runtime config from the current terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openLogger returns a file logger, or a discarding one when path is empty.
// The alt screen owns stdout and stderr while a game runs.
func openLogger(path string) (*log.Logger, func(), error) {
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "flapdojo",
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }, nil
}

// openStore opens the database; the game still runs without one.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// newPlayer creates the audio player from the game config's audio section.
func newPlayer(logger *log.Logger) audio.Player {
	if flagMute {
		return audio.Nop{}
	}
	cfg, err := config.LoadFlappy(flagConfig)
	if err != nil {
		logger.Warn("using default audio settings", "err", err)
		cfg = config.DefaultFlappyConfig()
	}
	return audio.New(cfg.Audio, logger)
}
