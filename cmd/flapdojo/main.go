// flapdojo is a terminal side-scroller: flap through scrolling pipes,
// collect coins and earn belts.
//
// Usage:
//
//	flapdojo list                  - List available variants
//	flapdojo play <game>           - Play a variant
//	flapdojo menu                  - Pick variants interactively
//	flapdojo scores <game>         - Show high scores for a variant
//	flapdojo scoreboard            - Browse high scores interactively
//	flapdojo progress show|reset   - Inspect or clear saved progress
//	flapdojo serve                 - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.flapdojo/flapdojo.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/flapdojo/internal/games/flappy"
	"github.com/vovakirdan/flapdojo/internal/storage"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flapdojo",
	Short: "Flap Dojo - a flappy side-scroller for your terminal",
	Long: `Flap Dojo is a terminal side-scroller. Flap through the gaps,
collect coins and climb the belt ladder.

Variants:
  flappy       - Classic: score, best score, coins
  flappy_dojo  - Belts, celebrations and coin-paid revives

Examples:
  flapdojo list
  flapdojo play flappy_dojo
  flapdojo menu
  flapdojo serve --ssh :2222
  flapdojo scores flappy`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(scoreboardCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(serveCmd)
}
