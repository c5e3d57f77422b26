package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapdojo/internal/platform/tui"
	"github.com/vovakirdan/flapdojo/internal/registry"
	"github.com/vovakirdan/flapdojo/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top 10 high scores for the specified variant.

Examples:
  flapdojo scores flappy
  flapdojo scores flappy_dojo`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

var scoreboardCmd = &cobra.Command{
	Use:   "scoreboard",
	Short: "Browse high scores interactively",
	RunE:  runScoreboard,
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	title, err := gameTitle(gameID)
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "High Scores - %s\n", title)
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'flapdojo play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Fprintf(out, "  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Best: %d  |  Games: %d  |  Average: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
	return nil
}

func runScoreboard(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	cfg := runtimeConfig()
	_, err = tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
	return err
}

// gameTitle validates a game ID and returns its display title.
func gameTitle(gameID string) (string, error) {
	for _, g := range registry.List() {
		if g.ID == gameID {
			return g.Title, nil
		}
	}
	return "", fmt.Errorf("unknown game %q (run 'flapdojo list' to see available games)", gameID)
}
