package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flapdojo/internal/storage"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Inspect or clear saved progress",
	Long: `Progress is the best score, coin wallet and highest belt each
variant keeps between sessions.

Examples:
  flapdojo progress show
  flapdojo progress show flappy_dojo
  flapdojo progress reset flappy_dojo`,
}

var progressShowCmd = &cobra.Command{
	Use:   "show [game]",
	Short: "Show saved progress",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProgressShow,
}

var progressResetCmd = &cobra.Command{
	Use:   "reset <game>",
	Short: "Clear saved progress and score history for a game",
	Args:  cobra.ExactArgs(1),
	RunE:  runProgressReset,
}

func init() {
	progressCmd.AddCommand(progressShowCmd)
	progressCmd.AddCommand(progressResetCmd)
}

func runProgressShow(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	var entries []storage.ProgressEntry
	if len(args) == 1 {
		if _, err := gameTitle(args[0]); err != nil {
			return err
		}
		p, err := store.LoadProgress(args[0])
		if err != nil {
			return fmt.Errorf("loading progress: %w", err)
		}
		entries = []storage.ProgressEntry{{GameID: args[0], Progress: p}}
	} else {
		entries, err = store.AllProgress()
		if err != nil {
			return fmt.Errorf("loading progress: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No progress saved yet.")
		return nil
	}

	fmt.Fprintf(out, "  %-12s  %-6s  %-6s  %-5s  %s\n", "Game", "Best", "Coins", "Tier", "Updated")
	fmt.Fprintf(out, "  %-12s  %-6s  %-6s  %-5s  %s\n", "----", "----", "-----", "----", "-------")
	for _, e := range entries {
		updated := "-"
		if !e.UpdatedAt.IsZero() {
			updated = e.UpdatedAt.Local().Format(time.DateTime)
		}
		fmt.Fprintf(out, "  %-12s  %-6d  %-6d  %-5d  %s\n", e.GameID, e.BestScore, e.TotalCoins, e.BestTier, updated)
	}
	return nil
}

func runProgressReset(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	if _, err := gameTitle(gameID); err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	if err := store.ResetProgress(gameID); err != nil {
		return fmt.Errorf("resetting progress: %w", err)
	}
	if err := store.ClearScores(gameID); err != nil {
		return fmt.Errorf("clearing scores: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Progress for %s cleared.\n", gameID)
	return nil
}
