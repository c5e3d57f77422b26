package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/flapdojo/internal/core"
)

// ProgressEntry is a stored progress row.
type ProgressEntry struct {
	GameID string
	core.Progress
	UpdatedAt time.Time
}

// Ensure Store implements core.ProgressStore
var _ core.ProgressStore = (*Store)(nil)

// LoadProgress returns the saved progress for a game.
// A game with no row yet has zero progress.
func (s *Store) LoadProgress(gameID string) (core.Progress, error) {
	var p core.Progress
	err := s.db.QueryRow(
		`SELECT best_score, total_coins, best_tier FROM progress WHERE game_id = ?`,
		gameID,
	).Scan(&p.BestScore, &p.TotalCoins, &p.BestTier)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Progress{}, nil
	}
	if err != nil {
		return core.Progress{}, fmt.Errorf("storage: cannot load progress: %w", err)
	}
	return p, nil
}

// SaveProgress upserts the progress for a game.
// Best score and best tier never decrease; the coin total is overwritten
// because revives spend coins.
func (s *Store) SaveProgress(gameID string, p core.Progress) error {
	_, err := s.db.Exec(
		`INSERT INTO progress (game_id, best_score, total_coins, best_tier, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(game_id) DO UPDATE SET
			best_score = MAX(best_score, excluded.best_score),
			total_coins = excluded.total_coins,
			best_tier = MAX(best_tier, excluded.best_tier),
			updated_at = CURRENT_TIMESTAMP`,
		gameID, p.BestScore, p.TotalCoins, p.BestTier,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// ResetProgress deletes the progress row for a game.
func (s *Store) ResetProgress(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM progress WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	return nil
}

// AllProgress returns every stored progress row, ordered by game ID.
func (s *Store) AllProgress() ([]ProgressEntry, error) {
	rows, err := s.db.Query(
		`SELECT game_id, best_score, total_coins, best_tier, updated_at
		 FROM progress
		 ORDER BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	defer rows.Close()

	var entries []ProgressEntry
	for rows.Next() {
		var e ProgressEntry
		var updatedAt any
		if err := rows.Scan(&e.GameID, &e.BestScore, &e.TotalCoins, &e.BestTier, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan progress row: %w", err)
		}
		e.UpdatedAt = parseTimestamp(updatedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}
