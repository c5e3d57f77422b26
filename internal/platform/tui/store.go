package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flapdojo/internal/core"
)

// loggingStore records progress failures that games deliberately ignore.
type loggingStore struct {
	next   core.ProgressStore
	logger *log.Logger
}

// WithLogging decorates a progress store so failed loads and saves are
// logged at warn level. Errors are still returned to the caller.
func WithLogging(s core.ProgressStore, logger *log.Logger) core.ProgressStore {
	if logger == nil {
		return s
	}
	return loggingStore{next: s, logger: logger}
}

func (s loggingStore) LoadProgress(gameID string) (core.Progress, error) {
	p, err := s.next.LoadProgress(gameID)
	if err != nil {
		s.logger.Warn("cannot load progress", "game", gameID, "err", err)
	}
	return p, err
}

func (s loggingStore) SaveProgress(gameID string, p core.Progress) error {
	err := s.next.SaveProgress(gameID, p)
	if err != nil {
		s.logger.Warn("cannot save progress", "game", gameID, "err", err)
	} else {
		s.logger.Debug("progress saved", "game", gameID, "best", p.BestScore, "coins", p.TotalCoins)
	}
	return err
}
