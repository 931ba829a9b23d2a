package report

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// StatsFetcher loads a player's records.
type StatsFetcher interface {
	FetchStats(ctx context.Context, userID int64) (*Stats, error)
}

// StatsCache holds the last stats snapshot fetched for one player. It is
// safe for concurrent use: refreshes run on background goroutines while the
// UI loop reads.
type StatsCache struct {
	fetcher StatsFetcher
	userID  int64
	log     logrus.FieldLogger

	mu    sync.RWMutex
	stats *Stats
}

// NewStatsCache returns an empty cache. A zero userID disables fetching.
func NewStatsCache(f StatsFetcher, userID int64, log logrus.FieldLogger) *StatsCache {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &StatsCache{fetcher: f, userID: userID, log: log}
}

// Refresh fetches a new snapshot. On failure the previous snapshot is kept.
func (c *StatsCache) Refresh(ctx context.Context) error {
	if c.fetcher == nil || c.userID == 0 {
		return ErrNoUser
	}
	st, err := c.fetcher.FetchStats(ctx, c.userID)
	if err != nil {
		c.log.WithError(err).WithField("user_id", c.userID).Warn("stats refresh failed")
		return err
	}
	c.mu.Lock()
	c.stats = st
	c.mu.Unlock()
	return nil
}

// Get returns the cached snapshot, nil before the first successful fetch.
func (c *StatsCache) Get() *Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats
}

// Mode returns the record for mode, if known.
func (c *StatsCache) Mode(mode string) (ModeStats, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.stats == nil {
		return ModeStats{}, false
	}
	ms, ok := c.stats.Modes[mode]
	return ms, ok
}

// Banner is the best-time line shown above the board, empty when the player
// has no win in mode.
func (c *StatsCache) Banner(mode string) string {
	ms, ok := c.Mode(mode)
	if !ok || ms.BestTime == nil {
		return ""
	}
	return fmt.Sprintf("Best: %ds | Wins: %d", *ms.BestTime, ms.Wins)
}

// IsNewBest reports whether a winning score beats the cached best time. With
// no recorded best every win is a new best.
func (c *StatsCache) IsNewBest(mode string, score int) bool {
	ms, ok := c.Mode(mode)
	if !ok || ms.BestTime == nil {
		return true
	}
	return score < *ms.BestTime
}
