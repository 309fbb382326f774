package fpl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fplhub/fpl-analytics/internal/metrics"
)

// bootstrapFetcher is satisfied by *Client; narrowed for tests.
type bootstrapFetcher interface {
	FetchBootstrap(ctx context.Context) (*Bootstrap, error)
}

// BootstrapSnapshot is a decoded bootstrap payload plus id-indexed lookups
// built once per refresh. The aggregator does one lookup per pick per
// gameweek, so these must be constant-time.
type BootstrapSnapshot struct {
	Data         *Bootstrap
	PlayersByID  map[int]*Player
	TeamsByID    map[int]*Team
	CurrentEvent int
	FetchedAt    time.Time
}

// Player resolves a player by element id.
func (s *BootstrapSnapshot) Player(id int) (*Player, error) {
	p, ok := s.PlayersByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

// Team resolves a team by id.
func (s *BootstrapSnapshot) Team(id int) (*Team, error) {
	t, ok := s.TeamsByID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return t, nil
}

// BootstrapCache memoizes the bootstrap dataset for a bounded window. It is
// the only long-lived shared mutable state in the process; refresh-on-expiry
// is last-writer-wins — concurrent refreshes may both hit the network, but
// the snapshot assignment is the final, mutex-guarded step.
type BootstrapCache struct {
	fetcher bootstrapFetcher
	ttl     time.Duration
	logger  *slog.Logger

	mu   sync.RWMutex
	snap *BootstrapSnapshot
}

// NewBootstrapCache creates an empty cache. The first Get fills it lazily.
func NewBootstrapCache(fetcher bootstrapFetcher, ttl time.Duration, logger *slog.Logger) *BootstrapCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &BootstrapCache{fetcher: fetcher, ttl: ttl, logger: logger}
}

// Get returns the cached snapshot if it is younger than the TTL, otherwise
// refreshes via the upstream client. A failed refresh never clears a prior
// snapshot: the stale copy keeps serving until a refresh succeeds. With no
// prior snapshot the failure propagates.
func (c *BootstrapCache) Get(ctx context.Context) (*BootstrapSnapshot, error) {
	c.mu.RLock()
	snap := c.snap
	c.mu.RUnlock()

	if snap != nil && time.Since(snap.FetchedAt) < c.ttl {
		metrics.BootstrapLookup("hit")
		return snap, nil
	}

	data, err := c.fetcher.FetchBootstrap(ctx)
	if err != nil {
		if snap != nil {
			metrics.BootstrapLookup("stale")
			c.logger.Warn("bootstrap refresh failed, serving stale snapshot",
				"age", time.Since(snap.FetchedAt).Round(time.Second), "error", err)
			return snap, nil
		}
		metrics.BootstrapLookup("miss")
		return nil, err
	}

	fresh := buildSnapshot(data)
	c.mu.Lock()
	c.snap = fresh
	c.mu.Unlock()

	metrics.BootstrapLookup("miss")
	c.logger.Info("bootstrap refreshed",
		"players", len(data.Players), "teams", len(data.Teams), "current_event", fresh.CurrentEvent)
	return fresh, nil
}

func buildSnapshot(data *Bootstrap) *BootstrapSnapshot {
	players := make(map[int]*Player, len(data.Players))
	for i := range data.Players {
		players[data.Players[i].ID] = &data.Players[i]
	}
	teams := make(map[int]*Team, len(data.Teams))
	for i := range data.Teams {
		teams[data.Teams[i].ID] = &data.Teams[i]
	}
	return &BootstrapSnapshot{
		Data:         data,
		PlayersByID:  players,
		TeamsByID:    teams,
		CurrentEvent: data.CurrentEvent(),
		FetchedAt:    time.Now(),
	}
}
