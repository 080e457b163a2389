package leaderboard

import (
	"context"
	"log"
)

// ScoreCache is a bounded store that can be refilled in one go.
type ScoreCache interface {
	Store
	Replace(ctx context.Context, scores []Score) error
}

// CachedStore reads through a cache in front of the source of truth. The
// cache is only ever filled with a complete board from the source, so a
// non-empty cache can be trusted. Writes invalidate it. Cache failures are
// logged and never returned.
type CachedStore struct {
	source Store
	cache  ScoreCache
	max    int
}

func NewCachedStore(source Store, cache ScoreCache, max int) *CachedStore {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	return &CachedStore{source: source, cache: cache, max: max}
}

func (c *CachedStore) Save(ctx context.Context, s Score) error {
	if err := c.source.Save(ctx, s); err != nil {
		return err
	}
	if err := c.cache.Clear(ctx); err != nil {
		log.Printf("[LEADERBOARD] cache invalidate failed: %v", err)
	}
	return nil
}

func (c *CachedStore) Top(ctx context.Context, n int) ([]Score, error) {
	if n <= c.max {
		cached, err := c.cache.Top(ctx, n)
		if err == nil && len(cached) > 0 {
			return cached, nil
		}
		if err != nil {
			log.Printf("[LEADERBOARD] cache read failed: %v", err)
		}
	}

	scores, err := c.source.Top(ctx, max(n, c.max))
	if err != nil {
		return nil, err
	}
	if err := c.cache.Replace(ctx, scores); err != nil {
		log.Printf("[LEADERBOARD] cache refill failed: %v", err)
	}
	return Truncate(scores, n), nil
}

func (c *CachedStore) Clear(ctx context.Context) error {
	if err := c.source.Clear(ctx); err != nil {
		return err
	}
	if err := c.cache.Clear(ctx); err != nil {
		log.Printf("[LEADERBOARD] cache clear failed: %v", err)
	}
	return nil
}
