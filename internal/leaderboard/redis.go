package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"

	"github.com/redis/go-redis/v9"
)

const scoresKey = "leaderboard:scores"

// RedisStore keeps the best max scores in a sorted set. The set score packs
// the ranking into one number so ZREVRANGE returns best first.
type RedisStore struct {
	rdb *redis.Client
	key string
	max int
}

func NewRedisStore(rdb *redis.Client, max int) *RedisStore {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	return &RedisStore{rdb: rdb, key: scoresKey, max: max}
}

// rankValue orders by level, then by fewer shots.
func rankValue(s Score) float64 {
	return float64(s.Level)*1e6 - float64(s.ShotsUsed)
}

// encodeMember prefixes the score JSON with an inverted timestamp. Redis
// orders equal set scores by member, so older ties sort above newer ones
// in ZREVRANGE and the newest tie is the one trimmed.
func encodeMember(s Score) (string, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshal score: %w", err)
	}
	return fmt.Sprintf("%019d|%s", math.MaxInt64-s.Timestamp, b), nil
}

func decodeMember(member string) (Score, error) {
	var s Score
	if !strings.HasPrefix(member, "{") {
		_, member, _ = strings.Cut(member, "|")
	}
	err := json.Unmarshal([]byte(member), &s)
	return s, err
}

func (r *RedisStore) Save(ctx context.Context, s Score) error {
	member, err := encodeMember(s)
	if err != nil {
		return err
	}

	pipe := r.rdb.TxPipeline()
	pipe.ZAdd(ctx, r.key, redis.Z{Score: rankValue(s), Member: member})
	// keep ranks 0..max-1 counted from the top
	pipe.ZRemRangeByRank(ctx, r.key, 0, int64(-r.max-1))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (r *RedisStore) Top(ctx context.Context, n int) ([]Score, error) {
	if n <= 0 {
		return []Score{}, nil
	}
	zs, err := r.rdb.ZRevRangeWithScores(ctx, r.key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	out := make([]Score, 0, len(zs))
	for _, z := range zs {
		member, _ := z.Member.(string)
		s, err := decodeMember(member)
		if err != nil {
			log.Printf("[LEADERBOARD] skipping bad cached score: %v", err)
			continue
		}
		out = append(out, s)
	}
	SortScores(out)
	return out, nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.rdb.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Replace swaps the cached board for scores in one transaction.
func (r *RedisStore) Replace(ctx context.Context, scores []Score) error {
	pipe := r.rdb.TxPipeline()
	pipe.Del(ctx, r.key)
	for _, s := range Truncate(scores, r.max) {
		member, err := encodeMember(s)
		if err != nil {
			return err
		}
		pipe.ZAdd(ctx, r.key, redis.Z{Score: rankValue(s), Member: member})
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Len reports how many scores are cached.
func (r *RedisStore) Len(ctx context.Context) (int64, error) {
	return r.rdb.ZCard(ctx, r.key).Result()
}
