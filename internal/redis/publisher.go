package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/taberinos/backend/internal/game"
)

var ErrSnapshotNotFound = errors.New("snapshot not found")

// EventEnvelope is what travels on GameEventsChannel.
type EventEnvelope struct {
	Type         string       `json:"type"`
	Origin       string       `json:"origin"`
	SessionToken string       `json:"session_token"`
	Events       []game.Event `json:"events"`
	Sent         int64        `json:"sent"`
}

// Publisher mirrors session activity into Redis so other server instances
// can follow it.
type Publisher struct {
	client      *redis.Client
	origin      string
	snapshotTTL time.Duration
}

func NewPublisher(client *redis.Client, origin string, snapshotTTL time.Duration) *Publisher {
	return &Publisher{client: client, origin: origin, snapshotTTL: snapshotTTL}
}

func (p *Publisher) Origin() string {
	return p.origin
}

func (p *Publisher) PublishEvents(ctx context.Context, token string, events []game.Event) error {
	data, err := json.Marshal(EventEnvelope{
		Type:         "engine_events",
		Origin:       p.origin,
		SessionToken: token,
		Events:       events,
		Sent:         time.Now().UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("marshal events: %w", err)
	}
	return p.client.Publish(ctx, GameEventsChannel, data).Err()
}

func (p *Publisher) SaveSnapshot(ctx context.Context, token string, snap game.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return p.client.SetEx(ctx, SnapshotKey(token), data, p.snapshotTTL).Err()
}

func (p *Publisher) LoadSnapshot(ctx context.Context, token string) (*game.Snapshot, error) {
	data, err := p.client.Get(ctx, SnapshotKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, err
	}
	var snap game.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

func (p *Publisher) DeleteSnapshot(ctx context.Context, token string) error {
	return p.client.Del(ctx, SnapshotKey(token)).Err()
}
