package ws

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"
	appredis "github.com/taberinos/backend/internal/redis"
	"github.com/taberinos/backend/internal/session"
)

func randomSuffix() string {
	b := make([]byte, 4)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// StartEventSubscriber relays engine events published by other instances to
// local spectators of the same session.
func StartEventSubscriber(ctx context.Context, rdb *redis.Client, hub *Hub, origin string) {
	if rdb == nil {
		log.Println("[WS] Redis client not set; event subscriber not started")
		return
	}

	pubsub := rdb.Subscribe(ctx, appredis.GameEventsChannel)
	ch := pubsub.Channel()
	go func() {
		defer pubsub.Close()
		log.Printf("[WS] %s subscriber started", appredis.GameEventsChannel)
		for msg := range ch {
			relayEnvelope(hub, origin, []byte(msg.Payload))
		}
	}()
}

// relayEnvelope forwards one pub/sub payload; it returns how many clients
// received at least one event.
func relayEnvelope(hub *Hub, origin string, payload []byte) int {
	var env appredis.EventEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		log.Printf("[WS] invalid event payload: %v", err)
		return 0
	}
	if env.Origin == origin || env.SessionToken == "" {
		return 0
	}
	if hub.RoomSize(env.SessionToken) == 0 {
		return 0
	}

	reached := 0
	for _, e := range env.Events {
		if n := hub.BroadcastToSession(env.SessionToken, session.Message{Type: "event", Data: e}, true); n > reached {
			reached = n
		}
	}
	return reached
}
