package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"birdpacker/live"
	"birdpacker/rdx"
)

const eventChannel = "store-events"

// Event describes a storefront mutation: an order being placed, a
// catalog entity changing, a cart update.
type Event struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityID   string `json:"entity_id"`
	UserID     string `json:"user_id,omitempty"`
	At         int64  `json:"at"`
}

// Emit publishes a store event to Redis. Failures are logged and
// swallowed; events are advisory.
func Emit(ctx context.Context, entityType, method, entityID, userID string) {
	evt := Event{
		EntityType: entityType,
		Method:     method,
		EntityID:   entityID,
		UserID:     userID,
		At:         time.Now().Unix(),
	}

	data, err := json.Marshal(evt)
	if err != nil {
		log.Printf("[Emit] failed to marshal event: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, eventChannel, data).Err(); err != nil {
		log.Printf("[Emit] failed to publish event: %v", err)
	}
}

// StartEventWorker forwards published store events into the live hub
// for connected admin dashboards.
func StartEventWorker(hub *live.Hub) {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, eventChannel)
	ch := sub.Channel()

	log.Println("[EventWorker] listening for store events...")

	for msg := range ch {
		var evt Event
		if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
			log.Printf("[EventWorker] failed to parse event: %v", err)
			continue
		}
		hub.Broadcast([]byte(msg.Payload))
	}
}
