package ws

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const bridgeChannel = "rooms.events"

// RedisBridge fans room events out across instances: every Emit is published
// to one Redis channel, and each instance replays frames from its peers into
// the local hub. Frames carry the origin instance id so an instance never
// replays its own publishes.
type RedisBridge struct {
	rdb      *redis.Client
	instance string
}

type bridgeFrame struct {
	Origin  string          `json:"origin"`
	Room    string          `json:"room"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
}

func NewRedisBridge(addr string) *RedisBridge {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	return &RedisBridge{rdb: rdb, instance: uuid.NewString()}
}

func (b *RedisBridge) Publish(ctx context.Context, room string, event string, payload json.RawMessage) error {
	frame, err := json.Marshal(bridgeFrame{
		Origin:  b.instance,
		Room:    room,
		Event:   event,
		Payload: payload,
	})
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return b.rdb.Publish(ctx, bridgeChannel, frame).Err()
}

// Run subscribes and replays peer frames until ctx is done.
func (b *RedisBridge) Run(ctx context.Context, hub *Hub) {
	pubsub := b.rdb.Subscribe(ctx, bridgeChannel)
	defer pubsub.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-pubsub.Channel():
			if !ok {
				return
			}
			var frame bridgeFrame
			if err := json.Unmarshal([]byte(msg.Payload), &frame); err != nil {
				log.Printf("ws: malformed bridge frame: %v", err)
				continue
			}
			if frame.Origin == b.instance {
				continue
			}
			hub.emitLocal(frame.Room, frame.Event, frame.Payload)
		}
	}
}
