package client

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"food-delivery-marketplace/ws"

	"github.com/gorilla/websocket"
)

// Socket keeps a websocket to the gateway alive. Room membership is volatile
// server-side, so after every successful (re)connect it re-issues join_room
// for each room and fires OnConnect so the owner can re-fetch and reconcile
// anything missed while disconnected.
type Socket struct {
	URL   string
	Token string
	Rooms []string

	// OnConnect runs after rejoining rooms on each (re)connect.
	OnConnect func()
	// OnEvent receives every pushed room event.
	OnEvent func(event string, payload []byte)
}

const (
	reconnectBase = time.Second
	reconnectMax  = 30 * time.Second
)

// Run dials and reads until ctx is cancelled, reconnecting with backoff.
func (s *Socket) Run(ctx context.Context) {
	backoff := reconnectBase
	for {
		if err := s.runOnce(ctx); err != nil {
			log.Println("socket: connection lost:", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > reconnectMax {
			backoff = reconnectMax
		}
	}
}

func (s *Socket) runOnce(ctx context.Context) error {
	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, s.URL+"?token="+s.Token, nil)
	cancel()
	if err != nil {
		return err
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for _, room := range s.Rooms {
		if err := s.joinRoom(conn, room); err != nil {
			return err
		}
	}
	if s.OnConnect != nil {
		s.OnConnect()
	}

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var event ws.Event
		if err := json.Unmarshal(message, &event); err != nil {
			log.Println("socket: malformed frame:", err)
			continue
		}
		if s.OnEvent != nil {
			s.OnEvent(event.Event, event.Payload)
		}
	}
}

func (s *Socket) joinRoom(conn *websocket.Conn, room string) error {
	payload, err := json.Marshal(map[string]string{"room_id": room})
	if err != nil {
		return err
	}
	return conn.WriteJSON(ws.Event{Event: ws.EventJoinRoom, Payload: payload})
}
