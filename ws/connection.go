package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"food-delivery-marketplace/helpers"
	"food-delivery-marketplace/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	sendBufferSize = 32
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type connection struct {
	id     string
	claims *helpers.SignedDetails
	ws     *websocket.Conn
	send   chan []byte

	closeOnce sync.Once
}

func (c *connection) close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

func (c *connection) writePump() {
	defer c.ws.Close()
	for message := range c.send {
		c.ws.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.ws.WriteControl(websocket.CloseMessage, nil, time.Now().Add(writeWait))
}

type joinRoomPayload struct {
	RoomID string `json:"room_id"`
}

// HandleWebSocket upgrades the connection after validating the handshake
// token. The token rides in the "token" query parameter (browser websocket
// clients cannot set headers) with the request header as fallback.
func (h *Hub) HandleWebSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientToken := c.Query("token")
		if clientToken == "" {
			clientToken = c.Request.Header.Get("token")
		}
		if clientToken == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "no authorization token provided"})
			return
		}
		claims, msg := helpers.ValidateToken(clientToken)
		if msg != "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		socket, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("ws: upgrade failed:", err)
			return
		}

		conn := &connection{
			id:     uuid.NewString(),
			claims: claims,
			ws:     socket,
			send:   make(chan []byte, sendBufferSize),
		}
		h.register(conn)
		go conn.writePump()

		h.readPump(conn)
	}
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.remove(c)
		c.close()
	}()

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		var event Event
		if err := json.Unmarshal(message, &event); err != nil {
			h.sendTo(c, EventError, gin.H{"message": "malformed frame"})
			continue
		}
		switch event.Event {
		case EventJoinRoom:
			h.handleJoin(c, event.Payload)
		default:
			h.sendTo(c, EventError, gin.H{"message": "unknown event " + event.Event})
		}
	}
}

// handleJoin admits the connection to a room only when the authenticated
// identity is entitled to it: the room must be the identity's own id, unless
// the identity is an admin.
func (h *Hub) handleJoin(c *connection, payload json.RawMessage) {
	var join joinRoomPayload
	if err := json.Unmarshal(payload, &join); err != nil || join.RoomID == "" {
		h.sendTo(c, EventError, gin.H{"message": "join_room requires a room_id"})
		return
	}
	if join.RoomID != c.claims.Uid && c.claims.User_role != models.RoleAdmin {
		h.sendTo(c, EventError, gin.H{"message": "not entitled to room " + join.RoomID})
		return
	}
	h.join(c, join.RoomID)
	h.sendTo(c, EventRoomJoined, gin.H{"room_id": join.RoomID})
}
