package handlers

import (
	"log"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/edithub/edithub-api/internal/realtime"
	"github.com/edithub/edithub-api/internal/utils"
)

// EventsHandler streams lifecycle events to connected principals.
type EventsHandler struct {
	Hub       *realtime.Hub
	JWTSecret string
}

func NewEventsHandler(hub *realtime.Hub, jwtSecret string) *EventsHandler {
	return &EventsHandler{Hub: hub, JWTSecret: jwtSecret}
}

// WebSocketHandler authenticates via the session token passed as a query
// param (websocket upgrades skip the cookie middleware chain).
func (h *EventsHandler) WebSocketHandler(c *websocket.Conn) {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		log.Println("WebSocket: token parameter missing")
		c.Close()
		return
	}

	claims, err := utils.ParseJWT(h.JWTSecret, tokenStr)
	if err != nil {
		log.Println("WebSocket: invalid token:", err)
		c.Close()
		return
	}

	principalID, err := uuid.Parse(claims.PrincipalID)
	if err != nil {
		log.Println("WebSocket: invalid principal id:", err)
		c.Close()
		return
	}

	sub := &realtime.Subscriber{
		ID:          uuid.New().String(),
		PrincipalID: principalID,
		Conn:        realtime.NewWebSocketConn(c),
		Send:        make(chan []byte, 256),
	}

	h.Hub.Register(sub)
	defer func() {
		h.Hub.Unregister(sub)
		log.Printf("WebSocket: principal %s disconnected", principalID)
	}()

	// hub -> client
	go func() {
		for msg := range sub.Send {
			if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Println("WebSocket write error:", err)
				return
			}
		}
	}()

	// keep the connection alive; clients only send pings
	for {
		var payload map[string]interface{}
		if err := c.ReadJSON(&payload); err != nil {
			break
		}
	}
}
