package handlers

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/barfly/server/internal/bus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// clientFrame is what a connected client sends to manage its venue
// subscriptions.
type clientFrame struct {
	Action  string `json:"action"` // "subscribe" or "unsubscribe"
	VenueID string `json:"venueId"`
}

// wsClient owns one live connection and the venue subscriptions opened over
// it. All subscriptions die with the connection.
type wsClient struct {
	conn   *websocket.Conn
	bus    *bus.Bus
	logger *slog.Logger

	send chan bus.Event
	done chan struct{}

	mu   sync.Mutex
	subs map[string]*bus.Subscription
}

// LiveEvents upgrades the connection and serves the per-connection
// real-time channel.
func LiveEvents(eventBus *bus.Bus, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Error("websocket upgrade failed", "error", err)
			return
		}

		client := &wsClient{
			conn:   conn,
			bus:    eventBus,
			logger: logger,
			send:   make(chan bus.Event, 256),
			done:   make(chan struct{}),
			subs:   make(map[string]*bus.Subscription),
		}

		go client.writePump()
		client.readPump()
	}
}

// readPump consumes subscribe/unsubscribe frames until the connection drops,
// then tears everything down.
func (c *wsClient) readPump() {
	defer func() {
		close(c.done)
		c.unsubscribeAll()
		c.conn.Close()
	}()

	for {
		var frame clientFrame
		if err := c.conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("websocket read failed", "error", err)
			}
			return
		}

		switch frame.Action {
		case "subscribe":
			c.subscribe(frame.VenueID)
		case "unsubscribe":
			c.unsubscribe(frame.VenueID)
		}
	}
}

func (c *wsClient) writePump() {
	defer c.conn.Close()

	for {
		select {
		case event := <-c.send:
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}
		case <-c.done:
			c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}
	}
}

func (c *wsClient) subscribe(venueID string) {
	if venueID == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.subs[venueID]; exists {
		return
	}
	sub := c.bus.Subscribe(venueID)
	c.subs[venueID] = sub
	go c.forward(sub)
}

func (c *wsClient) unsubscribe(venueID string) {
	c.mu.Lock()
	sub, exists := c.subs[venueID]
	if exists {
		delete(c.subs, venueID)
	}
	c.mu.Unlock()
	if exists {
		c.bus.Unsubscribe(sub)
	}
}

func (c *wsClient) unsubscribeAll() {
	c.mu.Lock()
	subs := make([]*bus.Subscription, 0, len(c.subs))
	for venueID, sub := range c.subs {
		subs = append(subs, sub)
		delete(c.subs, venueID)
	}
	c.mu.Unlock()
	for _, sub := range subs {
		c.bus.Unsubscribe(sub)
	}
}

// forward copies one subscription's feed onto the connection's send channel.
// It exits when the subscription is closed or the connection is done.
func (c *wsClient) forward(sub *bus.Subscription) {
	for {
		select {
		case event, ok := <-sub.Events():
			if !ok {
				return
			}
			select {
			case c.send <- event:
			case <-c.done:
				return
			}
		case <-c.done:
			return
		}
	}
}
