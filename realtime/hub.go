package realtime

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096

	// Per-client outbound buffer. A subscriber that falls this far behind
	// is disconnected rather than blocking the topic.
	sendBufferSize = 64
)

// Hub relays messages between subscribers of named topics. Delivery is
// best-effort: there is no backlog, and a subscriber joining late sees
// nothing prior.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[string]*Client // topic -> client id -> client
}

// Client is a single websocket subscription to one topic
type Client struct {
	id    string
	topic string
	hub   *Hub
	conn  *websocket.Conn
	send  chan []byte
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{
		topics: make(map[string]map[string]*Client),
	}
}

// ChatTopic returns the topic name for a job application's chat
func ChatTopic(applicationID string) string {
	return "chat/" + applicationID
}

// LocationTopic returns the topic name for a worker's live location
func LocationTopic(workerID string) string {
	return "location/" + workerID
}

// Subscribe attaches a websocket connection to a topic and starts its
// read/write pumps. The connection is owned by the hub from here on.
func (h *Hub) Subscribe(topic string, conn *websocket.Conn) *Client {
	client := &Client{
		id:    uuid.NewString(),
		topic: topic,
		hub:   h,
		conn:  conn,
		send:  make(chan []byte, sendBufferSize),
	}

	h.mu.Lock()
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[string]*Client)
	}
	h.topics[topic][client.id] = client
	h.mu.Unlock()

	go client.writePump()
	go client.readPump()

	return client
}

// unsubscribe removes a client and closes its outbound channel
func (h *Hub) unsubscribe(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.topics[c.topic]
	if !ok {
		return
	}
	if _, ok := clients[c.id]; !ok {
		return
	}
	delete(clients, c.id)
	close(c.send)
	if len(clients) == 0 {
		delete(h.topics, c.topic)
	}
}

// SubscriberCount returns the number of clients subscribed to a topic
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Broadcast marshals payload as JSON and sends it to every subscriber of the
// topic. Subscribers whose buffers are full are skipped.
func (h *Hub) Broadcast(topic string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal broadcast payload: %w", err)
	}
	h.BroadcastRaw(topic, data)
	return nil
}

// BroadcastRaw sends a pre-encoded frame to every subscriber of the topic
func (h *Hub) BroadcastRaw(topic string, data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.topics[topic] {
		select {
		case client.send <- data:
		default:
			// Slow subscriber, drop the frame
			log.Printf("Dropping frame for slow subscriber on topic %s", topic)
		}
	}
}

// readPump reads frames from the peer and re-broadcasts them unmodified to
// the client's topic. It exits, and unsubscribes the client, when the
// connection drops.
func (c *Client) readPump() {
	defer func() {
		c.hub.unsubscribe(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("Websocket read error on topic %s: %v", c.topic, err)
			}
			return
		}
		c.hub.BroadcastRaw(c.topic, message)
	}
}

// writePump forwards queued frames to the peer and keeps the connection
// alive with pings
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
