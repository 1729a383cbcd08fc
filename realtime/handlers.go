package realtime

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser clients connect from the frontend origin; auth is out of scope
	CheckOrigin: func(r *http.Request) bool { return true },
}

// LocationUpdate is a worker's live coordinate frame. It is relayed to
// subscribers and never persisted.
type LocationUpdate struct {
	WorkerID  uint    `json:"workerId"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Timestamp int64   `json:"timestamp"`
}

// ServeChat handles GET /ws/chat/:applicationId - subscribes the connection
// to the application's chat topic. Frames sent by the client are re-broadcast
// unmodified to every subscriber; persistence happens over REST.
func ServeChat(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		applicationID := c.Param("applicationId")
		if applicationID == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_REQUEST",
					"message": "Application ID is required",
				},
			})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote an HTTP error response
			log.Printf("Failed to upgrade chat connection: %v", err)
			return
		}

		hub.Subscribe(ChatTopic(applicationID), conn)
	}
}

// ServeLocation handles GET /ws/location/:workerId - subscribes the
// connection to the worker's location topic and relays inbound coordinate
// frames to all subscribers
func ServeLocation(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		workerID := c.Param("workerId")
		if workerID == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_REQUEST",
					"message": "Worker ID is required",
				},
			})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("Failed to upgrade location connection: %v", err)
			return
		}

		hub.Subscribe(LocationTopic(workerID), conn)
	}
}
