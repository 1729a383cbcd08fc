package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/osi-labs/shramsaathi-api/config"
	"github.com/osi-labs/shramsaathi-api/models"
	"github.com/osi-labs/shramsaathi-api/realtime"
)

var chatHub *realtime.Hub

// SetChatHub wires the realtime hub used to fan out persisted messages
func SetChatHub(hub *realtime.Hub) {
	chatHub = hub
}

// SendChatMessageRequest represents the request body for sending a chat message
type SendChatMessageRequest struct {
	SenderID      uint   `json:"senderId" binding:"required"`
	ReceiverID    uint   `json:"receiverId" binding:"required"`
	ApplicationID uint   `json:"applicationId" binding:"required"`
	Message       string `json:"message" binding:"required"`
}

// SendChatMessage handles POST /api/chat - persists a message and broadcasts
// it to the application's chat topic. Broadcast is best-effort: a failure is
// logged and the request still succeeds for the persisted message.
func SendChatMessage(c *gin.Context) {
	// Parse request body
	var req SendChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	// Timestamp and read flag are server-assigned
	message := models.ChatMessage{
		SenderID:      req.SenderID,
		ReceiverID:    req.ReceiverID,
		ApplicationID: req.ApplicationID,
		Message:       req.Message,
		Read:          false,
		SentAt:        time.Now(),
	}

	db := config.GetDB()
	if err := db.Create(&message).Error; err != nil {
		c.Error(err)
		return
	}

	// Fan out to live subscribers of this application's chat
	if chatHub != nil {
		topic := realtime.ChatTopic(strconv.FormatUint(uint64(message.ApplicationID), 10))
		if err := chatHub.Broadcast(topic, message); err != nil {
			log.Printf("Failed to broadcast chat message %d: %v", message.ID, err)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    message,
	})
}

// ListChatMessages handles GET /api/chat/:applicationId - returns all
// messages for an application in send order
func ListChatMessages(c *gin.Context) {
	db := config.GetDB()

	var messages []models.ChatMessage
	if err := db.Where("application_id = ?", c.Param("applicationId")).
		Order("sent_at ASC").
		Find(&messages).Error; err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    messages,
	})
}

// MarkChatMessageRead handles PUT /api/chat/:id/read - flags a message as read
func MarkChatMessageRead(c *gin.Context) {
	db := config.GetDB()

	var message models.ChatMessage
	if err := db.First(&message, c.Param("id")).Error; err != nil {
		c.Error(err)
		return
	}

	message.Read = true
	if err := db.Save(&message).Error; err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    message,
	})
}
