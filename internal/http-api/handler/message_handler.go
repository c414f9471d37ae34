package handler

import (
	"errors"
	"net/http"

	"chathub/internal/http-api/dto"
	"chathub/internal/http-api/middleware"
	"chathub/internal/http-api/service"
	"chathub/internal/shared"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	messageService service.MessageService
}

func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// RegisterRoutes registers message-related routes
func (h *MessageHandler) RegisterRoutes(rg *gin.RouterGroup, authService service.AuthService) {
	messages := rg.Group("/rooms/:id/messages")
	{
		// Listing works anonymously for public rooms; posting never does
		messages.GET("", middleware.OptionalAuthMiddleware(authService), h.List)
		messages.POST("", middleware.AuthMiddleware(authService), h.Create)
	}
}

// List returns one page of a room's messages using cursor pagination
// GET /rooms/:id/messages?limit=30&cursor=...
func (h *MessageHandler) List(c *gin.Context) {
	roomID := c.Param("id")

	var q dto.ListMessagesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := h.messageService.ListRoomMessages(c.Request.Context(), roomID, middleware.CallerID(c), q.Limit, q.Cursor)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		case errors.Is(err, shared.ErrInvalidCursor):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cursor"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, page)
}

// Create posts a new message to a room
// POST /rooms/:id/messages
func (h *MessageHandler) Create(c *gin.Context) {
	roomID := c.Param("id")

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreateMessageDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.messageService.CreateMessage(c.Request.Context(), roomID, userID.(string), req.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		case errors.Is(err, service.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, message)
}
