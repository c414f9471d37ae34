package handler

import (
	"errors"
	"net/http"

	"chathub/internal/http-api/dto"
	"chathub/internal/http-api/middleware"
	"chathub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	roomService service.RoomService
}

func NewRoomHandler(roomService service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// RegisterRoutes registers room-related routes
func (h *RoomHandler) RegisterRoutes(rg *gin.RouterGroup, authService service.AuthService) {
	rooms := rg.Group("/rooms")
	{
		rooms.GET("", middleware.OptionalAuthMiddleware(authService), h.List)
		rooms.POST("", middleware.AuthMiddleware(authService), h.Create)
		rooms.POST("/:id/join", middleware.AuthMiddleware(authService), h.Join)
	}
}

// List returns rooms visible to the caller
// GET /rooms
func (h *RoomHandler) List(c *gin.Context) {
	rooms, err := h.roomService.ListRooms(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// Create creates a room owned by the caller
// POST /rooms
func (h *RoomHandler) Create(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreateRoomDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.roomService.CreateRoom(userID.(string), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, room)
}

// Join adds the caller as a member of a public room
// POST /rooms/:id/join
func (h *RoomHandler) Join(c *gin.Context) {
	roomID := c.Param("id")

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.roomService.JoinRoom(c.Request.Context(), userID.(string), roomID); err != nil {
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

	c.JSON(http.StatusOK, gin.H{"message": "joined room"})
}
