package dto

import (
	"time"

	"chathub/internal/http-api/models"
)

// CreateRoomDTO for creating a room. Visibility is fixed at creation time.
type CreateRoomDTO struct {
	Name      string `json:"name" binding:"required,min=1,max=64"`
	IsPrivate bool   `json:"is_private"`
}

// LastMessageDTO is the newest-message preview embedded in a room listing.
type LastMessageDTO struct {
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// RoomResponse for returning room information
type RoomResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	IsPrivate   bool            `json:"is_private"`
	UpdatedAt   time.Time       `json:"updated_at"`
	LastMessage *LastMessageDTO `json:"last_message,omitempty"`
}

// RoomsListResponse wraps the visible-rooms listing
type RoomsListResponse struct {
	Items      []RoomResponse `json:"items"`
	ServerTime time.Time      `json:"server_time"`
}

// FromModelToRoomResponse converts a Room model to RoomResponse DTO
func FromModelToRoomResponse(room *models.Room) *RoomResponse {
	return &RoomResponse{
		ID:        room.ID,
		Name:      room.Name,
		IsPrivate: room.IsPrivate,
		UpdatedAt: room.UpdatedAt,
	}
}
