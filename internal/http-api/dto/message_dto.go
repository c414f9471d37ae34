package dto

import (
	"time"

	"chathub/internal/http-api/models"
)

// CreateMessageDTO for posting a message to a room
type CreateMessageDTO struct {
	Content string `json:"content" binding:"required,min=1,max=5000"`
}

// ListMessagesQuery binds the pagination query parameters.
// The cursor gets a cheap shape check here (base64, bounded length); the
// decoder validates the actual structure at use time.
type ListMessagesQuery struct {
	Limit  int    `form:"limit,default=30" binding:"min=1,max=100"`
	Cursor string `form:"cursor" binding:"omitempty,base64,min=8,max=512"`
}

// MessageAuthorDTO: author projection, id and display name only
type MessageAuthorDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MessageResponse for returning a single message in a page
type MessageResponse struct {
	ID        string           `json:"id"`
	MessageID string           `json:"message_id"` // convenience alias of id
	RoomID    string           `json:"room_id"`
	Content   string           `json:"content"`
	CreatedAt time.Time        `json:"created_at"`
	EditedAt  *time.Time       `json:"edited_at"` // null unless updated_at moved past created_at
	Author    MessageAuthorDTO `json:"author"`
}

// MessagesPage is one page of a room's messages, newest first.
type MessagesPage struct {
	Items      []MessageResponse `json:"items"`
	NextCursor *string           `json:"next_cursor"`
	HasMore    bool              `json:"has_more"`
	ServerTime time.Time         `json:"server_time"` // advisory, not part of the ordering contract
}

// FromModelToMessageResponse converts a Message model to MessageResponse DTO
func FromModelToMessageResponse(message *models.Message) *MessageResponse {
	var editedAt *time.Time
	if message.UpdatedAt.After(message.CreatedAt) {
		t := message.UpdatedAt
		editedAt = &t
	}

	return &MessageResponse{
		ID:        message.ID,
		MessageID: message.ID,
		RoomID:    message.RoomID,
		Content:   message.Content,
		CreatedAt: message.CreatedAt,
		EditedAt:  editedAt,
		Author: MessageAuthorDTO{
			ID:   message.User.ID,
			Name: message.User.Name,
		},
	}
}
