package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message rows are immutable in this service except for UpdatedAt, which may
// diverge from CreatedAt to signal an edit. The composite index matches the
// keyset pagination order (room_id, created_at DESC, id DESC).
type Message struct {
	ID        string    `gorm:"primaryKey;type:uuid;index:idx_messages_room_page,priority:3" json:"id"`
	RoomID    string    `gorm:"type:uuid;not null;index:idx_messages_room_page,priority:1" json:"room_id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Content   string    `gorm:"not null;type:text" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_messages_room_page,priority:2" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Associations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Room Room `json:"room,omitempty" gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE;"`
}

func (message *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	return
}

func (Message) TableName() string {
	return "messages"
}
