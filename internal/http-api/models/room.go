package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Room visibility is immutable after creation. UpdatedAt doubles as the
// last-activity timestamp: the message-creation path bumps it on every append.
type Room struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	IsPrivate bool      `gorm:"default:false;not null" json:"is_private"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`

	// Associations
	Memberships []Membership `json:"memberships,omitempty" gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE;"`
	Messages    []Message    `json:"messages,omitempty" gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE;"`
}

func (room *Room) BeforeCreate(tx *gorm.DB) (err error) {
	if room.ID == "" {
		room.ID = uuid.New().String()
	}
	return
}

func (Room) TableName() string {
	return "rooms"
}
