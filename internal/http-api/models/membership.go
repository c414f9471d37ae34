package models

import "time"

// Membership roles. Room creators get ADMIN, everyone joining later MEMBER.
const (
	RoleAdmin  = "ADMIN"
	RoleMember = "MEMBER"
)

// Membership existence is the sole authorization fact for private rooms:
// a (user_id, room_id) row means the user may read and post there.
type Membership struct {
	UserID    string    `gorm:"primaryKey;type:uuid" json:"user_id"`
	RoomID    string    `gorm:"primaryKey;type:uuid" json:"room_id"`
	Role      string    `gorm:"default:'MEMBER';not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`

	// Associations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Room Room `json:"room,omitempty" gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE;"`
}

func (Membership) TableName() string {
	return "memberships"
}
