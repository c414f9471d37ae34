package repository

import (
	"context"

	"chathub/internal/http-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MembershipRepository interface {
	Create(membership *models.Membership) error
	Exists(ctx context.Context, userID, roomID string) (bool, error)
}

type membershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

// Create inserts a membership. Joining a room twice is a no-op rather than a
// conflict error.
func (r *membershipRepository) Create(membership *models.Membership) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(membership).Error
}

// Exists reports whether (userID, roomID) has a membership row. The row's
// existence is the whole authorization fact for private rooms.
func (r *membershipRepository) Exists(ctx context.Context, userID, roomID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Membership{}).
		Where("user_id = ? AND room_id = ?", userID, roomID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
