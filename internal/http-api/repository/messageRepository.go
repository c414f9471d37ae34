package repository

import (
	"context"

	"chathub/internal/http-api/models"
	"chathub/internal/shared"

	"gorm.io/gorm"
)

// Page size bounds. Handlers validate the limit too; the repository clamps
// again so no caller can bypass the bound.
const (
	minPageSize = 1
	maxPageSize = 100
)

type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id string) (*models.Message, error)
	ListPage(ctx context.Context, roomID string, cursor *shared.Cursor, limit int) ([]models.Message, bool, error)
}

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

// Create appends a message and bumps the room's last-activity timestamp in
// the same transaction.
func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(message).Error; err != nil {
			return err
		}
		return tx.Model(&models.Room{}).
			Where("id = ?", message.RoomID).
			Update("updated_at", message.CreatedAt).Error
	})
}

func (r *messageRepository) GetByID(ctx context.Context, id string) (*models.Message, error) {
	var message models.Message
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&message, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// ListPage retrieves one page of a room's messages with keyset (seek)
// pagination, newest first. A cursor restricts the result to rows strictly
// before that position in the (created_at DESC, id DESC) order, so already
// returned rows never reappear while the client pages backward in time.
//
// limit+1 rows are fetched; the look-ahead row only answers "is there more"
// and is discarded, which is cheaper and more exact than a second count
// query under the same predicate.
func (r *messageRepository) ListPage(ctx context.Context, roomID string, cursor *shared.Cursor, limit int) ([]models.Message, bool, error) {
	limit = clampLimit(limit)

	q := r.db.WithContext(ctx).
		Where("room_id = ?", roomID)

	if cursor != nil {
		q = q.Where("created_at < ? OR (created_at = ? AND id < ?)",
			cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var messages []models.Message
	err := q.Preload("User").
		Order("created_at DESC, id DESC").
		Limit(limit + 1).
		Find(&messages).Error
	if err != nil {
		return nil, false, err
	}

	hasMore := len(messages) > limit
	if hasMore {
		messages = messages[:limit]
	}
	return messages, hasMore, nil
}

func clampLimit(limit int) int {
	if limit < minPageSize {
		return minPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}
