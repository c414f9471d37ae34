package repository

import (
	"context"

	"chathub/internal/http-api/models"

	"gorm.io/gorm"
)

// RoomMeta carries just enough of a room to authorize a request: existence
// and visibility. Fetching only these two columns keeps the access check
// cheap and avoids exposing anything else on unauthorized paths.
type RoomMeta struct {
	ID        string
	IsPrivate bool
}

type RoomRepository interface {
	Create(room *models.Room, ownerID string) error
	GetMetaByID(ctx context.Context, id string) (*RoomMeta, error)
	ListVisible(ctx context.Context, userID *string, limit int) ([]models.Room, error)
	LatestMessages(ctx context.Context, roomIDs []string) (map[string]models.Message, error)
}

type roomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

// Create inserts the room together with the owner's ADMIN membership in one
// transaction so a room can never exist without its owner being a member.
func (r *roomRepository) Create(room *models.Room, ownerID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(room).Error; err != nil {
			return err
		}
		membership := &models.Membership{
			UserID: ownerID,
			RoomID: room.ID,
			Role:   models.RoleAdmin,
		}
		return tx.Create(membership).Error
	})
}

func (r *roomRepository) GetMetaByID(ctx context.Context, id string) (*RoomMeta, error) {
	var meta RoomMeta
	err := r.db.WithContext(ctx).
		Model(&models.Room{}).
		Select("id", "is_private").
		Where("id = ?", id).
		Take(&meta).Error
	if err != nil {
		return nil, err
	}
	return &meta, nil
}

// ListVisible returns public rooms plus, for an authenticated caller, the
// private rooms they are a member of. Ordered by last activity.
func (r *roomRepository) ListVisible(ctx context.Context, userID *string, limit int) ([]models.Room, error) {
	var rooms []models.Room

	q := r.db.WithContext(ctx).
		Order("updated_at DESC, id DESC").
		Limit(limit)

	if userID != nil {
		memberRooms := r.db.Model(&models.Membership{}).
			Select("room_id").
			Where("user_id = ?", *userID)
		q = q.Where("is_private = ? OR id IN (?)", false, memberRooms)
	} else {
		q = q.Where("is_private = ?", false)
	}

	if err := q.Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

// LatestMessages fetches the newest message per room in a single query
// (DISTINCT ON is Postgres-specific), keyed by room id. Rooms without
// messages are simply absent from the map.
func (r *roomRepository) LatestMessages(ctx context.Context, roomIDs []string) (map[string]models.Message, error) {
	latest := make(map[string]models.Message, len(roomIDs))
	if len(roomIDs) == 0 {
		return latest, nil
	}

	var messages []models.Message
	err := r.db.WithContext(ctx).
		Raw(`SELECT DISTINCT ON (room_id) * FROM messages WHERE room_id IN ? ORDER BY room_id, created_at DESC, id DESC`, roomIDs).
		Scan(&messages).Error
	if err != nil {
		return nil, err
	}

	for _, m := range messages {
		latest[m.RoomID] = m
	}
	return latest, nil
}
