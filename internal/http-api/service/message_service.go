package service

import (
	"context"
	"errors"
	"time"

	"chathub/internal/http-api/dto"
	"chathub/internal/http-api/models"
	"chathub/internal/http-api/repository"
	"chathub/internal/shared"

	"gorm.io/gorm"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrForbidden    = errors.New("access to this room is denied")
)

type MessageService interface {
	ListRoomMessages(ctx context.Context, roomID string, userID *string, limit int, cursor string) (*dto.MessagesPage, error)
	CreateMessage(ctx context.Context, roomID, userID, content string) (*dto.MessageResponse, error)
}

type messageService struct {
	messageRepo    repository.MessageRepository
	roomRepo       repository.RoomRepository
	membershipRepo repository.MembershipRepository
}

func NewMessageService(
	messageRepo repository.MessageRepository,
	roomRepo repository.RoomRepository,
	membershipRepo repository.MembershipRepository,
) MessageService {
	return &messageService{
		messageRepo:    messageRepo,
		roomRepo:       roomRepo,
		membershipRepo: membershipRepo,
	}
}

// ListRoomMessages returns one page of a room's messages, newest first.
//
// The access check runs before anything else touches message rows: a missing
// room is ErrRoomNotFound, a private room without a membership for the caller
// (or with no caller at all) is ErrForbidden. Only then is the cursor decoded,
// so a garbage cursor on a missing room still reports ErrRoomNotFound.
//
// No transaction spans the access check and the page fetch. A room whose
// visibility flips between the two reads may serve one page under the old
// rules; the next request re-checks. That matches read-your-writes
// expectations for a chat UI and is accepted rather than locked around.
func (s *messageService) ListRoomMessages(ctx context.Context, roomID string, userID *string, limit int, cursor string) (*dto.MessagesPage, error) {
	// 1) Room existence and visibility
	meta, err := s.roomRepo.GetMetaByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if meta.IsPrivate {
		if userID == nil {
			return nil, ErrForbidden
		}
		member, err := s.membershipRepo.Exists(ctx, *userID, roomID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, ErrForbidden
		}
	}

	// 2) Cursor handling
	var cur *shared.Cursor
	if cursor != "" {
		decoded, err := shared.DecodeCursor(cursor)
		if err != nil {
			return nil, err
		}
		cur = &decoded
	}

	// 3) Page fetch: keyset predicate, limit+1 look-ahead
	messages, hasMore, err := s.messageRepo.ListPage(ctx, roomID, cur, limit)
	if err != nil {
		return nil, err
	}

	// 4) Assemble the page
	items := make([]dto.MessageResponse, 0, len(messages))
	for i := range messages {
		items = append(items, *dto.FromModelToMessageResponse(&messages[i]))
	}

	page := &dto.MessagesPage{
		Items:      items,
		HasMore:    hasMore,
		ServerTime: time.Now().UTC(),
	}

	if hasMore && len(messages) > 0 {
		last := messages[len(messages)-1]
		token := shared.EncodeCursor(shared.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		page.NextCursor = &token
	}

	return page, nil
}

// CreateMessage appends a message to a room and bumps the room's
// last-activity timestamp. Private rooms require a membership; the handler
// already guarantees the author is authenticated.
func (s *messageService) CreateMessage(ctx context.Context, roomID, userID, content string) (*dto.MessageResponse, error) {
	meta, err := s.roomRepo.GetMetaByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if meta.IsPrivate {
		member, err := s.membershipRepo.Exists(ctx, userID, roomID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, ErrForbidden
		}
	}

	message := &models.Message{
		RoomID:  roomID,
		UserID:  userID,
		Content: content,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}

	// Reload with the author association for the response projection
	message, err = s.messageRepo.GetByID(ctx, message.ID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToMessageResponse(message), nil
}
