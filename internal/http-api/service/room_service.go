package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"chathub/internal/http-api/dto"
	"chathub/internal/http-api/models"
	"chathub/internal/http-api/repository"

	"gorm.io/gorm"
)

// listRoomsCap is a soft cap on the rooms listing; room pagination is not
// cursor-driven yet.
const listRoomsCap = 100

type RoomService interface {
	CreateRoom(ownerID string, req *dto.CreateRoomDTO) (*dto.RoomResponse, error)
	ListRooms(ctx context.Context, userID *string) (*dto.RoomsListResponse, error)
	JoinRoom(ctx context.Context, userID, roomID string) error
	IsMember(ctx context.Context, userID, roomID string) (bool, error)
}

type roomService struct {
	roomRepo       repository.RoomRepository
	membershipRepo repository.MembershipRepository
}

func NewRoomService(roomRepo repository.RoomRepository, membershipRepo repository.MembershipRepository) RoomService {
	return &roomService{
		roomRepo:       roomRepo,
		membershipRepo: membershipRepo,
	}
}

// CreateRoom creates a room and auto-joins the owner as ADMIN. The two writes
// happen in one transaction inside the repository.
func (s *roomService) CreateRoom(ownerID string, req *dto.CreateRoomDTO) (*dto.RoomResponse, error) {
	room := &models.Room{
		Name:      strings.TrimSpace(req.Name),
		IsPrivate: req.IsPrivate,
	}

	if err := s.roomRepo.Create(room, ownerID); err != nil {
		return nil, err
	}

	return dto.FromModelToRoomResponse(room), nil
}

// ListRooms returns rooms visible to the caller: public ones, plus private
// ones the caller belongs to. Each room carries a newest-message preview.
func (s *roomService) ListRooms(ctx context.Context, userID *string) (*dto.RoomsListResponse, error) {
	rooms, err := s.roomRepo.ListVisible(ctx, userID, listRoomsCap)
	if err != nil {
		return nil, err
	}

	roomIDs := make([]string, 0, len(rooms))
	for i := range rooms {
		roomIDs = append(roomIDs, rooms[i].ID)
	}

	latest, err := s.roomRepo.LatestMessages(ctx, roomIDs)
	if err != nil {
		return nil, err
	}

	items := make([]dto.RoomResponse, 0, len(rooms))
	for i := range rooms {
		item := dto.FromModelToRoomResponse(&rooms[i])
		if m, ok := latest[rooms[i].ID]; ok {
			item.LastMessage = &dto.LastMessageDTO{
				Content:   m.Content,
				CreatedAt: m.CreatedAt,
			}
		}
		items = append(items, *item)
	}

	return &dto.RoomsListResponse{
		Items:      items,
		ServerTime: time.Now().UTC(),
	}, nil
}

// JoinRoom adds the caller as a MEMBER of a public room. Private rooms have
// no self-serve join path; membership there comes from room creation only.
// Joining a room twice is a no-op.
func (s *roomService) JoinRoom(ctx context.Context, userID, roomID string) error {
	meta, err := s.roomRepo.GetMetaByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		return err
	}
	if meta.IsPrivate {
		return ErrForbidden
	}

	return s.membershipRepo.Create(&models.Membership{
		UserID: userID,
		RoomID: roomID,
		Role:   models.RoleMember,
	})
}

func (s *roomService) IsMember(ctx context.Context, userID, roomID string) (bool, error) {
	return s.membershipRepo.Exists(ctx, userID, roomID)
}
