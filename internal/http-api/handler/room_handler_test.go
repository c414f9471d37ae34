package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"chathub/internal/http-api/dto"
	"chathub/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRoomService mocks the RoomService interface
type MockRoomService struct {
	mock.Mock
}

func (m *MockRoomService) CreateRoom(ownerID string, req *dto.CreateRoomDTO) (*dto.RoomResponse, error) {
	args := m.Called(ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RoomResponse), args.Error(1)
}

func (m *MockRoomService) ListRooms(ctx context.Context, userID *string) (*dto.RoomsListResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.RoomsListResponse), args.Error(1)
}

func (m *MockRoomService) JoinRoom(ctx context.Context, userID, roomID string) error {
	args := m.Called(ctx, userID, roomID)
	return args.Error(0)
}

func (m *MockRoomService) IsMember(ctx context.Context, userID, roomID string) (bool, error) {
	args := m.Called(ctx, userID, roomID)
	return args.Bool(0), args.Error(1)
}

func TestListRooms_AnonymousSuccess(t *testing.T) {
	mockService := new(MockRoomService)
	handler := NewRoomHandler(mockService)
	router := setupRouter()
	router.GET("/rooms", handler.List)

	listing := &dto.RoomsListResponse{
		Items: []dto.RoomResponse{
			{ID: "r1", Name: "general", LastMessage: &dto.LastMessageDTO{Content: "hello"}},
		},
		ServerTime: time.Now().UTC(),
	}
	mockService.On("ListRooms", mock.Anything, (*string)(nil)).Return(listing, nil)

	req, _ := http.NewRequest("GET", "/rooms", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.RoomsListResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	require.Len(t, response.Items, 1)
	assert.Equal(t, "general", response.Items[0].Name)
	require.NotNil(t, response.Items[0].LastMessage)
	assert.Equal(t, "hello", response.Items[0].LastMessage.Content)

	mockService.AssertExpectations(t)
}

func TestCreateRoomHandler_Success(t *testing.T) {
	mockService := new(MockRoomService)
	handler := NewRoomHandler(mockService)
	router := setupRouter()
	router.POST("/rooms", func(c *gin.Context) {
		c.Set("userID", "user-123")
	}, handler.Create)

	mockService.On("CreateRoom", "user-123", mock.MatchedBy(func(req *dto.CreateRoomDTO) bool {
		return req.Name == "general" && !req.IsPrivate
	})).Return(&dto.RoomResponse{ID: "r1", Name: "general"}, nil)

	w := postJSON(router, "/rooms", dto.CreateRoomDTO{Name: "general"})

	assert.Equal(t, http.StatusCreated, w.Code)

	var response dto.RoomResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "r1", response.ID)

	mockService.AssertExpectations(t)
}

func TestCreateRoomHandler_MissingNameRejectedByBinding(t *testing.T) {
	mockService := new(MockRoomService)
	handler := NewRoomHandler(mockService)
	router := setupRouter()
	router.POST("/rooms", func(c *gin.Context) {
		c.Set("userID", "user-123")
	}, handler.Create)

	w := postJSON(router, "/rooms", map[string]any{"is_private": true})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "CreateRoom", mock.Anything, mock.Anything)
}

func TestJoinRoomHandler_Success(t *testing.T) {
	mockService := new(MockRoomService)
	handler := NewRoomHandler(mockService)
	router := setupRouter()
	router.POST("/rooms/:id/join", func(c *gin.Context) {
		c.Set("userID", "user-123")
	}, handler.Join)

	mockService.On("JoinRoom", mock.Anything, "user-123", "r1").Return(nil)

	w := postJSON(router, "/rooms/r1/join", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestJoinRoomHandler_NotFound(t *testing.T) {
	mockService := new(MockRoomService)
	handler := NewRoomHandler(mockService)
	router := setupRouter()
	router.POST("/rooms/:id/join", func(c *gin.Context) {
		c.Set("userID", "user-123")
	}, handler.Join)

	mockService.On("JoinRoom", mock.Anything, "user-123", "missing").Return(service.ErrRoomNotFound)

	w := postJSON(router, "/rooms/missing/join", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}

func TestJoinRoomHandler_PrivateRoomForbidden(t *testing.T) {
	mockService := new(MockRoomService)
	handler := NewRoomHandler(mockService)
	router := setupRouter()
	router.POST("/rooms/:id/join", func(c *gin.Context) {
		c.Set("userID", "user-123")
	}, handler.Join)

	mockService.On("JoinRoom", mock.Anything, "user-123", "priv").Return(service.ErrForbidden)

	w := postJSON(router, "/rooms/priv/join", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockService.AssertExpectations(t)
}
