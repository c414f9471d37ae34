package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"chathub/internal/http-api/models"
	"chathub/internal/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAuthService mocks the AuthService interface
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(email, name, password string) (*models.User, error) {
	args := m.Called(email, name, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockAuthService) Login(email, password string) (string, string, *models.User, error) {
	args := m.Called(email, password)
	if args.Get(2) == nil {
		return args.String(0), args.String(1), nil, args.Error(3)
	}
	return args.String(0), args.String(1), args.Get(2).(*models.User), args.Error(3)
}

func (m *MockAuthService) RefreshAccessToken(refreshToken string) (string, string, error) {
	args := m.Called(refreshToken)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockAuthService) RevokeToken(refreshToken string) error {
	args := m.Called(refreshToken)
	return args.Error(0)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

func (m *MockAuthService) Me(userID string) (*models.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func callerEchoHandler(c *gin.Context) {
	if id := CallerID(c); id != nil {
		c.JSON(http.StatusOK, gin.H{"caller": *id})
		return
	}
	c.JSON(http.StatusOK, gin.H{"caller": nil})
}

func serve(mw gin.HandlerFunc, authHeader string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/probe", mw, callerEchoHandler)

	req, _ := http.NewRequest("GET", "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	mockAuthService := new(MockAuthService)

	w := serve(AuthMiddleware(mockAuthService), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockAuthService.AssertNotCalled(t, "ValidateToken", mock.Anything)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	mockAuthService := new(MockAuthService)

	w := serve(AuthMiddleware(mockAuthService), "NotBearer token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockAuthService.AssertNotCalled(t, "ValidateToken", mock.Anything)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	mockAuthService := new(MockAuthService)
	mockAuthService.On("ValidateToken", "good-token").
		Return(&service.Claims{UserID: "user-123", Email: "alice@example.com"}, nil)

	w := serve(AuthMiddleware(mockAuthService), "Bearer good-token")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-123")
	mockAuthService.AssertExpectations(t)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	mockAuthService := new(MockAuthService)
	mockAuthService.On("ValidateToken", "bad-token").
		Return(nil, service.ErrInvalidToken)

	w := serve(AuthMiddleware(mockAuthService), "Bearer bad-token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockAuthService.AssertExpectations(t)
}

func TestOptionalAuthMiddleware_NoHeaderIsAnonymous(t *testing.T) {
	mockAuthService := new(MockAuthService)

	w := serve(OptionalAuthMiddleware(mockAuthService), "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"caller":null`)
	mockAuthService.AssertNotCalled(t, "ValidateToken", mock.Anything)
}

func TestOptionalAuthMiddleware_ValidTokenSetsCaller(t *testing.T) {
	mockAuthService := new(MockAuthService)
	mockAuthService.On("ValidateToken", "good-token").
		Return(&service.Claims{UserID: "user-123", Email: "alice@example.com"}, nil)

	w := serve(OptionalAuthMiddleware(mockAuthService), "Bearer good-token")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-123")
	mockAuthService.AssertExpectations(t)
}

// A present-but-broken credential is a hard failure, not anonymity.
func TestOptionalAuthMiddleware_InvalidTokenStillRejected(t *testing.T) {
	mockAuthService := new(MockAuthService)
	mockAuthService.On("ValidateToken", "bad-token").
		Return(nil, service.ErrInvalidToken)

	w := serve(OptionalAuthMiddleware(mockAuthService), "Bearer bad-token")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockAuthService.AssertExpectations(t)
}
