package middleware

import (
	"net/http"
	"strings"

	"chathub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware is a Gin middleware for JWT authentication of API requests.
// It checks for the presence and validity of a JWT token in the Authorization header.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		claims, err := validateBearer(authService, authHeader)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		setCallerContext(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware treats requests without an Authorization header as
// anonymous. A header that is present but invalid is still a 401; anonymity
// is the absence of credentials, not a fallback for broken ones.
func OptionalAuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		claims, err := validateBearer(authService, authHeader)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		setCallerContext(c, claims)
		c.Next()
	}
}

func validateBearer(authService service.AuthService, authHeader string) (*service.Claims, error) {
	// Extract token (format: "Bearer <token>")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, errInvalidAuthHeader
	}

	claims, err := authService.ValidateToken(parts[1])
	if err != nil {
		return nil, errInvalidAuthToken
	}
	return claims, nil
}

func setCallerContext(c *gin.Context, claims *service.Claims) {
	c.Set("claims", claims)
	c.Set("userID", claims.UserID)
	c.Set("email", claims.Email)
}

// CallerID returns the authenticated caller's id, or nil for anonymous
// requests that came through OptionalAuthMiddleware.
func CallerID(c *gin.Context) *string {
	v, exists := c.Get("userID")
	if !exists {
		return nil
	}
	id, ok := v.(string)
	if !ok {
		return nil
	}
	return &id
}
