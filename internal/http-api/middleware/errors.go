package middleware

import "errors"

var (
	errInvalidAuthHeader = errors.New("invalid authorization header format")
	errInvalidAuthToken  = errors.New("invalid token")
)
