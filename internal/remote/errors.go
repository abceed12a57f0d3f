package remote

import (
	"errors"
	"fmt"
)

// AuthError indicates that authentication has failed or expired.
// It is returned when the data service answers with a 401.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth error: %s", e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// APIError is a non-auth failure reported by the data service. Message
// is human-readable; callers surface it as a notification and do not
// branch on StatusCode beyond logging.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("data service error (%d): %s", e.StatusCode, e.Message)
}

// errorResponse is the standard error payload of the data service.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
