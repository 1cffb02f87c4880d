package auth

import "github.com/google/uuid"

type (
	User struct {
		ID           uuid.UUID `json:"id"`
		Username     string    `json:"username"`
		PasswordHash string    `json:"-"` // Never serialize password hash
		Verified     bool      `json:"verified"`
	}

	LoginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	// LoginResponse carries at most one of Message and Error. An empty body means success.
	LoginResponse struct {
		Message string `json:"message,omitempty"`
		Error   string `json:"error,omitempty"`
	}

	SessionResponse struct {
		ID       uuid.UUID `json:"id"`
		Username string    `json:"username"`
	}
)
