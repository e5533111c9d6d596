package session

import "github.com/fairway/fairway-api/internal/pkg/authgw"

// LoginRequest carries the opaque gateway token.
type LoginRequest struct {
	Token string `json:"token" validate:"required"`
}

// LoginResponse carries the issued session token and the member profile.
type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresIn int64       `json:"expires_in"`
	User      authgw.User `json:"user"`
}

// MeResponse carries the member identity behind the session token.
type MeResponse struct {
	MemberKey int64  `json:"member_key"`
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
}
