package domain

import "time"

// TokenType distinguishes the account action a verification token proves.
type TokenType string

const (
	TokenVerifyEmail   TokenType = "verifyEmail"
	TokenResetPassword TokenType = "resetPassword"
)

// Token is a short-lived opaque secret tied to a user and an action type.
// At most one live token exists per (user, type); tokens are single-use and
// destroyed immediately after successful validation.
type Token struct {
	UserID    int64
	Token     string
	Type      TokenType
	ExpiresAt time.Time
	CreatedAt time.Time
}
