package domain

import "time"

// User represents an account holder. Password always carries the bcrypt hash,
// never the plaintext.
type User struct {
	ID            int64
	FirstName     string
	LastName      string
	Email         string
	Username      string
	Password      string
	Gender        *string
	Country       *string
	AvatarURL     *string
	IsAdmin       bool
	VerifiedEmail bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
