package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/movienight/movienight/internal/domain"
)

const jwtLifetime = 24 * time.Hour

// Claims is the decoded identity carried by an access token.
type Claims struct {
	UserID   int64
	Username string
	IsAdmin  bool
}

// JWT signs and verifies HS256 access tokens.
type JWT struct {
	secret []byte
}

// NewJWT constructs a signer around the shared secret.
func NewJWT(secret string) *JWT {
	return &JWT{secret: []byte(secret)}
}

// Issue creates a signed access token for the user.
func (j *JWT) Issue(user domain.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"admin":    user.IsAdmin,
		"exp":      time.Now().Add(jwtLifetime).Unix(),
	})

	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a signed token, returning its claims.
func (j *JWT) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	userID, ok := mapClaims["user_id"].(float64)
	if !ok {
		return nil, fmt.Errorf("missing user_id claim")
	}
	username, _ := mapClaims["username"].(string)
	admin, _ := mapClaims["admin"].(bool)

	return &Claims{
		UserID:   int64(userID),
		Username: username,
		IsAdmin:  admin,
	}, nil
}
