package repository

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/movienight/movienight/internal/domain"
	"github.com/movienight/movienight/internal/store"
)

// TokensRepository manages one-time verification tokens. A user holds at
// most one live token per type; issuing a new one replaces the old.
type TokensRepository struct {
	pool *pgxpool.Pool
}

// Create stores a fresh token for the user, replacing any previous token of
// the same type.
func (r *TokensRepository) Create(ctx context.Context, userID int64, tokenType domain.TokenType, token string, ttl time.Duration) error {
	return store.InTx(ctx, r.pool, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
            DELETE FROM tokens WHERE user_id = $1 AND type = $2
        `, userID, tokenType)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, `
            INSERT INTO tokens (user_id, token, type, expires_at)
            VALUES ($1, $2, $3, $4)
        `, userID, token, tokenType, time.Now().Add(ttl))
		return err
	})
}

// Validate reports whether the given token is the user's current live token
// of the given type. Expired tokens never validate.
func (r *TokensRepository) Validate(ctx context.Context, userID int64, tokenType domain.TokenType, token string) (bool, error) {
	var stored string
	var expiresAt time.Time
	err := r.pool.QueryRow(ctx, `
        SELECT token, expires_at FROM tokens WHERE user_id = $1 AND type = $2
    `, userID, tokenType).Scan(&stored, &expiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	if time.Now().After(expiresAt) {
		return false, nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(token)) == 1, nil
}

// Destroy removes the user's token of the given type, if any.
func (r *TokensRepository) Destroy(ctx context.Context, userID int64, tokenType domain.TokenType) error {
	_, err := r.pool.Exec(ctx, `
        DELETE FROM tokens WHERE user_id = $1 AND type = $2
    `, userID, tokenType)
	return err
}
