package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/movienight/movienight/internal/apperr"
	"github.com/movienight/movienight/internal/domain"
)

// UsersRepository provides persistence helpers for user accounts.
type UsersRepository struct {
	pool *pgxpool.Pool
}

const userColumns = `
    id,
    first_name,
    last_name,
    email,
    username,
    password,
    gender,
    country,
    avatar_url,
    is_admin,
    verified_email,
    created_at,
    updated_at
`

// UserCreateParams bundles the fields required to register a user.
// Password must already be hashed.
type UserCreateParams struct {
	FirstName string
	LastName  string
	Email     string
	Username  string
	Password  string
	Gender    *string
	Country   *string
	AvatarURL *string
}

// Create inserts a new user row. Duplicate username or email surfaces as a
// 409 conflict.
func (r *UsersRepository) Create(ctx context.Context, params UserCreateParams) (domain.User, error) {
	query := fmt.Sprintf(`
        INSERT INTO users (first_name, last_name, email, username, password, gender, country, avatar_url)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING %s
    `, userColumns)

	row := r.pool.QueryRow(ctx, query,
		params.FirstName, params.LastName, params.Email, params.Username,
		params.Password, params.Gender, params.Country, params.AvatarURL)
	user, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, apperr.Conflict("Username or email is already taken")
		}
		return domain.User{}, err
	}
	return user, nil
}

// GetByID fetches a live user by id.
func (r *UsersRepository) GetByID(ctx context.Context, id int64) (domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1 AND deleted_at IS NULL`, userColumns)
	return r.getOne(ctx, query, id)
}

// GetByUsername fetches a live user by username.
func (r *UsersRepository) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = $1 AND deleted_at IS NULL`, userColumns)
	return r.getOne(ctx, query, username)
}

// GetByEmail fetches a live user by email.
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1 AND deleted_at IS NULL`, userColumns)
	return r.getOne(ctx, query, email)
}

// SetVerifiedEmail marks the user's e-mail as verified.
func (r *UsersRepository) SetVerifiedEmail(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE users SET verified_email = TRUE, updated_at = now()
        WHERE id = $1 AND deleted_at IS NULL
    `, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPassword replaces the user's password hash.
func (r *UsersRepository) SetPassword(ctx context.Context, id int64, hash string) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE users SET password = $2, updated_at = now()
        WHERE id = $1 AND deleted_at IS NULL
    `, id, hash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetAdmin grants or revokes catalogue-editing privileges.
func (r *UsersRepository) SetAdmin(ctx context.Context, id int64, admin bool) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE users SET is_admin = $2, updated_at = now()
        WHERE id = $1 AND deleted_at IS NULL
    `, id, admin)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete marks a user as deleted without removing the row.
func (r *UsersRepository) SoftDelete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE users SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL
    `, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UsersRepository) getOne(ctx context.Context, query string, arg interface{}) (domain.User, error) {
	user, err := scanUser(r.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.Username,
		&user.Password,
		&user.Gender,
		&user.Country,
		&user.AvatarURL,
		&user.IsAdmin,
		&user.VerifiedEmail,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}
