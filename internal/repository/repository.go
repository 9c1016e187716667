package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/movienight/movienight/internal/store"
)

// ErrNotFound indicates the requested entity does not exist or is soft-deleted.
var ErrNotFound = errors.New("repository: not found")

// Repository aggregates all domain-specific repositories.
type Repository struct {
	Users      *UsersRepository
	Movies     *MoviesRepository
	Companies  *CompaniesRepository
	FilmMakers *FilmMakersRepository
	Reviews    *ReviewsRepository
	Ratings    *RatingsRepository
	Watchlist  *WatchlistRepository
	Tokens     *TokensRepository
}

// New constructs a Repository backed by the provided store.
func New(st *store.Store) *Repository {
	return NewWithPool(st.Pool())
}

// NewWithPool allows constructing repositories directly from a pgx pool.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{
		Users:      &UsersRepository{pool: pool},
		Movies:     &MoviesRepository{pool: pool},
		Companies:  &CompaniesRepository{pool: pool},
		FilmMakers: &FilmMakersRepository{pool: pool},
		Reviews:    &ReviewsRepository{pool: pool},
		Ratings:    &RatingsRepository{pool: pool},
		Watchlist:  &WatchlistRepository{pool: pool},
		Tokens:     &TokensRepository{pool: pool},
	}
}

// isUniqueViolation reports whether err is a Postgres duplicate-key error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
