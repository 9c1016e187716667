package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/movienight/movienight/internal/apperr"
	"github.com/movienight/movienight/internal/domain"
)

// WatchlistRepository manages the movies a user has marked to watch later.
type WatchlistRepository struct {
	pool *pgxpool.Pool
}

// Get returns the movies on a user's watchlist, newest first.
func (r *WatchlistRepository) Get(ctx context.Context, userID int64) ([]domain.Movie, error) {
	query := `
        SELECT m.id, m.title, m.about, m.language, m.country, m.duration,
               m.trailer_url, m.cover_url, m.score, m.rating, m.award, m.budget,
               m.release_date, m.director_id, m.producer_id, m.company_id,
               m.created_at, m.updated_at
        FROM watch_list w
        JOIN movies m ON m.id = w.movie_id AND m.deleted_at IS NULL
        WHERE w.user_id = $1
        ORDER BY w.created_at DESC
    `

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := []domain.Movie{}
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}
	return movies, rows.Err()
}

// Exists reports whether the movie is on the user's watchlist.
func (r *WatchlistRepository) Exists(ctx context.Context, userID, movieID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
        SELECT EXISTS (SELECT 1 FROM watch_list WHERE user_id = $1 AND movie_id = $2)
    `, userID, movieID).Scan(&exists)
	return exists, err
}

// Add puts a movie on the user's watchlist. Adding a movie that is already
// listed is reported as a conflict.
func (r *WatchlistRepository) Add(ctx context.Context, userID, movieID int64) error {
	var movieExists bool
	err := r.pool.QueryRow(ctx, `
        SELECT EXISTS (SELECT 1 FROM movies WHERE id = $1 AND deleted_at IS NULL)
    `, movieID).Scan(&movieExists)
	if err != nil {
		return err
	}
	if !movieExists {
		return ErrNotFound
	}

	_, err = r.pool.Exec(ctx, `
        INSERT INTO watch_list (user_id, movie_id) VALUES ($1, $2)
    `, userID, movieID)
	if isUniqueViolation(err) {
		return apperr.Conflict("Movie already added to the user's watchlist")
	}
	return err
}

// Remove takes a movie off the user's watchlist. Removing a movie that is
// not listed is reported as a conflict.
func (r *WatchlistRepository) Remove(ctx context.Context, userID, movieID int64) error {
	tag, err := r.pool.Exec(ctx, `
        DELETE FROM watch_list WHERE user_id = $1 AND movie_id = $2
    `, userID, movieID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.Conflict("Movie already removed from watchlist")
	}
	return nil
}
