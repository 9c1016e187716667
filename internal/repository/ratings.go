package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/movienight/movienight/internal/domain"
	"github.com/movienight/movienight/internal/store"
)

// RatingsRepository maintains per-user ratings and the denormalized mean on
// the movie row.
type RatingsRepository struct {
	pool *pgxpool.Pool
}

// RateMovie records a user's rating for a movie and shifts the movie's stored
// mean incrementally, without rescanning all ratings. The whole read-modify-
// write sequence runs in one transaction holding a row lock on the movie, so
// concurrent ratings from different users serialize and the mean invariant
// holds. Returns the new mean.
func (r *RatingsRepository) RateMovie(ctx context.Context, userID, movieID int64, rate int16) (float64, error) {
	var newAvg float64

	err := store.InTx(ctx, r.pool, func(tx pgx.Tx) error {
		var current float64
		err := tx.QueryRow(ctx, `
            SELECT rating FROM movies WHERE id = $1 AND deleted_at IS NULL FOR UPDATE
        `, movieID).Scan(&current)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("lock movie: %w", err)
		}

		var count int64
		if err := tx.QueryRow(ctx, `
            SELECT COUNT(*) FROM user_ratings WHERE movie_id = $1
        `, movieID).Scan(&count); err != nil {
			return fmt.Errorf("count ratings: %w", err)
		}

		// The stored mean times the rating count reconstructs the running
		// total without a second scan of user_ratings.
		total := current * float64(count)

		var previous int16
		err = tx.QueryRow(ctx, `
            SELECT rate FROM user_ratings WHERE user_id = $1 AND movie_id = $2 FOR UPDATE
        `, userID, movieID).Scan(&previous)
		switch {
		case err == nil:
			total += float64(rate - previous)
			newAvg = total / float64(count)
			if _, err := tx.Exec(ctx, `
                UPDATE user_ratings SET rate = $3, updated_at = now()
                WHERE user_id = $1 AND movie_id = $2
            `, userID, movieID, rate); err != nil {
				return fmt.Errorf("update rating: %w", err)
			}
		case errors.Is(err, pgx.ErrNoRows):
			total += float64(rate)
			newAvg = total / float64(count+1)
			if _, err := tx.Exec(ctx, `
                INSERT INTO user_ratings (user_id, movie_id, rate) VALUES ($1, $2, $3)
            `, userID, movieID, rate); err != nil {
				return fmt.Errorf("insert rating: %w", err)
			}
		default:
			return fmt.Errorf("fetch previous rating: %w", err)
		}

		if _, err := tx.Exec(ctx, `
            UPDATE movies SET rating = $2, updated_at = now() WHERE id = $1
        `, movieID, newAvg); err != nil {
			return fmt.Errorf("persist movie rating: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newAvg, nil
}

// Get retrieves a rating for a specific user/movie combination.
func (r *RatingsRepository) Get(ctx context.Context, userID, movieID int64) (domain.UserRating, error) {
	var rating domain.UserRating
	err := r.pool.QueryRow(ctx, `
        SELECT user_id, movie_id, rate, created_at, updated_at
        FROM user_ratings
        WHERE user_id = $1 AND movie_id = $2
    `, userID, movieID).Scan(
		&rating.UserID, &rating.MovieID, &rating.Rate, &rating.CreatedAt, &rating.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.UserRating{}, ErrNotFound
		}
		return domain.UserRating{}, err
	}
	return rating, nil
}

// ForMovie returns all ratings recorded for one movie, newest first.
func (r *RatingsRepository) ForMovie(ctx context.Context, movieID int64) ([]domain.UserRating, error) {
	return r.list(ctx, `
        SELECT user_id, movie_id, rate, created_at, updated_at
        FROM user_ratings WHERE movie_id = $1 ORDER BY created_at DESC
    `, movieID)
}

// ForUser returns all movies a user rated, newest first.
func (r *RatingsRepository) ForUser(ctx context.Context, userID int64) ([]domain.UserRating, error) {
	return r.list(ctx, `
        SELECT user_id, movie_id, rate, created_at, updated_at
        FROM user_ratings WHERE user_id = $1 ORDER BY created_at DESC
    `, userID)
}

func (r *RatingsRepository) list(ctx context.Context, query string, arg int64) ([]domain.UserRating, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := make([]domain.UserRating, 0)
	for rows.Next() {
		var rating domain.UserRating
		if err := rows.Scan(&rating.UserID, &rating.MovieID, &rating.Rate,
			&rating.CreatedAt, &rating.UpdatedAt); err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}
	return ratings, rows.Err()
}
