package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/movienight/movienight/internal/apperr"
	"github.com/movienight/movienight/internal/domain"
	"github.com/movienight/movienight/internal/store"
)

// ReviewsRepository provides persistence helpers for reviews and the reaction
// ledger that keeps the like/dislike counters consistent.
type ReviewsRepository struct {
	pool *pgxpool.Pool
}

const reviewColumns = `
    user_id,
    movie_id,
    description,
    spoiler,
    recommended,
    likes,
    dislikes,
    fav_actor_id,
    created_at,
    updated_at
`

// ReviewCreateParams bundles the fields required to submit a review.
type ReviewCreateParams struct {
	UserID      int64
	MovieID     int64
	Description string
	Spoiler     bool
	Recommended bool
	FavActorID  *int64
}

// Create inserts a new review. The movie must exist, and a second review for
// the same (user, movie) pair is a client error.
func (r *ReviewsRepository) Create(ctx context.Context, params ReviewCreateParams) error {
	var movieExists bool
	err := r.pool.QueryRow(ctx, `
        SELECT EXISTS (SELECT 1 FROM movies WHERE id = $1 AND deleted_at IS NULL)
    `, params.MovieID).Scan(&movieExists)
	if err != nil {
		return err
	}
	if !movieExists {
		return ErrNotFound
	}

	_, err = r.pool.Exec(ctx, `
        INSERT INTO reviews (user_id, movie_id, description, spoiler, recommended, fav_actor_id)
        VALUES ($1,$2,$3,$4,$5,$6)
    `, params.UserID, params.MovieID, params.Description, params.Spoiler,
		params.Recommended, params.FavActorID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.BadRequest("Review already exists")
		}
		return err
	}
	return nil
}

// Get fetches a live review by its (user, movie) key.
func (r *ReviewsRepository) Get(ctx context.Context, userID, movieID int64) (domain.Review, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM reviews WHERE user_id = $1 AND movie_id = $2 AND deleted_at IS NULL
    `, reviewColumns)
	review, err := scanReview(r.pool.QueryRow(ctx, query, userID, movieID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Review{}, ErrNotFound
		}
		return domain.Review{}, err
	}
	return review, nil
}

// Exists reports whether a live review exists for the (user, movie) pair.
func (r *ReviewsRepository) Exists(ctx context.Context, userID, movieID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
        SELECT EXISTS (
            SELECT 1 FROM reviews WHERE user_id = $1 AND movie_id = $2 AND deleted_at IS NULL
        )
    `, userID, movieID).Scan(&exists)
	return exists, err
}

// Update replaces the review's content fields, leaving counters untouched.
func (r *ReviewsRepository) Update(ctx context.Context, review domain.Review) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE reviews
        SET description = $3, spoiler = $4, recommended = $5, fav_actor_id = $6, updated_at = now()
        WHERE user_id = $1 AND movie_id = $2 AND deleted_at IS NULL
    `, review.UserID, review.MovieID, review.Description, review.Spoiler,
		review.Recommended, review.FavActorID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete marks a review as deleted without removing the row.
func (r *ReviewsRepository) SoftDelete(ctx context.Context, userID, movieID int64) error {
	tag, err := r.pool.Exec(ctx, `
        UPDATE reviews SET deleted_at = now()
        WHERE user_id = $1 AND movie_id = $2 AND deleted_at IS NULL
    `, userID, movieID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ForMovie returns all live reviews of one movie, newest first.
func (r *ReviewsRepository) ForMovie(ctx context.Context, movieID int64) ([]domain.Review, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM reviews WHERE movie_id = $1 AND deleted_at IS NULL
        ORDER BY created_at DESC
    `, reviewColumns)
	return r.list(ctx, query, movieID)
}

// ForUser returns all live reviews written by one user, newest first.
func (r *ReviewsRepository) ForUser(ctx context.Context, userID int64) ([]domain.Review, error) {
	query := fmt.Sprintf(`
        SELECT %s FROM reviews WHERE user_id = $1 AND deleted_at IS NULL
        ORDER BY created_at DESC
    `, reviewColumns)
	return r.list(ctx, query, userID)
}

// ReactionResult reports the outcome of a reaction transition.
type ReactionResult struct {
	State    domain.ReactionState
	Likes    int
	Dislikes int
	Message  string
}

// React applies one step of the reaction state machine for a reactor against
// the review identified by (ownerID, movieID). The reaction row and the
// review's counters are mutated in one transaction holding a row lock on the
// review, so the counters always equal the reaction-row counts.
//
// Transitions: no reaction + like -> liked; liked + like -> removed;
// disliked + like -> liked (and symmetrically for dislikes).
func (r *ReviewsRepository) React(ctx context.Context, reactorID, ownerID, movieID int64, wantsLike bool) (ReactionResult, error) {
	var result ReactionResult

	err := store.InTx(ctx, r.pool, func(tx pgx.Tx) error {
		var likes, dislikes int
		err := tx.QueryRow(ctx, `
            SELECT likes, dislikes FROM reviews
            WHERE user_id = $1 AND movie_id = $2 AND deleted_at IS NULL
            FOR UPDATE
        `, ownerID, movieID).Scan(&likes, &dislikes)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("lock review: %w", err)
		}

		state := domain.ReactionNone
		var liked bool
		err = tx.QueryRow(ctx, `
            SELECT liked FROM review_reactions
            WHERE reactor_id = $1 AND user_id = $2 AND movie_id = $3
        `, reactorID, ownerID, movieID).Scan(&liked)
		switch {
		case err == nil && liked:
			state = domain.ReactionLiked
		case err == nil:
			state = domain.ReactionDisliked
		case errors.Is(err, pgx.ErrNoRows):
		default:
			return fmt.Errorf("fetch reaction: %w", err)
		}

		switch {
		case state == domain.ReactionNone:
			if _, err := tx.Exec(ctx, `
                INSERT INTO review_reactions (reactor_id, user_id, movie_id, liked)
                VALUES ($1,$2,$3,$4)
            `, reactorID, ownerID, movieID, wantsLike); err != nil {
				return fmt.Errorf("insert reaction: %w", err)
			}
			if wantsLike {
				likes++
				result = ReactionResult{State: domain.ReactionLiked, Message: "Liked review successfully"}
			} else {
				dislikes++
				result = ReactionResult{State: domain.ReactionDisliked, Message: "Disliked review successfully"}
			}

		case state == domain.ReactionLiked && wantsLike:
			if err := r.removeReaction(ctx, tx, reactorID, ownerID, movieID); err != nil {
				return err
			}
			likes--
			result = ReactionResult{State: domain.ReactionNone, Message: "Removed like on review successfully"}

		case state == domain.ReactionDisliked && !wantsLike:
			if err := r.removeReaction(ctx, tx, reactorID, ownerID, movieID); err != nil {
				return err
			}
			dislikes--
			result = ReactionResult{State: domain.ReactionNone, Message: "Removed dislike on review successfully"}

		default:
			// Polarity flip: liked -> disliked or disliked -> liked.
			if _, err := tx.Exec(ctx, `
                UPDATE review_reactions SET liked = $4
                WHERE reactor_id = $1 AND user_id = $2 AND movie_id = $3
            `, reactorID, ownerID, movieID, wantsLike); err != nil {
				return fmt.Errorf("update reaction: %w", err)
			}
			if wantsLike {
				likes++
				dislikes--
				result = ReactionResult{State: domain.ReactionLiked, Message: "Liked review successfully"}
			} else {
				likes--
				dislikes++
				result = ReactionResult{State: domain.ReactionDisliked, Message: "Disliked review successfully"}
			}
		}

		if _, err := tx.Exec(ctx, `
            UPDATE reviews SET likes = $3, dislikes = $4, updated_at = now()
            WHERE user_id = $1 AND movie_id = $2
        `, ownerID, movieID, likes, dislikes); err != nil {
			return fmt.Errorf("persist counters: %w", err)
		}

		result.Likes = likes
		result.Dislikes = dislikes
		return nil
	})
	if err != nil {
		return ReactionResult{}, err
	}
	return result, nil
}

func (r *ReviewsRepository) removeReaction(ctx context.Context, tx pgx.Tx, reactorID, ownerID, movieID int64) error {
	if _, err := tx.Exec(ctx, `
        DELETE FROM review_reactions
        WHERE reactor_id = $1 AND user_id = $2 AND movie_id = $3
    `, reactorID, ownerID, movieID); err != nil {
		return fmt.Errorf("delete reaction: %w", err)
	}
	return nil
}

func (r *ReviewsRepository) list(ctx context.Context, query string, arg int64) ([]domain.Review, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]domain.Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}

func scanReview(row pgx.Row) (domain.Review, error) {
	var review domain.Review
	err := row.Scan(
		&review.UserID,
		&review.MovieID,
		&review.Description,
		&review.Spoiler,
		&review.Recommended,
		&review.Likes,
		&review.Dislikes,
		&review.FavActorID,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	return review, err
}
