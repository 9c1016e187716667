package domain

import "time"

// Review is a user's write-up for a movie, unique per (user, movie).
// Likes and Dislikes are running counters kept in sync with the
// review_reactions rows by the reviews repository.
type Review struct {
	UserID      int64
	MovieID     int64
	Description string
	Spoiler     bool
	Recommended bool
	Likes       int
	Dislikes    int
	FavActorID  *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ReactionState is a reactor's current stance on a review.
type ReactionState int

const (
	ReactionNone ReactionState = iota
	ReactionLiked
	ReactionDisliked
)
