package domain

import "time"

// UserRating is a single user's rating for a movie, an integer in [0, 10].
// At most one row exists per (user, movie); re-rating updates it in place.
type UserRating struct {
	UserID    int64
	MovieID   int64
	Rate      int16
	CreatedAt time.Time
	UpdatedAt time.Time
}
