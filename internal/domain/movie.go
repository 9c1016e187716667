package domain

import "time"

// Movie represents the canonical movie entity in the catalogue.
// Rating is the denormalized mean of all user ratings and is maintained
// incrementally by the ratings repository. Score is a popularity counter
// managed by catalogue editors.
type Movie struct {
	ID          int64
	Title       string
	About       string
	Language    string
	Country     string
	Duration    int
	TrailerURL  *string
	CoverURL    *string
	Score       int64
	Rating      float64
	Award       *string
	Budget      *int64
	ReleaseDate *time.Time
	DirectorID  *int64
	ProducerID  *int64
	CompanyID   *int64
	Genres      []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MovieDetails augments a movie with per-viewer flags for authenticated reads.
type MovieDetails struct {
	Movie
	InWatchlist bool
	Rated       bool
	Rate        int16
}
