package domain

import "time"

// FilmMaker is a person involved in making movies. The role flags are not
// exclusive; one person can be both a director and a producer.
type FilmMaker struct {
	ID         int64
	FirstName  string
	LastName   string
	About      string
	Country    *string
	Gender     *string
	AvatarURL  *string
	Birthday   *time.Time
	IsWriter   bool
	IsProducer bool
	IsActor    bool
	IsDirector bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
