package domain

import "time"

// Company is a production company that users can follow.
type Company struct {
	ID        int64
	Name      string
	About     string
	PhotoURL  *string
	Location  string
	OwnerID   int64
	Followers int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
