package domain

import "time"

// User represents a wallet owner.
type User struct {
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ID             string
	Name           string
	Email          string
	HashedPassword string
	Active         bool
}
