package models

import "time"

// RefreshToken is the single refresh credential of a user. UserID carries a
// unique constraint, so rotation overwrites the token value in place and the
// row identity is stable across rotations.
type RefreshToken struct {
	ID        int64
	UserID    string
	Token     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
