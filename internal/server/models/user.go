// Package models defines the persistent domain entities of the blog backend.
package models

import "time"

// User is an authenticated identity. Email is unique and doubles as the
// principal string; Username is the local part of the email, captured at
// registration.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
