package models

import "time"

// Article is a blog post. Author is a snapshot of the creator's principal
// string taken at creation time; it is never re-resolved or updated.
type Article struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
