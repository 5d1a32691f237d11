package models

import "time"

// Comment belongs to exactly one article. Like Article.Author, the Author
// field is an identity snapshot. Comments are immutable once created.
type Comment struct {
	ID        int64     `json:"id"`
	ArticleID int64     `json:"articleId"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
