// Package comments declares the repository contract for article comments.
// Comments are write-once; there is no update or delete.
package comments

import (
	"context"

	"github.com/ysemenov/blogkeeper/internal/server/models"
)

type Repository interface {
	// Create inserts a new comment bound to an existing article. A missing
	// parent article yields errcode.ErrArticleNotFound.
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)

	// ListByArticle returns the comments of one article, oldest first.
	ListByArticle(ctx context.Context, articleID int64) ([]*models.Comment, error)
}
