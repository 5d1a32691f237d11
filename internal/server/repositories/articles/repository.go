// Package articles declares the repository contract for blog articles.
package articles

import (
	"context"

	"github.com/ysemenov/blogkeeper/internal/server/models"
)

type Repository interface {
	// Create inserts a new article with the author snapshot already set.
	Create(ctx context.Context, article *models.Article) (*models.Article, error)

	// List returns all articles in a stable order.
	List(ctx context.Context) ([]*models.Article, error)

	// GetByID returns the article or errcode.ErrNotFound.
	GetByID(ctx context.Context, id int64) (*models.Article, error)

	// Update overwrites title and content of an existing article.
	// Returns errcode.ErrNotFound when no row matches.
	Update(ctx context.Context, article *models.Article) (*models.Article, error)

	// Delete removes the article. Returns errcode.ErrNotFound when no row
	// matches.
	Delete(ctx context.Context, id int64) error
}
