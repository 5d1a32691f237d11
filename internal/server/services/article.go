package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/ysemenov/blogkeeper/internal/dbx"
	"github.com/ysemenov/blogkeeper/internal/errcode"
	"github.com/ysemenov/blogkeeper/internal/server/auth"
	"github.com/ysemenov/blogkeeper/internal/server/models"
	"github.com/ysemenov/blogkeeper/internal/server/repositories/repomanager"
)

// maxTitleLen bounds article titles, in runes.
const maxTitleLen = 10

// ArticleService orchestrates article CRUD. Create snapshots the author;
// Update and Delete verify that the caller's principal matches the snapshot
// before touching the row.
type ArticleService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewArticleService constructs an ArticleService.
func NewArticleService(db *sql.DB, m repomanager.RepositoryManager) *ArticleService {
	return &ArticleService{db: db, repomanager: m}
}

// validateTitle keeps the observed wire behavior: validation failures
// surface as the INTERNAL taxonomy entry, not a 4xx.
func validateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("title is required: %w", errcode.ErrInternal)
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return fmt.Errorf("title exceeds %d characters: %w", maxTitleLen, errcode.ErrInternal)
	}
	return nil
}

// Create persists a new article with the author snapshot taken from the
// authenticated principal.
func (s *ArticleService) Create(ctx context.Context, title, content, author string) (*models.Article, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	article := &models.Article{Title: title, Content: content, Author: author}
	a, err := s.repomanager.Articles(s.db).Create(ctx, article)
	if err != nil {
		return nil, fmt.Errorf("error creating article: %w", err)
	}
	return a, nil
}

// List returns all articles in a stable order.
func (s *ArticleService) List(ctx context.Context) ([]*models.Article, error) {
	result, err := s.repomanager.Articles(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing articles: %w", err)
	}
	return result, nil
}

// GetByID returns the article or errcode.ErrArticleNotFound.
func (s *ArticleService) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	a, err := s.repomanager.Articles(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errcode.ErrNotFound) {
			return nil, errcode.ErrArticleNotFound
		}
		return nil, fmt.Errorf("error loading article: %w", err)
	}
	return a, nil
}

// Update replaces title and content of an existing article after verifying
// that principal matches the stored author snapshot. The fetch and the write
// share one transaction so a concurrent delete cannot slip between them.
func (s *ArticleService) Update(ctx context.Context, id int64, title, content, principal string) (*models.Article, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	var updated *models.Article
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Articles(tx)

		current, err := repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, errcode.ErrNotFound) {
				return errcode.ErrArticleNotFound
			}
			return fmt.Errorf("error loading article: %w", err)
		}

		if !auth.CanModify(current.Author, principal) {
			return errcode.ErrForbidden
		}

		current.Title = title
		current.Content = content
		updated, err = repo.Update(ctx, current)
		if err != nil {
			return fmt.Errorf("error updating article: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an article after the same ownership check as Update.
func (s *ArticleService) Delete(ctx context.Context, id int64, principal string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Articles(tx)

		current, err := repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, errcode.ErrNotFound) {
				return errcode.ErrArticleNotFound
			}
			return fmt.Errorf("error loading article: %w", err)
		}

		if !auth.CanModify(current.Author, principal) {
			return errcode.ErrForbidden
		}

		if err := repo.Delete(ctx, id); err != nil {
			return fmt.Errorf("error deleting article: %w", err)
		}
		return nil
	})
}
