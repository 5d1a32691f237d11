package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ysemenov/blogkeeper/internal/dbx"
	"github.com/ysemenov/blogkeeper/internal/errcode"
	"github.com/ysemenov/blogkeeper/internal/server/models"
	"github.com/ysemenov/blogkeeper/internal/server/repositories/repomanager"
)

// CommentService creates and lists comments. Comments are immutable and
// always reference an existing article.
type CommentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewCommentService constructs a CommentService.
func NewCommentService(db *sql.DB, m repomanager.RepositoryManager) *CommentService {
	return &CommentService{db: db, repomanager: m}
}

// Add creates a comment on an article. The parent article must exist; when
// it does not, nothing is persisted and errcode.ErrArticleNotFound is
// returned. The existence check and the insert share one transaction so a
// concurrent article delete cannot slip between them.
func (s *CommentService) Add(ctx context.Context, articleID int64, content, author string) (*models.Comment, error) {
	if content == "" {
		return nil, fmt.Errorf("comment content is required: %w", errcode.ErrInternal)
	}

	var created *models.Comment
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.repomanager.Articles(tx).GetByID(ctx, articleID); err != nil {
			if errors.Is(err, errcode.ErrNotFound) {
				return errcode.ErrArticleNotFound
			}
			return fmt.Errorf("error loading article: %w", err)
		}

		comment := &models.Comment{ArticleID: articleID, Author: author, Content: content}
		c, err := s.repomanager.Comments(tx).Create(ctx, comment)
		if err != nil {
			if errors.Is(err, errcode.ErrArticleNotFound) {
				return errcode.ErrArticleNotFound
			}
			return fmt.Errorf("error creating comment: %w", err)
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListByArticle returns the comments of one article, oldest first. The
// article must exist.
func (s *CommentService) ListByArticle(ctx context.Context, articleID int64) ([]*models.Comment, error) {
	if _, err := s.repomanager.Articles(s.db).GetByID(ctx, articleID); err != nil {
		if errors.Is(err, errcode.ErrNotFound) {
			return nil, errcode.ErrArticleNotFound
		}
		return nil, fmt.Errorf("error loading article: %w", err)
	}

	result, err := s.repomanager.Comments(s.db).ListByArticle(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}
	return result, nil
}
