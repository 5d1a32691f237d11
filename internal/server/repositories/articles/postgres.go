package articles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ysemenov/blogkeeper/internal/dbx"
	"github.com/ysemenov/blogkeeper/internal/errcode"
	"github.com/ysemenov/blogkeeper/internal/server/models"
)

// PostgresRepository implements article storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, article *models.Article) (*models.Article, error) {
	query := `
		INSERT INTO articles (title, content, author)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		article.Title, article.Content, article.Author).Scan(&article.ID, &article.CreatedAt, &article.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return article, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Article, error) {
	query := `
		SELECT id, title, content, author, created_at, updated_at
		FROM articles
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	// non-nil so an empty store renders as [] on the wire
	result := []*models.Article{}
	for rows.Next() {
		var item models.Article
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Content, &item.Author, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	query := `
		SELECT id, title, content, author, created_at, updated_at
		FROM articles
		WHERE id = $1
	`
	article := &models.Article{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&article.ID, &article.Title, &article.Content, &article.Author, &article.CreatedAt, &article.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcode.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return article, nil
}

// Update only touches title and content. The author column is the immutable
// creation-time snapshot and is never part of the SET list.
func (r *PostgresRepository) Update(ctx context.Context, article *models.Article) (*models.Article, error) {
	query := `
		UPDATE articles
		SET title = $2, content = $3, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		article.ID, article.Title, article.Content).Scan(&article.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcode.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return article, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM articles
		WHERE id = $1
	`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return errcode.ErrNotFound
	}
	return nil
}
