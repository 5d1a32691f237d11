package comments

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ysemenov/blogkeeper/internal/dbx"
	"github.com/ysemenov/blogkeeper/internal/errcode"
	"github.com/ysemenov/blogkeeper/internal/server/models"
)

// pgForeignKeyViolation is the PostgreSQL error code for foreign-key
// constraint failures.
const pgForeignKeyViolation = "23503"

// PostgresRepository implements comment storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	query := `
		INSERT INTO comments (article_id, author, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		comment.ArticleID, comment.Author, comment.Content).Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return nil, errcode.ErrArticleNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return comment, nil
}

func (r *PostgresRepository) ListByArticle(ctx context.Context, articleID int64) ([]*models.Comment, error) {
	query := `
		SELECT id, article_id, author, content, created_at
		FROM comments
		WHERE article_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	// non-nil so an empty list renders as [] on the wire
	result := []*models.Comment{}
	for rows.Next() {
		var item models.Comment
		if err := rows.Scan(&item.ID, &item.ArticleID, &item.Author, &item.Content, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
