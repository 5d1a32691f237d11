package repomanager

import (
	"context"
	"database/sql"

	"github.com/ysemenov/blogkeeper/internal/dbx"
	"github.com/ysemenov/blogkeeper/internal/server/repositories/articles"
	"github.com/ysemenov/blogkeeper/internal/server/repositories/comments"
	"github.com/ysemenov/blogkeeper/internal/server/repositories/refreshtokens"
	"github.com/ysemenov/blogkeeper/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to an arbitrary DBTX, so the
// same repository code runs against a plain connection or inside a
// transaction started by the caller.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	Articles(db dbx.DBTX) articles.Repository
	Comments(db dbx.DBTX) comments.Repository
}
