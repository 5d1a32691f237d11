package httpapi

import (
	"context"
	"database/sql"
	"strconv"
	"sync"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/ysemenov/blogkeeper/internal/dbx"
	"github.com/ysemenov/blogkeeper/internal/errcode"
	"github.com/ysemenov/blogkeeper/internal/server/models"
	articlesrepo "github.com/ysemenov/blogkeeper/internal/server/repositories/articles"
	commentsrepo "github.com/ysemenov/blogkeeper/internal/server/repositories/comments"
	refreshtokensrepo "github.com/ysemenov/blogkeeper/internal/server/repositories/refreshtokens"
	usersrepo "github.com/ysemenov/blogkeeper/internal/server/repositories/users"
)

// The handler tests run the real services against in-memory repositories.
// A throwaway sqlite handle backs the transactional helpers; the fakes
// ignore the DBTX they are handed.

func newMemDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("sql.Open error: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

type memUsersRepo struct {
	mu     sync.Mutex
	nextID int
	rows   map[string]*models.User
}

func (f *memUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[u.Email]; ok {
		return nil, errcode.ErrAlreadyExists
	}
	if u.ID == "" {
		f.nextID++
		u.ID = "u" + strconv.Itoa(f.nextID)
	}
	f.rows[u.Email] = u
	return u, nil
}

func (f *memUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.rows[email]; ok {
		return u, nil
	}
	return nil, errcode.ErrNotFound
}

func (f *memUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.rows {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, errcode.ErrNotFound
}

type memRefreshRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[string]*models.RefreshToken
}

func (f *memRefreshRepo) Upsert(ctx context.Context, userID string, token string) (*models.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if row, ok := f.rows[userID]; ok {
		row.Token = token
		return row, nil
	}
	f.nextID++
	row := &models.RefreshToken{ID: f.nextID, UserID: userID, Token: token}
	f.rows[userID] = row
	return row, nil
}

func (f *memRefreshRepo) FindByUserID(ctx context.Context, userID string) (*models.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if row, ok := f.rows[userID]; ok {
		return row, nil
	}
	return nil, errcode.ErrNotFound
}

func (f *memRefreshRepo) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.Token == token {
			return row, nil
		}
	}
	return nil, errcode.ErrNotFound
}

func (f *memRefreshRepo) DeleteByUserID(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, userID)
	return nil
}

type memArticlesRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*models.Article
}

func (f *memArticlesRepo) Create(ctx context.Context, a *models.Article) (*models.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	a.ID = f.nextID
	copied := *a
	f.rows[a.ID] = &copied
	return a, nil
}

func (f *memArticlesRepo) List(ctx context.Context) ([]*models.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []*models.Article{}
	for id := int64(1); id <= f.nextID; id++ {
		if a, ok := f.rows[id]; ok {
			copied := *a
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *memArticlesRepo) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.rows[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, errcode.ErrNotFound
}

func (f *memArticlesRepo) Update(ctx context.Context, a *models.Article) (*models.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	current, ok := f.rows[a.ID]
	if !ok {
		return nil, errcode.ErrNotFound
	}
	current.Title = a.Title
	current.Content = a.Content
	copied := *current
	return &copied, nil
}

func (f *memArticlesRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return errcode.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

type memCommentsRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   []*models.Comment
}

func (f *memCommentsRepo) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	c.ID = f.nextID
	copied := *c
	f.rows = append(f.rows, &copied)
	return c, nil
}

func (f *memCommentsRepo) ListByArticle(ctx context.Context, articleID int64) ([]*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := []*models.Comment{}
	for _, c := range f.rows {
		if c.ArticleID == articleID {
			copied := *c
			result = append(result, &copied)
		}
	}
	return result, nil
}

type memRepoManager struct {
	u *memUsersRepo
	r *memRefreshRepo
	a *memArticlesRepo
	c *memCommentsRepo
}

func newMemRepoManager() *memRepoManager {
	return &memRepoManager{
		u: &memUsersRepo{rows: map[string]*models.User{}},
		r: &memRefreshRepo{rows: map[string]*models.RefreshToken{}},
		a: &memArticlesRepo{rows: map[int64]*models.Article{}},
		c: &memCommentsRepo{},
	}
}

func (m *memRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *memRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }
func (m *memRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository {
	return m.r
}
func (m *memRepoManager) Articles(db dbx.DBTX) articlesrepo.Repository { return m.a }
func (m *memRepoManager) Comments(db dbx.DBTX) commentsrepo.Repository { return m.c }
