package services

import (
	"context"
	"database/sql"
	"strconv"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/ysemenov/blogkeeper/internal/dbx"
	"github.com/ysemenov/blogkeeper/internal/errcode"
	"github.com/ysemenov/blogkeeper/internal/server/models"
	articlesrepo "github.com/ysemenov/blogkeeper/internal/server/repositories/articles"
	commentsrepo "github.com/ysemenov/blogkeeper/internal/server/repositories/comments"
	refreshtokensrepo "github.com/ysemenov/blogkeeper/internal/server/repositories/refreshtokens"
	usersrepo "github.com/ysemenov/blogkeeper/internal/server/repositories/users"
)

// --- shared helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

// --- in-memory fakes ---

type fakeUsersRepo struct {
	mu     sync.Mutex
	nextID int
	byMail map[string]*models.User
	byID   map[string]*models.User

	createErr error
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{byMail: map[string]*models.User{}, byID: map[string]*models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, ok := f.byMail[u.Email]; ok {
		return nil, errcode.ErrAlreadyExists
	}
	if u.ID == "" {
		f.nextID++
		u.ID = "u" + strconv.Itoa(f.nextID)
	}
	f.byMail[u.Email] = u
	f.byID[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byMail[email]; ok {
		return u, nil
	}
	return nil, errcode.ErrNotFound
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return nil, errcode.ErrNotFound
}

// fakeRefreshRepo keeps the one-row-per-user invariant the way the real
// table's unique constraint does.
type fakeRefreshRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[string]*models.RefreshToken // keyed by user id

	upsertErr error
}

func newFakeRefreshRepo() *fakeRefreshRepo {
	return &fakeRefreshRepo{rows: map[string]*models.RefreshToken{}}
}

func (f *fakeRefreshRepo) Upsert(ctx context.Context, userID string, token string) (*models.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	if row, ok := f.rows[userID]; ok {
		row.Token = token
		return row, nil
	}
	f.nextID++
	row := &models.RefreshToken{ID: f.nextID, UserID: userID, Token: token}
	f.rows[userID] = row
	return row, nil
}

func (f *fakeRefreshRepo) FindByUserID(ctx context.Context, userID string) (*models.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if row, ok := f.rows[userID]; ok {
		return row, nil
	}
	return nil, errcode.ErrNotFound
}

func (f *fakeRefreshRepo) FindByToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.Token == token {
			return row, nil
		}
	}
	return nil, errcode.ErrNotFound
}

func (f *fakeRefreshRepo) DeleteByUserID(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, userID)
	return nil
}

func (f *fakeRefreshRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

type fakeArticlesRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*models.Article

	createErr error
}

func newFakeArticlesRepo() *fakeArticlesRepo {
	return &fakeArticlesRepo{rows: map[int64]*models.Article{}}
}

func (f *fakeArticlesRepo) Create(ctx context.Context, a *models.Article) (*models.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	a.ID = f.nextID
	copied := *a
	f.rows[a.ID] = &copied
	return a, nil
}

func (f *fakeArticlesRepo) List(ctx context.Context) ([]*models.Article, error) {
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

func (f *fakeArticlesRepo) GetByID(ctx context.Context, id int64) (*models.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.rows[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, errcode.ErrNotFound
}

func (f *fakeArticlesRepo) Update(ctx context.Context, a *models.Article) (*models.Article, error) {
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

func (f *fakeArticlesRepo) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return errcode.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeCommentsRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   []*models.Comment

	createErr error
}

func newFakeCommentsRepo() *fakeCommentsRepo { return &fakeCommentsRepo{} }

func (f *fakeCommentsRepo) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	c.ID = f.nextID
	copied := *c
	f.rows = append(f.rows, &copied)
	return c, nil
}

func (f *fakeCommentsRepo) ListByArticle(ctx context.Context, articleID int64) ([]*models.Comment, error) {
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

func (f *fakeCommentsRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRefreshRepo
	a *fakeArticlesRepo
	c *fakeCommentsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		u: newFakeUsersRepo(),
		r: newFakeRefreshRepo(),
		a: newFakeArticlesRepo(),
		c: newFakeCommentsRepo(),
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokensrepo.Repository {
	return m.r
}
func (m *fakeRepoManager) Articles(db dbx.DBTX) articlesrepo.Repository { return m.a }
func (m *fakeRepoManager) Comments(db dbx.DBTX) commentsrepo.Repository { return m.c }
