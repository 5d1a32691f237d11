// Package services contains the server-side business logic. This file
// implements UserService: registration, login, and refresh-token rotation.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ysemenov/blogkeeper/internal/common"
	"github.com/ysemenov/blogkeeper/internal/dbx"
	"github.com/ysemenov/blogkeeper/internal/errcode"
	"github.com/ysemenov/blogkeeper/internal/server/auth"
	"github.com/ysemenov/blogkeeper/internal/server/config"
	"github.com/ysemenov/blogkeeper/internal/server/models"
	"github.com/ysemenov/blogkeeper/internal/server/repositories/repomanager"
)

// refreshTokenBytes is the entropy of the opaque refresh token value
// (hex-encoded to twice this length).
const refreshTokenBytes = 32

// TokenPair bundles a short-lived access JWT and the long-lived opaque
// refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserService handles the authentication boundary: creating users, verifying
// credentials, and issuing/rotating the per-user refresh credential. Every
// user holds exactly one refresh token row; issuing for a user that already
// has one overwrites the value in place.
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService from repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a new user. The username is the local part of the email;
// the email itself is the principal string snapshot into owned resources.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("empty email or password: %w", errcode.ErrInternal)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errcode.ErrInternal
	}

	username, _, _ := strings.Cut(email, "@")
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
	}

	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, errcode.ErrAlreadyExists) {
			return nil, errcode.ErrAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies the credentials and, on success, mints a fresh token pair.
// Issuing the refresh token rotates any previous one for the same user.
func (s *UserService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errcode.ErrNotFound) {
			return nil, errcode.ErrUnauthorized
		}
		return nil, errcode.ErrInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, errcode.ErrUnauthorized
	}

	return s.generateTokenPair(ctx, user, s.db)
}

// Refresh exchanges a valid refresh token for a new token pair, rotating the
// stored value transactionally. The row identity stays the same; only the
// token value changes. An unknown token value is an authorization failure.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	row, err := s.repomanager.RefreshTokens(s.db).FindByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, errcode.ErrNotFound) {
			return nil, errcode.ErrUnauthorized
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, row.UserID)
	if err != nil {
		return nil, fmt.Errorf("error loading token owner: %w", err)
	}

	var pair *TokenPair
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, user, tx)
		return genErr
	}); err != nil {
		return nil, err
	}
	return pair, nil
}

// generateTokenPair mints an access JWT and an opaque refresh token, then
// upserts the refresh token so the user ends up with exactly one row
// regardless of how many pairs were issued before.
func (s *UserService) generateTokenPair(ctx context.Context, user *models.User, db dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, errcode.ErrInternal
	}

	refresh, err := common.MakeRandHexString(refreshTokenBytes)
	if err != nil {
		return nil, errcode.ErrInternal
	}

	if _, err := s.repomanager.RefreshTokens(db).Upsert(ctx, user.ID, refresh); err != nil {
		return nil, errcode.ErrInternal
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
