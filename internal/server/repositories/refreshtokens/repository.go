// Package refreshtokens declares the repository contract for the refresh
// credential store. Each user holds at most one token row at all times;
// issuing a token for a user that already has one rotates the value in
// place.
package refreshtokens

import (
	"context"

	"github.com/ysemenov/blogkeeper/internal/server/models"
)

type Repository interface {
	// Upsert atomically issues or rotates the refresh token for userID.
	// The returned row keeps its identity across rotations.
	Upsert(ctx context.Context, userID string, token string) (*models.RefreshToken, error)

	// FindByUserID returns the user's token row or errcode.ErrNotFound.
	FindByUserID(ctx context.Context, userID string) (*models.RefreshToken, error)

	// FindByToken looks up a token row by its opaque value, as presented by
	// a client during refresh. Returns errcode.ErrNotFound when absent.
	FindByToken(ctx context.Context, token string) (*models.RefreshToken, error)

	// DeleteByUserID removes the user's token row. Deleting a non-existent
	// row is not an error.
	DeleteByUserID(ctx context.Context, userID string) error
}
