// Package auth covers the authentication boundary: minting and verifying
// access JWTs and the ownership predicate used on mutation paths.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ysemenov/blogkeeper/internal/errcode"
)

// Claims carries the standard registered claims plus the authenticated
// user's id and email. The email is the principal string resources snapshot
// as their author.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
	Email  string `json:"email"`
}

// GenerateToken mints an HS256 access token for the user.
func GenerateToken(userID, email string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		UserID: userID,
		Email:  email,
	})

	return token.SignedString(secretKey)
}

// ParseToken verifies the token signature and expiry and returns its claims.
// Any verification failure maps to errcode.ErrUnauthorized.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return nil, errcode.ErrUnauthorized
	}

	if !token.Valid {
		return nil, errcode.ErrUnauthorized
	}

	return claims, nil
}
