package httpapi

import (
	"net/http"
	"strings"

	"github.com/ysemenov/blogkeeper/internal/errcode"
	"github.com/ysemenov/blogkeeper/internal/server/auth"
)

// principal resolves the verified identity of the requester from the bearer
// token. It is called once per authenticated handler; the resulting string
// is passed to services explicitly, never through ambient state.
func (s *Server) principal(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", errcode.ErrUnauthorized
	}

	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return "", errcode.ErrUnauthorized
	}
	return claims.Email, nil
}
