// Package httpapi is the HTTP boundary of the blog backend. It resolves the
// principal from the request credential, dispatches to the services, and
// renders every failure as the stable {"message","code"} error body.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ysemenov/blogkeeper/internal/logging"
	"github.com/ysemenov/blogkeeper/internal/server/services"
)

type Server struct {
	address   string
	logger    logging.Logger
	users     *services.UserService
	articles  *services.ArticleService
	comments  *services.CommentService
	jwtSecret []byte
}

func NewServer(address string, l logging.Logger, us *services.UserService, as *services.ArticleService, cs *services.CommentService, secretKey string) *Server {
	return &Server{
		address:   address,
		logger:    l.With("module", "httpapi"),
		users:     us,
		articles:  as,
		comments:  cs,
		jwtSecret: []byte(secretKey),
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		s.handleAPI(w, r)
		return
	}
	notFound(w)
}

func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api")
	segments := splitPath(path)

	switch {
	case len(segments) == 1 && segments[0] == "signup":
		if r.Method == http.MethodPost {
			s.handleSignup(w, r)
			return
		}
	case len(segments) == 1 && segments[0] == "login":
		if r.Method == http.MethodPost {
			s.handleLogin(w, r)
			return
		}
	case len(segments) == 1 && segments[0] == "token":
		if r.Method == http.MethodPost {
			s.handleRefreshToken(w, r)
			return
		}
	case len(segments) == 1 && segments[0] == "articles":
		if r.Method == http.MethodPost {
			s.handleCreateArticle(w, r)
			return
		}
		if r.Method == http.MethodGet {
			s.handleListArticles(w, r)
			return
		}
	case len(segments) == 2 && segments[0] == "articles":
		if r.Method == http.MethodGet {
			s.handleGetArticle(w, r, segments[1])
			return
		}
		if r.Method == http.MethodPut {
			s.handleUpdateArticle(w, r, segments[1])
			return
		}
		if r.Method == http.MethodDelete {
			s.handleDeleteArticle(w, r, segments[1])
			return
		}
	case len(segments) == 3 && segments[0] == "articles" && segments[2] == "comments":
		if r.Method == http.MethodGet {
			s.handleListComments(w, r, segments[1])
			return
		}
	case len(segments) == 1 && segments[0] == "comments":
		if r.Method == http.MethodPost {
			s.handleCreateComment(w, r)
			return
		}
	default:
		notFound(w)
		return
	}

	methodNotAllowed(w)
}

func splitPath(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// parseID parses a path segment as an article/comment id. Anything that is
// not a number cannot match a row, so it reports false and the caller
// renders a not-found response.
func parseID(segment string) (int64, bool) {
	id, err := strconv.ParseInt(segment, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
