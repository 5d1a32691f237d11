package httpapi

import (
	"encoding/json"
	"net/http"
)

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type tokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type articleRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type commentRequest struct {
	ArticleID int64  `json:"articleId"`
	Content   string `json:"content"`
}

func decode(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := s.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		s.logger.Error(r.Context(), "signup failed", "error", err.Error())
		writeError(w, err)
		return
	}

	s.logger.Info(r.Context(), "user registered", "email", user.Email)
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	pair, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *Server) handleRefreshToken(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	pair, err := s.users.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

func (s *Server) handleCreateArticle(w http.ResponseWriter, r *http.Request) {
	principal, err := s.principal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req articleRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	article, err := s.articles.Create(r.Context(), req.Title, req.Content, principal)
	if err != nil {
		s.logger.Error(r.Context(), "create article failed", "error", err.Error())
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, article)
}

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	list, err := s.articles.List(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "list articles failed", "error", err.Error())
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request, idSegment string) {
	id, ok := parseID(idSegment)
	if !ok {
		notFound(w)
		return
	}

	article, err := s.articles.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, article)
}

func (s *Server) handleUpdateArticle(w http.ResponseWriter, r *http.Request, idSegment string) {
	principal, err := s.principal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	id, ok := parseID(idSegment)
	if !ok {
		notFound(w)
		return
	}

	var req articleRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	article, err := s.articles.Update(r.Context(), id, req.Title, req.Content, principal)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, article)
}

func (s *Server) handleDeleteArticle(w http.ResponseWriter, r *http.Request, idSegment string) {
	principal, err := s.principal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	id, ok := parseID(idSegment)
	if !ok {
		notFound(w)
		return
	}

	if err := s.articles.Delete(r.Context(), id, principal); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleCreateComment(w http.ResponseWriter, r *http.Request) {
	principal, err := s.principal(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req commentRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	comment, err := s.comments.Add(r.Context(), req.ArticleID, req.Content, principal)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

func (s *Server) handleListComments(w http.ResponseWriter, r *http.Request, idSegment string) {
	id, ok := parseID(idSegment)
	if !ok {
		notFound(w)
		return
	}

	list, err := s.comments.ListByArticle(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
