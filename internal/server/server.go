package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"myblog/internal/logger"
	"myblog/internal/models"
	"myblog/internal/service"
)

type Server struct {
	Users *service.UserService
	Posts *service.PostService
	Likes *service.LikeService

	router http.Handler
}

func New(users *service.UserService, posts *service.PostService, likes *service.LikeService) *Server {
	s := &Server{Users: users, Posts: posts, Likes: likes}
	s.router = s.routes()
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(MetricsMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/users", func(r chi.Router) {
		r.Post("/", s.handleCreateUser)
		r.Get("/", s.handleListUsers)
		r.Get("/{id}", s.handleGetUser)
		r.Put("/{id}", s.handleUpdateUser)
		r.Delete("/{id}", s.handleDeleteUser)
	})
	r.Route("/posts", func(r chi.Router) {
		r.Post("/", s.handleCreatePost)
		r.Get("/", s.handleListPosts)
		r.Get("/{id}", s.handleGetPost)
		r.Put("/{id}", s.handleUpdatePost)
		r.Delete("/{id}", s.handleDeletePost)
	})
	r.Route("/likes", func(r chi.Router) {
		r.Post("/", s.handleCreateLike)
		r.Get("/", s.handleListLikes)
		r.Get("/{id}", s.handleGetLike)
		r.Delete("/{id}", s.handleDeleteLike)
	})
	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type envelope struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service rejections onto status codes. Anything else is a
// storage fault and is logged, not echoed.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch service.KindOf(err) {
	case service.KindInvalid:
		status = http.StatusBadRequest
	case service.KindNotFound:
		status = http.StatusNotFound
	case service.KindConflict:
		status = http.StatusConflict
	}
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logger.From(r.Context()).Error("Request failed", slog.Any("error", err))
		msg = "internal error"
	}
	writeJSON(w, status, envelope{Error: msg})
}

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 1 << 20

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		status, msg := http.StatusBadRequest, "invalid JSON body"
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			status, msg = http.StatusRequestEntityTooLarge, "request body too large"
		case errors.Is(err, io.EOF):
			msg = "request body is required"
		}
		writeJSON(w, status, envelope{Error: msg})
		return false
	}
	return true
}

// intParam returns the {id} path value; a malformed id becomes 0, which the
// services reject as invalid.
func intParam(r *http.Request) int {
	n, _ := strconv.Atoi(chi.URLParam(r, "id"))
	return n
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if !decode(w, r, &req) {
		return
	}
	user, err := s.Users.CreateUser(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{Message: service.MsgUserCreated, Data: user})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.Users.GetAllUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": users})
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.Users.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Data: user})
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FirstName string `json:"firstName"`
		LastName  string `json:"lastName"`
		Email     string `json:"email"`
	}
	if !decode(w, r, &payload) {
		return
	}
	user, err := s.Users.UpdateUser(r.Context(), &models.User{
		ID:        chi.URLParam(r, "id"),
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Message: service.MsgUserUpdated, Data: user})
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.Users.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Message: service.MsgUserDeleted})
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID  string `json:"userId"`
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if !decode(w, r, &payload) {
		return
	}
	post, err := s.Posts.CreatePost(r.Context(), &models.Post{
		UserID:  payload.UserID,
		Title:   payload.Title,
		Content: payload.Content,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{Message: service.MsgPostCreated, Data: post})
}

func (s *Server) handleListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.Posts.GetAllPost(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": posts})
}

func (s *Server) handleGetPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.Posts.GetPost(r.Context(), intParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Data: post})
}

func (s *Server) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if !decode(w, r, &payload) {
		return
	}
	post, err := s.Posts.UpdatePost(r.Context(), &models.Post{
		ID:      intParam(r),
		Title:   payload.Title,
		Content: payload.Content,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Message: service.MsgPostUpdated, Data: post})
}

func (s *Server) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	if err := s.Posts.DeletePost(r.Context(), intParam(r)); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Message: service.MsgPostDeleted})
}

func (s *Server) handleCreateLike(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		UserID string `json:"userId"`
		PostID int    `json:"postId"`
	}
	if !decode(w, r, &payload) {
		return
	}
	like, err := s.Likes.CreateLike(r.Context(), &models.Like{UserID: payload.UserID, PostID: payload.PostID})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{Message: service.MsgLikeCreated, Data: like})
}

func (s *Server) handleListLikes(w http.ResponseWriter, r *http.Request) {
	likes, err := s.Likes.GetAllLike(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": likes})
}

func (s *Server) handleGetLike(w http.ResponseWriter, r *http.Request) {
	like, err := s.Likes.GetLike(r.Context(), intParam(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Data: like})
}

func (s *Server) handleDeleteLike(w http.ResponseWriter, r *http.Request) {
	if err := s.Likes.DeleteLike(r.Context(), intParam(r)); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Message: service.MsgLikeDeleted})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logger.From(r.Context()).Info("Request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
		)
	})
}
