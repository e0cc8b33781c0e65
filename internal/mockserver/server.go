// Package mockserver is an in-memory implementation of the ThreadsCity
// HTTP API used for local development and tests.
package mockserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"
)

// CookieName is the session cookie issued on login.
const CookieName = "session"

const maxBodyBytes = 1 << 20

type contextKey string

const usernameKey contextKey = "username"

type account struct {
	Username string
	Email    string
	FullName string
	Hash     []byte
}

// Post is a post accepted by /create_post.
type Post struct {
	ID        string
	Author    string
	Content   string
	CreatedAt time.Time
}

// Server holds users, sessions and posts in memory.
type Server struct {
	mu       sync.Mutex
	users    map[string]*account
	emails   map[string]string
	sessions map[string]string
	posts    []Post

	cost       int
	requestLog bool
	router     chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithBcryptCost sets the password hashing cost.
func WithBcryptCost(cost int) Option {
	return func(s *Server) { s.cost = cost }
}

// WithRequestLog logs every request.
func WithRequestLog() Option {
	return func(s *Server) { s.requestLog = true }
}

// New creates an empty server.
func New(opts ...Option) *Server {
	s := &Server{
		users:    make(map[string]*account),
		emails:   make(map[string]string),
		sessions: make(map[string]string),
		cost:     bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler serving /api.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if s.requestLog {
		r.Use(middleware.Logger)
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/auth", s.handleLogin)
		r.Get("/logout", s.handleLogout)

		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)
			r.Get("/homepage", s.handleHomepage)
			r.Post("/create_post", s.handleCreatePost)
		})
	})
	return r
}

// AddUser registers an account directly.
func (s *Server) AddUser(username, email, password, fullName string) error {
	_, err := s.register(username, email, password, fullName)
	return err
}

// Posts returns the posts created so far, oldest first.
func (s *Server) Posts() []Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Post(nil), s.posts...)
}

// SessionCount returns the number of live sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie(CookieName)
		if err != nil || ck.Value == "" {
			writeJSON(w, http.StatusUnauthorized, msg("Unauthorized!"))
			return
		}
		s.mu.Lock()
		username, ok := s.sessions[ck.Value]
		s.mu.Unlock()
		if !ok {
			writeJSON(w, http.StatusUnauthorized, msg("Unauthorized!"))
			return
		}
		ctx := context.WithValue(r.Context(), usernameKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func usernameFromContext(ctx context.Context) string {
	u, _ := ctx.Value(usernameKey).(string)
	return u
}

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
		return false
	}
	return true
}

func msg(text string) map[string]string {
	return map[string]string{"msg": text}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func trim(s string) string { return strings.TrimSpace(s) }
