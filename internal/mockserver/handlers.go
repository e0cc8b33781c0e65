package mockserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	errMissingFields   = errors.New("Missing fields!")
	errExistedEmail    = errors.New("Existed email!")
	errExistedUsername = errors.New("Existed username!")
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type createPostRequest struct {
	Content string `json:"content"`
}

type userInfo struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"fullName,omitempty"`
}

func (s *Server) register(username, email, password, fullName string) (*account, error) {
	username, email, fullName = trim(username), trim(email), trim(fullName)
	if username == "" || email == "" || password == "" || fullName == "" {
		return nil, errMissingFields
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.emails[email]; ok {
		return nil, errExistedEmail
	}
	if _, ok := s.users[username]; ok {
		return nil, errExistedUsername
	}
	acct := &account{Username: username, Email: email, FullName: fullName, Hash: hash}
	s.users[username] = acct
	s.emails[email] = username
	return acct, nil
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decode(w, r, &req) {
		return
	}

	if _, err := s.register(req.Username, req.Email, req.Password, req.FullName); err != nil {
		switch {
		case errors.Is(err, errMissingFields):
			writeJSON(w, http.StatusBadRequest, msg(err.Error()))
		case errors.Is(err, errExistedEmail), errors.Is(err, errExistedUsername):
			writeJSON(w, http.StatusConflict, msg(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, msg("Internal server error"))
		}
		return
	}
	writeJSON(w, http.StatusCreated, msg("Register successfully!"))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decode(w, r, &req) {
		return
	}

	s.mu.Lock()
	acct, ok := s.users[trim(req.Username)]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(acct.Hash, []byte(req.Password)) != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Wrong username or password!"})
		return
	}

	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = acct.Username
	s.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})
	writeJSON(w, http.StatusOK, msg("Login successfully!"))
}

// handleLogout always succeeds so a client with a stale cookie can
// still sign out.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if ck, err := r.Cookie(CookieName); err == nil {
		s.mu.Lock()
		delete(s.sessions, ck.Value)
		s.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{
		Name:   CookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})
	writeJSON(w, http.StatusOK, msg("Logout successfully!"))
}

func (s *Server) handleHomepage(w http.ResponseWriter, r *http.Request) {
	username := usernameFromContext(r.Context())
	s.mu.Lock()
	acct := s.users[username]
	s.mu.Unlock()

	info := userInfo{Username: username}
	if acct != nil {
		info.Email = acct.Email
		info.FullName = acct.FullName
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"msg":  "Welcome!",
		"user": info,
	})
}

func (s *Server) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if !decode(w, r, &req) {
		return
	}
	content := trim(req.Content)
	if content == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Content is required"})
		return
	}

	p := Post{
		ID:        uuid.NewString(),
		Author:    usernameFromContext(r.Context()),
		Content:   content,
		CreatedAt: time.Now(),
	}
	s.mu.Lock()
	s.posts = append(s.posts, p)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]string{"msg": "Post created!", "id": p.ID})
}
