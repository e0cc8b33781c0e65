package auth

import (
	"context"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/fragmede/threadscity/internal/api"
)

// User is the authenticated account.
type User struct {
	Username string
	Email    string
	FullName string
}

// LoginData is the /auth request body.
type LoginData struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterData is the /register request body.
type RegisterData struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

// Validate applies the register form rules. confirm is the repeated password.
func (d RegisterData) Validate(confirm string) error {
	if strings.TrimSpace(d.Username) == "" || strings.TrimSpace(d.Email) == "" ||
		strings.TrimSpace(d.Password) == "" || strings.TrimSpace(confirm) == "" ||
		strings.TrimSpace(d.FullName) == "" {
		return ErrMissingFields
	}
	if d.Password != confirm {
		return ErrPasswordMismatch
	}
	if len(d.Password) < 6 {
		return ErrPasswordTooShort
	}
	return nil
}

// Service performs the authentication calls against the API.
type Service struct {
	client     *api.Client
	maxRetries int
	retryUnit  time.Duration
	sessionChk singleflight.Group
}

// NewService creates an auth service. Transport failures of register,
// login and logout are retried maxRetries times, backing off by unit.
func NewService(client *api.Client, maxRetries int, unit time.Duration) *Service {
	return &Service{
		client:     client,
		maxRetries: maxRetries,
		retryUnit:  unit,
	}
}

// Client returns the underlying API client.
func (s *Service) Client() *api.Client {
	return s.client
}

// Register creates an account.
func (s *Service) Register(ctx context.Context, data RegisterData) (*api.AuthResponse, error) {
	resp, err := api.WithRetry(ctx, s.maxRetries, s.retryUnit, func(ctx context.Context) (*api.AuthResponse, error) {
		var resp api.AuthResponse
		if err := s.client.Post(ctx, "/register", data, &resp); err != nil {
			return nil, err
		}
		return &resp, nil
	})
	if err != nil {
		return nil, classify("register", api.Decode(err, api.PreferMsg))
	}
	return resp, nil
}

// Login authenticates with username and password. The server answers
// with a session cookie kept in the client's jar.
func (s *Service) Login(ctx context.Context, data LoginData) (*api.AuthResponse, error) {
	resp, err := api.WithRetry(ctx, s.maxRetries, s.retryUnit, func(ctx context.Context) (*api.AuthResponse, error) {
		var resp api.AuthResponse
		if err := s.client.Post(ctx, "/auth", data, &resp); err != nil {
			return nil, err
		}
		return &resp, nil
	})
	if err != nil {
		return nil, classify("login", api.Decode(err, api.PreferMessage))
	}
	return resp, nil
}

// Logout invalidates the server-side session.
func (s *Service) Logout(ctx context.Context) error {
	_, err := api.WithRetry(ctx, s.maxRetries, s.retryUnit, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.client.Get(ctx, "/logout", nil)
	})
	if err != nil {
		return classify("logout", api.Decode(err, api.MsgOnly))
	}
	return nil
}

// CheckAuth reports whether the current cookies open the protected
// homepage. Every failure reads as false.
func (s *Service) CheckAuth(ctx context.Context) bool {
	_, ok := s.CheckSession(ctx)
	return ok
}

// CheckSession is CheckAuth that also returns the user when the homepage
// response names one. Concurrent checks share one request.
func (s *Service) CheckSession(ctx context.Context) (*User, bool) {
	v, err, _ := s.sessionChk.Do("homepage", func() (interface{}, error) {
		var resp api.HomepageResponse
		if err := s.client.Get(ctx, "/homepage", &resp); err != nil {
			return nil, err
		}
		u := &User{}
		if resp.User != nil {
			u.Username = resp.User.Username
			u.Email = resp.User.Email
			u.FullName = resp.User.FullName
		}
		return u, nil
	})
	if err != nil {
		log.Printf("auth: session check failed: %v", err)
		return nil, false
	}
	u := *v.(*User)
	return &u, true
}
