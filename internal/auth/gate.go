package auth

import (
	"context"
	"log"
	"sync"

	"github.com/fragmede/threadscity/internal/api"
)

// State is a read-only snapshot of the authentication state.
// IsAuthenticated is true exactly when User is non-nil.
type State struct {
	IsAuthenticated bool
	IsLoading       bool
	User            *User
}

// Authenticator is the subset of Service the gate drives.
type Authenticator interface {
	Register(ctx context.Context, data RegisterData) (*api.AuthResponse, error)
	Login(ctx context.Context, data LoginData) (*api.AuthResponse, error)
	Logout(ctx context.Context) error
	CheckSession(ctx context.Context) (*User, bool)
}

// SessionStore keeps the session cookies between runs.
type SessionStore interface {
	Save(username string) error
	Restore() (username string, ok bool)
	Clear() error
}

// Gate is the single owner of the authentication state. All changes go
// through Start, Login, Logout and Register; overlapping calls are
// rejected with ErrBusy rather than interleaved.
type Gate struct {
	svc   Authenticator
	store SessionStore

	mu        sync.Mutex
	state     State
	started   bool
	busy      bool
	listeners []func(State)
}

// NewGate creates a gate in the loading state. store may be nil.
func NewGate(svc Authenticator, store SessionStore) *Gate {
	return &Gate{
		svc:   svc,
		store: store,
		state: State{IsLoading: true},
	}
}

// State returns the current snapshot.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state.clone()
}

// Subscribe registers fn to run after every committed transition.
func (g *Gate) Subscribe(fn func(State)) {
	g.mu.Lock()
	g.listeners = append(g.listeners, fn)
	g.mu.Unlock()
}

// Start restores any saved session and runs the session check once.
// Later calls return the current state without probing again.
func (g *Gate) Start(ctx context.Context) State {
	g.mu.Lock()
	if g.started {
		s := g.state.clone()
		g.mu.Unlock()
		return s
	}
	g.started = true
	g.mu.Unlock()

	var saved string
	if g.store != nil {
		saved, _ = g.store.Restore()
	}

	next := State{}
	if user, ok := g.svc.CheckSession(ctx); ok {
		if user == nil {
			user = &User{}
		}
		if user.Username == "" {
			user.Username = saved
		}
		next = State{IsAuthenticated: true, User: user}
	}
	return g.commit(next)
}

// Login authenticates and, on success, moves to the authenticated state.
// On failure the state is left as it was.
func (g *Gate) Login(ctx context.Context, username, password string) error {
	if err := g.begin(); err != nil {
		return err
	}
	defer g.end()

	if _, err := g.svc.Login(ctx, LoginData{Username: username, Password: password}); err != nil {
		log.Printf("auth: login failed for %q: %v", username, err)
		return err
	}

	if g.store != nil {
		if err := g.store.Save(username); err != nil {
			log.Printf("auth: saving session: %v", err)
		}
	}
	g.commit(State{IsAuthenticated: true, User: &User{Username: username}})
	return nil
}

// Logout ends the session. If the server call fails the state stays
// authenticated and the error is returned.
func (g *Gate) Logout(ctx context.Context) error {
	if err := g.begin(); err != nil {
		return err
	}
	defer g.end()

	if err := g.svc.Logout(ctx); err != nil {
		log.Printf("auth: logout failed: %v", err)
		return err
	}

	if g.store != nil {
		if err := g.store.Clear(); err != nil {
			log.Printf("auth: clearing saved session: %v", err)
		}
	}
	g.commit(State{})
	return nil
}

// Register creates an account. It does not sign the user in.
func (g *Gate) Register(ctx context.Context, data RegisterData) error {
	if err := g.begin(); err != nil {
		return err
	}
	defer g.end()

	if _, err := g.svc.Register(ctx, data); err != nil {
		log.Printf("auth: registration failed for %q: %v", data.Username, err)
		return err
	}
	return nil
}

func (g *Gate) begin() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state.IsLoading {
		return ErrNotReady
	}
	if g.busy {
		return ErrBusy
	}
	g.busy = true
	return nil
}

func (g *Gate) end() {
	g.mu.Lock()
	g.busy = false
	g.mu.Unlock()
}

func (g *Gate) commit(next State) State {
	next.IsLoading = false
	if next.User == nil {
		next.IsAuthenticated = false
	}

	g.mu.Lock()
	g.state = next
	snapshot := g.state.clone()
	listeners := append([]func(State){}, g.listeners...)
	g.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot.clone())
	}
	return snapshot
}

func (s State) clone() State {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}
