// Package guard decides whether a view may render given the current
// authentication state.
package guard

import (
	"strings"

	"github.com/fragmede/threadscity/internal/auth"
)

const (
	// DefaultFallback is where unauthenticated users are sent.
	DefaultFallback = "/login"
	// Home is where authenticated users are sent from guest-only routes.
	Home = "/"
	// PlaceholderText is rendered while the session check runs.
	PlaceholderText = "Đang tải..."
)

// Access describes who may see a route.
type Access int

const (
	// Public routes render for everyone.
	Public Access = iota
	// Protected routes require an authenticated session.
	Protected
	// GuestOnly routes (login, register) are for signed-out users.
	GuestOnly
)

// Route is a navigation target.
type Route struct {
	Path   string
	Access Access
}

// Kind is the outcome of a guard decision.
type Kind int

const (
	Allow Kind = iota
	Placeholder
	Redirect
)

func (k Kind) String() string {
	switch k {
	case Placeholder:
		return "placeholder"
	case Redirect:
		return "redirect"
	default:
		return "allow"
	}
}

// Decision is what the view layer should do with a route.
type Decision struct {
	Kind   Kind
	Target string
}

// Decide is a pure function of the auth state and the route. fallback
// defaults to DefaultFallback when empty.
func Decide(state auth.State, route Route, fallback string) Decision {
	if fallback == "" {
		fallback = DefaultFallback
	}

	switch route.Access {
	case Protected:
		switch {
		case state.IsLoading:
			return Decision{Kind: Placeholder}
		case !state.IsAuthenticated:
			return Decision{Kind: Redirect, Target: fallback}
		}
	case GuestOnly:
		switch {
		case state.IsLoading:
			return Decision{Kind: Placeholder}
		case state.IsAuthenticated:
			return Decision{Kind: Redirect, Target: Home}
		}
	}
	return Decision{Kind: Allow, Target: route.Path}
}

// Routes is the client's route table.
var Routes = []Route{
	{Path: "/", Access: Protected},
	{Path: "/post/", Access: Protected},
	{Path: "/search", Access: Protected},
	{Path: "/favorites", Access: Protected},
	{Path: "/profile", Access: Protected},
	{Path: "/profile/", Access: Protected},
	{Path: "/login", Access: GuestOnly},
	{Path: "/register", Access: GuestOnly},
}

// Lookup returns the route for path. Paths ending in "/" in the table
// match by prefix; unknown paths are protected.
func Lookup(path string) Route {
	for _, r := range Routes {
		if r.Path == path {
			return r
		}
	}
	for _, r := range Routes {
		if r.Path != "/" && strings.HasSuffix(r.Path, "/") && strings.HasPrefix(path, r.Path) {
			return Route{Path: path, Access: r.Access}
		}
	}
	return Route{Path: path, Access: Protected}
}
