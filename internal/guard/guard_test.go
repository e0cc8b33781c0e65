package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fragmede/threadscity/internal/auth"
)

func TestDecide(t *testing.T) {
	user := &auth.User{Username: "hg.ducc"}
	loading := auth.State{IsLoading: true}
	loadingAuthed := auth.State{IsLoading: true, IsAuthenticated: true, User: user}
	anon := auth.State{}
	authed := auth.State{IsAuthenticated: true, User: user}

	home := Route{Path: "/", Access: Protected}
	login := Route{Path: "/login", Access: GuestOnly}
	public := Route{Path: "/about", Access: Public}

	tests := []struct {
		name     string
		state    auth.State
		route    Route
		fallback string
		want     Decision
	}{
		{"protected loading", loading, home, "", Decision{Kind: Placeholder}},
		{"protected loading ignores auth flag", loadingAuthed, home, "", Decision{Kind: Placeholder}},
		{"protected anonymous", anon, home, "", Decision{Kind: Redirect, Target: "/login"}},
		{"protected custom fallback", anon, home, "/welcome", Decision{Kind: Redirect, Target: "/welcome"}},
		{"protected authenticated", authed, home, "", Decision{Kind: Allow, Target: "/"}},
		{"guest loading", loading, login, "", Decision{Kind: Placeholder}},
		{"guest anonymous", anon, login, "", Decision{Kind: Allow, Target: "/login"}},
		{"guest authenticated", authed, login, "", Decision{Kind: Redirect, Target: "/"}},
		{"public loading", loading, public, "", Decision{Kind: Allow, Target: "/about"}},
		{"public anonymous", anon, public, "", Decision{Kind: Allow, Target: "/about"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.state, tt.route, tt.fallback))
		})
	}
}

func TestLookup(t *testing.T) {
	assert.Equal(t, Protected, Lookup("/").Access)
	assert.Equal(t, GuestOnly, Lookup("/login").Access)
	assert.Equal(t, GuestOnly, Lookup("/register").Access)

	r := Lookup("/post/7")
	assert.Equal(t, "/post/7", r.Path)
	assert.Equal(t, Protected, r.Access)

	assert.Equal(t, Protected, Lookup("/profile/hg.ducc").Access)
	assert.Equal(t, Protected, Lookup("/nowhere").Access)
}
