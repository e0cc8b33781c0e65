package ui

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fragmede/threadscity/internal/api"
	"github.com/fragmede/threadscity/internal/auth"
	"github.com/fragmede/threadscity/internal/cache"
	"github.com/fragmede/threadscity/internal/config"
	"github.com/fragmede/threadscity/internal/feed"
	"github.com/fragmede/threadscity/internal/guard"
	"github.com/fragmede/threadscity/internal/mockserver"
	"github.com/fragmede/threadscity/internal/ui/messages"
	"github.com/fragmede/threadscity/internal/ui/register"
	"github.com/fragmede/threadscity/internal/ui/styles"
)

type appFixture struct {
	app     *App
	gate    *auth.Gate
	store   *feed.Store
	db      *cache.DB
	backend *mockserver.Server
}

func newAppFixture(t *testing.T, opts ...func(*config.Config)) *appFixture {
	t.Helper()

	backend := mockserver.New(mockserver.WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, backend.AddUser("hg.ducc", "ducc@example.com", "secret1", "Hoang Duc"))
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)

	cfg := config.Default()
	cfg.SubmitDelay = time.Millisecond
	cfg.RetryUnit = time.Millisecond
	for _, opt := range opts {
		opt(&cfg)
	}

	client, err := api.NewClient(srv.URL, api.WithRateLimit(0, 0))
	require.NoError(t, err)

	db, err := cache.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gate := auth.NewGate(auth.NewService(client, cfg.MaxRetries, cfg.RetryUnit), auth.NewPersistentSession(client, db))
	store := feed.NewStore(0)
	app := NewApp(cfg, client, gate, store, db, styles.New(cache.ThemeLight))
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	return &appFixture{app: app, gate: gate, store: store, db: db, backend: backend}
}

// isAppMsg reports whether msg is one the tests feed back into the app.
// Cursor blinks and other widget ticks are dropped.
func isAppMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case messages.NavigateMsg, messages.GoBackMsg, messages.OpenPostMsg,
		messages.OpenProfileMsg, messages.OpenComposeMsg, messages.ShowBannerMsg,
		messages.AuthStateMsg, messages.LoginResultMsg, messages.RegisterResultMsg,
		messages.LogoutResultMsg, messages.PostsLoadedMsg, messages.DetailLoadedMsg,
		messages.NotificationsLoadedMsg, messages.ProfileLoadedMsg, messages.LikeToggledMsg,
		messages.ComposeSubmittedMsg, messages.ComposeDoneMsg, messages.CreatePostResultMsg,
		messages.PostPublishedMsg, messages.ThemeChangedMsg, messages.StatusMsg:
		return true
	}
	return false
}

// drain runs cmd and every command it leads to, feeding app messages
// back through Update.
func drain(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}

		done := make(chan tea.Msg, 1)
		go func() { done <- c() }()
		var msg tea.Msg
		select {
		case msg = <-done:
		case <-time.After(2 * time.Second):
			continue
		}

		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if !isAppMsg(msg) {
			continue
		}
		_, next := a.Update(msg)
		queue = append(queue, next)
	}
}

func send(t *testing.T, a *App, msg tea.Msg) {
	t.Helper()
	_, cmd := a.Update(msg)
	drain(t, a, cmd)
}

func typeText(t *testing.T, a *App, s string) {
	t.Helper()
	send(t, a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (f *appFixture) start(t *testing.T) {
	t.Helper()
	drain(t, f.app, f.app.Init())
}

func (f *appFixture) login(t *testing.T) {
	t.Helper()
	gate := f.gate
	drain(t, f.app, func() tea.Msg {
		err := gate.Login(context.Background(), "hg.ducc", "secret1")
		return messages.LoginResultMsg{Username: "hg.ducc", Err: err}
	})
}

func TestAppShowsPlaceholderWhileLoading(t *testing.T) {
	f := newAppFixture(t)
	_ = f.app.Init()

	route, d := f.app.Route()
	assert.Equal(t, guard.Home, route)
	assert.Equal(t, guard.Placeholder, d.Kind)
	assert.Contains(t, f.app.View(), guard.PlaceholderText)
}

func TestAppRedirectsToLoginWhenSignedOut(t *testing.T) {
	f := newAppFixture(t)
	f.start(t)

	route, d := f.app.Route()
	assert.Equal(t, "/login", route)
	assert.Equal(t, guard.Allow, d.Kind)

	send(t, f.app, messages.NavigateMsg{Path: "/favorites"})
	route, _ = f.app.Route()
	assert.Equal(t, "/login", route)

	send(t, f.app, messages.NavigateMsg{Path: "/register"})
	route, _ = f.app.Route()
	assert.Equal(t, "/register", route)
}

func TestAppProtectedLoginRouteFallsBackToLogin(t *testing.T) {
	for _, route := range []string{"/favorites", "/nowhere", ""} {
		t.Run(route, func(t *testing.T) {
			f := newAppFixture(t, func(c *config.Config) { c.LoginRoute = route })
			f.start(t)

			got, d := f.app.Route()
			assert.Equal(t, guard.DefaultFallback, got)
			assert.Equal(t, guard.Allow, d.Kind)
			assert.NotContains(t, f.app.View(), guard.PlaceholderText)
		})
	}
}

func TestAppLoginThenGuestRoutesRedirectHome(t *testing.T) {
	f := newAppFixture(t)
	f.start(t)
	f.login(t)

	route, d := f.app.Route()
	assert.Equal(t, guard.Home, route)
	assert.Equal(t, guard.Allow, d.Kind)

	send(t, f.app, messages.NavigateMsg{Path: "/login"})
	route, _ = f.app.Route()
	assert.Equal(t, guard.Home, route)

	send(t, f.app, messages.NavigateMsg{Path: "/favorites"})
	route, _ = f.app.Route()
	assert.Equal(t, "/favorites", route)
}

func TestAppRegisterSuccessShowsBanner(t *testing.T) {
	f := newAppFixture(t)
	f.start(t)
	send(t, f.app, messages.NavigateMsg{Path: "/register"})

	gate := f.gate
	drain(t, f.app, func() tea.Msg {
		err := gate.Register(context.Background(), auth.RegisterData{
			Username: "newbie",
			Email:    "newbie@example.com",
			Password: "123456",
			FullName: "New Bie",
		})
		return messages.RegisterResultMsg{Username: "newbie", Err: err}
	})

	route, _ := f.app.Route()
	assert.Equal(t, "/login", route)
	assert.False(t, f.gate.State().IsAuthenticated)
	assert.Contains(t, f.app.View(), register.SuccessBanner)
}

func TestAppComposePublishesPost(t *testing.T) {
	f := newAppFixture(t)
	f.start(t)
	f.login(t)

	send(t, f.app, messages.OpenComposeMsg{})
	require.True(t, f.app.newPost.IsOpen())

	typeText(t, f.app, "  xin chào  ")
	send(t, f.app, tea.KeyMsg{Type: tea.KeyCtrlS})

	assert.False(t, f.app.newPost.IsOpen())
	posts, err := f.store.Posts(context.Background(), feed.Suggested)
	require.NoError(t, err)
	assert.Equal(t, "xin chào", posts[0].Content)
	assert.Equal(t, "hg.ducc", posts[0].Author.Username)

	require.Len(t, f.backend.Posts(), 1)
	assert.Equal(t, "xin chào", f.backend.Posts()[0].Content)
}

func TestAppReplyBumpsParent(t *testing.T) {
	f := newAppFixture(t)
	f.start(t)
	f.login(t)

	parent, ok := f.store.Post("1")
	require.True(t, ok)

	send(t, f.app, messages.OpenComposeMsg{ReplyTo: &parent})
	require.True(t, f.app.reply.IsOpen())
	assert.Contains(t, f.app.View(), parent.Author.Username)

	typeText(t, f.app, "đồng ý")
	send(t, f.app, tea.KeyMsg{Type: tea.KeyCtrlS})

	after, _ := f.store.Post("1")
	assert.Equal(t, parent.Replies+1, after.Replies)
	replies := f.store.Replies("1", feed.SortRecent)
	require.NotEmpty(t, replies)
	assert.Equal(t, "đồng ý", replies[0].Content)
	assert.Empty(t, f.backend.Posts())
}

func TestAppCancelDropsPendingSubmit(t *testing.T) {
	f := newAppFixture(t)
	f.start(t)
	f.login(t)
	before, err := f.store.Posts(context.Background(), feed.Suggested)
	require.NoError(t, err)

	send(t, f.app, messages.OpenComposeMsg{})
	typeText(t, f.app, "hello")
	_, pending := f.app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})

	f.app.newPost.Cancel()
	drain(t, f.app, pending)

	after, err := f.store.Posts(context.Background(), feed.Suggested)
	require.NoError(t, err)
	assert.Len(t, after, len(before))
	assert.False(t, f.app.newPost.IsOpen())
}

func TestAppComposeIgnoredWhenSignedOut(t *testing.T) {
	f := newAppFixture(t)
	f.start(t)

	send(t, f.app, messages.OpenComposeMsg{})
	assert.False(t, f.app.newPost.IsOpen())
}

func TestAppSecondComposeIgnoredWhileOpen(t *testing.T) {
	f := newAppFixture(t)
	f.start(t)
	f.login(t)

	send(t, f.app, messages.OpenComposeMsg{})
	parent, _ := f.store.Post("1")
	send(t, f.app, messages.OpenComposeMsg{ReplyTo: &parent})

	assert.True(t, f.app.newPost.IsOpen())
	assert.False(t, f.app.reply.IsOpen())
}

func TestAppThemeToggleIsSaved(t *testing.T) {
	f := newAppFixture(t)
	f.start(t)

	send(t, f.app, tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, cache.ThemeDark, f.app.styles.Theme)

	theme, err := f.db.GetTheme()
	require.NoError(t, err)
	assert.Equal(t, cache.ThemeDark, theme)
}

func TestAppLogout(t *testing.T) {
	f := newAppFixture(t)
	f.start(t)
	f.login(t)

	send(t, f.app, tea.KeyMsg{Type: tea.KeyCtrlO})

	route, _ := f.app.Route()
	assert.Equal(t, "/login", route)
	assert.False(t, f.gate.State().IsAuthenticated)
}

func TestAppBackReturnsToPreviousRoute(t *testing.T) {
	f := newAppFixture(t)
	f.start(t)
	f.login(t)

	send(t, f.app, messages.OpenPostMsg{PostID: "11"})
	route, _ := f.app.Route()
	assert.Equal(t, "/post/11", route)

	send(t, f.app, tea.KeyMsg{Type: tea.KeyEsc})
	route, _ = f.app.Route()
	assert.Equal(t, guard.Home, route)
}
