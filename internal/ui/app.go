package ui

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/threadscity/internal/api"
	"github.com/fragmede/threadscity/internal/auth"
	"github.com/fragmede/threadscity/internal/cache"
	"github.com/fragmede/threadscity/internal/compose"
	"github.com/fragmede/threadscity/internal/config"
	"github.com/fragmede/threadscity/internal/feed"
	"github.com/fragmede/threadscity/internal/guard"
	"github.com/fragmede/threadscity/internal/monitor"
	"github.com/fragmede/threadscity/internal/ui/composer"
	"github.com/fragmede/threadscity/internal/ui/home"
	"github.com/fragmede/threadscity/internal/ui/login"
	"github.com/fragmede/threadscity/internal/ui/messages"
	"github.com/fragmede/threadscity/internal/ui/notifications"
	"github.com/fragmede/threadscity/internal/ui/postdetail"
	"github.com/fragmede/threadscity/internal/ui/profile"
	"github.com/fragmede/threadscity/internal/ui/register"
	"github.com/fragmede/threadscity/internal/ui/search"
	"github.com/fragmede/threadscity/internal/ui/statusbar"
	"github.com/fragmede/threadscity/internal/ui/styles"
)

// ViewType identifies the view a route renders.
type ViewType int

const (
	ViewUnknown ViewType = iota
	ViewHome
	ViewPost
	ViewSearch
	ViewNotifications
	ViewProfile
	ViewLogin
	ViewRegister
)

// viewFor maps a route path to its view.
func viewFor(path string) ViewType {
	switch {
	case path == guard.Home:
		return ViewHome
	case strings.HasPrefix(path, "/post/"):
		return ViewPost
	case path == "/search":
		return ViewSearch
	case path == "/favorites":
		return ViewNotifications
	case path == "/profile" || strings.HasPrefix(path, "/profile/"):
		return ViewProfile
	case path == "/login":
		return ViewLogin
	case path == "/register":
		return ViewRegister
	}
	return ViewUnknown
}

// App is the root Bubble Tea model. Every screen change goes through
// navigate, which asks the guard what to show for the current auth state.
type App struct {
	// Routing
	route    string
	history  []string
	decision guard.Decision
	built    string
	seen     auth.State

	// Child models
	home          home.Model
	homeReady     bool
	detail        postdetail.Model
	loginForm     login.Model
	registerForm  register.Model
	notifications notifications.Model
	search        search.Model
	profile       profile.Model
	statusBar     statusbar.Model
	newPost       composer.Model
	reply         composer.Model

	// Shared state
	cfg     config.Config
	client  *api.Client
	gate    *auth.Gate
	store   *feed.Store
	cache   *cache.DB
	styles  *styles.Styles
	monitor *monitor.Monitor

	width  int
	height int

	program *tea.Program
}

// NewApp creates the root application model.
func NewApp(cfg config.Config, client *api.Client, gate *auth.Gate, store *feed.Store, db *cache.DB, st *styles.Styles) *App {
	// A protected fallback would redirect to itself.
	if cfg.LoginRoute == "" || guard.Lookup(cfg.LoginRoute).Access == guard.Protected {
		if cfg.LoginRoute != "" {
			log.Printf("ui: login route %q is protected, using %s", cfg.LoginRoute, guard.DefaultFallback)
		}
		cfg.LoginRoute = guard.DefaultFallback
	}
	return &App{
		statusBar: statusbar.New(st),
		newPost:   composer.New(compose.NewPost, cfg.SubmitDelay, st),
		reply:     composer.New(compose.Reply, cfg.SubmitDelay, st),
		seen:      auth.State{IsLoading: true},
		cfg:       cfg,
		client:    client,
		gate:      gate,
		store:     store,
		cache:     db,
		styles:    st,
		monitor:   monitor.New(store, cfg.MonitorInterval),
	}
}

// SetProgram forwards gate transitions into the program as AuthStateMsg.
func (a *App) SetProgram(p *tea.Program) {
	a.program = p
	a.gate.Subscribe(func(s auth.State) {
		p.Send(messages.AuthStateMsg{State: s})
	})
}

// Init shows the loading placeholder and starts the session check.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.navigate(guard.Home, false), a.start())
}

func (a *App) start() tea.Cmd {
	gate := a.gate
	return func() tea.Msg {
		return messages.AuthStateMsg{State: gate.Start(context.Background())}
	}
}

// Route returns the current path and what the guard decided for it.
func (a *App) Route() (string, guard.Decision) {
	return a.route, a.decision
}

// Update handles all messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case tea.MouseMsg:
		c := a.openComposer()
		if c != nil && c.State() == compose.Open &&
			msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft &&
			!c.Contains(msg.X, msg.Y) {
			c.Cancel()
		}
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, Keys.ForceQuit) {
			a.monitor.Stop()
			return a, tea.Quit
		}
		if key.Matches(msg, Keys.Theme) {
			return a, a.toggleTheme()
		}
		if c := a.openComposer(); c != nil {
			var cmd tea.Cmd
			*c, cmd = c.Update(msg)
			return a, cmd
		}
		if key.Matches(msg, Keys.Logout) && a.gate.State().IsAuthenticated {
			return a, a.logout()
		}
		if key.Matches(msg, Keys.Back) {
			if cmd, ok := a.goBack(); ok {
				return a, cmd
			}
		}
		if !a.typing() && a.gate.State().IsAuthenticated {
			switch {
			case key.Matches(msg, Keys.Quit):
				if cmd, ok := a.goBack(); ok {
					return a, cmd
				}
				a.monitor.Stop()
				return a, tea.Quit
			case key.Matches(msg, Keys.Home):
				return a, a.switchTab(guard.Home)
			case key.Matches(msg, Keys.Search):
				return a, a.switchTab("/search")
			case key.Matches(msg, Keys.Notifications):
				return a, a.switchTab("/favorites")
			case key.Matches(msg, Keys.Profile):
				return a, a.switchTab("/profile")
			case key.Matches(msg, Keys.Compose):
				return a, a.openCompose(nil)
			}
		}

	// Navigation.
	case messages.NavigateMsg:
		return a, a.navigate(msg.Path, true)

	case messages.GoBackMsg:
		cmd, _ := a.goBack()
		return a, cmd

	case messages.OpenPostMsg:
		return a, a.navigate("/post/"+msg.PostID, true)

	case messages.OpenProfileMsg:
		if msg.Username == "" || msg.Username == currentUser(a.gate.State()) {
			return a, a.navigate("/profile", true)
		}
		return a, a.navigate("/profile/"+msg.Username, true)

	case messages.OpenComposeMsg:
		return a, a.openCompose(msg.ReplyTo)

	// Auth.
	case messages.AuthStateMsg:
		return a, a.onAuthChange(msg.State)

	case messages.LoginResultMsg:
		if msg.Err == nil {
			a.statusBar.SetStatus("", false)
			a.history = nil
			return a, a.navigate(guard.Home, false)
		}

	case messages.RegisterResultMsg:
		if msg.Err == nil {
			a.history = nil
			cmd := a.navigate("/login", false)
			banner := func() tea.Msg { return messages.ShowBannerMsg{Text: register.SuccessBanner} }
			return a, tea.Batch(cmd, banner)
		}

	case messages.LogoutResultMsg:
		if msg.Err != nil {
			a.statusBar.SetStatus("Đăng xuất thất bại: "+describe(msg.Err), true)
			return a, nil
		}
		a.statusBar.SetStatus("", false)
		a.statusBar.SetUnread(0)
		a.history = nil
		return a, a.navigate(a.cfg.LoginRoute, false)

	// Compose.
	case messages.ComposeSubmittedMsg:
		if msg.Variant == compose.NewPost {
			return a, a.createPost(msg.Ticket.Content)
		}
		return a, nil

	case messages.CreatePostResultMsg:
		if msg.Err != nil {
			a.statusBar.SetStatus(createPostError(msg.Err), true)
		}
		return a, nil

	case messages.ComposeDoneMsg:
		return a, a.completeCompose(msg)

	case messages.PostPublishedMsg, messages.LikeToggledMsg:
		return a, a.broadcast(msg)

	case messages.ThemeChangedMsg:
		if msg.Theme == cache.ThemeDark {
			a.statusBar.SetStatus("Giao diện tối", false)
		} else {
			a.statusBar.SetStatus("Giao diện sáng", false)
		}
		return a, nil

	case messages.UnreadCountMsg:
		a.statusBar.SetUnread(msg.Count)
		return a, nil

	case messages.StatusMsg:
		a.statusBar.SetStatus(msg.Text, msg.IsError)
		return a, nil
	}

	return a, a.updateActive(msg)
}

// navigate moves to path, following guard redirects. A redirect
// replaces the requested path instead of adding a history entry.
func (a *App) navigate(path string, push bool) tea.Cmd {
	if push && a.route != "" && a.route != path {
		a.history = append(a.history, a.route)
	}

	state := a.gate.State()
	d := guard.Decide(state, guard.Lookup(path), a.cfg.LoginRoute)
	for i := 0; d.Kind == guard.Redirect && i < 2; i++ {
		log.Printf("ui: %s redirected to %s", path, d.Target)
		path = d.Target
		d = guard.Decide(state, guard.Lookup(path), a.cfg.LoginRoute)
	}

	a.route = path
	a.decision = d
	a.statusBar.SetUser(currentUser(state))
	a.statusBar.SetActiveTab(tabFor(path))

	if d.Kind != guard.Allow || a.built == path {
		return nil
	}
	a.built = path
	return a.build(path, state)
}

func (a *App) build(path string, state auth.State) tea.Cmd {
	h := a.contentHeight()
	switch viewFor(path) {
	case ViewHome:
		if a.homeReady {
			return nil
		}
		a.home = home.New(a.store, a.styles)
		a.home.SetSize(a.width, h)
		a.homeReady = true
		return a.home.Init()
	case ViewPost:
		a.detail = postdetail.New(strings.TrimPrefix(path, "/post/"), a.store, a.styles)
		a.detail.SetSize(a.width, h)
		return a.detail.Init()
	case ViewSearch:
		a.search = search.New(a.store, a.styles)
		a.search.SetSize(a.width, h)
		return a.search.Init()
	case ViewNotifications:
		a.notifications = notifications.New(a.store, a.styles)
		a.notifications.SetSize(a.width, h)
		return a.notifications.Init()
	case ViewProfile:
		username := strings.TrimPrefix(strings.TrimPrefix(path, "/profile"), "/")
		a.profile = profile.New(username, currentUser(state), a.store, a.styles)
		a.profile.SetSize(a.width, h)
		return a.profile.Init()
	case ViewLogin:
		a.loginForm = login.New(a.gate, a.styles, "")
		a.loginForm.SetSize(a.width, h)
	case ViewRegister:
		a.registerForm = register.New(a.gate, a.styles)
		a.registerForm.SetSize(a.width, h)
	}
	return nil
}

// onAuthChange re-evaluates the current route for a new auth state.
// The same state can arrive twice (listener and Start result).
func (a *App) onAuthChange(s auth.State) tea.Cmd {
	if s.IsLoading == a.seen.IsLoading &&
		s.IsAuthenticated == a.seen.IsAuthenticated &&
		currentUser(s) == currentUser(a.seen) {
		return nil
	}
	log.Printf("ui: auth state loading=%v authenticated=%v user=%q", s.IsLoading, s.IsAuthenticated, currentUser(s))
	a.seen = s
	a.history = nil
	a.built = ""
	if s.IsAuthenticated {
		if p := a.program; p != nil {
			a.monitor.Start(p.Send)
		}
	} else {
		a.monitor.Stop()
		a.statusBar.SetUnread(0)
		a.homeReady = false
		a.newPost.Cancel()
		a.reply.Cancel()
	}
	return a.navigate(a.route, false)
}

func (a *App) goBack() (tea.Cmd, bool) {
	if len(a.history) == 0 {
		return nil, false
	}
	prev := a.history[len(a.history)-1]
	a.history = a.history[:len(a.history)-1]
	return a.navigate(prev, false), true
}

func (a *App) switchTab(path string) tea.Cmd {
	a.history = nil
	if path == a.route {
		a.built = ""
	}
	return a.navigate(path, false)
}

// typing reports whether the active view takes free text input.
func (a *App) typing() bool {
	if a.decision.Kind != guard.Allow {
		return false
	}
	switch viewFor(a.route) {
	case ViewLogin, ViewRegister, ViewSearch:
		return true
	case ViewHome:
		return a.home.Filtering()
	}
	return false
}

func (a *App) openComposer() *composer.Model {
	if a.newPost.IsOpen() {
		return &a.newPost
	}
	if a.reply.IsOpen() {
		return &a.reply
	}
	return nil
}

// openCompose opens the new-post modal, or the reply modal when replyTo
// is set. It does nothing while signed out or while a modal is open.
func (a *App) openCompose(replyTo *feed.Post) tea.Cmd {
	state := a.gate.State()
	if !state.IsAuthenticated || a.openComposer() != nil {
		return nil
	}
	username := currentUser(state)
	if replyTo == nil {
		return a.newPost.Open(nil, username)
	}
	target := &compose.Target{
		PostID:  replyTo.ID,
		Author:  replyTo.Author.Username,
		Content: replyTo.Content,
	}
	return a.reply.Open(target, username)
}

func (a *App) completeCompose(msg messages.ComposeDoneMsg) tea.Cmd {
	c := &a.newPost
	if msg.Variant == compose.Reply {
		c = &a.reply
	}
	content, ok := c.Complete(msg.Generation)
	if !ok {
		return nil
	}

	post := a.store.Append(content, currentUser(a.gate.State()))
	if content.ReplyTo != "" {
		log.Printf("ui: reply %s added to %s", post.ID, content.ReplyTo)
		a.statusBar.SetStatus("Đã gửi câu trả lời", false)
	} else {
		log.Printf("ui: post %s published", post.ID)
		a.statusBar.SetStatus("Đã đăng", false)
	}
	return func() tea.Msg { return messages.PostPublishedMsg{Post: post} }
}

func (a *App) createPost(content string) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		_, err := client.CreatePost(context.Background(), content)
		return messages.CreatePostResultMsg{Err: err}
	}
}

func (a *App) logout() tea.Cmd {
	gate := a.gate
	return func() tea.Msg {
		return messages.LogoutResultMsg{Err: gate.Logout(context.Background())}
	}
}

func (a *App) toggleTheme() tea.Cmd {
	theme := a.styles.Theme.Toggle()
	a.styles.Apply(theme)
	db := a.cache
	return func() tea.Msg {
		if db != nil {
			if err := db.PutTheme(theme); err != nil {
				log.Printf("ui: saving theme: %v", err)
			}
		}
		return messages.ThemeChangedMsg{Theme: theme}
	}
}

// broadcast delivers feed changes to the home timeline as well as the
// active view.
func (a *App) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	if a.homeReady && viewFor(a.route) != ViewHome {
		var cmd tea.Cmd
		a.home, cmd = a.home.Update(msg)
		cmds = append(cmds, cmd)
	}
	cmds = append(cmds, a.updateActive(msg))
	return tea.Batch(cmds...)
}

func (a *App) updateActive(msg tea.Msg) tea.Cmd {
	if a.decision.Kind != guard.Allow {
		return nil
	}
	var cmd tea.Cmd
	switch viewFor(a.route) {
	case ViewHome:
		a.home, cmd = a.home.Update(msg)
	case ViewPost:
		a.detail, cmd = a.detail.Update(msg)
	case ViewSearch:
		a.search, cmd = a.search.Update(msg)
	case ViewNotifications:
		a.notifications, cmd = a.notifications.Update(msg)
		a.statusBar.SetUnread(a.store.UnreadCount())
	case ViewProfile:
		a.profile, cmd = a.profile.Update(msg)
	case ViewLogin:
		a.loginForm, cmd = a.loginForm.Update(msg)
	case ViewRegister:
		a.registerForm, cmd = a.registerForm.Update(msg)
	}
	return cmd
}

func (a *App) contentHeight() int {
	return a.height - 1 // Reserve 1 line for status bar.
}

func (a *App) resize() {
	h := a.contentHeight()
	a.statusBar.SetSize(a.width)
	a.newPost.SetSize(a.width, h)
	a.reply.SetSize(a.width, h)
	if a.homeReady {
		a.home.SetSize(a.width, h)
	}
	if a.decision.Kind != guard.Allow {
		return
	}
	// Only resize lazily-created views if they're currently active.
	switch viewFor(a.route) {
	case ViewPost:
		a.detail.SetSize(a.width, h)
	case ViewSearch:
		a.search.SetSize(a.width, h)
	case ViewNotifications:
		a.notifications.SetSize(a.width, h)
	case ViewProfile:
		a.profile.SetSize(a.width, h)
	case ViewLogin:
		a.loginForm.SetSize(a.width, h)
	case ViewRegister:
		a.registerForm.SetSize(a.width, h)
	}
}

// View renders the application.
func (a *App) View() string {
	var content string
	switch {
	case a.decision.Kind != guard.Allow:
		content = a.styles.Placeholder.Render("\n  " + guard.PlaceholderText)
	case a.openComposer() != nil:
		content = a.openComposer().View()
	default:
		content = a.activeView()
	}

	if h := a.contentHeight(); h > 0 {
		content = lipgloss.NewStyle().Height(h).MaxHeight(h).Render(content)
	}
	return lipgloss.JoinVertical(lipgloss.Left, content, a.statusBar.View())
}

func (a *App) activeView() string {
	switch viewFor(a.route) {
	case ViewHome:
		return a.home.View()
	case ViewPost:
		return a.detail.View()
	case ViewSearch:
		return a.search.View()
	case ViewNotifications:
		return a.notifications.View()
	case ViewProfile:
		return a.profile.View()
	case ViewLogin:
		return a.loginForm.View()
	case ViewRegister:
		return a.registerForm.View()
	}
	return a.styles.Title.Render("Không tìm thấy trang " + a.route)
}

func tabFor(path string) statusbar.Tab {
	switch viewFor(path) {
	case ViewHome:
		return statusbar.TabHome
	case ViewSearch:
		return statusbar.TabSearch
	case ViewNotifications:
		return statusbar.TabNotifications
	case ViewProfile:
		if path == "/profile" {
			return statusbar.TabProfile
		}
	}
	return statusbar.TabNone
}

func currentUser(s auth.State) string {
	if s.User == nil {
		return ""
	}
	return s.User.Username
}

func describe(err error) string {
	var ae *auth.Error
	if errors.As(err, &ae) {
		return ae.UserMessage()
	}
	if errors.Is(err, auth.ErrBusy) || errors.Is(err, auth.ErrNotReady) {
		return "Đang xử lý, vui lòng đợi..."
	}
	return err.Error()
}

func createPostError(err error) string {
	f := api.Decode(err, api.PreferMsg)
	switch {
	case f.Kind == api.FailureTransport:
		return "Không thể kết nối đến máy chủ. Bài viết chưa được gửi."
	case f.Message != "":
		return "Đăng bài thất bại: " + f.Message
	}
	return "Đăng bài thất bại"
}
