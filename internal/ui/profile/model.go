package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/threadscity/internal/feed"
	"github.com/fragmede/threadscity/internal/render"
	"github.com/fragmede/threadscity/internal/ui/messages"
	"github.com/fragmede/threadscity/internal/ui/styles"
)

// Model is the profile view.
type Model struct {
	profile     *feed.Profile
	username    string
	current     string
	tab         feed.ProfileTab
	posts       []feed.Post
	selectedIdx int
	loading     bool
	err         string
	store       *feed.Store
	styles      *styles.Styles
	width       int
	height      int
}

// New creates a profile view for username. An empty username shows
// the signed-in user, current.
func New(username, current string, store *feed.Store, st *styles.Styles) Model {
	if username == "" {
		username = current
	}
	return Model{
		username: username,
		current:  current,
		tab:      feed.TabThreads,
		loading:  true,
		store:    store,
		styles:   st,
	}
}

// Init loads the profile.
func (m Model) Init() tea.Cmd {
	store := m.store
	username, current := m.username, m.current
	return func() tea.Msg {
		p, err := store.Profile(context.Background(), username, current)
		return messages.ProfileLoadedMsg{Username: username, Profile: p, Err: err}
	}
}

// Username returns whose profile this is.
func (m Model) Username() string { return m.username }

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.ProfileLoadedMsg:
		if msg.Username != m.username {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			if errors.Is(msg.Err, feed.ErrUserNotFound) {
				m.err = "Không tìm thấy người dùng " + m.username
			} else {
				m.err = msg.Err.Error()
			}
			return m, nil
		}
		m.profile = msg.Profile
		m.refreshPosts()
		return m, nil

	case messages.PostPublishedMsg, messages.LikeToggledMsg:
		if m.profile != nil {
			m.refreshPosts()
		}
		return m, nil

	case tea.KeyMsg:
		if m.profile == nil {
			return m, nil
		}
		switch msg.String() {
		case "h", "left":
			m.tab = step(m.tab, -1)
			m.refreshPosts()
		case "l", "right":
			m.tab = step(m.tab, 1)
			m.refreshPosts()
		case "j", "down":
			if m.selectedIdx < len(m.posts)-1 {
				m.selectedIdx++
			}
		case "k", "up":
			if m.selectedIdx > 0 {
				m.selectedIdx--
			}
		case "enter":
			if m.selectedIdx < len(m.posts) {
				id := m.posts[m.selectedIdx].ID
				return m, func() tea.Msg { return messages.OpenPostMsg{PostID: id} }
			}
		case "c":
			if m.profile.IsCurrentUser {
				return m, func() tea.Msg { return messages.OpenComposeMsg{} }
			}
		}
	}
	return m, nil
}

func (m *Model) refreshPosts() {
	m.posts = m.store.ProfilePosts(m.username, m.tab)
	if m.selectedIdx >= len(m.posts) {
		m.selectedIdx = 0
	}
}

func step(t feed.ProfileTab, n int) feed.ProfileTab {
	all := feed.ProfileTabs
	for i, x := range all {
		if x == t {
			return all[(i+n+len(all))%len(all)]
		}
	}
	return feed.TabThreads
}

// View renders the profile header, tabs and posts.
func (m Model) View() string {
	st := m.styles
	if m.loading {
		return st.Title.Render("Đang tải...")
	}
	if m.err != "" {
		return st.Title.Render(m.err)
	}

	p := m.profile
	var sb strings.Builder
	name := p.DisplayName
	if name == "" {
		name = p.Username
	}
	sb.WriteString(st.Title.Render(name))
	sb.WriteString("\n")
	sb.WriteString(st.Meta.Render(p.Username))
	sb.WriteString("\n")
	if p.Bio != "" {
		sb.WriteString(st.Body.Render(p.Bio) + "\n")
	}
	sb.WriteString(st.Meta.Render(fmt.Sprintf("%s · %d đang theo dõi", render.Followers(p.Followers), p.Following)))
	sb.WriteString("\n")
	if p.IsCurrentUser {
		sb.WriteString(st.Hint.Render("[Chỉnh sửa trang cá nhân]"))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	var tabs []string
	for _, t := range feed.ProfileTabs {
		if t == m.tab {
			tabs = append(tabs, st.ActiveTab.Render(t.Title()))
		} else {
			tabs = append(tabs, st.Tab.Render(t.Title()))
		}
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	sb.WriteString("\n\n")

	if p.IsCurrentUser && m.tab == feed.TabThreads {
		sb.WriteString(st.Hint.Render("  Có gì mới?  (c: tạo thread)"))
		sb.WriteString("\n\n")
	}

	if len(m.posts) == 0 {
		sb.WriteString("  " + st.Hint.Render(emptyText(m.tab)) + "\n")
		return sb.String()
	}

	width := m.width - 4
	if width < 20 {
		width = 20
	}
	for i, post := range m.posts {
		entry := st.Author.Render(post.Author.Username) + " " + st.Meta.Render(render.TimeAgo(post.Timestamp)) +
			"\n" + st.Body.Render(render.Wrap(post.Content, width))
		if i == m.selectedIdx {
			entry = st.Selected.Render(entry)
		} else {
			entry = "  " + strings.ReplaceAll(entry, "\n", "\n  ")
		}
		sb.WriteString(entry + "\n\n")
	}
	return sb.String()
}

func emptyText(t feed.ProfileTab) string {
	switch t {
	case feed.TabReplies:
		return "Chưa có thread trả lời nào."
	case feed.TabReposts:
		return "Chưa có bài đăng lại nào."
	}
	return "Chưa có thread nào."
}
