package home

import (
	"context"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/threadscity/internal/feed"
	"github.com/fragmede/threadscity/internal/ui/messages"
	"github.com/fragmede/threadscity/internal/ui/styles"
)

// Model is the home timeline.
type Model struct {
	list    list.Model
	feed    feed.Feed
	store   *feed.Store
	styles  *styles.Styles
	loading bool
	err     string
	width   int
	height  int
}

// New creates the home view on the suggested feed.
func New(store *feed.Store, st *styles.Styles) Model {
	l := list.New(nil, Delegate{styles: st}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)

	return Model{
		list:    l,
		feed:    feed.Suggested,
		store:   store,
		styles:  st,
		loading: true,
	}
}

// Init loads the current feed.
func (m Model) Init() tea.Cmd {
	return m.load()
}

// SetSize updates the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.list.SetSize(w, h-m.headerHeight())
}

func (m Model) headerHeight() int {
	return lipgloss.Height(m.renderHeader())
}

// Feed returns the selected feed.
func (m Model) Feed() feed.Feed { return m.feed }

// Filtering reports whether the list filter is taking input.
func (m Model) Filtering() bool { return m.list.FilterState() == list.Filtering }

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.PostsLoadedMsg:
		if msg.Feed != m.feed {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err.Error()
			return m, nil
		}
		m.err = ""
		return m, m.list.SetItems(toItems(msg.Posts))

	case messages.PostPublishedMsg:
		if msg.Post.ReplyTo != "" {
			return m, m.load()
		}
		cmd := m.list.InsertItem(0, PostItem{Post: msg.Post})
		m.list.Select(0)
		return m, cmd

	case messages.LikeToggledMsg:
		for i, it := range m.list.Items() {
			if p, ok := it.(PostItem); ok && p.ID == msg.Post.ID {
				return m, m.list.SetItem(i, PostItem{Post: msg.Post})
			}
		}
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(PostItem); ok {
				id := item.ID
				return m, func() tea.Msg { return messages.OpenPostMsg{PostID: id} }
			}
		case "f":
			m.feed = m.feed.Next()
			m.loading = true
			return m, m.load()
		case "c":
			return m, func() tea.Msg { return messages.OpenComposeMsg{} }
		case "r":
			if item, ok := m.list.SelectedItem().(PostItem); ok {
				p := item.Post
				return m, func() tea.Msg { return messages.OpenComposeMsg{ReplyTo: &p} }
			}
		case "l":
			if item, ok := m.list.SelectedItem().(PostItem); ok {
				return m, toggleLike(m.store, item.ID)
			}
		case "P":
			if item, ok := m.list.SelectedItem().(PostItem); ok {
				username := item.Author.Username
				return m, func() tea.Msg { return messages.OpenProfileMsg{Username: username} }
			}
		case "ctrl+r":
			m.loading = true
			return m, m.load()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the timeline.
func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.list.View())
}

func (m Model) renderHeader() string {
	st := m.styles
	title := st.Header.Render(m.feed.Title() + " ▾")
	compose := st.Placeholder.Render("  Có gì mới?") + st.Hint.Render("  (c: đăng)")

	status := ""
	switch {
	case m.loading:
		status = st.Hint.Render("  Đang tải...")
	case m.err != "":
		status = st.Error.Render("  " + m.err)
	}
	hint := st.Hint.Render(" enter:xem  f:đổi feed  r:trả lời  l:thích  P:trang cá nhân  /:lọc")
	return lipgloss.JoinVertical(lipgloss.Left, title+status, compose, hint)
}

func (m Model) load() tea.Cmd {
	store := m.store
	f := m.feed
	return func() tea.Msg {
		posts, err := store.Posts(context.Background(), f)
		return messages.PostsLoadedMsg{Feed: f, Posts: posts, Err: err}
	}
}

func toggleLike(store *feed.Store, id string) tea.Cmd {
	return func() tea.Msg {
		p, ok := store.ToggleLike(id)
		if !ok {
			return nil
		}
		return messages.LikeToggledMsg{Post: p}
	}
}

func toItems(posts []feed.Post) []list.Item {
	items := make([]list.Item, len(posts))
	for i, p := range posts {
		items[i] = PostItem{Post: p}
	}
	return items
}
