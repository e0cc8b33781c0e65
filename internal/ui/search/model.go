package search

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fragmede/threadscity/internal/feed"
	"github.com/fragmede/threadscity/internal/render"
	"github.com/fragmede/threadscity/internal/ui/messages"
	"github.com/fragmede/threadscity/internal/ui/styles"
)

// debounce is how long typing must pause before a query runs.
const debounce = 300 * time.Millisecond

type queryMsg struct {
	seq   int
	query string
}

// Model is the search view: a query input over the suggested users.
type Model struct {
	input       textinput.Model
	users       []feed.SuggestedUser
	followed    map[string]bool
	selectedIdx int
	seq         int
	store       *feed.Store
	styles      *styles.Styles
	loading     bool
	err         string
	width       int
	height      int
}

// New creates a new search view.
func New(store *feed.Store, st *styles.Styles) Model {
	ti := textinput.New()
	ti.Placeholder = "Tìm kiếm"
	ti.CharLimit = 64
	ti.Width = 40
	ti.Focus()

	return Model{
		input:    ti,
		followed: make(map[string]bool),
		store:    store,
		styles:   st,
		loading:  true,
	}
}

// Init loads the unfiltered suggestions.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.load(""))
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.input.Width = w - 6
}

// Query returns the current input.
func (m Model) Query() string { return m.input.Value() }

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case queryMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = true
		return m, m.load(msg.query)

	case messages.UsersLoadedMsg:
		if msg.Query != strings.TrimSpace(m.input.Value()) {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err.Error()
			return m, nil
		}
		m.err = ""
		m.users = msg.Users
		m.selectedIdx = 0
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "down", "ctrl+j":
			if m.selectedIdx < len(m.users)-1 {
				m.selectedIdx++
			}
			return m, nil
		case "up", "ctrl+k":
			if m.selectedIdx > 0 {
				m.selectedIdx--
			}
			return m, nil
		case "ctrl+f":
			if u, ok := m.selected(); ok {
				m.followed[u.ID] = !m.followed[u.ID]
			}
			return m, nil
		case "enter":
			if u, ok := m.selected(); ok {
				username := u.Username
				return m, func() tea.Msg { return messages.OpenProfileMsg{Username: username} }
			}
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}

	m.seq++
	seq := m.seq
	query := strings.TrimSpace(m.input.Value())
	tick := tea.Tick(debounce, func(time.Time) tea.Msg {
		return queryMsg{seq: seq, query: query}
	})
	return m, tea.Batch(cmd, tick)
}

func (m Model) selected() (feed.SuggestedUser, bool) {
	if m.selectedIdx < 0 || m.selectedIdx >= len(m.users) {
		return feed.SuggestedUser{}, false
	}
	return m.users[m.selectedIdx], true
}

// View renders the input and results.
func (m Model) View() string {
	st := m.styles
	var sb strings.Builder

	sb.WriteString(st.Header.Render("Tìm kiếm"))
	sb.WriteString("\n\n  ")
	sb.WriteString(m.input.View())
	sb.WriteString("\n")
	sb.WriteString(st.Hint.Render("  ↑/↓:chọn  enter:xem trang cá nhân  ctrl+f:theo dõi"))
	sb.WriteString("\n\n")

	if m.loading {
		sb.WriteString("  Đang tải...\n")
		return sb.String()
	}
	if m.err != "" {
		sb.WriteString("  " + st.Error.Render(m.err) + "\n")
		return sb.String()
	}
	if len(m.users) == 0 {
		sb.WriteString("  " + st.Hint.Render("Không tìm thấy kết quả") + "\n")
		return sb.String()
	}

	for i, u := range m.users {
		var line strings.Builder
		line.WriteString(st.Author.Render(u.Username))
		if u.Verified {
			line.WriteString(" " + st.Focused.Render("✓"))
		}
		follow := "Theo dõi"
		if m.followed[u.ID] {
			follow = "Đang theo dõi"
		}
		line.WriteString("  " + st.Hint.Render("["+follow+"]"))
		line.WriteString("\n" + st.Meta.Render(u.Name()))
		if u.Bio != "" {
			line.WriteString("\n" + st.Body.Render(render.Truncate(u.Bio, 80)))
		}
		line.WriteString("\n" + st.Meta.Render(render.Followers(u.Followers)))

		entry := line.String()
		if i == m.selectedIdx {
			entry = st.Selected.Render(entry)
		} else {
			entry = "  " + strings.ReplaceAll(entry, "\n", "\n  ")
		}
		sb.WriteString(entry + "\n\n")
	}
	return sb.String()
}

func (m Model) load(query string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		users, err := store.SearchUsers(context.Background(), query)
		return messages.UsersLoadedMsg{Query: query, Users: users, Err: err}
	}
}
