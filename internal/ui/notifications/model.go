package notifications

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/threadscity/internal/feed"
	"github.com/fragmede/threadscity/internal/render"
	"github.com/fragmede/threadscity/internal/ui/messages"
	"github.com/fragmede/threadscity/internal/ui/styles"
)

// Model is the notifications view.
type Model struct {
	notifications []feed.Notification
	filter        feed.NotificationFilter
	selectedIdx   int
	store         *feed.Store
	styles        *styles.Styles
	loading       bool
	err           string
	width         int
	height        int
}

// New creates a new notifications model.
func New(store *feed.Store, st *styles.Styles) Model {
	return Model{
		filter:  feed.FilterAll,
		store:   store,
		styles:  st,
		loading: true,
	}
}

// Init loads the notifications for the current filter.
func (m Model) Init() tea.Cmd {
	return m.load()
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Filter returns the active filter.
func (m Model) Filter() feed.NotificationFilter { return m.filter }

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.NotificationsLoadedMsg:
		if msg.Filter != m.filter {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err.Error()
			return m, nil
		}
		m.err = ""
		m.notifications = msg.Items
		m.selectedIdx = 0
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.selectedIdx < len(m.notifications)-1 {
				m.selectedIdx++
			}
		case "k", "up":
			if m.selectedIdx > 0 {
				m.selectedIdx--
			}
		case "h", "left":
			m.filter = cycle(m.filter, -1)
			m.loading = true
			return m, m.load()
		case "l", "right", "f":
			m.filter = cycle(m.filter, 1)
			m.loading = true
			return m, m.load()
		case "a":
			for i := range m.notifications {
				m.notifications[i].Read = true
			}
			m.store.MarkRead()
		case "enter":
			if m.selectedIdx >= 0 && m.selectedIdx < len(m.notifications) {
				n := m.notifications[m.selectedIdx]
				m.notifications[m.selectedIdx].Read = true
				m.store.MarkRead(n.ID)
				if n.PostID != "" {
					return m, func() tea.Msg { return messages.OpenPostMsg{PostID: n.PostID} }
				}
				username := n.User.Username
				return m, func() tea.Msg { return messages.OpenProfileMsg{Username: username} }
			}
		}
	}
	return m, nil
}

func cycle(f feed.NotificationFilter, step int) feed.NotificationFilter {
	all := feed.NotificationFilters
	for i, x := range all {
		if x == f {
			return all[(i+step+len(all))%len(all)]
		}
	}
	return feed.FilterAll
}

// View renders the notifications list.
func (m Model) View() string {
	st := m.styles
	var sb strings.Builder

	var tabs []string
	for _, f := range feed.NotificationFilters {
		if f == m.filter {
			tabs = append(tabs, st.ActiveTab.Render(f.Title()))
		} else {
			tabs = append(tabs, st.Tab.Render(f.Title()))
		}
	}
	sb.WriteString(st.Header.Render("Thông báo"))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	sb.WriteString("\n")
	sb.WriteString(st.Hint.Render(" h/l:đổi loại  enter:mở  a:đánh dấu tất cả là đã đọc"))
	sb.WriteString("\n\n")

	if m.loading {
		sb.WriteString("  Đang tải...\n")
		return sb.String()
	}
	if m.err != "" {
		sb.WriteString("  " + st.Error.Render(m.err) + "\n")
		return sb.String()
	}
	if len(m.notifications) == 0 {
		sb.WriteString("  Không có thông báo nào cho loại này\n")
		sb.WriteString("  " + st.Hint.Render("Thông báo sẽ xuất hiện ở đây khi bạn nhận được tương tác mới") + "\n")
		return sb.String()
	}

	for i, n := range m.notifications {
		var line strings.Builder

		if !n.Read {
			line.WriteString(st.Liked.Render("● "))
		} else {
			line.WriteString("  ")
		}

		line.WriteString(st.Author.Render(n.User.Username))
		line.WriteString(" " + st.Body.Render(n.Kind.Action()))
		line.WriteString(" " + st.Meta.Render(render.TimeAgo(n.Timestamp)))
		if n.Content != "" {
			line.WriteString("\n  " + st.Meta.Render(render.Truncate(n.Content, 80)))
		}

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

func (m Model) load() tea.Cmd {
	store := m.store
	f := m.filter
	return func() tea.Msg {
		items, err := store.Notifications(context.Background(), f)
		return messages.NotificationsLoadedMsg{Filter: f, Items: items, Err: err}
	}
}
