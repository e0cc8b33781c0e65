package statusbar

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/threadscity/internal/cache"
	"github.com/fragmede/threadscity/internal/ui/styles"
)

// Tab is one of the top-level destinations.
type Tab int

const (
	TabHome Tab = iota
	TabSearch
	TabNotifications
	TabProfile
	TabNone
)

var tabs = []struct {
	label string
	tab   Tab
}{
	{"1 Trang chủ", TabHome},
	{"2 Tìm kiếm", TabSearch},
	{"3 Thông báo", TabNotifications},
	{"4 Trang cá nhân", TabProfile},
}

// Model is the status bar at the bottom of the screen.
type Model struct {
	styles      *styles.Styles
	width       int
	active      Tab
	username    string
	unreadCount int
	statusText  string
	isError     bool
}

// New creates a new status bar.
func New(st *styles.Styles) Model {
	return Model{styles: st, active: TabNone}
}

// SetSize sets the width.
func (m *Model) SetSize(w int) {
	m.width = w
}

// SetActiveTab highlights t. TabNone highlights nothing.
func (m *Model) SetActiveTab(t Tab) {
	m.active = t
}

// SetUser sets the signed-in username.
func (m *Model) SetUser(username string) {
	m.username = username
}

// SetUnread sets the unread notification count.
func (m *Model) SetUnread(count int) {
	m.unreadCount = count
}

// SetStatus sets a temporary status message.
func (m *Model) SetStatus(text string, isError bool) {
	m.statusText = text
	m.isError = isError
}

// Status returns the current status text.
func (m Model) Status() (string, bool) { return m.statusText, m.isError }

// View renders the status bar.
func (m Model) View() string {
	st := m.styles

	var tabsStr string
	if m.username != "" {
		for _, t := range tabs {
			if t.tab == m.active {
				tabsStr += st.ActiveTab.Render(t.label)
			} else {
				tabsStr += st.Tab.Render(t.label)
			}
		}
	}

	var right string
	if m.statusText != "" {
		if m.isError {
			right += st.StatusError.Render(m.statusText)
		} else {
			right += st.StatusText.Render(m.statusText)
		}
	}
	if m.unreadCount > 0 {
		right += st.Badge.Render(fmt.Sprintf(" %d ", m.unreadCount))
	}
	theme := "☀"
	if st.Theme == cache.ThemeDark {
		theme = "☾"
	}
	right += st.StatusText.Render(theme)
	if m.username != "" {
		right += st.User.Render(m.username)
	}

	tabsWidth := lipgloss.Width(tabsStr)
	rightWidth := lipgloss.Width(right)
	gap := m.width - tabsWidth - rightWidth
	if gap < 0 {
		gap = 0
	}
	mid := st.StatusBar.Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, tabsStr, mid, right)
}
