package postdetail

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/threadscity/internal/feed"
	"github.com/fragmede/threadscity/internal/render"
	"github.com/fragmede/threadscity/internal/ui/messages"
	"github.com/fragmede/threadscity/internal/ui/styles"
)

const scrollStep = 3

type entryOffset struct {
	startLine int
	endLine   int
}

// Model is the post detail view: the post, then its replies.
type Model struct {
	viewport    viewport.Model
	postID      string
	post        *feed.Post
	replies     []feed.Post
	offsets     []entryOffset
	selectedIdx int
	order       feed.ReplySort
	store       *feed.Store
	styles      *styles.Styles
	loading     bool
	err         string
	width       int
	height      int
}

// New creates a detail view for postID.
func New(postID string, store *feed.Store, st *styles.Styles) Model {
	vp := viewport.New(0, 0)
	vp.SetContent("  Đang tải...")

	return Model{
		viewport: vp,
		postID:   postID,
		order:    feed.SortTop,
		store:    store,
		styles:   st,
		loading:  true,
	}
}

// Init loads the post and its replies.
func (m Model) Init() tea.Cmd {
	return m.load()
}

// PostID returns the post shown.
func (m Model) PostID() string { return m.postID }

// SetSize updates viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = w
	m.resizeViewport()
	m.rebuildContent()
}

func (m *Model) resizeViewport() {
	header := m.renderHeader()
	m.viewport.Height = m.height - lipgloss.Height(header)
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.DetailLoadedMsg:
		if msg.PostID != m.postID {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err.Error()
			m.viewport.SetContent("  " + m.err + "\n\n  Esc: Quay lại trang chủ")
			return m, nil
		}
		p := msg.Detail.Post
		m.post = &p
		m.replies = msg.Detail.Replies
		m.err = ""
		m.resizeViewport()
		m.rebuildContent()
		return m, nil

	case messages.PostPublishedMsg:
		if m.owns(msg.Post.ReplyTo) {
			return m, m.load()
		}
		return m, nil

	case messages.LikeToggledMsg:
		if m.post != nil && m.post.ID == msg.Post.ID {
			p := msg.Post
			m.post = &p
		}
		for i := range m.replies {
			if m.replies[i].ID == msg.Post.ID {
				m.replies[i] = msg.Post
			}
		}
		m.rebuildContent()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.selectedIdx >= 0 && m.selectedIdx < len(m.offsets) {
				off := m.offsets[m.selectedIdx]
				if off.endLine >= m.viewport.YOffset+m.viewport.Height {
					m.viewport.SetYOffset(m.viewport.YOffset + scrollStep)
					return m, nil
				}
			}
			if m.selectedIdx < m.entryCount()-1 {
				m.selectedIdx++
				m.rebuildContent()
				m.scrollToCursor()
			}
			return m, nil
		case "k", "up":
			if m.selectedIdx > 0 {
				m.selectedIdx--
				m.rebuildContent()
				m.scrollToCursor()
			}
			return m, nil
		case "g", "home":
			m.selectedIdx = 0
			m.rebuildContent()
			m.viewport.GotoTop()
			return m, nil
		case "G", "end":
			if n := m.entryCount(); n > 0 {
				m.selectedIdx = n - 1
				m.rebuildContent()
				m.viewport.GotoBottom()
			}
			return m, nil
		case "s":
			m.order = m.order.Next()
			m.loading = true
			m.resizeViewport()
			return m, m.load()
		case "r":
			if p, ok := m.selected(); ok {
				return m, func() tea.Msg { return messages.OpenComposeMsg{ReplyTo: &p} }
			}
			return m, nil
		case "l":
			if p, ok := m.selected(); ok {
				store := m.store
				return m, func() tea.Msg {
					updated, ok := store.ToggleLike(p.ID)
					if !ok {
						return nil
					}
					return messages.LikeToggledMsg{Post: updated}
				}
			}
			return m, nil
		case "P":
			if p, ok := m.selected(); ok {
				username := p.Author.Username
				return m, func() tea.Msg { return messages.OpenProfileMsg{Username: username} }
			}
			return m, nil
		case "enter":
			if m.selectedIdx > 0 {
				if p, ok := m.selected(); ok {
					id := p.ID
					return m, func() tea.Msg { return messages.OpenPostMsg{PostID: id} }
				}
			}
			return m, nil
		case "ctrl+r":
			m.loading = true
			return m, m.load()
		case "ctrl+d", "pgdown":
			m.viewport.HalfViewDown()
			return m, nil
		case "ctrl+u", "pgup":
			m.viewport.HalfViewUp()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), m.viewport.View())
}

func (m Model) owns(id string) bool {
	if id == "" {
		return false
	}
	if id == m.postID {
		return true
	}
	for _, r := range m.replies {
		if r.ID == id {
			return true
		}
	}
	return false
}

func (m Model) entryCount() int {
	if m.post == nil {
		return 0
	}
	return 1 + len(m.replies)
}

func (m Model) selected() (feed.Post, bool) {
	switch {
	case m.post == nil:
		return feed.Post{}, false
	case m.selectedIdx == 0:
		return *m.post, true
	case m.selectedIdx-1 < len(m.replies):
		return m.replies[m.selectedIdx-1], true
	}
	return feed.Post{}, false
}

func (m Model) load() tea.Cmd {
	store := m.store
	id := m.postID
	order := m.order
	return func() tea.Msg {
		d, err := store.Detail(context.Background(), id, order)
		return messages.DetailLoadedMsg{PostID: id, Detail: d, Err: err}
	}
}

func (m *Model) rebuildContent() {
	if m.post == nil {
		m.offsets = nil
		return
	}
	st := m.styles

	availWidth := m.width - 6
	if availWidth < 20 {
		availWidth = 20
	}

	var sb strings.Builder
	m.offsets = make([]entryOffset, 0, m.entryCount())
	lineCount := 0

	write := func(idx int, p feed.Post, main bool) {
		start := lineCount
		selected := idx == m.selectedIdx

		header := st.Author.Render(p.Author.Username)
		if main {
			header += " " + st.Meta.Render(render.Timestamp(p.Timestamp))
		} else {
			header += " " + st.Meta.Render(render.TimeAgo(p.Timestamp))
		}

		lines := []string{header}
		lines = append(lines, strings.Split(render.Wrap(p.Content, availWidth), "\n")...)
		if p.Image != "" {
			lines = append(lines, st.Meta.Render("[ảnh] "+p.Image))
		}
		lines = append(lines, actionBar(st, p))

		bar := st.Separator.Render("│")
		if selected {
			bar = st.Focused.Render("┃")
		}
		for _, l := range lines {
			sb.WriteString(bar + " " + l + "\n")
			lineCount++
		}
		sb.WriteString("\n")
		lineCount++
		m.offsets = append(m.offsets, entryOffset{startLine: start, endLine: lineCount - 1})
	}

	write(0, *m.post, true)

	sortLine := st.Label.Render("Câu trả lời") + "  " + st.Hint.Render("s: "+m.order.Title()+" ▾")
	sb.WriteString(sortLine + "\n")
	sb.WriteString(st.Separator.Render(strings.Repeat("─", m.width)) + "\n")
	lineCount += 2

	if len(m.replies) == 0 {
		sb.WriteString(st.Hint.Render("  Chưa có câu trả lời nào.") + "\n")
	}
	for i, r := range m.replies {
		write(i+1, r, false)
	}

	m.viewport.SetContent(sb.String())
}

func actionBar(st *styles.Styles, p feed.Post) string {
	like := "♡"
	style := st.Meta
	if p.IsLiked {
		like = "♥"
		style = st.Liked
	}
	if c := render.Count(p.Likes); c != "" {
		like += " " + c
	}
	reply := "💬"
	if c := render.Count(p.Replies); c != "" {
		reply += " " + c
	}
	return style.Render(like) + "  " + st.Meta.Render(reply)
}

func (m *Model) scrollToCursor() {
	if m.selectedIdx < 0 || m.selectedIdx >= len(m.offsets) {
		return
	}
	off := m.offsets[m.selectedIdx]
	if off.startLine < m.viewport.YOffset || off.startLine >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(off.startLine)
	}
}

func (m Model) renderHeader() string {
	st := m.styles
	title := st.Header.Render("Thread")
	if m.loading {
		title += st.Hint.Render(" Đang tải...")
	}
	parts := []string{title}
	if m.post != nil {
		parts = append(parts, st.Meta.Render(fmt.Sprintf(" %d lượt thích · %d câu trả lời", m.post.Likes, m.post.Replies)))
	}
	parts = append(parts, st.Separator.Render(strings.Repeat("─", m.width)))
	parts = append(parts, st.Hint.Render("j/k:di chuyển  r:trả lời  l:thích  s:sắp xếp  P:trang cá nhân  esc:quay lại"))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}
