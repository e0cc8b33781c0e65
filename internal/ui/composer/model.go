// Package composer is the modal for writing a new post or a reply.
package composer

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/threadscity/internal/compose"
	"github.com/fragmede/threadscity/internal/render"
	"github.com/fragmede/threadscity/internal/ui/messages"
	"github.com/fragmede/threadscity/internal/ui/styles"
)

// Model renders a compose.Flow with a textarea.
type Model struct {
	flow     *compose.Flow
	textarea textarea.Model
	delay    time.Duration
	username string
	styles   *styles.Styles
	width    int
	height   int
}

// New creates a closed modal. delay is the simulated submit time.
func New(v compose.Variant, delay time.Duration, st *styles.Styles) Model {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.CharLimit = 500
	ta.SetWidth(60)
	ta.SetHeight(5)
	if v == compose.Reply {
		ta.Placeholder = "Thêm bình luận..."
	} else {
		ta.Placeholder = "Có gì mới?"
	}

	return Model{
		flow:     compose.New(v),
		textarea: ta,
		delay:    delay,
		styles:   st,
	}
}

// SetSize sets the area the modal is centered in.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	tw := w - 12
	if tw > 70 {
		tw = 70
	}
	if tw < 20 {
		tw = 20
	}
	m.textarea.SetWidth(tw)
}

// Variant returns which modal this is.
func (m Model) Variant() compose.Variant { return m.flow.Variant() }

// IsOpen reports whether the modal is showing.
func (m Model) IsOpen() bool { return m.flow.State() != compose.Closed }

// State returns the underlying flow state.
func (m Model) State() compose.State { return m.flow.State() }

// Open shows the modal for username. It returns nil and stays closed
// when the flow refuses to open.
func (m *Model) Open(target *compose.Target, username string) tea.Cmd {
	if !m.flow.Open(target) {
		return nil
	}
	m.username = username
	m.textarea.Reset()
	return m.textarea.Focus()
}

// Cancel closes the modal, dropping any pending submission.
func (m *Model) Cancel() {
	if m.flow.Cancel() {
		m.textarea.Blur()
		m.textarea.Reset()
	}
}

// Complete finishes the submission for generation.
func (m *Model) Complete(generation uint64) (compose.ComposedContent, bool) {
	out, ok := m.flow.Complete(generation)
	if ok {
		m.textarea.Blur()
		m.textarea.Reset()
	}
	return out, ok
}

// Update handles keys while the modal is open.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.IsOpen() {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			m.Cancel()
			return m, nil
		case "ctrl+s":
			ticket, ok := m.flow.Submit()
			if !ok {
				return m, nil
			}
			m.textarea.Blur()
			v := m.flow.Variant()
			done := tea.Tick(m.delay, func(time.Time) tea.Msg {
				return messages.ComposeDoneMsg{Variant: v, Generation: ticket.Generation}
			})
			submitted := func() tea.Msg {
				return messages.ComposeSubmittedMsg{Variant: v, Ticket: ticket}
			}
			return m, tea.Batch(submitted, done)
		}
	}

	if m.flow.State() != compose.Open {
		return m, nil
	}
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	m.flow.SetContent(m.textarea.Value())
	return m, cmd
}

// View renders the modal box, centered.
func (m Model) View() string {
	if !m.IsOpen() {
		return ""
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.box())
}

// Contains reports whether cell x, y falls inside the modal box.
func (m Model) Contains(x, y int) bool {
	if !m.IsOpen() {
		return false
	}
	box := m.box()
	w, h := lipgloss.Width(box), lipgloss.Height(box)
	left := int(math.Round(float64(m.width-w) / 2))
	top := int(math.Round(float64(m.height-h) / 2))
	return x >= left && x < left+w && y >= top && y < top+h
}

func (m Model) box() string {
	st := m.styles
	var sb strings.Builder

	title := "Thread mới"
	if m.flow.Variant() == compose.Reply {
		title = "Trả lời"
	}
	sb.WriteString(st.Label.Render(title))
	sb.WriteString("\n\n")

	if t := m.flow.Target(); t != nil {
		sb.WriteString(st.Author.Render(t.Author))
		sb.WriteString("\n")
		sb.WriteString(st.Quote.Render(render.Wrap(render.Truncate(t.Content, render.ExcerptLength), m.textarea.Width())))
		sb.WriteString("\n\n")
	}

	if m.username != "" {
		sb.WriteString(st.Author.Render(m.username))
		sb.WriteString("\n")
	}
	sb.WriteString(m.textarea.View())
	sb.WriteString("\n\n")

	sb.WriteString(m.footer())

	return st.Modal.Render(sb.String())
}

func (m Model) footer() string {
	st := m.styles
	reply := m.flow.Variant() == compose.Reply

	if m.flow.State() == compose.Submitting {
		if reply {
			return st.Hint.Render("Đang gửi...")
		}
		return st.Hint.Render("Đang đăng...")
	}

	action := "Đăng"
	if reply {
		action = "Bình luận"
	}
	button := st.Hint.Render(action)
	if m.flow.CanSubmit() {
		button = st.Focused.Render(action)
	}
	return st.Hint.Render("Esc hủy | Ctrl+S ") + button
}
