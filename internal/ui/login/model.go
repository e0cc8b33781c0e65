package login

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/threadscity/internal/auth"
	"github.com/fragmede/threadscity/internal/ui/messages"
	"github.com/fragmede/threadscity/internal/ui/styles"
)

// Model is the login form view.
type Model struct {
	usernameInput textinput.Model
	passwordInput textinput.Model
	focusIndex    int
	err           string
	retryable     bool
	banner        string
	submitting    bool
	gate          *auth.Gate
	styles        *styles.Styles
	width         int
	height        int
}

// New creates a new login form. banner is shown above the form.
func New(gate *auth.Gate, st *styles.Styles, banner string) Model {
	usernameInput := textinput.New()
	usernameInput.Placeholder = "Tên người dùng"
	usernameInput.Focus()
	usernameInput.Width = 30

	passwordInput := textinput.New()
	passwordInput.Placeholder = "Mật khẩu"
	passwordInput.EchoMode = textinput.EchoPassword
	passwordInput.Width = 30

	return Model{
		usernameInput: usernameInput,
		passwordInput: passwordInput,
		banner:        banner,
		gate:          gate,
		styles:        st,
	}
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			if m.focusIndex == 0 {
				m.focusIndex = 1
				m.usernameInput.Blur()
				return m, m.passwordInput.Focus()
			}
			m.focusIndex = 0
			m.passwordInput.Blur()
			return m, m.usernameInput.Focus()
		case "enter":
			return m.submit()
		case "ctrl+r":
			if !m.retryable {
				return m, nil
			}
			return m.submit()
		case "ctrl+n":
			if m.submitting {
				return m, nil
			}
			return m, func() tea.Msg { return messages.NavigateMsg{Path: "/register"} }
		}

	case messages.ShowBannerMsg:
		m.banner = msg.Text
		return m, nil

	case messages.LoginResultMsg:
		m.submitting = false
		if msg.Err != nil {
			m.err, m.retryable = describe(msg.Err)
			m.banner = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.focusIndex == 0 {
		m.usernameInput, cmd = m.usernameInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	username := strings.TrimSpace(m.usernameInput.Value())
	password := m.passwordInput.Value()
	if username == "" || password == "" {
		m.err = "Vui lòng nhập tên người dùng và mật khẩu"
		m.retryable = false
		return m, nil
	}
	m.submitting = true
	m.err = ""
	m.retryable = false
	gate := m.gate
	return m, func() tea.Msg {
		err := gate.Login(context.Background(), username, password)
		return messages.LoginResultMsg{Username: username, Err: err}
	}
}

// describe turns a login failure into banner text and whether the
// retry action applies.
func describe(err error) (string, bool) {
	var ae *auth.Error
	if errors.As(err, &ae) {
		return ae.UserMessage(), ae.Retryable()
	}
	if errors.Is(err, auth.ErrBusy) || errors.Is(err, auth.ErrNotReady) {
		return "Đang xử lý, vui lòng đợi...", false
	}
	return err.Error(), false
}

// Submitting reports whether a login request is in flight.
func (m Model) Submitting() bool { return m.submitting }

// View renders the login form.
func (m Model) View() string {
	st := m.styles
	var sb strings.Builder

	sb.WriteString(st.Title.Render("Đăng nhập vào ThreadsCity"))
	sb.WriteString("\n\n")

	if m.banner != "" {
		sb.WriteString(st.Success.Render(m.banner))
		sb.WriteString("\n\n")
	}

	sb.WriteString(st.Label.Render("Tên người dùng"))
	sb.WriteString("\n")
	sb.WriteString(m.usernameInput.View())
	sb.WriteString("\n\n")
	sb.WriteString(st.Label.Render("Mật khẩu"))
	sb.WriteString("\n")
	sb.WriteString(m.passwordInput.View())
	sb.WriteString("\n\n")

	if m.err != "" {
		sb.WriteString(st.Error.Render(m.err))
		if m.retryable {
			sb.WriteString("  " + st.Focused.Render("Ctrl+R") + st.Hint.Render(" thử lại"))
		}
		sb.WriteString("\n\n")
	}

	if m.submitting {
		sb.WriteString("Đang đăng nhập...")
	} else {
		sb.WriteString(st.Focused.Render("Enter") + st.Hint.Render(" đăng nhập, ") +
			st.Focused.Render("Ctrl+N") + st.Hint.Render(" đăng ký, ") +
			st.Focused.Render("Ctrl+T") + st.Hint.Render(" đổi giao diện"))
	}

	content := sb.String()
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
