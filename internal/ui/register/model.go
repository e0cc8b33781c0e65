package register

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

// SuccessBanner is shown on the login screen after registering.
const SuccessBanner = "Đăng ký thành công. Vui lòng đăng nhập."

type field int

const (
	fieldUsername field = iota
	fieldFullName
	fieldEmail
	fieldPassword
	fieldConfirm
	fieldCount
)

// Model is the register form.
type Model struct {
	inputs     [fieldCount]textinput.Model
	focused    field
	gate       *auth.Gate
	styles     *styles.Styles
	err        string
	retryable  bool
	submitting bool
	width      int
	height     int
}

// New creates a new register form.
func New(gate *auth.Gate, st *styles.Styles) Model {
	placeholders := [fieldCount]string{
		"Tên người dùng", "Họ tên", "Email", "Mật khẩu", "Xác nhận mật khẩu",
	}
	var inputs [fieldCount]textinput.Model
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.Width = 36
		ti.CharLimit = 128
		if field(i) == fieldPassword || field(i) == fieldConfirm {
			ti.EchoMode = textinput.EchoPassword
		}
		inputs[i] = ti
	}
	inputs[fieldUsername].Focus()

	return Model{
		inputs:  inputs,
		focused: fieldUsername,
		gate:    gate,
		styles:  st,
	}
}

// SetSize sets the viewport dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Data returns the form contents and the confirmation password.
func (m Model) Data() (auth.RegisterData, string) {
	return auth.RegisterData{
		Username: strings.TrimSpace(m.inputs[fieldUsername].Value()),
		Email:    strings.TrimSpace(m.inputs[fieldEmail].Value()),
		Password: m.inputs[fieldPassword].Value(),
		FullName: strings.TrimSpace(m.inputs[fieldFullName].Value()),
	}, m.inputs[fieldConfirm].Value()
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			m.focused = (m.focused + 1) % fieldCount
			return m, m.updateFocus()
		case "shift+tab", "up":
			m.focused = (m.focused + fieldCount - 1) % fieldCount
			return m, m.updateFocus()
		case "enter":
			return m.submit()
		case "ctrl+r":
			if !m.retryable {
				return m, nil
			}
			return m.submit()
		case "ctrl+l":
			if m.submitting {
				return m, nil
			}
			return m, func() tea.Msg { return messages.NavigateMsg{Path: "/login"} }
		}

	case messages.RegisterResultMsg:
		m.submitting = false
		if msg.Err != nil {
			m.err, m.retryable = describe(msg.Err)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	data, confirm := m.Data()
	if err := data.Validate(confirm); err != nil {
		m.err = err.Error()
		m.retryable = false
		return m, nil
	}
	m.submitting = true
	m.err = ""
	m.retryable = false
	gate := m.gate
	return m, func() tea.Msg {
		err := gate.Register(context.Background(), data)
		return messages.RegisterResultMsg{Username: data.Username, Err: err}
	}
}

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

func (m *Model) updateFocus() tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	return m.inputs[m.focused].Focus()
}

// View renders the register form.
func (m Model) View() string {
	st := m.styles
	var sb strings.Builder

	sb.WriteString(st.Title.Render("Tham gia ThreadsCity cùng chúng tôi"))
	sb.WriteString("\n\n")

	if m.err != "" {
		sb.WriteString(st.Error.Render(m.err))
		if m.retryable {
			sb.WriteString("  " + st.Focused.Render("Ctrl+R") + st.Hint.Render(" thử lại"))
		}
		sb.WriteString("\n\n")
	}

	for i := range m.inputs {
		sb.WriteString(m.inputs[i].View())
		sb.WriteString("\n\n")
	}

	if m.submitting {
		sb.WriteString("Đang đăng ký...")
	} else {
		sb.WriteString(st.Hint.Render("Tab chuyển ô | ") + st.Focused.Render("Enter") +
			st.Hint.Render(" đăng ký | ") + st.Focused.Render("Ctrl+L") + st.Hint.Render(" đã có tài khoản? Đăng nhập"))
	}

	content := sb.String()
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
