package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the global bindings handled by App before a view sees the key.
type KeyMap struct {
	Quit          key.Binding
	ForceQuit     key.Binding
	Back          key.Binding
	Theme         key.Binding
	Logout        key.Binding
	Home          key.Binding
	Search        key.Binding
	Notifications key.Binding
	Profile       key.Binding
	Compose       key.Binding
}

var Keys = KeyMap{
	Quit:          key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "thoát")),
	ForceQuit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "thoát")),
	Back:          key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "quay lại")),
	Theme:         key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "đổi giao diện")),
	Logout:        key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "đăng xuất")),
	Home:          key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "trang chủ")),
	Search:        key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "tìm kiếm")),
	Notifications: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "thông báo")),
	Profile:       key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "trang cá nhân")),
	Compose:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "tạo thread")),
}
