package home

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fragmede/threadscity/internal/render"
	"github.com/fragmede/threadscity/internal/ui/styles"
)

// Delegate renders a post as author, wrapped-and-clipped content and the
// action bar.
type Delegate struct {
	styles *styles.Styles
}

func (d Delegate) Height() int                             { return 3 }
func (d Delegate) Spacing() int                            { return 1 }
func (d Delegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d Delegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	item, ok := listItem.(PostItem)
	if !ok {
		return
	}
	st := d.styles

	width := m.Width() - 4
	if width < 20 {
		width = 20
	}
	body := render.Truncate(item.Description(), width-3)

	author := st.Author.Render(item.Title())
	meta := st.Meta.Render(item.Meta())
	if item.IsLiked {
		meta = st.Liked.Render(item.Meta())
	}
	block := fmt.Sprintf("%s\n%s\n%s", author, st.Body.Render(body), meta)
	if index == m.Index() {
		block = st.Selected.Render(block)
	} else {
		block = "  " + strings.ReplaceAll(block, "\n", "\n  ")
	}
	fmt.Fprint(w, block)
}
