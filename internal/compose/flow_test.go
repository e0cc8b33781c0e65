package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenNewPost(t *testing.T) {
	f := New(NewPost)
	assert.Equal(t, Closed, f.State())
	assert.True(t, f.Open(nil))
	assert.Equal(t, Open, f.State())
	assert.False(t, f.Open(nil), "already open")
}

func TestReplyWithoutTargetStaysClosed(t *testing.T) {
	f := New(Reply)
	assert.False(t, f.Open(nil))
	assert.Equal(t, Closed, f.State())

	require.True(t, f.Open(&Target{PostID: "1", Author: "tuenhi"}))
	assert.Equal(t, "1", f.Target().PostID)
}

func TestSubmitBlankIsNoop(t *testing.T) {
	for _, content := range []string{"", "   ", "\n\t "} {
		f := New(NewPost)
		f.Open(nil)
		f.SetContent(content)

		_, ok := f.Submit()
		assert.False(t, ok, "%q", content)
		assert.Equal(t, Open, f.State())
		assert.Equal(t, content, f.Content())
	}
}

func TestSubmitAndComplete(t *testing.T) {
	f := New(Reply)
	f.Open(&Target{PostID: "42"})
	f.SetContent("  xin chào  ")

	ticket, ok := f.Submit()
	require.True(t, ok)
	assert.Equal(t, "xin chào", ticket.Content)
	assert.Equal(t, Submitting, f.State())

	_, again := f.Submit()
	assert.False(t, again, "submitting disables further submits")
	assert.False(t, f.SetContent("edit"), "draft is frozen while submitting")

	out, ok := f.Complete(ticket.Generation)
	require.True(t, ok)
	assert.Equal(t, ComposedContent{Content: "xin chào", ReplyTo: "42"}, out)
	assert.Equal(t, Closed, f.State())
	assert.Empty(t, f.Content())
	assert.Nil(t, f.Target())
}

func TestCancelDropsPendingCompletion(t *testing.T) {
	f := New(NewPost)
	f.Open(nil)
	f.SetContent("first")
	ticket, _ := f.Submit()

	assert.True(t, f.Cancel())
	_, ok := f.Complete(ticket.Generation)
	assert.False(t, ok)

	f.Open(nil)
	f.SetContent("second")
	_, ok = f.Complete(ticket.Generation)
	assert.False(t, ok, "old timer must not close the reopened modal")
	assert.Equal(t, Open, f.State())

	next, _ := f.Submit()
	out, ok := f.Complete(next.Generation)
	require.True(t, ok)
	assert.Equal(t, "second", out.Content)
	assert.Empty(t, out.ReplyTo)
}

func TestCancelWhenClosed(t *testing.T) {
	f := New(NewPost)
	assert.False(t, f.Cancel())
	f.Open(nil)
	f.SetContent("draft")
	assert.True(t, f.Cancel())
	assert.Equal(t, Closed, f.State())
	assert.Empty(t, f.Content())
}
