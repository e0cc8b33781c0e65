package home

import (
	"strings"

	"github.com/fragmede/threadscity/internal/feed"
	"github.com/fragmede/threadscity/internal/render"
)

// PostItem wraps a post for the bubbles list.
type PostItem struct {
	feed.Post
}

func (p PostItem) Title() string {
	return p.Author.Username
}

func (p PostItem) Description() string {
	return strings.ReplaceAll(p.Content, "\n", " ")
}

// Meta is the action bar line: likes, replies and post time.
func (p PostItem) Meta() string {
	parts := make([]string, 0, 3)
	like := "♡"
	if p.IsLiked {
		like = "♥"
	}
	if c := render.Count(p.Likes); c != "" {
		like += " " + c
	}
	parts = append(parts, like)

	reply := "💬"
	if c := render.Count(p.Replies); c != "" {
		reply += " " + c
	}
	parts = append(parts, reply)
	parts = append(parts, render.TimeAgo(p.Timestamp))
	return strings.Join(parts, "  ")
}

func (p PostItem) FilterValue() string {
	return p.Author.Username + " " + p.Content
}
