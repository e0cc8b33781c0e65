// Package feed is the in-memory post collection behind the home feed,
// post detail, notifications, search and profile views. Reads sleep for
// a fixed delay to stand in for network calls.
package feed

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/fragmede/threadscity/internal/compose"
)

var (
	ErrPostNotFound = errors.New("Không tìm thấy bài viết")
	ErrUserNotFound = errors.New("Không tìm thấy người dùng")
)

// Store holds posts, replies, notifications and users. Safe for
// concurrent use.
type Store struct {
	delay time.Duration
	now   func() time.Time

	mu            sync.RWMutex
	posts         []Post
	replies       map[string][]Post
	following     map[string]bool
	notifications []Notification
	users         []SuggestedUser
	profiles      map[string]Profile
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore returns a store seeded with demo data. delay is applied to
// every read that stands in for a network call.
func NewStore(delay time.Duration, opts ...Option) *Store {
	s := &Store{
		delay:   delay,
		now:     time.Now,
		replies: make(map[string][]Post),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.seed()
	return s
}

// Posts returns the timeline for f, newest composed posts first.
func (s *Store) Posts(ctx context.Context, f Feed) ([]Post, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Post, 0, len(s.posts))
	for _, p := range s.posts {
		if f == Following && !s.following[p.Author.Username] {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// Detail loads a post and its replies concurrently.
func (s *Store) Detail(ctx context.Context, id string, order ReplySort) (*Detail, error) {
	var d Detail
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.wait(ctx); err != nil {
			return err
		}
		p, ok := s.Post(id)
		if !ok {
			return ErrPostNotFound
		}
		d.Post = p
		return nil
	})
	g.Go(func() error {
		if err := s.wait(ctx); err != nil {
			return err
		}
		d.Replies = s.Replies(id, order)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Post looks up a top-level post or a reply by id.
func (s *Store) Post(id string) (Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.posts {
		if p.ID == id {
			return p, true
		}
	}
	for _, rs := range s.replies {
		for _, r := range rs {
			if r.ID == id {
				return r, true
			}
		}
	}
	return Post{}, false
}

// Replies returns the replies to id in the requested order.
func (s *Store) Replies(id string, order ReplySort) []Post {
	s.mu.RLock()
	out := append([]Post(nil), s.replies[id]...)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		if order == SortRecent {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].Likes > out[j].Likes
	})
	return out
}

// Append publishes composed content by author. New posts go to the top
// of the timeline; replies go to the top of their thread and bump the
// parent's reply counter.
func (s *Store) Append(c compose.ComposedContent, author string) Post {
	p := Post{
		ID:        uuid.NewString(),
		Author:    Author{ID: author, Username: author},
		Content:   c.Content,
		Timestamp: s.now(),
		ReplyTo:   c.ReplyTo,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c.ReplyTo == "" {
		s.posts = append([]Post{p}, s.posts...)
		return p
	}
	s.replies[c.ReplyTo] = append([]Post{p}, s.replies[c.ReplyTo]...)
	s.bumpReplies(c.ReplyTo)
	return p
}

func (s *Store) bumpReplies(id string) {
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts[i].Replies++
			return
		}
	}
	for parent, rs := range s.replies {
		for i := range rs {
			if rs[i].ID == id {
				s.replies[parent][i].Replies++
				return
			}
		}
	}
}

// ToggleLike flips the like flag on a post and adjusts its counter.
func (s *Store) ToggleLike(id string) (Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	toggle := func(p *Post) Post {
		p.IsLiked = !p.IsLiked
		if p.IsLiked {
			p.Likes++
		} else if p.Likes > 0 {
			p.Likes--
		}
		return *p
	}
	for i := range s.posts {
		if s.posts[i].ID == id {
			return toggle(&s.posts[i]), true
		}
	}
	for parent := range s.replies {
		for i := range s.replies[parent] {
			if s.replies[parent][i].ID == id {
				return toggle(&s.replies[parent][i]), true
			}
		}
	}
	return Post{}, false
}

// Notifications returns the notifications matching f, newest first.
func (s *Store) Notifications(ctx context.Context, f NotificationFilter) ([]Notification, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Notification
	for _, n := range s.notifications {
		if f.Match(n) {
			out = append(out, n)
		}
	}
	return out, nil
}

// UnreadCount returns how many notifications are unread.
func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, n := range s.notifications {
		if !n.Read {
			count++
		}
	}
	return count
}

// MarkRead marks the notifications with the given ids read. With no ids
// every notification is marked.
func (s *Store) MarkRead(ids ...string) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		if len(ids) == 0 || want[s.notifications[i].ID] {
			s.notifications[i].Read = true
		}
	}
}

// SearchUsers filters the suggested users by username or display name,
// case-insensitively. An empty query returns every suggestion.
func (s *Store) SearchUsers(ctx context.Context, query string) ([]SuggestedUser, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []SuggestedUser
	for _, u := range s.users {
		if q == "" ||
			strings.Contains(strings.ToLower(u.Username), q) ||
			strings.Contains(strings.ToLower(u.DisplayName), q) {
			out = append(out, u)
		}
	}
	return out, nil
}

// Profile loads username's profile. An empty username means current.
func (s *Store) Profile(ctx context.Context, username, current string) (*Profile, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if username == "" {
		username = current
	}
	if username == "" {
		return nil, ErrUserNotFound
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[username]
	if !ok {
		for _, u := range s.users {
			if u.Username == username {
				p, ok = Profile{
					Username:    u.Username,
					DisplayName: u.DisplayName,
					Bio:         u.Bio,
					Followers:   u.Followers,
				}, true
				break
			}
		}
	}
	if !ok && username == current {
		p, ok = Profile{Username: current}, true
	}
	if !ok && s.hasAuthor(username) {
		p, ok = Profile{Username: username}, true
	}
	if !ok {
		return nil, ErrUserNotFound
	}
	p.IsCurrentUser = username == current
	return &p, nil
}

func (s *Store) hasAuthor(username string) bool {
	for _, p := range s.posts {
		if p.Author.Username == username {
			return true
		}
	}
	return false
}

// ProfilePosts returns what username shows under tab.
func (s *Store) ProfilePosts(username string, tab ProfileTab) []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Post
	switch tab {
	case TabThreads:
		for _, p := range s.posts {
			if p.Author.Username == username {
				out = append(out, p)
			}
		}
	case TabReplies:
		for _, rs := range s.replies {
			for _, r := range rs {
				if r.Author.Username == username {
					out = append(out, r)
				}
			}
		}
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Timestamp.After(out[j].Timestamp)
		})
	}
	return out
}

func (s *Store) wait(ctx context.Context) error {
	if s.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
