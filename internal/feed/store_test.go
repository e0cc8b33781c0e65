package feed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragmede/threadscity/internal/compose"
)

func newTestStore() *Store {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	return NewStore(0, WithClock(func() time.Time { return now }))
}

func TestPostsBySelector(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	all, err := s.Posts(ctx, Suggested)
	require.NoError(t, err)
	assert.Len(t, all, 13)
	assert.Equal(t, "1", all[0].ID)

	following, err := s.Posts(ctx, Following)
	require.NoError(t, err)
	assert.Less(t, len(following), len(all))
	for _, p := range following {
		assert.True(t, s.following[p.Author.Username], p.Author.Username)
	}
}

func TestAppendPrependsNewPost(t *testing.T) {
	s := newTestStore()
	p := s.Append(compose.ComposedContent{Content: "Có gì mới?"}, "hg.ducc")
	assert.NotEmpty(t, p.ID)

	posts, err := s.Posts(context.Background(), Suggested)
	require.NoError(t, err)
	assert.Equal(t, p.ID, posts[0].ID)
	assert.Equal(t, "hg.ducc", posts[0].Author.Username)
}

func TestAppendReplyBumpsParent(t *testing.T) {
	s := newTestStore()
	before, _ := s.Post("3")

	r := s.Append(compose.ComposedContent{Content: "mình biết nè", ReplyTo: "3"}, "hg.ducc")
	assert.Equal(t, "3", r.ReplyTo)

	after, _ := s.Post("3")
	assert.Equal(t, before.Replies+1, after.Replies)

	replies := s.Replies("3", SortRecent)
	require.Len(t, replies, 1)
	assert.Equal(t, r.ID, replies[0].ID)
}

func TestDetailSortsReplies(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	top, err := s.Detail(ctx, "11", SortTop)
	require.NoError(t, err)
	assert.Equal(t, "11", top.Post.ID)
	require.Len(t, top.Replies, 3)
	assert.Equal(t, []string{"reply1", "reply2", "reply3"}, ids(top.Replies))

	recent, err := s.Detail(ctx, "11", SortRecent)
	require.NoError(t, err)
	assert.Equal(t, []string{"reply3", "reply2", "reply1"}, ids(recent.Replies))
}

func TestDetailNotFound(t *testing.T) {
	_, err := newTestStore().Detail(context.Background(), "nope", SortTop)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestDetailHonorsContext(t *testing.T) {
	s := NewStore(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Detail(ctx, "1", SortTop)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNotificationFilters(t *testing.T) {
	s := newTestStore()
	tests := []struct {
		filter NotificationFilter
		want   []string
	}{
		{FilterAll, []string{"1", "2", "3", "4"}},
		{FilterFollows, []string{"4"}},
		{FilterThreadReplies, []string{"3"}},
		{FilterMentions, []string{"2"}},
		{FilterReposts, nil},
	}
	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			got, err := s.Notifications(context.Background(), tt.filter)
			require.NoError(t, err)
			var gotIDs []string
			for _, n := range got {
				gotIDs = append(gotIDs, n.ID)
			}
			assert.Equal(t, tt.want, gotIDs)
		})
	}
}

func TestSearchUsers(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	all, err := s.SearchUsers(ctx, "  ")
	require.NoError(t, err)
	assert.Len(t, all, 6)

	byName, err := s.SearchUsers(ctx, "MANGATA")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "moon.nef_", byName[0].Username)

	none, err := s.SearchUsers(ctx, "zzz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProfile(t *testing.T) {
	s := newTestStore()
	ctx := context.Background()

	own, err := s.Profile(ctx, "", "hg.ducc")
	require.NoError(t, err)
	assert.True(t, own.IsCurrentUser)
	assert.Equal(t, "Hong Duc", own.DisplayName)

	other, err := s.Profile(ctx, "moon.nef_", "hg.ducc")
	require.NoError(t, err)
	assert.False(t, other.IsCurrentUser)
	assert.Equal(t, 78100, other.Followers)

	fresh, err := s.Profile(ctx, "", "newbie")
	require.NoError(t, err)
	assert.True(t, fresh.IsCurrentUser)

	_, err = s.Profile(ctx, "ghost", "hg.ducc")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestProfilePosts(t *testing.T) {
	s := newTestStore()
	assert.Len(t, s.ProfilePosts("hg.ducc", TabThreads), 2)
	assert.Empty(t, s.ProfilePosts("hg.ducc", TabReplies))
	assert.Empty(t, s.ProfilePosts("hg.ducc", TabReposts))

	s.Append(compose.ComposedContent{Content: "hi", ReplyTo: "1"}, "hg.ducc")
	assert.Len(t, s.ProfilePosts("hg.ducc", TabReplies), 1)
}

func TestToggleLike(t *testing.T) {
	s := newTestStore()
	p, ok := s.ToggleLike("2")
	require.True(t, ok)
	assert.False(t, p.IsLiked)
	assert.Equal(t, 58, p.Likes)

	p, _ = s.ToggleLike("2")
	assert.True(t, p.IsLiked)
	assert.Equal(t, 59, p.Likes)

	_, ok = s.ToggleLike("missing")
	assert.False(t, ok)
}

func ids(posts []Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func TestMarkRead(t *testing.T) {
	s := newTestStore()
	assert.Equal(t, 2, s.UnreadCount())

	s.MarkRead("1")
	assert.Equal(t, 1, s.UnreadCount())

	s.MarkRead("missing")
	assert.Equal(t, 1, s.UnreadCount())

	s.MarkRead()
	assert.Equal(t, 0, s.UnreadCount())
}
