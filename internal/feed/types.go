package feed

import "time"

type Author struct {
	ID       string
	Username string
	Avatar   string
}

type Post struct {
	ID        string
	Author    Author
	Content   string
	Timestamp time.Time
	Likes     int
	Replies   int
	IsLiked   bool
	Image     string
	ReplyTo   string
}

// Feed selects the home timeline.
type Feed string

const (
	Suggested Feed = "suggested"
	Following Feed = "following"
)

func (f Feed) Title() string {
	if f == Following {
		return "Following"
	}
	return "Dành cho bạn"
}

// Next cycles between the two feeds.
func (f Feed) Next() Feed {
	if f == Following {
		return Suggested
	}
	return Following
}

// ReplySort orders replies on the post detail view.
type ReplySort string

const (
	SortTop    ReplySort = "top"
	SortRecent ReplySort = "recent"
)

func (s ReplySort) Title() string {
	if s == SortRecent {
		return "Mới đây"
	}
	return "Hàng đầu"
}

func (s ReplySort) Next() ReplySort {
	if s == SortRecent {
		return SortTop
	}
	return SortRecent
}

// Detail is a post with its replies.
type Detail struct {
	Post    Post
	Replies []Post
}

type NotificationKind string

const (
	KindLike        NotificationKind = "like"
	KindFollow      NotificationKind = "follow"
	KindReply       NotificationKind = "reply"
	KindThreadReply NotificationKind = "thread_reply"
)

// Action is the sentence fragment shown after the username.
func (k NotificationKind) Action() string {
	switch k {
	case KindLike:
		return "đã thích bài viết của bạn"
	case KindFollow:
		return "đã theo dõi bạn"
	case KindReply:
		return "đã trả lời bình luận của bạn"
	case KindThreadReply:
		return "đã trả lời trong thread của bạn"
	}
	return "đã tương tác với bạn"
}

type Notification struct {
	ID        string
	Kind      NotificationKind
	User      Author
	Content   string
	Timestamp time.Time
	PostID    string
	Read      bool
}

// NotificationFilter narrows the notification list.
type NotificationFilter string

const (
	FilterAll           NotificationFilter = "all"
	FilterFollows       NotificationFilter = "follows"
	FilterThreadReplies NotificationFilter = "thread_replies"
	FilterMentions      NotificationFilter = "mentions"
	FilterReposts       NotificationFilter = "reposts"
)

// NotificationFilters lists the filters in menu order.
var NotificationFilters = []NotificationFilter{
	FilterAll, FilterFollows, FilterThreadReplies, FilterMentions, FilterReposts,
}

func (f NotificationFilter) Title() string {
	switch f {
	case FilterFollows:
		return "Lượt theo dõi"
	case FilterThreadReplies:
		return "Thread trả lời"
	case FilterMentions:
		return "Lượt nhắc"
	case FilterReposts:
		return "Bài đăng lại"
	}
	return "Tất cả"
}

// Match reports whether n belongs under the filter.
func (f NotificationFilter) Match(n Notification) bool {
	switch f {
	case FilterFollows:
		return n.Kind == KindFollow
	case FilterThreadReplies:
		return n.Kind == KindThreadReply
	case FilterMentions:
		return n.Kind == KindReply
	case FilterReposts:
		return false
	}
	return true
}

type SuggestedUser struct {
	ID          string
	Username    string
	DisplayName string
	Followers   int
	Bio         string
	Verified    bool
}

// Name is the display name, falling back to the username.
func (u SuggestedUser) Name() string {
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

type Profile struct {
	Username      string
	DisplayName   string
	Bio           string
	Followers     int
	Following     int
	IsCurrentUser bool
}

type ProfileTab string

const (
	TabThreads ProfileTab = "threads"
	TabReplies ProfileTab = "replies"
	TabReposts ProfileTab = "reposts"
)

var ProfileTabs = []ProfileTab{TabThreads, TabReplies, TabReposts}

func (t ProfileTab) Title() string {
	switch t {
	case TabReplies:
		return "Thread trả lời"
	case TabReposts:
		return "Bài đăng lại"
	}
	return "Thread"
}
