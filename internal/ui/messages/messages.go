package messages

import (
	"github.com/fragmede/threadscity/internal/auth"
	"github.com/fragmede/threadscity/internal/cache"
	"github.com/fragmede/threadscity/internal/compose"
	"github.com/fragmede/threadscity/internal/feed"
)

// Navigation messages. Views never switch screens themselves; the root
// model routes these through the guard.
type (
	NavigateMsg    struct{ Path string }
	GoBackMsg      struct{}
	OpenPostMsg    struct{ PostID string }
	OpenProfileMsg struct{ Username string }

	// OpenComposeMsg asks the root model to open a compose modal.
	// ReplyTo nil opens the new-post modal.
	OpenComposeMsg struct{ ReplyTo *feed.Post }

	// ShowBannerMsg is delivered to the login view after registering.
	ShowBannerMsg struct{ Text string }
)

// Auth messages.
type (
	AuthStateMsg struct{ State auth.State }

	LoginResultMsg struct {
		Username string
		Err      error
	}

	RegisterResultMsg struct {
		Username string
		Err      error
	}

	LogoutResultMsg struct{ Err error }
)

// Data messages.
type (
	PostsLoadedMsg struct {
		Feed  feed.Feed
		Posts []feed.Post
		Err   error
	}

	DetailLoadedMsg struct {
		PostID string
		Detail *feed.Detail
		Err    error
	}

	NotificationsLoadedMsg struct {
		Filter feed.NotificationFilter
		Items  []feed.Notification
		Err    error
	}

	UsersLoadedMsg struct {
		Query string
		Users []feed.SuggestedUser
		Err   error
	}

	ProfileLoadedMsg struct {
		Username string
		Profile  *feed.Profile
		Err      error
	}

	LikeToggledMsg struct{ Post feed.Post }
)

// Compose messages.
type (
	ComposeSubmittedMsg struct {
		Variant compose.Variant
		Ticket  compose.Ticket
	}

	// ComposeDoneMsg fires when the simulated submit delay elapses.
	ComposeDoneMsg struct {
		Variant    compose.Variant
		Generation uint64
	}

	CreatePostResultMsg struct{ Err error }

	PostPublishedMsg struct{ Post feed.Post }
)

type (
	ThemeChangedMsg struct{ Theme cache.Theme }

	// UnreadCountMsg is sent by the background monitor.
	UnreadCountMsg struct{ Count int }

	StatusMsg struct {
		Text    string
		IsError bool
	}
)
