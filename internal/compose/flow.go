// Package compose holds the state machine behind the new-post and reply
// modals: Closed, Open, Submitting, then Closed again.
package compose

import "strings"

// Variant selects which modal a Flow drives.
type Variant int

const (
	NewPost Variant = iota
	Reply
)

func (v Variant) String() string {
	if v == Reply {
		return "reply"
	}
	return "post"
}

// State is the modal state.
type State int

const (
	Closed State = iota
	Open
	Submitting
)

func (s State) String() string {
	switch s {
	case Open:
		return "open"
	case Submitting:
		return "submitting"
	default:
		return "closed"
	}
}

// Target is the post a reply answers.
type Target struct {
	PostID  string
	Author  string
	Content string
}

// ComposedContent is emitted when a submission completes. ReplyTo is
// empty for a new post.
type ComposedContent struct {
	Content string
	ReplyTo string
}

// Ticket identifies one submission. The completion for it is only
// honored while Generation is still current.
type Ticket struct {
	Generation uint64
	Content    string
}

// Flow is not safe for concurrent use; the UI model owns it.
type Flow struct {
	variant    Variant
	state      State
	target     *Target
	content    string
	generation uint64
}

// New returns a closed flow.
func New(v Variant) *Flow {
	return &Flow{variant: v}
}

func (f *Flow) Variant() Variant { return f.variant }
func (f *Flow) State() State     { return f.state }
func (f *Flow) Content() string  { return f.content }

// Target returns the reply target, nil for new posts or when closed.
func (f *Flow) Target() *Target { return f.target }

// Open moves Closed to Open and reports whether the input should take
// focus. A reply without a target stays closed.
func (f *Flow) Open(target *Target) bool {
	if f.state != Closed {
		return false
	}
	if f.variant == Reply && target == nil {
		return false
	}
	if target != nil {
		t := *target
		f.target = &t
	}
	f.content = ""
	f.state = Open
	return true
}

// SetContent replaces the draft. Ignored unless Open.
func (f *Flow) SetContent(s string) bool {
	if f.state != Open {
		return false
	}
	f.content = s
	return true
}

// CanSubmit reports whether Submit would start a submission.
func (f *Flow) CanSubmit() bool {
	return f.state == Open && strings.TrimSpace(f.content) != ""
}

// Submit moves Open to Submitting. Blank drafts are a no-op.
func (f *Flow) Submit() (Ticket, bool) {
	if !f.CanSubmit() {
		return Ticket{}, false
	}
	f.generation++
	f.state = Submitting
	return Ticket{Generation: f.generation, Content: strings.TrimSpace(f.content)}, true
}

// Complete finishes the submission for generation, closing the modal
// and returning the content to publish. Stale generations are ignored.
func (f *Flow) Complete(generation uint64) (ComposedContent, bool) {
	if f.state != Submitting || generation != f.generation {
		return ComposedContent{}, false
	}
	out := ComposedContent{Content: strings.TrimSpace(f.content)}
	if f.target != nil {
		out.ReplyTo = f.target.PostID
	}
	f.reset()
	return out, true
}

// Cancel closes the modal and drops any pending completion.
func (f *Flow) Cancel() bool {
	if f.state == Closed {
		return false
	}
	f.generation++
	f.reset()
	return true
}

func (f *Flow) reset() {
	f.state = Closed
	f.content = ""
	f.target = nil
}
