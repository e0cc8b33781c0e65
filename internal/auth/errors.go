package auth

import (
	"errors"
	"strings"
	"unicode"

	"github.com/fragmede/threadscity/internal/api"
)

// Kind classifies authentication failures for the UI.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidCredentials
	KindDuplicateAccount
	KindServerUnreachable
)

func (k Kind) String() string {
	switch k {
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindDuplicateAccount:
		return "duplicate_account"
	case KindServerUnreachable:
		return "server_unreachable"
	default:
		return "unknown"
	}
}

// Field names the account attribute that already exists.
type Field string

const (
	FieldUsername Field = "username"
	FieldEmail    Field = "email"
)

// Server messages with a known meaning.
const (
	msgExistedEmail    = "Existed email!"
	msgExistedUsername = "Existed username!"
)

const msgServerUnreachable = "Không thể kết nối đến máy chủ. Vui lòng kiểm tra kết nối mạng và đảm bảo máy chủ đang hoạt động."

var (
	// ErrBusy is returned when a login, logout or register is already in flight.
	ErrBusy = errors.New("another authentication request is in progress")
	// ErrNotReady is returned when a mutation is attempted before the
	// startup session check has finished.
	ErrNotReady = errors.New("session check still in progress")
)

// Register form validation errors.
var (
	ErrMissingFields    = errors.New("Vui lòng điền đầy đủ thông tin")
	ErrPasswordMismatch = errors.New("Mật khẩu không khớp")
	ErrPasswordTooShort = errors.New("Mật khẩu phải có ít nhất 6 ký tự")
)

// Error is a classified authentication failure.
type Error struct {
	Op      string
	Kind    Kind
	Field   Field
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Kind == KindServerUnreachable {
		return msgServerUnreachable
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Op + " failed: " + e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Retryable reports whether the UI should offer a retry action.
func (e *Error) Retryable() bool {
	return e.Kind == KindServerUnreachable
}

// UserMessage is the text shown in the error banner.
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindServerUnreachable:
		return "Lỗi kết nối có thể do máy chủ chưa khởi động hoặc đang bị trục trặc."
	case KindDuplicateAccount:
		if e.Field == FieldEmail {
			return "Email này đã được sử dụng. Vui lòng sử dụng email khác hoặc đăng nhập nếu đây là tài khoản của bạn."
		}
		return "Tên người dùng này đã được sử dụng. Vui lòng chọn tên người dùng khác."
	case KindInvalidCredentials:
		return "Tên đăng nhập hoặc mật khẩu không đúng."
	}
	if e.Message != "" {
		return e.Message
	}
	switch e.Op {
	case "register":
		return "Tạo tài khoản thất bại"
	case "login":
		return "Đăng nhập thất bại"
	case "logout":
		return "Đăng xuất thất bại"
	}
	return "Đã xảy ra lỗi. Vui lòng thử lại."
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, k Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == k
}

// classify maps a decoded API failure to the auth error taxonomy.
func classify(op string, f api.Failure) error {
	e := &Error{Op: op, Message: f.Message, Err: f.Err}
	switch f.Kind {
	case api.FailureNone:
		return nil
	case api.FailureTransport:
		e.Kind = KindServerUnreachable
		e.Message = ""
	case api.FailureApplication:
		switch {
		case f.Message == msgExistedEmail:
			e.Kind, e.Field = KindDuplicateAccount, FieldEmail
		case f.Message == msgExistedUsername:
			e.Kind, e.Field = KindDuplicateAccount, FieldUsername
		case op == "login" && looksLikeBadCredentials(f):
			e.Kind = KindInvalidCredentials
		default:
			e.Kind = KindUnknown
		}
	default:
		e.Kind = KindUnknown
	}
	return e
}

// badCredentialPhrases are matched against whole words of the message.
var badCredentialPhrases = []string{"wrong", "invalid", "incorrect", "not found", "không đúng", "sai"}

func looksLikeBadCredentials(f api.Failure) bool {
	if f.StatusCode == 400 || f.StatusCode == 401 {
		return true
	}
	words := strings.FieldsFunc(strings.ToLower(f.Message), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	m := " " + strings.Join(words, " ") + " "
	for _, p := range badCredentialPhrases {
		if strings.Contains(m, " "+p+" ") {
			return true
		}
	}
	return false
}
