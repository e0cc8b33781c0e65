package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fragmede/threadscity/internal/api"
	"github.com/fragmede/threadscity/internal/mockserver"
)

// flakyTransport fails the first n requests to a path with a transport
// error and counts every attempt.
type flakyTransport struct {
	mu    sync.Mutex
	fails map[string]int
	calls map[string]int
	next  http.RoundTripper
}

func newFlakyTransport(fails map[string]int) *flakyTransport {
	if fails == nil {
		fails = map[string]int{}
	}
	return &flakyTransport{fails: fails, calls: map[string]int{}, next: http.DefaultTransport}
}

func (f *flakyTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	f.mu.Lock()
	f.calls[r.URL.Path]++
	if f.fails[r.URL.Path] != 0 {
		if f.fails[r.URL.Path] > 0 {
			f.fails[r.URL.Path]--
		}
		f.mu.Unlock()
		return nil, errors.New("dial tcp: connection refused")
	}
	f.mu.Unlock()
	return f.next.RoundTrip(r)
}

func (f *flakyTransport) Calls(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

type fixture struct {
	backend   *mockserver.Server
	transport *flakyTransport
	client    *api.Client
	svc       *Service
}

func newFixture(t *testing.T, fails map[string]int) *fixture {
	t.Helper()
	backend := mockserver.New(mockserver.WithBcryptCost(bcrypt.MinCost))
	require.NoError(t, backend.AddUser("hg.ducc", "ducc@example.com", "secret1", "Hoang Duc"))
	ts := httptest.NewServer(backend.Handler())
	t.Cleanup(ts.Close)

	tr := newFlakyTransport(fails)
	client, err := api.NewClient(ts.URL, api.WithTransport(tr), api.WithRateLimit(0, 0))
	require.NoError(t, err)
	return &fixture{
		backend:   backend,
		transport: tr,
		client:    client,
		svc:       NewService(client, 2, time.Millisecond),
	}
}

func TestRegisterDuplicateAccount(t *testing.T) {
	tests := []struct {
		name      string
		data      RegisterData
		wantField Field
		wantText  string
	}{
		{
			name:      "existing email",
			data:      RegisterData{Username: "new", Email: "ducc@example.com", Password: "secret1", FullName: "New"},
			wantField: FieldEmail,
			wantText:  "Email này đã được sử dụng. Vui lòng sử dụng email khác hoặc đăng nhập nếu đây là tài khoản của bạn.",
		},
		{
			name:      "existing username",
			data:      RegisterData{Username: "hg.ducc", Email: "new@example.com", Password: "secret1", FullName: "New"},
			wantField: FieldUsername,
			wantText:  "Tên người dùng này đã được sử dụng. Vui lòng chọn tên người dùng khác.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			_, err := f.svc.Register(context.Background(), tt.data)

			var ae *Error
			require.True(t, errors.As(err, &ae))
			assert.Equal(t, KindDuplicateAccount, ae.Kind)
			assert.Equal(t, tt.wantField, ae.Field)
			assert.Equal(t, tt.wantText, ae.UserMessage())
			assert.False(t, ae.Retryable())
			assert.Equal(t, 1, f.transport.Calls("/api/register"), "application failures are not retried")
		})
	}
}

func TestRegisterSuccess(t *testing.T) {
	f := newFixture(t, nil)
	resp, err := f.svc.Register(context.Background(), RegisterData{
		Username: "alice", Email: "alice@example.com", Password: "secret1", FullName: "Alice",
	})
	require.NoError(t, err)
	assert.Equal(t, "Register successfully!", resp.Msg)
}

func TestLoginInvalidCredentialsNotRetried(t *testing.T) {
	f := newFixture(t, nil)
	_, err := f.svc.Login(context.Background(), LoginData{Username: "hg.ducc", Password: "wrong"})

	assert.True(t, IsKind(err, KindInvalidCredentials))
	assert.Equal(t, 1, f.transport.Calls("/api/auth"))
}

func TestLoginRetriesTransportFailures(t *testing.T) {
	f := newFixture(t, map[string]int{"/api/auth": 2})
	resp, err := f.svc.Login(context.Background(), LoginData{Username: "hg.ducc", Password: "secret1"})

	require.NoError(t, err)
	assert.Equal(t, "Login successfully!", resp.Msg)
	assert.Equal(t, 3, f.transport.Calls("/api/auth"))
	assert.True(t, f.svc.CheckAuth(context.Background()))
}

func TestLoginServerUnreachable(t *testing.T) {
	f := newFixture(t, map[string]int{"/api/auth": -1})
	_, err := f.svc.Login(context.Background(), LoginData{Username: "hg.ducc", Password: "secret1"})

	var ae *Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, KindServerUnreachable, ae.Kind)
	assert.True(t, ae.Retryable())
	assert.True(t, api.IsTransport(err), "underlying transport error stays reachable")
	assert.Equal(t, 3, f.transport.Calls("/api/auth"))
}

func TestUnknownKeepsServerMessage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"msg":"db down","message":"ignored for register"}`))
	}))
	defer ts.Close()
	client, err := api.NewClient(ts.URL, api.WithRateLimit(0, 0))
	require.NoError(t, err)
	svc := NewService(client, 2, time.Millisecond)

	_, err = svc.Register(context.Background(), RegisterData{Username: "a"})
	var ae *Error
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, KindUnknown, ae.Kind)
	assert.Equal(t, "db down", ae.Message)
	assert.Equal(t, "db down", ae.UserMessage())

	_, err = svc.Login(context.Background(), LoginData{Username: "a"})
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, KindUnknown, ae.Kind)
	assert.Equal(t, "ignored for register", ae.Message)
}

func TestLoginFailureClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   Kind
	}{
		{"bad request", http.StatusBadRequest, `{"message":"Bad request"}`, KindInvalidCredentials},
		{"unauthorized", http.StatusUnauthorized, `{"message":"Unauthorized"}`, KindInvalidCredentials},
		{"forbidden", http.StatusForbidden, `{"message":"Forbidden"}`, KindUnknown},
		{"english word containing sai", http.StatusInternalServerError, `{"message":"Server said: database offline"}`, KindUnknown},
		{"wrong password message", http.StatusInternalServerError, `{"message":"Wrong username or password!"}`, KindInvalidCredentials},
		{"vietnamese message", http.StatusInternalServerError, `{"message":"Mật khẩu sai"}`, KindInvalidCredentials},
		{"vietnamese phrase", http.StatusConflict, `{"msg":"Tên đăng nhập không đúng."}`, KindInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()
			client, err := api.NewClient(ts.URL, api.WithRateLimit(0, 0))
			require.NoError(t, err)
			svc := NewService(client, 2, time.Millisecond)

			_, err = svc.Login(context.Background(), LoginData{Username: "a", Password: "b"})
			var ae *Error
			require.True(t, errors.As(err, &ae))
			assert.Equal(t, tt.want, ae.Kind)
			assert.Equal(t, int32(1), calls.Load())
		})
	}
}

func TestCheckAuth(t *testing.T) {
	t.Run("unauthenticated", func(t *testing.T) {
		f := newFixture(t, nil)
		assert.False(t, f.svc.CheckAuth(context.Background()))
	})

	t.Run("transport failure", func(t *testing.T) {
		f := newFixture(t, map[string]int{"/api/homepage": -1})
		assert.False(t, f.svc.CheckAuth(context.Background()))
		assert.Equal(t, 1, f.transport.Calls("/api/homepage"), "session check is not retried")
	})

	t.Run("always times out", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer ts.Close()
		client, err := api.NewClient(ts.URL, api.WithTimeout(20*time.Millisecond), api.WithRateLimit(0, 0))
		require.NoError(t, err)
		assert.False(t, NewService(client, 2, time.Millisecond).CheckAuth(context.Background()))
	})

	t.Run("after login", func(t *testing.T) {
		f := newFixture(t, nil)
		_, err := f.svc.Login(context.Background(), LoginData{Username: "hg.ducc", Password: "secret1"})
		require.NoError(t, err)

		user, ok := f.svc.CheckSession(context.Background())
		require.True(t, ok)
		assert.Equal(t, "hg.ducc", user.Username)
		assert.Equal(t, "Hoang Duc", user.FullName)
	})
}

func TestLogout(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	_, err := f.svc.Login(ctx, LoginData{Username: "hg.ducc", Password: "secret1"})
	require.NoError(t, err)
	require.NoError(t, f.svc.Logout(ctx))
	assert.False(t, f.svc.CheckAuth(ctx))
	assert.Equal(t, 0, f.backend.SessionCount())
}

func TestRegisterDataValidate(t *testing.T) {
	valid := RegisterData{Username: "a", Email: "a@b.c", Password: "secret1", FullName: "A"}
	tests := []struct {
		name    string
		mutate  func(*RegisterData)
		confirm string
		want    error
	}{
		{"valid", func(*RegisterData) {}, "secret1", nil},
		{"missing full name", func(d *RegisterData) { d.FullName = "  " }, "secret1", ErrMissingFields},
		{"missing confirm", func(*RegisterData) {}, "", ErrMissingFields},
		{"mismatch", func(*RegisterData) {}, "secret2", ErrPasswordMismatch},
		{"too short", func(d *RegisterData) { d.Password = "abc" }, "abc", ErrPasswordTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			assert.Equal(t, tt.want, d.Validate(tt.confirm))
		})
	}
}
