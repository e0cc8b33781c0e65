package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const savedSessionKey = "saved_session"

// CookieJar is the part of api.Client the saved session needs.
type CookieJar interface {
	Cookies() []*http.Cookie
	SetCookies([]*http.Cookie)
}

// KV stores the saved session; cache.DB implements it.
type KV interface {
	GetSessionValue(key string) (string, error)
	PutSessionValue(key, value string) error
	DeleteSessionValue(key string) error
}

// savedSession is the JSON structure written to the store.
type savedSession struct {
	Username string        `json:"username"`
	Cookies  []savedCookie `json:"cookies"`
	SavedAt  time.Time     `json:"saved_at"`
}

// savedCookie keeps what the jar hands back: a cookiejar only reports
// name and value, so expiry is left to the server's auth check.
type savedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// PersistentSession saves the API cookie jar between runs.
type PersistentSession struct {
	jar CookieJar
	kv  KV
}

// NewPersistentSession creates a saved-session store.
func NewPersistentSession(jar CookieJar, kv KV) *PersistentSession {
	return &PersistentSession{jar: jar, kv: kv}
}

// Save persists the current cookies under username.
func (p *PersistentSession) Save(username string) error {
	cookies := p.jar.Cookies()
	sc := make([]savedCookie, len(cookies))
	for i, c := range cookies {
		sc[i] = savedCookie{Name: c.Name, Value: c.Value}
	}

	data, err := json.Marshal(savedSession{
		Username: username,
		Cookies:  sc,
		SavedAt:  time.Now(),
	})
	if err != nil {
		return err
	}
	if err := p.kv.PutSessionValue(savedSessionKey, string(data)); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Restore loads saved cookies into the jar and returns the username they
// belong to. ok is false when nothing usable was saved.
func (p *PersistentSession) Restore() (username string, ok bool) {
	raw, err := p.kv.GetSessionValue(savedSessionKey)
	if err != nil || raw == "" {
		return "", false
	}

	var saved savedSession
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		return "", false
	}
	if saved.Username == "" || len(saved.Cookies) == 0 {
		return "", false
	}

	cookies := make([]*http.Cookie, 0, len(saved.Cookies))
	for _, sc := range saved.Cookies {
		if sc.Name == "" {
			continue
		}
		cookies = append(cookies, &http.Cookie{Name: sc.Name, Value: sc.Value})
	}
	if len(cookies) == 0 {
		return "", false
	}
	p.jar.SetCookies(cookies)
	return saved.Username, true
}

// Clear forgets the saved session.
func (p *PersistentSession) Clear() error {
	return p.kv.DeleteSessionValue(savedSessionKey)
}
