// Package session holds the authenticated user's credentials as an explicit
// capability passed to the API client. Nothing here is global.
package session

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrUnauthenticated is returned when no usable access token is held.
var ErrUnauthenticated = errors.New("session: unauthenticated")

// User is the identity attached to the session.
type User struct {
	ID      string `json:"id" yaml:"id"`
	Email   string `json:"email" yaml:"email"`
	Nom     string `json:"nom" yaml:"nom"`
	Prenoms string `json:"prenoms" yaml:"prenoms"`
	Contact string `json:"contact" yaml:"contact"`
}

// Credentials is the persisted form of a session.
type Credentials struct {
	Token        string    `json:"token" yaml:"token"`
	RefreshToken string    `json:"refreshToken" yaml:"refreshToken"`
	ExpiresAt    time.Time `json:"tokenExpires,omitempty" yaml:"tokenExpires,omitempty"`
	User         User      `json:"user" yaml:"user"`
}

// Session is safe for concurrent use.
type Session struct {
	mu    sync.RWMutex
	creds Credentials
	now   func() time.Time
}

// Option customises a Session.
type Option func(*Session)

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// New wraps credentials in a session.
func New(creds Credentials, opts ...Option) *Session {
	s := &Session{creds: creds, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Anonymous returns a session without credentials.
func Anonymous() *Session {
	return New(Credentials{})
}

// Load reads credentials from a YAML or JSON file.
func Load(path string, opts ...Option) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("session: read %s: %w", path, err)
	}
	var creds Credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("session: decode %s: %w", path, err)
	}
	return New(creds, opts...), nil
}

// Authenticated reports whether a token is held and has not expired at now.
func (s *Session) Authenticated(now time.Time) bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if strings.TrimSpace(s.creds.Token) == "" {
		return false
	}
	return s.creds.ExpiresAt.IsZero() || now.Before(s.creds.ExpiresAt)
}

// Token returns the access token for an Authorization header.
func (s *Session) Token() (string, error) {
	if s == nil || !s.Authenticated(s.now()) {
		return "", ErrUnauthenticated
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.Token, nil
}

// User returns the session user.
func (s *Session) User() User {
	if s == nil {
		return User{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds.User
}

// Credentials returns a copy of the held credentials.
func (s *Session) Credentials() Credentials {
	if s == nil {
		return Credentials{}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds
}

// Clear drops both tokens. The user identity is dropped as well.
func (s *Session) Clear() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.creds = Credentials{}
	s.mu.Unlock()
}
