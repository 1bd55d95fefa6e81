package models

import (
	"sync"
	"time"
)

// SessionState is the explicit per-shopper application state. Panels hold a
// reference to it instead of reading globals: the logged-in flag gates
// authenticated-only actions, and favorites/my-accounts are loaded into it.
//
// The logged-in flag is a UX convenience only. The back-end enforces
// authorization on every call regardless.
type SessionState struct {
	ID string

	mu       sync.RWMutex
	username string
	loggedIn bool

	Favorites  *Favorites
	MyAccounts *MyAccounts
}

// NewSessionState returns an anonymous session.
func NewSessionState(id string) *SessionState {
	return &SessionState{
		ID:         id,
		Favorites:  NewFavorites(),
		MyAccounts: NewMyAccounts(),
	}
}

// SetLogin marks the session as authenticated for username.
func (s *SessionState) SetLogin(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = username
	s.loggedIn = true
}

// ClearLogin returns the session to anonymous and drops user-scoped data.
func (s *SessionState) ClearLogin() {
	s.mu.Lock()
	s.username = ""
	s.loggedIn = false
	s.mu.Unlock()

	s.Favorites.Reset(nil)
	s.MyAccounts.Reset(nil)
}

// LoggedIn reports whether the shopper is authenticated with the back-end.
func (s *SessionState) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn
}

// Username is "Guest" for anonymous sessions.
func (s *SessionState) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.username == "" {
		return "Guest"
	}
	return s.username
}

// SavedCookie is a back-end session cookie persisted with the snapshot.
type SavedCookie struct {
	Name    string    `msgpack:"name"`
	Value   string    `msgpack:"value"`
	Path    string    `msgpack:"path"`
	Domain  string    `msgpack:"domain"`
	Expires time.Time `msgpack:"expires"`
}

// SessionSnapshot is the durable part of a session: enough to restore login,
// favorites, row text and the carousel position after a restart.
type SessionSnapshot struct {
	Username      string        `msgpack:"username"`
	LoggedIn      bool          `msgpack:"logged_in"`
	Cookies       []SavedCookie `msgpack:"cookies"`
	Favorites     []int64       `msgpack:"favorites"`
	Rows          []string      `msgpack:"rows"`
	AccountCursor int           `msgpack:"account_cursor"`
	UpdatedAt     time.Time     `msgpack:"updated_at"`
}

// Snapshot captures the durable state. Rows and cookies are owned by the
// caller (row manager and back-end client) and passed in.
func (s *SessionState) Snapshot(rows []string, cookies []SavedCookie) SessionSnapshot {
	s.mu.RLock()
	snap := SessionSnapshot{
		Username: s.username,
		LoggedIn: s.loggedIn,
	}
	s.mu.RUnlock()

	snap.Cookies = cookies
	snap.Favorites = s.Favorites.ConfirmedIDs()
	snap.Rows = rows
	snap.AccountCursor = s.MyAccounts.Cursor()
	snap.UpdatedAt = time.Now()
	return snap
}

// Restore applies a snapshot to a fresh session.
func (s *SessionState) Restore(snap SessionSnapshot) {
	s.mu.Lock()
	s.username = snap.Username
	s.loggedIn = snap.LoggedIn
	s.mu.Unlock()

	s.Favorites.Reset(snap.Favorites)
}
