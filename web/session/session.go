// Package session holds the server-side state of each storefront visitor.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"konvyshop/autocomplete"
	"konvyshop/models"
	"konvyshop/preview"
	"konvyshop/search"
	"konvyshop/shopapi"

	"github.com/google/uuid"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"github.com/rohanthewiz/serr"
)

// CookieName carries the signed session token.
const CookieName = "konvy_session"

const (
	contextKey = "konvy_session"
	dirtyKey   = "konvy_session_dirty"
)

// Session bundles everything one visitor's dashboard needs.
type Session struct {
	State    *models.SessionState
	Rows     *autocomplete.RowSet
	Shop     *shopapi.Client
	Pipeline *search.Pipeline
	Buyer    *search.Buyer
	Catalog  *models.Catalog
	Previews *preview.Loader

	mu       sync.Mutex
	job      *preview.Job
	lastSeen time.Time
}

// ID is the session ID carried in the cookie token.
func (s *Session) ID() string {
	return s.State.ID
}

// StartPreview replaces any running preview job.
func (s *Session) StartPreview(accountID int64, category models.CosmeticCategory) *preview.Job {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.job != nil {
		s.job.Cancel()
	}
	s.job = preview.Start(context.Background(), s.Previews, accountID, category)
	return s.job
}

// PreviewJob returns the running job if its ID matches.
func (s *Session) PreviewJob(id string) (*preview.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.job == nil || s.job.ID != id {
		return nil, false
	}
	return s.job, true
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen.Before(cutoff)
}

// ClosePreview cancels the current job.
func (s *Session) ClosePreview() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.job != nil {
		s.job.Cancel()
		s.job = nil
	}
}

// Snapshot captures the durable state for the store.
func (s *Session) Snapshot() models.SessionSnapshot {
	return s.State.Snapshot(s.Rows.Values(), s.Shop.ExportCookies())
}

// From returns the session attached by the middleware.
func From(c rweb.Context) *Session {
	s, _ := c.Get(contextKey).(*Session)
	return s
}

// Attach stores s on the request context.
func Attach(c rweb.Context, s *Session) {
	c.Set(contextKey, s)
}

// MarkDirty asks the middleware to persist the session after a GET request.
// Every other method is persisted anyway.
func MarkDirty(c rweb.Context) {
	c.Set(dirtyKey, true)
}

// Dirty reports whether the request may have changed the session.
func Dirty(c rweb.Context) bool {
	if c.Request().Method() != "GET" {
		return true
	}
	d, _ := c.Get(dirtyKey).(bool)
	return d
}

// ManagerOptions configures a Manager.
type ManagerOptions struct {
	Tokens  *models.SessionTokens
	Store   models.SessionStore
	Catalog *models.Catalog
	Shop    shopapi.Options
	Prober  preview.Prober
	// IdleTTL drops sessions untouched this long from memory. They can
	// still be restored from the store. Defaults to DefaultIdleTTL.
	IdleTTL time.Duration
}

// DefaultIdleTTL is used when ManagerOptions.IdleTTL is zero.
const DefaultIdleTTL = 30 * time.Minute

// Sweeps run at most this often.
const maxSweepInterval = time.Minute

// Manager keeps live sessions in memory and snapshots them to the store so
// a restart (or another instance sharing Redis) can pick them up again.
type Manager struct {
	opts ManagerOptions

	mu        sync.RWMutex
	live      map[string]*Session
	lastSweep time.Time
}

// NewManager requires tokens and a store.
func NewManager(opts ManagerOptions) (*Manager, error) {
	if opts.Tokens == nil {
		return nil, serr.New("session tokens are required")
	}
	if opts.Store == nil {
		return nil, serr.New("session store is required")
	}
	if opts.Catalog == nil {
		opts.Catalog = models.NewCatalog()
	}
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = DefaultIdleTTL
	}
	return &Manager{opts: opts, live: make(map[string]*Session)}, nil
}

// Resolve returns the session for token, restoring it from the store or
// creating a fresh one. A non-empty newToken must be sent back as the cookie.
func (m *Manager) Resolve(ctx context.Context, token string) (s *Session, newToken string, err error) {
	now := time.Now()
	m.sweep(now)

	if token != "" {
		if id, verr := m.opts.Tokens.Validate(token); verr == nil {
			if s, ok := m.lookup(id); ok {
				s.touch(now)
				return s, "", nil
			}
			if s, ok := m.restore(ctx, id); ok {
				s.touch(now)
				return s, "", nil
			}
		}
	}

	s, err = m.create(uuid.NewString())
	if err != nil {
		return nil, "", err
	}
	s.touch(now)
	newToken, err = m.opts.Tokens.Issue(s.ID())
	if err != nil {
		return nil, "", err
	}
	return s, newToken, nil
}

// sweep evicts idle sessions, at most once per interval.
func (m *Manager) sweep(now time.Time) {
	interval := m.opts.IdleTTL
	if interval > maxSweepInterval {
		interval = maxSweepInterval
	}

	m.mu.Lock()
	if now.Sub(m.lastSweep) < interval {
		m.mu.Unlock()
		return
	}
	m.lastSweep = now

	cutoff := now.Add(-m.opts.IdleTTL)
	var evicted []*Session
	for id, s := range m.live {
		if s.idleSince(cutoff) {
			delete(m.live, id)
			evicted = append(evicted, s)
		}
	}
	m.mu.Unlock()

	for _, s := range evicted {
		s.ClosePreview()
	}
	if len(evicted) > 0 {
		logger.Debug("Evicted idle sessions", "count", len(evicted), "live", m.Len())
	}
}

func (m *Manager) lookup(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.live[id]
	return s, ok
}

func (m *Manager) restore(ctx context.Context, id string) (*Session, bool) {
	snap, err := m.opts.Store.Load(ctx, id)
	if err != nil {
		if !errors.Is(err, models.ErrSessionNotFound) {
			logger.LogErr(err, "failed to load session snapshot", "session", id)
		}
		return nil, false
	}

	s, err := m.create(id)
	if err != nil {
		logger.LogErr(err, "failed to rebuild session", "session", id)
		return nil, false
	}

	s.State.Restore(*snap)
	s.Rows.Restore(snap.Rows)
	s.Shop.ImportCookies(snap.Cookies)

	if s.State.LoggedIn() {
		search.LoadMyAccounts(ctx, s.State, s.Shop)
		s.State.MyAccounts.SetCursor(snap.AccountCursor)
	}
	logger.Debug("Session restored", "session", id)
	return s, true
}

func (m *Manager) create(id string) (*Session, error) {
	shop, err := shopapi.NewClient(m.opts.Shop)
	if err != nil {
		return nil, serr.Wrap(err, "failed to create shop client")
	}

	s := &Session{
		State:    models.NewSessionState(id),
		Rows:     autocomplete.NewRowSet(m.opts.Catalog, autocomplete.NewRegistry()),
		Shop:     shop,
		Pipeline: search.NewPipeline(id, shop, m.opts.Catalog),
		Buyer:    search.NewBuyer(id),
		Catalog:  m.opts.Catalog,
		Previews: preview.NewLoader(shop, m.opts.Prober),
	}

	m.mu.Lock()
	m.live[id] = s
	m.mu.Unlock()
	return s, nil
}

// Persist writes the session snapshot to the store.
func (m *Manager) Persist(ctx context.Context, s *Session) error {
	snap := s.Snapshot()
	snap.UpdatedAt = time.Now()
	if err := m.opts.Store.Save(ctx, s.ID(), snap); err != nil {
		return serr.Wrap(err, "failed to persist session")
	}
	return nil
}

// Len is the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.live)
}

// Catalog is the shared cosmetics cache.
func (m *Manager) Catalog() *models.Catalog {
	return m.opts.Catalog
}
