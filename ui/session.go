package ui

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"trendlab/domain/table"
	"trendlab/internal/config"
)

// Page is the single navigation state a browser session carries
type Page string

const (
	PageHome       Page = "home"
	PageTimeSeries Page = "time_series"
	PageHypothesis Page = "hypothesis"
)

// ParsePage validates enum membership
func ParsePage(s string) (Page, bool) {
	switch Page(s) {
	case PageHome, PageTimeSeries, PageHypothesis:
		return Page(s), true
	}
	return "", false
}

// Session holds all per-browser state: the current page and the most
// recently uploaded table. Nothing outlives the session.
type Session struct {
	ID        string
	Page      Page
	Table     *table.Table
	Filename  string
	CreatedAt time.Time
	LastSeen  time.Time
}

// Navigate sets the current page. Unknown targets are ignored so the
// page enum can never leave its three known values.
func (s *Session) Navigate(target string) {
	if page, ok := ParsePage(target); ok {
		s.Page = page
	}
}

// Current returns the session's page
func (s *Session) Current() Page {
	return s.Page
}

// SessionStore is an in-memory session registry keyed by a cookie
type SessionStore struct {
	mu         sync.RWMutex
	sessions   map[string]*Session
	cookieName string
	ttl        time.Duration
}

// NewSessionStore creates a store with the configured cookie name and TTL
func NewSessionStore(cfg config.SessionConfig) *SessionStore {
	return &SessionStore{
		sessions:   make(map[string]*Session),
		cookieName: cfg.CookieName,
		ttl:        cfg.TTL,
	}
}

// Get returns the request's session, creating one (and setting the
// cookie) on first contact. Expired sessions are replaced.
func (store *SessionStore) Get(w http.ResponseWriter, r *http.Request) *Session {
	now := time.Now()

	if cookie, err := r.Cookie(store.cookieName); err == nil {
		store.mu.Lock()
		if session, ok := store.sessions[cookie.Value]; ok && now.Sub(session.LastSeen) < store.ttl {
			session.LastSeen = now
			store.mu.Unlock()
			return session
		}
		delete(store.sessions, cookie.Value)
		store.mu.Unlock()
	}

	session := &Session{
		ID:        uuid.NewString(),
		Page:      PageHome,
		CreatedAt: now,
		LastSeen:  now,
	}

	store.mu.Lock()
	store.prune(now)
	store.sessions[session.ID] = session
	store.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     store.cookieName,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return session
}

// Count returns the number of live sessions
func (store *SessionStore) Count() int {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return len(store.sessions)
}

// prune drops expired sessions; caller holds the lock
func (store *SessionStore) prune(now time.Time) {
	for id, session := range store.sessions {
		if now.Sub(session.LastSeen) >= store.ttl {
			delete(store.sessions, id)
		}
	}
}
