package resource

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTTL is how long an idle browse session is kept.
const DefaultSessionTTL = 30 * time.Minute

// defaultSweepEvery bounds how often the whole map is scanned for idle sessions.
const defaultSweepEvery = time.Minute

// Session is one visitor's browse state.
type Session struct {
	ID string

	mu       sync.Mutex
	browser  *Browser
	overlay  *Overlay
	lastSeen time.Time
}

// Do runs fn with exclusive access to the session state.
func (s *Session) Do(fn func(b *Browser, o *Overlay)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.browser, s.overlay)
}

// SessionStore keeps browse sessions in memory and forgets idle ones.
type SessionStore struct {
	mu         sync.Mutex
	sessions   map[string]*Session
	ttl        time.Duration
	now        func() time.Time
	sweepEvery time.Duration
	lastSweep  time.Time
}

// NewSessionStore creates a store whose sessions expire after ttl of inactivity.
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		sessions:   make(map[string]*Session),
		ttl:        ttl,
		now:        time.Now,
		sweepEvery: min(ttl, defaultSweepEvery),
	}
}

// New opens a session on the default criteria.
func (st *SessionStore) New() *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	st.maybeSweep(now)

	s := &Session{
		ID:       uuid.NewString(),
		browser:  NewBrowser(DefaultCriteria()),
		overlay:  NewOverlay(),
		lastSeen: now,
	}
	st.sessions[s.ID] = s
	return s
}

// Get returns a live session and refreshes its idle timer.
func (st *SessionStore) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := st.now()
	st.maybeSweep(now)

	s, ok := st.sessions[id]
	if !ok {
		return nil, false
	}
	if st.expired(s, now) {
		delete(st.sessions, id)
		return nil, false
	}
	s.lastSeen = now
	return s, true
}

// Len is the number of live sessions.
func (st *SessionStore) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// maybeSweep drops idle sessions at most once per sweepEvery, so a request
// does not pay for a full scan. Callers hold st.mu.
func (st *SessionStore) maybeSweep(now time.Time) {
	if now.Sub(st.lastSweep) < st.sweepEvery {
		return
	}
	st.lastSweep = now
	for id, s := range st.sessions {
		if st.expired(s, now) {
			delete(st.sessions, id)
		}
	}
}

func (st *SessionStore) expired(s *Session, now time.Time) bool {
	return now.Sub(s.lastSeen) > st.ttl
}
