package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/TsubasaHiga/fe-xanthiccoffee-sub000/internal/holiday"
)

// Store keeps live sessions in memory with a sliding TTL. Expired entries
// are dropped lazily on access and swept on writes.
type Store struct {
	mu         sync.RWMutex
	now        func() time.Time
	newID      func() string
	ttl        time.Duration
	maxEntries int
	holidays   holiday.Calendar
	entries    map[string]*storeEntry
}

type storeEntry struct {
	session   *Session
	expiresAt time.Time
}

// NewStore builds a store. A nil clock falls back to time.Now, a nil id
// generator to uuid.NewString, non-positive limits to the defaults.
func NewStore(ttl time.Duration, maxEntries int, now func() time.Time, newID func() string, holidays holiday.Calendar) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if maxEntries <= 0 {
		maxEntries = 1024
	}
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = uuid.NewString
	}
	return &Store{
		now:        now,
		newID:      newID,
		ttl:        ttl,
		maxEntries: maxEntries,
		holidays:   holidays,
		entries:    make(map[string]*storeEntry),
	}
}

// Create opens a new session with default settings.
func (st *Store) Create() *Session {
	id := st.newID()
	s := New(id, st.now, st.holidays)

	st.mu.Lock()
	defer st.mu.Unlock()

	st.cleanupLocked()
	if len(st.entries) >= st.maxEntries {
		st.evictOneLocked()
	}
	st.entries[id] = &storeEntry{session: s, expiresAt: st.now().Add(st.ttl)}
	return s
}

// Get returns the session for the id and slides its expiry forward. The
// expiry check and update run under one lock; concurrent Gets on the same id
// both touch entry.expiresAt through the shared pointer.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	entry, ok := st.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	if st.now().After(entry.expiresAt) {
		delete(st.entries, id)
		return nil, ErrNotFound
	}

	entry.expiresAt = st.now().Add(st.ttl)
	return entry.session, nil
}

// Delete removes the session if present.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.entries, id)
	st.mu.Unlock()
}

// Len reports the number of live entries, expired ones included until the
// next sweep.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.entries)
}

func (st *Store) cleanupLocked() {
	now := st.now()
	for id, entry := range st.entries {
		if now.After(entry.expiresAt) {
			delete(st.entries, id)
		}
	}
}

func (st *Store) evictOneLocked() {
	for id := range st.entries {
		delete(st.entries, id)
		return
	}
}
