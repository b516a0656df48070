package memory

import (
	"sync"

	"github.com/patrickmn/go-cache"

	"github.com/mrchongyl/zus-chatbot/pkg/store"
)

// SessionRepository keeps conversation transcripts in process memory.
// Sessions never expire on their own; they live until Clear or restart.
type SessionRepository struct {
	cache *cache.Cache

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{
		cache: cache.New(cache.NoExpiration, 0),
		locks: make(map[string]*sync.Mutex),
	}
}

// sessionLock returns the per-session mutex, creating it on first use.
// Appends to the same session are serialized; distinct sessions never
// contend.
func (r *SessionRepository) sessionLock(sessionID string) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()
	lock, ok := r.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[sessionID] = lock
	}
	return lock
}

// GetOrCreate returns the session's turns in insertion order, creating an
// empty session on first access. The returned slice is a copy.
func (r *SessionRepository) GetOrCreate(sessionID string) []store.Turn {
	lock := r.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session := r.load(sessionID)
	turns := make([]store.Turn, len(session.Turns))
	copy(turns, session.Turns)
	return turns
}

// Append adds turns to the end of the session transcript.
func (r *SessionRepository) Append(sessionID string, turns ...store.Turn) {
	lock := r.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session := r.load(sessionID)
	session.Turns = append(session.Turns, turns...)
	r.cache.Set(sessionID, session, cache.NoExpiration)
}

// Clear removes the session. Clearing an unknown session is a no-op.
func (r *SessionRepository) Clear(sessionID string) {
	lock := r.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	r.cache.Delete(sessionID)
}

// load fetches the session under an already held session lock.
func (r *SessionRepository) load(sessionID string) *store.Session {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Session)
	}
	session := &store.Session{ID: sessionID}
	r.cache.Set(sessionID, session, cache.NoExpiration)
	return session
}
