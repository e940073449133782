package web

import (
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/masarusaitou/fudousan/services"
)

const sessionCookie = "fudousan_session"

// SessionStore holds one view-state session per browser. Sessions live
// in memory and die with the process.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*services.Session
	catalog  *services.Catalog
}

// NewSessionStore creates a store whose new sessions start from the
// catalog's default draft criteria.
func NewSessionStore(catalog *services.Catalog) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*services.Session),
		catalog:  catalog,
	}
}

// Get returns the request's session, creating one (and setting the
// cookie) when none exists yet.
func (st *SessionStore) Get(w http.ResponseWriter, r *http.Request) *services.Session {
	if c, err := r.Cookie(sessionCookie); err == nil {
		st.mu.Lock()
		sess, ok := st.sessions[c.Value]
		st.mu.Unlock()
		if ok {
			return sess
		}
	}

	id := uuid.NewString()
	sess := services.NewSession(id, st.catalog.DefaultCriteria())

	st.mu.Lock()
	st.sessions[id] = sess
	st.mu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

// Count returns the number of live sessions.
func (st *SessionStore) Count() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
