package memory

import (
	"time"

	"github.com/patrickmn/go-cache"

	"notesync/pkg/store"
)

type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository(ttl time.Duration) *SessionRepository {
	// Expired sessions are purged every 10 minutes
	c := cache.New(ttl, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.Token, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(token string) (*store.Session, bool) {
	if x, found := r.cache.Get(token); found {
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(token string) {
	r.cache.Delete(token)
}
