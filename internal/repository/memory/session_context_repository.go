package memory

import (
	"context"
	"time"

	"parts-assist-be/internal/repository/contract"
	"parts-assist-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionContextRepository is the in-process session store. The TTL is the
// explicit expiry decision for conversational context: records that go
// quiet for longer than ttl are evicted instead of growing without bound.
type SessionContextRepository struct {
	cache *cache.Cache
}

func NewSessionContextRepository(ttl time.Duration) contract.SessionContextRepository {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	// Purge expired records every 10 minutes
	return &SessionContextRepository{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (r *SessionContextRepository) Get(_ context.Context, sessionId string) (*store.SessionContext, bool) {
	if x, found := r.cache.Get(sessionId); found {
		return x.(*store.SessionContext), true
	}
	return nil, false
}

func (r *SessionContextRepository) Upsert(_ context.Context, sc *store.SessionContext) error {
	r.cache.Set(sc.SessionId, sc, cache.DefaultExpiration)
	return nil
}

func (r *SessionContextRepository) Clear(_ context.Context, sessionId string) error {
	r.cache.Delete(sessionId)
	return nil
}
