package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"parts-assist-be/internal/repository/contract"
	"parts-assist-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session-context:"

// SessionContextRepository is the shared session store for multi-instance
// deployments. Same contract and TTL semantics as the in-memory store,
// backed by Redis so any instance can serve any session.
type SessionContextRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionContextRepository(client *redis.Client, ttl time.Duration) contract.SessionContextRepository {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	return &SessionContextRepository{client: client, ttl: ttl}
}

func (r *SessionContextRepository) Get(ctx context.Context, sessionId string) (*store.SessionContext, bool) {
	data, err := r.client.Get(ctx, keyPrefix+sessionId).Bytes()
	if err != nil {
		// A read failure is treated as a miss; the resolver will start a
		// fresh context rather than fail the turn.
		return nil, false
	}
	var sc store.SessionContext
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, false
	}
	return &sc, true
}

func (r *SessionContextRepository) Upsert(ctx context.Context, sc *store.SessionContext) error {
	data, err := json.Marshal(sc)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, keyPrefix+sc.SessionId, data, r.ttl).Err()
}

func (r *SessionContextRepository) Clear(ctx context.Context, sessionId string) error {
	err := r.client.Del(ctx, keyPrefix+sessionId).Err()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	return err
}
