package contract

import (
	"context"

	"parts-assist-be/pkg/store"
)

// SessionContextRepository owns all SessionContext records, keyed by session
// id. Implementations decide storage (in-process cache, Redis) and apply the
// configured TTL; records for different sessions are independent, and the
// store provides no per-record locking, so concurrent turns for the same
// session id must be serialized by the caller.
type SessionContextRepository interface {
	// Get returns the record for sessionId, or found=false when none exists
	// (or it expired).
	Get(ctx context.Context, sessionId string) (*store.SessionContext, bool)
	// Upsert writes the record, resetting its TTL.
	Upsert(ctx context.Context, sc *store.SessionContext) error
	// Clear drops the record.
	Clear(ctx context.Context, sessionId string) error
}
