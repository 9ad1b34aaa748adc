package memory

import (
	"context"
	"testing"
	"time"

	"parts-assist-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func TestSessionContextRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionContextRepository(1 * time.Hour)

	// Miss before any write
	_, found := repo.Get(ctx, "s1")
	assert.False(t, found)

	// Upsert then hit
	sc := store.NewSessionContext("s1")
	sc.ActivePart = "ps8694830"
	assert.NoError(t, repo.Upsert(ctx, sc))

	got, found := repo.Get(ctx, "s1")
	assert.True(t, found)
	assert.Equal(t, "ps8694830", got.ActivePart)

	// Sessions are independent
	_, found = repo.Get(ctx, "s2")
	assert.False(t, found)

	// Overwrite keeps the latest record
	sc.ActiveOrder = "pso1121"
	assert.NoError(t, repo.Upsert(ctx, sc))
	got, _ = repo.Get(ctx, "s1")
	assert.Equal(t, "pso1121", got.ActiveOrder)

	// Clear drops it
	assert.NoError(t, repo.Clear(ctx, "s1"))
	_, found = repo.Get(ctx, "s1")
	assert.False(t, found)
}

func TestSessionContextRepositoryTTL(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionContextRepository(20 * time.Millisecond)

	assert.NoError(t, repo.Upsert(ctx, store.NewSessionContext("short-lived")))
	_, found := repo.Get(ctx, "short-lived")
	assert.True(t, found)

	time.Sleep(50 * time.Millisecond)
	_, found = repo.Get(ctx, "short-lived")
	assert.False(t, found, "record should expire after the TTL")
}
