package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/placemap/internal/core/domain"
)

func TestPlaceEnricher_CachesSuccess(t *testing.T) {
	lookup := newMockPlaceLookup()
	lookup.add("abc", "Bar", 1.5, 2.5)
	cache := newMockCacheStore()
	e := NewPlaceEnricher(lookup, cache, 720*time.Hour)
	ctx := context.Background()

	first, err := e.Enrich(ctx, "abc")
	require.NoError(t, err)
	second, err := e.Enrich(ctx, "abc")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, lookup.callCount("abc"))
	assert.True(t, cache.has("place:abc"))
	assert.Equal(t, 720*time.Hour, cache.ttls["place:abc"])
}

func TestPlaceEnricher_DoesNotCacheFailures(t *testing.T) {
	lookup := newMockPlaceLookup()
	lookup.fail["abc"] = errors.New("INTERNAL")
	cache := newMockCacheStore()
	e := NewPlaceEnricher(lookup, cache, time.Hour)
	ctx := context.Background()

	_, err := e.Enrich(ctx, "abc")
	require.ErrorIs(t, err, domain.ErrEnrichmentFailed)
	assert.False(t, cache.has("place:abc"))

	// The next attempt reaches the lookup again and can heal.
	delete(lookup.fail, "abc")
	lookup.add("abc", "Bar", 1, 1)
	res, err := e.Enrich(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "Bar", res.DisplayName)
	assert.Equal(t, 2, lookup.callCount("abc"))
}

func TestPlaceEnricher_CacheFailureFallsThrough(t *testing.T) {
	lookup := newMockPlaceLookup()
	lookup.add("abc", "Bar", 1, 1)
	cache := newMockCacheStore()
	cache.getErr = errors.New("connection refused")
	cache.setErr = errors.New("connection refused")
	e := NewPlaceEnricher(lookup, cache, time.Hour)

	res, err := e.Enrich(context.Background(), "abc")

	require.NoError(t, err)
	assert.Equal(t, "Bar", res.DisplayName)
}

func TestPlaceEnricher_CorruptEntryIsIgnored(t *testing.T) {
	lookup := newMockPlaceLookup()
	lookup.add("abc", "Bar", 1, 1)
	cache := newMockCacheStore()
	cache.entries["place:abc"] = []byte("{not json")
	e := NewPlaceEnricher(lookup, cache, time.Hour)

	res, err := e.Enrich(context.Background(), "abc")

	require.NoError(t, err)
	assert.Equal(t, "Bar", res.DisplayName)
	assert.Equal(t, 1, lookup.callCount("abc"))
}
