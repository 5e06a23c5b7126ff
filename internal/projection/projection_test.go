package projection

import (
	"context"
	"testing"
	"time"

	"github.com/bsglauncher/webui/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore_SetAndGet(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	err := store.Set(ctx, "k1", []byte("hello"), 0)
	require.NoError(t, err)

	val, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), val)
}

func TestInMemoryStore_KeyNotFound(t *testing.T) {
	store := NewInMemoryStore()

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestInMemoryStore_Delete(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	_ = store.Set(ctx, "k1", []byte("data"), 0)
	_ = store.Delete(ctx, "k1")

	_, err := store.Get(ctx, "k1")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestInMemoryStore_TTLExpiry(t *testing.T) {
	store := NewInMemoryStore()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	_ = store.Set(ctx, "k1", []byte("data"), time.Hour)

	now = now.Add(59 * time.Minute)
	_, err := store.Get(ctx, "k1")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = store.Get(ctx, "k1")
	assert.ErrorIs(t, err, ErrMiss)
	assert.Zero(t, store.Len(), "expired entry is evicted on read")
}

func TestInMemoryStore_CopiesValue(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	buf := []byte("abc")
	_ = store.Set(ctx, "k1", buf, 0)
	buf[0] = 'x'

	val, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(val))
}

func TestSiteConfigProjection_RoundTrip(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	p := SiteConfigProjection{
		Game: "arena",
		Config: domain.SiteConfiguration{
			ArenaDiscountLabelText:      "Free weekend",
			ArenaDiscountLabelIsEnabled: true,
			ETSMaxProfileLevel:          15,
		},
	}

	err := UpdateSiteConfig(ctx, store, p, time.Hour)
	require.NoError(t, err)

	got, err := GetSiteConfig(ctx, store, "arena")
	require.NoError(t, err)
	assert.Equal(t, "Free weekend", got.Config.ArenaDiscountLabelText)
	assert.Equal(t, 15, got.Config.ETSMaxProfileLevel)
	assert.False(t, got.FetchedAt.IsZero())

	_, err = GetSiteConfig(ctx, store, "eft")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestSiteConfigProjection_Invalidate(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	_ = UpdateSiteConfig(ctx, store, SiteConfigProjection{Game: "eft"}, time.Hour)
	_ = InvalidateSiteConfig(ctx, store, "eft")

	_, err := GetSiteConfig(ctx, store, "eft")
	assert.ErrorIs(t, err, ErrMiss)
}
