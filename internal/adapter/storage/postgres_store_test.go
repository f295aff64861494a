package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listingseo/internal/domain/listing"
)

// Runs against a real database when LISTINGSEO_TEST_DATABASE_URL is set
func TestPostgresStore_Integration(t *testing.T) {
	dsn := os.Getenv("LISTINGSEO_TEST_DATABASE_URL")
	if dsn == "" || testing.Short() {
		t.Skip("LISTINGSEO_TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.Connect(ctx, dsn)
	require.NoError(t, err)

	s := NewPostgresStore(pool)
	defer s.Close()
	require.NoError(t, s.EnsureSchema(ctx))

	key := "test:" + time.Now().Format(time.RFC3339Nano)
	require.NoError(t, s.Set(ctx, key, []byte("v1"), time.Minute))
	require.NoError(t, s.Set(ctx, key, []byte("v2"), time.Minute))

	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	s.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = s.Get(ctx, key)
	assert.ErrorIs(t, err, listing.ErrKeyNotFound)

	purged, err := s.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, purged, int64(1))

	require.NoError(t, s.Delete(ctx, key))
}
