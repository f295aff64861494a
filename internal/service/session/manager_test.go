package session

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listingseo/internal/adapter/storage"
	"listingseo/internal/domain/listing"
)

func sampleReport() *listing.Report {
	return &listing.Report{
		SEOScore: 85,
		Summary:  "summary",
		Tags:     []string{"Bullet Points", "Keyword Research", "Title Optimization", "Competitor Analysis"},
		KeywordAnalysis: listing.KeywordAnalysis{
			Keywords: []listing.Keyword{
				{Term: "non-stick", SearchVolume: 12600, Relevance: 8, Usage: listing.MultiUsage(listing.LocationTitle, listing.LocationBullets)},
			},
		},
		BackendTermsOptimization: &listing.BackendTermsOptimization{OptimizedTerms: "steel pan"},
	}
}

func TestManager_SaveLoadClear(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore(0)
	defer store.Close()
	m := NewManager(store, ManagerConfig{TTL: time.Hour})

	sid := NewSessionID()
	input := listing.Input{Title: "Pan", Category: "Kitchen", BulletPoints: "a", Description: "d", SearchTerms: "steel"}

	require.NoError(t, m.Save(ctx, sid, input, sampleReport()))

	raw, err := store.Get(ctx, sid+":"+ResultsKey)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"seoScore":85`)

	got, err := m.Load(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, input, got.Input)
	assert.Equal(t, *sampleReport(), got.Report)

	require.NoError(t, m.Clear(ctx, sid))
	_, err = m.Load(ctx, sid)
	assert.ErrorIs(t, err, ErrResultNotFound)
}

func TestManager_MissingEitherKey(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore(0)
	defer store.Close()
	m := NewManager(store, ManagerConfig{TTL: time.Hour})

	sid := NewSessionID()
	require.NoError(t, m.Save(ctx, sid, listing.Input{Title: "t"}, sampleReport()))
	require.NoError(t, store.Delete(ctx, sid+":"+OriginalKey))

	_, err := m.Load(ctx, sid)
	assert.ErrorIs(t, err, ErrResultNotFound)
}

func TestManager_CorruptValue(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore(0)
	defer store.Close()
	m := NewManager(store, ManagerConfig{TTL: time.Hour})

	sid := NewSessionID()
	require.NoError(t, m.Save(ctx, sid, listing.Input{Title: "t"}, sampleReport()))
	require.NoError(t, store.Set(ctx, sid+":"+ResultsKey, []byte("{not json"), time.Hour))

	_, err := m.Load(ctx, sid)
	assert.ErrorIs(t, err, ErrResultCorrupt)
}

type failingStore struct {
	listing.ResultStore
}

func (failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection reset")
}

func TestManager_StoreFailureIsNotMissing(t *testing.T) {
	m := NewManager(failingStore{}, ManagerConfig{})

	_, err := m.Load(context.Background(), NewSessionID())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrResultNotFound)
	assert.NotErrorIs(t, err, ErrResultCorrupt)
}

// inputWriteFailingStore rejects writes of the original input key
type inputWriteFailingStore struct {
	*storage.MemoryStore
}

func (s inputWriteFailingStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if strings.HasSuffix(key, ":"+OriginalKey) {
		return errors.New("connection reset")
	}
	return s.MemoryStore.Set(ctx, key, value, ttl)
}

func TestManager_PartialSaveLeavesNoMismatchedPair(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemoryStore(0)
	defer mem.Close()

	sid := NewSessionID()
	first := listing.Input{Title: "Pan", Category: "Kitchen", BulletPoints: "a", Description: "d"}
	require.NoError(t, NewManager(mem, ManagerConfig{TTL: time.Hour}).Save(ctx, sid, first, &listing.Report{SEOScore: 70}))

	m := NewManager(inputWriteFailingStore{mem}, ManagerConfig{TTL: time.Hour})
	second := first
	second.SearchTerms = "steel"
	err := m.Save(ctx, sid, second, sampleReport())
	require.Error(t, err)

	_, err = m.Load(ctx, sid)
	assert.ErrorIs(t, err, ErrResultNotFound)
	assert.Zero(t, mem.Len())
}

func TestValidSessionID(t *testing.T) {
	assert.True(t, ValidSessionID(NewSessionID()))
	assert.False(t, ValidSessionID("../../etc"))
	assert.False(t, ValidSessionID(""))
}
