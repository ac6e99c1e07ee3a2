package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"conduit-backend/internal/domains/tag"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	all     []string
	popular []tag.PopularTag
	calls   int
}

func (f *fakeRepository) ListAll(_ context.Context) ([]string, error) {
	return f.all, nil
}

func (f *fakeRepository) ListPopular(_ context.Context, limit int) ([]tag.PopularTag, error) {
	f.calls++
	if limit < len(f.popular) {
		return f.popular[:limit], nil
	}
	return f.popular, nil
}

// memoryCache is a map-backed cache.Cache for tests.
type memoryCache struct {
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memoryCache) Ping(_ context.Context) error                   { return nil }
func (m *memoryCache) Increment(_ context.Context, _ string) (int64, error) { return 0, nil }
func (m *memoryCache) Expire(_ context.Context, _ string, _ time.Duration) error { return nil }
func (m *memoryCache) TTL(_ context.Context, _ string) (time.Duration, error)    { return 0, nil }

func TestList_ReturnsAllTags(t *testing.T) {
	repo := &fakeRepository{all: []string{"databases", "go"}}
	svc := NewTagService(repo, nil)

	resp, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"databases", "go"}, resp.Tags)
}

func TestList_EmptyIsNotNil(t *testing.T) {
	svc := NewTagService(&fakeRepository{}, nil)

	resp, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, resp.Tags)
	assert.Empty(t, resp.Tags)
}

func TestPopular_CachesOnMiss(t *testing.T) {
	repo := &fakeRepository{popular: []tag.PopularTag{
		{Name: "go", ArticleCount: 12},
		{Name: "databases", ArticleCount: 4},
	}}
	cache := newMemoryCache()
	svc := NewTagService(repo, cache)

	resp, err := svc.Popular(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Tags, 2)
	assert.Equal(t, "go", resp.Tags[0].Name)
	assert.Equal(t, 1, repo.calls)

	// Second read is served from the cache.
	resp, err = svc.Popular(context.Background())
	require.NoError(t, err)
	require.Len(t, resp.Tags, 2)
	assert.Equal(t, 1, repo.calls)
}

func TestPopular_WorksWithoutCache(t *testing.T) {
	repo := &fakeRepository{popular: []tag.PopularTag{{Name: "go", ArticleCount: 1}}}
	svc := NewTagService(repo, nil)

	resp, err := svc.Popular(context.Background())
	require.NoError(t, err)
	assert.Len(t, resp.Tags, 1)
}

func TestRefreshPopular_RewritesCache(t *testing.T) {
	repo := &fakeRepository{popular: []tag.PopularTag{{Name: "go", ArticleCount: 3}}}
	cache := newMemoryCache()
	svc := NewTagService(repo, cache)

	require.NoError(t, svc.RefreshPopular(context.Background()))

	var cached []tag.PopularTag
	found, err := cache.Get(context.Background(), tag.PopularTagsCacheKey, &cached)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, repo.popular, cached)
}
