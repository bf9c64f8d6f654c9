package cache_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/soldout/backend/internal/cache"
	"github.com/soldout/backend/testhelper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sharedStore stands in for redis: one instance is seen by every replica.
type sharedStore struct {
	mu   sync.Mutex
	data map[string]string
	Err  error
}

func newSharedStore() *sharedStore {
	return &sharedStore{data: map[string]string{}}
}

func (s *sharedStore) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.data[key] = string(value.([]byte))
	return nil
}

func (s *sharedStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return "", s.Err
	}
	v, ok := s.data[key]
	if !ok {
		return "", redis.Nil
	}
	return v, nil
}

func (s *sharedStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *sharedStore) Ping(context.Context) error { return nil }
func (s *sharedStore) Close() error                { return nil }

type entry struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func TestListCacheLocal(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewListCache(4, nil, testhelper.NewTestLogger(false))
	require.NoError(t, err)

	var got []entry
	assert.False(t, c.Get(ctx, "videos:approved", &got))

	c.Set(ctx, "videos:approved", []entry{{ID: 1, Title: "One"}}, time.Minute)
	require.True(t, c.Get(ctx, "videos:approved", &got))
	assert.Equal(t, []entry{{ID: 1, Title: "One"}}, got)

	c.Invalidate(ctx, "videos:approved")
	assert.False(t, c.Get(ctx, "videos:approved", &got))
}

func TestListCacheSharedAcrossReplicas(t *testing.T) {
	ctx := context.Background()
	store := newSharedStore()
	first, err := cache.NewListCache(4, store, testhelper.NewTestLogger(false))
	require.NoError(t, err)
	second, err := cache.NewListCache(4, store, testhelper.NewTestLogger(false))
	require.NoError(t, err)

	first.Set(ctx, "videos:trending", []entry{{ID: 7, Title: "Hit"}}, time.Minute)

	var got []entry
	require.True(t, second.Get(ctx, "videos:trending", &got))
	assert.Equal(t, int64(7), got[0].ID)

	second.Invalidate(ctx, "videos:trending", "videos:premium")
	assert.False(t, first.Get(ctx, "videos:trending", &got))
	assert.Empty(t, store.data)
}

func TestListCacheSharedFailureIsAMiss(t *testing.T) {
	ctx := context.Background()
	store := newSharedStore()
	log := testhelper.NewTestLogger(false)
	c, err := cache.NewListCache(4, store, log)
	require.NoError(t, err)

	c.Set(ctx, "videos:approved", []entry{{ID: 1}}, time.Minute)
	store.Err = errors.New("connection refused")

	var got []entry
	assert.False(t, c.Get(ctx, "videos:approved", &got))
	assert.Len(t, log.GetWarnMessages(), 1)
}
