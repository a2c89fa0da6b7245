package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTestRedis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
}

type payload struct {
	Name string `json:"name"`
}

func TestAside_FillsAndServesFromCache(t *testing.T) {
	withTestRedis(t)
	ctx := context.Background()

	loads := 0
	load := func(dest *payload) func() error {
		return func() error {
			loads++
			dest.Name = "from store"
			return nil
		}
	}

	var got payload
	require.NoError(t, Aside(ctx, "k1", &got, UserTTL, load(&got)))
	assert.Equal(t, "from store", got.Name)
	assert.Equal(t, 1, loads)

	var again payload
	require.NoError(t, Aside(ctx, "k1", &again, UserTTL, load(&again)))
	assert.Equal(t, "from store", again.Name)
	assert.Equal(t, 1, loads, "second read must come from cache")
}

func TestAside_LoaderErrorPropagates(t *testing.T) {
	withTestRedis(t)

	var got payload
	err := Aside(context.Background(), "k1", &got, UserTTL, func() error {
		return errors.New("store down")
	})
	assert.Error(t, err)
}

func TestInvalidate_DropsKey(t *testing.T) {
	withTestRedis(t)
	ctx := context.Background()

	loads := 0
	load := func(dest *payload) func() error {
		return func() error {
			loads++
			dest.Name = "v"
			return nil
		}
	}

	var got payload
	require.NoError(t, Aside(ctx, PostsListKey(), &got, ListTTL, load(&got)))
	Invalidate(ctx, PostsListKey())

	var again payload
	require.NoError(t, Aside(ctx, PostsListKey(), &again, ListTTL, load(&again)))
	assert.Equal(t, 2, loads)
}

func TestAside_NoRedisIsPassThrough(t *testing.T) {
	SetClient(nil)

	loads := 0
	var got payload
	for i := 0; i < 2; i++ {
		require.NoError(t, Aside(context.Background(), "k1", &got, UserTTL, func() error {
			loads++
			got.Name = "direct"
			return nil
		}))
	}
	assert.Equal(t, 2, loads)
}
