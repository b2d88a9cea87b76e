package cache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"denta/infras/otel/mocks"
	"denta/shared/cache"
)

func newTestCache(t *testing.T) cache.RedisCache {
	t.Helper()

	server := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { client.Close() })

	return cache.NewRedisCache(client, mocks.NewOtel())
}

func TestRedisCache_SaveAndGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	err := c.Save(ctx, "test:key", payload{Name: "braces", Count: 3}, 60)
	assert.NoError(t, err)

	var got payload
	err = c.Get(ctx, "test:key", &got)

	assert.NoError(t, err)
	assert.Equal(t, "braces", got.Name)
	assert.Equal(t, 3, got.Count)
}

func TestRedisCache_SaveAndGetString(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	err := c.Save(ctx, "test:string", "plain value", 60)
	assert.NoError(t, err)

	var got string
	err = c.Get(ctx, "test:string", &got)

	assert.NoError(t, err)
	assert.Equal(t, "plain value", got)
}

func TestRedisCache_GetMiss(t *testing.T) {
	c := newTestCache(t)

	var got string
	err := c.Get(context.Background(), "test:absent", &got)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, cache.Nil))
}

func TestRedisCache_Delete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	assert.NoError(t, c.Save(ctx, "test:key", "value", 60))
	assert.NoError(t, c.Delete(ctx, "test:key"))

	var got string
	err := c.Get(ctx, "test:key", &got)

	assert.True(t, errors.Is(err, cache.Nil))
}

func TestRedisCache_Clear(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	assert.NoError(t, c.Save(ctx, "treatment:gets:a", "a", 60))
	assert.NoError(t, c.Save(ctx, "treatment:gets:b", "b", 60))
	assert.NoError(t, c.Save(ctx, "booking:gets:c", "c", 60))

	assert.NoError(t, c.Clear(ctx, "treatment:gets*"))

	var got string
	assert.True(t, errors.Is(c.Get(ctx, "treatment:gets:a", &got), cache.Nil))
	assert.True(t, errors.Is(c.Get(ctx, "treatment:gets:b", &got), cache.Nil))
	assert.NoError(t, c.Get(ctx, "booking:gets:c", &got))
}
