package database

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/piresc/angkut/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*RedisClient, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	return &RedisClient{Client: redis.NewClient(&redis.Options{Addr: mr.Addr()})}, mr
}

func TestNewRedisClient_ConnectionError(t *testing.T) {
	client, err := NewRedisClient(models.RedisConfig{Host: "127.0.0.1", Port: 1})

	assert.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestRedisClient_JSON(t *testing.T) {
	client, mr := newTestRedis(t)
	ctx := context.Background()

	in := models.GeocodeResult{
		Coordinates:       models.Coordinates{Latitude: -6.2, Longitude: 106.8},
		NormalizedAddress: "jl. sudirman, jakarta",
	}
	require.NoError(t, client.SetJSON(ctx, "geocode:jl. sudirman", in, time.Minute))

	var out models.GeocodeResult
	found, err := client.GetJSON(ctx, "geocode:jl. sudirman", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)

	mr.FastForward(2 * time.Minute)
	found, err = client.GetJSON(ctx, "geocode:jl. sudirman", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisClient_GetJSON_Corrupt(t *testing.T) {
	client, mr := newTestRedis(t)
	require.NoError(t, mr.Set("geocode:bad", "{not json"))

	var out models.GeocodeResult
	found, err := client.GetJSON(context.Background(), "geocode:bad", &out)
	assert.False(t, found)
	assert.ErrorContains(t, err, "corrupt value")
}

func TestRedisClient_SetNXAndRelease(t *testing.T) {
	client, mr := newTestRedis(t)
	ctx := context.Background()

	ok, err := client.SetNX(ctx, "lock:booking:1", "token-a", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.SetNX(ctx, "lock:booking:1", "token-b", time.Second)
	require.NoError(t, err)
	assert.False(t, ok)

	released, err := client.ReleaseIfOwner(ctx, "lock:booking:1", "token-b")
	require.NoError(t, err)
	assert.False(t, released)
	assert.True(t, mr.Exists("lock:booking:1"))

	released, err = client.ReleaseIfOwner(ctx, "lock:booking:1", "token-a")
	require.NoError(t, err)
	assert.True(t, released)
	assert.False(t, mr.Exists("lock:booking:1"))

	assert.NoError(t, client.Ping(ctx))
}
