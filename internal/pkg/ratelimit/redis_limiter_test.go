package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisLimiterValidatesArguments(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { client.Close() })

	_, err := NewRedisLimiter(client, 0, time.Minute)
	assert.Error(t, err)

	_, err = NewRedisLimiter(client, 5, 0)
	assert.Error(t, err)

	l, err := NewRedisLimiter(client, 5, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(5), l.limit)
}

func TestAllowReportsUnreachableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })

	l, err := NewRedisLimiter(client, 3, time.Minute)
	require.NoError(t, err)

	allowed, err := l.Allow(context.Background(), "login:/api/student/login:10.0.0.1")
	assert.Error(t, err)
	assert.False(t, allowed)
}

func TestNewClientFailsWithoutServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, err := NewClient(ctx, "127.0.0.1:1", "", 0)
	assert.Error(t, err)
}
