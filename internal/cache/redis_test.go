package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"member-chat-server/pkg/util"
)

func newTestCache(t *testing.T) *RedisCache {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCacheFromClient(client)
}

func TestTokenCache_MissThenHit(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()
	keyHash := util.HashTokenKey("0123456789abcdef0123456789abcdef01234567")

	// 未命中返回 0，不是错误
	id, err := c.GetTokenMember(ctx, keyHash)
	require.NoError(t, err)
	assert.Equal(t, int64(0), id)

	require.NoError(t, c.SetTokenMember(ctx, keyHash, 42))

	id, err = c.GetTokenMember(ctx, keyHash)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestTokenCache_KeysAreHashed(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	c := NewRedisCacheFromClient(client)

	rawKey := "0123456789abcdef0123456789abcdef01234567"
	require.NoError(t, c.SetTokenMember(context.Background(), util.HashTokenKey(rawKey), 7))

	// Redis 中不允许出现原始令牌
	for _, k := range mr.Keys() {
		assert.NotContains(t, k, rawKey)
	}
}
