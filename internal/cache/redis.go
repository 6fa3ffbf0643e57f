// Package cache 提供 Redis 缓存操作的封装
// 用于加速令牌认证：缓存令牌哈希到成员ID的映射
package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"member-chat-server/internal/config"
)

// tokenCacheTTL 令牌缓存条目的过期时间
// 令牌本身永不过期，这里的 TTL 只是为了限制缓存占用；
// 过期后下一次认证会回源数据库并重新写入
const tokenCacheTTL = time.Hour

// RedisCache 封装 Redis 客户端，提供业务相关的缓存操作
type RedisCache struct {
	client *redis.Client // Redis 客户端实例
}

// NewRedisCache 创建 RedisCache 实例
// 参数:
//   - cfg: 应用配置（包含 Redis 连接信息）
//
// 返回:
//   - *RedisCache: 缓存实例
//   - error: 连接错误
func NewRedisCache(cfg *config.Config) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Username: cfg.Redis.Username, // 阿里云 Redis 需要用户名
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{client: client}, nil
}

// NewRedisCacheFromClient 用已有客户端构建 RedisCache
// 测试中配合 miniredis 使用
func NewRedisCacheFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Close 关闭 Redis 连接
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// tokenKey 生成令牌缓存的 Redis Key
// 存入的是令牌的 SHA256 哈希，不是原始令牌
func tokenKey(keyHash string) string {
	return "auth:token:" + keyHash
}

// GetTokenMember 查询令牌缓存
// 参数:
//   - ctx: 上下文
//   - keyHash: 令牌字符串的 SHA256 哈希
//
// 返回:
//   - int64: 成员ID，缓存未命中返回 0
//   - error: Redis 操作错误
func (c *RedisCache) GetTokenMember(ctx context.Context, keyHash string) (int64, error) {
	val, err := c.client.Get(ctx, tokenKey(keyHash)).Result()
	if err == redis.Nil {
		return 0, nil // 未命中不是错误
	}
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// SetTokenMember 写入令牌缓存
// 令牌从不轮换或吊销，所以不需要失效逻辑，TTL 只限制占用
// 参数:
//   - ctx: 上下文
//   - keyHash: 令牌字符串的 SHA256 哈希
//   - memberID: 成员ID
//
// 返回:
//   - error: Redis 操作错误
func (c *RedisCache) SetTokenMember(ctx context.Context, keyHash string, memberID int64) error {
	return c.client.Set(ctx, tokenKey(keyHash), strconv.FormatInt(memberID, 10), tokenCacheTTL).Err()
}
