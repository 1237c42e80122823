package utils

import (
	"context"
	"log"
	"time"

	"freelancehub/config"

	"github.com/go-redis/redis/v8"
	"github.com/patrickmn/go-cache"
)

// AuthCacheClient is the dedicated client for authorization caching.
var AuthCacheClient *redis.Client

// InitAuthCache initializes the Redis client for authorization caching.
func InitAuthCache() {
	AuthCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisAuthDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := AuthCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Auth Cache): %v", err)
	}
}

// GetAuthCacheClient returns the Redis client for authorization caching.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		InitAuthCache()
	}
	return AuthCacheClient
}

// AuthCache remembers which token hash is live for an account.
type AuthCache interface {
	Get(ctx context.Context, accountID string) (string, error)
	Set(ctx context.Context, accountID, tokenHash string, ttl time.Duration) error
	Delete(ctx context.Context, accountID string) error
}

// ErrCacheMiss is returned by AuthCache.Get when nothing is cached.
var ErrCacheMiss = redis.Nil

type redisAuthCache struct {
	client *redis.Client
}

// NewRedisAuthCache wraps a redis client as an AuthCache.
func NewRedisAuthCache(client *redis.Client) AuthCache {
	return &redisAuthCache{client: client}
}

func authKey(accountID string) string {
	return AuthCachePrefix + accountID
}

func (r *redisAuthCache) Get(ctx context.Context, accountID string) (string, error) {
	return r.client.Get(ctx, authKey(accountID)).Result()
}

func (r *redisAuthCache) Set(ctx context.Context, accountID, tokenHash string, ttl time.Duration) error {
	return r.client.Set(ctx, authKey(accountID), tokenHash, ttl).Err()
}

func (r *redisAuthCache) Delete(ctx context.Context, accountID string) error {
	return r.client.Del(ctx, authKey(accountID)).Err()
}

type localAuthCache struct {
	store *cache.Cache
}

// NewLocalAuthCache keeps token hashes in process memory. It backs single
// instance deployments that run without Redis.
func NewLocalAuthCache() AuthCache {
	return &localAuthCache{store: cache.New(AuthCacheTTL, AuthCacheTTL)}
}

func (l *localAuthCache) Get(_ context.Context, accountID string) (string, error) {
	v, ok := l.store.Get(authKey(accountID))
	if !ok {
		return "", ErrCacheMiss
	}
	return v.(string), nil
}

func (l *localAuthCache) Set(_ context.Context, accountID, tokenHash string, ttl time.Duration) error {
	l.store.Set(authKey(accountID), tokenHash, ttl)
	return nil
}

func (l *localAuthCache) Delete(_ context.Context, accountID string) error {
	l.store.Delete(authKey(accountID))
	return nil
}
