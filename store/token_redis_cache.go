package store

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pawanbishnoiii/bnoy-rooms-sub000/domain"
)

// One-time verification and password-recovery tokens, expiring on their own.
type TokenRedisCache struct {
	client *redis.Client
	tracer trace.Tracer
}

func NewTokenRedisCache(client *redis.Client, tracer trace.Tracer) domain.TokenCache {
	return &TokenRedisCache{
		client: client,
		tracer: tracer,
	}
}

func (cache *TokenRedisCache) PostCacheData(ctx context.Context, key string, value string) error {
	ctx, span := cache.tracer.Start(ctx, "TokenCache.PostCacheData")
	defer span.End()

	result := cache.client.Set(key, value, 10*time.Minute)
	if result.Err() != nil {
		span.SetStatus(codes.Error, "Error posting cached value")
		log.Printf("redis set error: %s", result.Err())
		return result.Err()
	}
	return nil
}

func (cache *TokenRedisCache) GetCachedValue(ctx context.Context, key string) (string, error) {
	ctx, span := cache.tracer.Start(ctx, "TokenCache.GetCachedValue")
	defer span.End()

	token, err := cache.client.Get(key).Result()
	if err != nil {
		span.SetStatus(codes.Error, "Error getting cached value")
		log.Println(err)
		return "", err
	}
	return token, nil
}

func (cache *TokenRedisCache) DelCachedValue(ctx context.Context, key string) error {
	ctx, span := cache.tracer.Start(ctx, "TokenCache.DelCachedValue")
	defer span.End()

	result := cache.client.Del(key)
	if result.Err() != nil {
		span.SetStatus(codes.Error, "Error deleting cached value")
		log.Println(result.Err())
		return result.Err()
	}
	return nil
}
