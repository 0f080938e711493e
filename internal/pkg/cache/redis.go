package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"presentation-service-go/internal/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

// RedisConfig параметры подключения к Redis
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
	TTL       time.Duration
}

// Redis кэш, разделяемый между репликами сервиса
type Redis struct {
	name   string
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ Store = (*Redis)(nil)

// NewRedis подключается к Redis и проверяет соединение
func NewRedis(ctx context.Context, name string, cfg RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return NewRedisWithClient(name, client, cfg.KeyPrefix, cfg.TTL), nil
}

// NewRedisWithClient оборачивает готовый клиент
func NewRedisWithClient(name string, client *redis.Client, prefix string, ttl time.Duration) *Redis {
	return &Redis{name: name, client: client, prefix: prefix, ttl: ttl}
}

func (r *Redis) key(key string) string {
	return r.prefix + key
}

// Get получает значение. Отсутствие ключа возвращается как ErrMiss
func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.CacheRequestsTotal.WithLabelValues(r.name, "miss").Inc()
		return nil, ErrMiss
	}
	if err != nil {
		metrics.CacheRequestsTotal.WithLabelValues(r.name, "error").Inc()
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	metrics.CacheRequestsTotal.WithLabelValues(r.name, "hit").Inc()
	return val, nil
}

// Set сохраняет значение с TTL кэша
func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete удаляет значение
func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

// Close закрывает соединение
func (r *Redis) Close() error {
	return r.client.Close()
}
