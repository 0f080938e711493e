package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"presentation-service-go/internal/pkg/metrics"
	"presentation-service-go/internal/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
)

// ErrMiss возвращается, когда ключа нет в кэше или срок его жизни истек
var ErrMiss = errors.New("cache miss")

// Store хранилище байтовых значений с TTL
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type item struct {
	value      []byte
	expiration time.Time
}

// Cache кэш в памяти процесса с поддержкой TTL
type Cache struct {
	name  string
	items sync.Map
	ttl   time.Duration
	done  chan struct{}
	once  sync.Once
}

var _ Store = (*Cache)(nil)

// NewCache создает новый экземпляр кэша и запускает очистку устаревших элементов
func NewCache(name string, ttl time.Duration) *Cache {
	c := &Cache{
		name: name,
		ttl:  ttl,
		done: make(chan struct{}),
	}
	go c.startCleanupTimer()
	return c
}

// Set добавляет значение в кэш
func (c *Cache) Set(_ context.Context, key string, value []byte) error {
	if _, loaded := c.items.Swap(key, item{value: value, expiration: time.Now().Add(c.ttl)}); !loaded {
		metrics.CacheItemsCount.WithLabelValues(c.name).Inc()
	}
	return nil
}

// Get получает значение из кэша
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, span := tracing.StartSpan(ctx, "Cache.Get")
	defer span.End()

	span.SetAttributes(attribute.String("cache.name", c.name), attribute.String("cache.key", key))

	v, exists := c.items.Load(key)
	if !exists {
		metrics.CacheRequestsTotal.WithLabelValues(c.name, "miss").Inc()
		return nil, ErrMiss
	}

	it := v.(item)
	if time.Now().After(it.expiration) {
		c.remove(key)
		metrics.CacheRequestsTotal.WithLabelValues(c.name, "expired").Inc()
		return nil, ErrMiss
	}

	metrics.CacheRequestsTotal.WithLabelValues(c.name, "hit").Inc()
	tracing.AddEvent(ctx, "cache hit")
	return it.value, nil
}

// Delete удаляет значение из кэша
func (c *Cache) Delete(_ context.Context, key string) error {
	c.remove(key)
	return nil
}

// Len возвращает количество элементов, включая еще не вычищенные устаревшие
func (c *Cache) Len() int {
	n := 0
	c.items.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Close останавливает фоновую очистку
func (c *Cache) Close() error {
	c.once.Do(func() { close(c.done) })
	return nil
}

func (c *Cache) remove(key string) {
	if _, loaded := c.items.LoadAndDelete(key); loaded {
		metrics.CacheItemsCount.WithLabelValues(c.name).Dec()
	}
}

func (c *Cache) startCleanupTimer() {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			now := time.Now()
			c.items.Range(func(key, value any) bool {
				if now.After(value.(item).expiration) {
					c.remove(key.(string))
				}
				return true
			})
		}
	}
}
