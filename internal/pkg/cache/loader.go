package cache

import (
	"context"
	"errors"

	"presentation-service-go/internal/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// LoadFunc загружает значение при промахе кэша
type LoadFunc func(ctx context.Context) ([]byte, error)

// Loader объединяет кэш и загрузку: одновременные промахи по одному ключу выполняют одну загрузку
type Loader struct {
	store Store
	group singleflight.Group
}

// NewLoader создает Loader поверх хранилища
func NewLoader(store Store) *Loader {
	return &Loader{store: store}
}

// Get возвращает значение из кэша либо загружает и сохраняет его
func (l *Loader) Get(ctx context.Context, key string, load LoadFunc) ([]byte, error) {
	if data, err := l.store.Get(ctx, key); err == nil {
		return data, nil
	} else if !errors.Is(err, ErrMiss) {
		// недоступный кэш не должен ломать загрузку
		logger.Warn("cache lookup failed", zap.String("key", key), zap.Error(err))
	}

	v, err, _ := l.group.Do(key, func() (interface{}, error) {
		data, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if err := l.store.Set(ctx, key, data); err != nil {
			logger.Warn("cache store failed", zap.String("key", key), zap.Error(err))
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}
