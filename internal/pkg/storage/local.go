package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"presentation-service-go/internal/pkg/logger"
	"presentation-service-go/internal/pkg/metrics"
)

// DefaultDir каталог результатов по умолчанию
const DefaultDir = "static/result"

// Local хранит файлы в каталоге на диске
type Local struct {
	dir         string
	mu          sync.Mutex
	files       map[string]time.Time
	currentSize int64
	logger      *zap.Logger
}

var _ Storage = (*Local)(nil)

// NewLocal создает хранилище, при необходимости создавая каталог
func NewLocal(dir string) (*Local, error) {
	if dir == "" {
		dir = DefaultDir
	}
	dir = filepath.Clean(dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &Local{
		dir:    dir,
		files:  make(map[string]time.Time),
		logger: logger.Component("storage").With(zap.String("backend", TypeLocal)),
	}, nil
}

// Dir возвращает каталог хранилища
func (l *Local) Dir() string {
	return l.dir
}

// Save записывает файл атомарно: через временный файл и переименование
func (l *Local) Save(_ context.Context, key string, data []byte) (err error) {
	defer func() { track(TypeLocal, "save", err) }()
	if err := ValidateKey(key); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(l.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(l.dir, key)); err != nil {
		return fmt.Errorf("failed to move file: %w", err)
	}

	l.mu.Lock()
	l.files[key] = time.Now()
	l.currentSize += int64(len(data))
	metrics.StorageSizeBytes.WithLabelValues(TypeLocal).Set(float64(l.currentSize))
	l.mu.Unlock()
	return nil
}

// Get читает файл целиком
func (l *Local) Get(_ context.Context, key string) (data []byte, err error) {
	defer func() { track(TypeLocal, "get", err) }()
	if err := ValidateKey(key); err != nil {
		return nil, err
	}

	data, err = os.ReadFile(filepath.Join(l.dir, key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// Delete удаляет файл. Отсутствующий файл возвращает ErrFileNotFound
func (l *Local) Delete(_ context.Context, key string) (err error) {
	defer func() { track(TypeLocal, "delete", err) }()
	if err := ValidateKey(key); err != nil {
		return err
	}
	return l.remove(key)
}

func (l *Local) remove(key string) error {
	full := filepath.Join(l.dir, key)
	info, statErr := os.Stat(full)
	err := os.Remove(full)

	l.mu.Lock()
	defer l.mu.Unlock()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		delete(l.files, key)
		return fmt.Errorf("%w: %s", ErrFileNotFound, key)
	case err != nil:
		return fmt.Errorf("failed to delete file: %w", err)
	}
	delete(l.files, key)
	if statErr == nil {
		l.currentSize = max(l.currentSize-info.Size(), 0)
	}
	metrics.StorageSizeBytes.WithLabelValues(TypeLocal).Set(float64(l.currentSize))
	return nil
}

// Cleanup удаляет файлы, сохраненные раньше чем maxAge назад и так и не выданные.
// Возвращает количество удаленных файлов
func (l *Local) Cleanup(_ context.Context, maxAge time.Duration) int {
	now := time.Now()
	l.mu.Lock()
	expired := make([]string, 0)
	for key, created := range l.files {
		if now.Sub(created) > maxAge {
			expired = append(expired, key)
		}
	}
	l.mu.Unlock()

	removed := 0
	for _, key := range expired {
		err := l.remove(key)
		track(TypeLocal, "cleanup", err)
		switch {
		case err == nil:
			removed++
		case !errors.Is(err, ErrFileNotFound):
			l.logger.Warn("Failed to remove expired file", zap.String("key", key), zap.Error(err))
		}
	}
	return removed
}

// RunCleanup периодически удаляет устаревшие файлы до отмены контекста
func (l *Local) RunCleanup(ctx context.Context, maxAge, period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := l.Cleanup(ctx, maxAge); n > 0 {
				l.logger.Info("Removed expired results", zap.Int("count", n))
			}
		}
	}
}
