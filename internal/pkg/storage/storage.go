// Package storage хранит готовые файлы презентаций до их отправки и однократной выдачи.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"presentation-service-go/internal/pkg/metrics"
)

// Типы хранилищ
const (
	TypeLocal = "local"
	TypeS3    = "s3"
)

var (
	// ErrFileNotFound файла с таким ключом нет
	ErrFileNotFound = errors.New("file not found")
	// ErrInvalidKey ключ пустой или выходит за пределы хранилища
	ErrInvalidKey = errors.New("invalid storage key")
)

// Storage хранилище результатов
type Storage interface {
	Save(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// Config настройки хранилища
type Config struct {
	Type string
	// Dir каталог локального хранилища
	Dir string
	S3  S3Config
}

// New создает хранилище указанного типа
func New(ctx context.Context, cfg Config) (Storage, error) {
	switch cfg.Type {
	case TypeLocal, "":
		return NewLocal(cfg.Dir)
	case TypeS3:
		return NewS3(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// FileKey ключ файла по идентификатору документа и формату
func FileKey(id, format string) string {
	return id + "." + format
}

// ValidateKey отклоняет пустые ключи и ключи с переходами по каталогам
func ValidateKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.HasPrefix(key, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

func track(backend, operation string, err error) {
	status := "success"
	switch {
	case errors.Is(err, ErrFileNotFound):
		status = "not_found"
	case err != nil:
		status = "error"
	}
	metrics.StorageOperationsTotal.WithLabelValues(backend, operation, status).Inc()
}
