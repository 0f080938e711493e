package pdf

import (
	"context"
	"time"

	"presentation-service-go/internal/domain/presentation"
)

// Service операции API презентаций
type Service interface {
	// Templates шаблоны, доступные для выборки
	Templates(dataType presentation.DataType) TemplatesResponse
	// Blocks генерирует и проверяет блоки шаблона
	Blocks(req *presentation.Request) (BlocksResponse, error)
	// Create проверяет запрошенные блоки и запускает сборку в фоне
	Create(ctx context.Context, req *presentation.Request) error
	// Preview собирает HTML-документ синхронно
	Preview(ctx context.Context, req *presentation.Request) (*Document, error)
	// File возвращает готовый PDF по id
	File(ctx context.Context, fileID string) ([]byte, error)
	// DeleteFile удаляет выданный файл
	DeleteFile(ctx context.Context, fileID string) error
	// Shutdown ждет завершения фоновых сборок
	Shutdown(ctx context.Context) error
}

// Sender доставляет готовый PDF принимающему сервису
type Sender interface {
	Send(ctx context.Context, presentationID string, pdf []byte) error
}

// GenerationTracker получает сведения о сборках и файлах
type GenerationTracker interface {
	TrackGeneration(template, format string, duration time.Duration, hasError bool)
	TrackFile(format string, size int64)
}
