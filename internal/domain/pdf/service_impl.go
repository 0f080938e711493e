package pdf

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"presentation-service-go/internal/domain/presentation"
	"presentation-service-go/internal/metrics"
	"presentation-service-go/internal/pkg/logger"
	"presentation-service-go/internal/pkg/storage"
	"presentation-service-go/internal/pkg/tracing"
)

// Options параметры фоновой сборки
type Options struct {
	// Workers сколько презентаций собирается одновременно
	Workers int64
	// Timeout ограничивает одну сборку вместе с доставкой
	Timeout time.Duration
}

type ServiceImpl struct {
	registry  *Registry
	assembler *Assembler
	storage   storage.Storage
	sender    Sender
	tracker   GenerationTracker
	sem       *semaphore.Weighted
	timeout   time.Duration
	wg        sync.WaitGroup
	logger    *zap.Logger
}

var _ Service = (*ServiceImpl)(nil)

// NewService создает сервис. sender и tracker могут быть nil
func NewService(registry *Registry, assembler *Assembler, store storage.Storage, sender Sender, tracker GenerationTracker, opts Options) *ServiceImpl {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Minute
	}
	return &ServiceImpl{
		registry:  registry,
		assembler: assembler,
		storage:   store,
		sender:    sender,
		tracker:   tracker,
		sem:       semaphore.NewWeighted(opts.Workers),
		timeout:   opts.Timeout,
		logger:    logger.Component("presentation_service"),
	}
}

func (s *ServiceImpl) Templates(dataType presentation.DataType) TemplatesResponse {
	return TemplatesResponse{DataType: dataType, Templates: s.registry.ForDataType(dataType)}
}

func (s *ServiceImpl) Blocks(req *presentation.Request) (BlocksResponse, error) {
	tmpl, err := s.registry.Lookup(req.TemplateID)
	if err != nil {
		return BlocksResponse{}, err
	}
	if tmpl.Generator == nil || tmpl.Validator == nil {
		return BlocksResponse{Blocks: []presentation.BlockDescriptor{}}, nil
	}

	blocks := tmpl.Generator.Generate(req)
	result := tmpl.Validator.Validate(blocks, req)
	return BlocksResponse{Blocks: result.BlocksWithErrors}, nil
}

// validate возвращает шаблон, если запрошенные блоки можно собрать
func (s *ServiceImpl) validate(req *presentation.Request) (Template, error) {
	tmpl, err := s.registry.Lookup(req.TemplateID)
	if err != nil {
		return Template{}, err
	}
	if tmpl.Validator != nil {
		result := tmpl.Validator.Validate(req.Blocks, req)
		if result.Failure {
			rejected := result.Rejected()
			for _, b := range rejected {
				metrics.ValidationFailuresTotal.WithLabelValues(string(b.BlockID)).Inc()
			}
			return Template{}, &ValidationError{Blocks: rejected}
		}
	}
	if !tmpl.Buildable() {
		return Template{}, fmt.Errorf("%w: %q", ErrTemplateNotSupported, tmpl.ID)
	}
	return tmpl, nil
}

func (s *ServiceImpl) Create(ctx context.Context, req *presentation.Request) error {
	tmpl, err := s.validate(req)
	if err != nil {
		return err
	}

	log := s.logger.With(
		zap.String("presentation_id", req.PresentationID),
		zap.String("template", tmpl.ID),
		zap.Int("blocks", len(req.Blocks)),
	)
	log.Info("Presentation accepted")

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.generate(tracing.Detach(ctx), tmpl.ID, req, log)
	}()
	return nil
}

func (s *ServiceImpl) generate(ctx context.Context, templateID string, req *presentation.Request, log *zap.Logger) {
	metrics.GenerationsInFlight.Inc()
	defer metrics.GenerationsInFlight.Dec()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.sem.Acquire(ctx, 1); err != nil {
		log.Error("Generation slot was not acquired", zap.Error(err))
		metrics.PresentationsTotal.WithLabelValues(templateID, FormatPDF, "error").Inc()
		return
	}
	defer s.sem.Release(1)

	ctx, span := tracing.StartSpan(ctx, "Presentation.Generate")
	defer span.End()

	start := time.Now()
	doc, err := s.assembler.Assemble(ctx, templateID, req.Blocks, req)
	duration := time.Since(start)

	metrics.PresentationDuration.WithLabelValues(templateID, FormatPDF).Observe(duration.Seconds())
	if s.tracker != nil {
		s.tracker.TrackGeneration(templateID, FormatPDF, duration, err != nil)
	}
	if err != nil {
		tracing.RecordError(ctx, err)
		metrics.PresentationsTotal.WithLabelValues(templateID, FormatPDF, "error").Inc()
		log.Error("Presentation generation failed", zap.Error(err), zap.Duration("duration", duration))
		return
	}

	metrics.PresentationsTotal.WithLabelValues(templateID, doc.Format, "success").Inc()
	metrics.FileSize.WithLabelValues(doc.Format).Observe(float64(len(doc.Content)))
	if s.tracker != nil {
		s.tracker.TrackFile(doc.Format, int64(len(doc.Content)))
	}

	log = log.With(zap.String("file_id", doc.ID))
	log.Info("Presentation generated",
		zap.Duration("duration", duration),
		zap.Int("pages", doc.Pages),
		zap.Float64("size_mb", float64(len(doc.Content))/1024/1024),
	)

	saved := true
	if err := s.storage.Save(ctx, doc.FileKey(), doc.Content); err != nil {
		saved = false
		log.Error("Failed to store presentation", zap.Error(err))
	}
	s.deliver(ctx, req.PresentationID, doc, saved, log)
}

// deliver отправляет файл принимающему сервису. После успешной доставки файл удаляется,
// при ошибке остается для однократного скачивания до очистки хранилища
func (s *ServiceImpl) deliver(ctx context.Context, presentationID string, doc *Document, saved bool, log *zap.Logger) {
	if s.sender == nil {
		log.Info("Callback is not configured, file kept for download")
		return
	}
	if err := s.sender.Send(ctx, presentationID, doc.Content); err != nil {
		log.Warn("Presentation was not delivered", zap.Error(err))
		return
	}
	if !saved {
		return
	}
	if err := s.storage.Delete(ctx, doc.FileKey()); err != nil && !errors.Is(err, storage.ErrFileNotFound) {
		log.Warn("Failed to remove delivered file", zap.Error(err))
	}
}

func (s *ServiceImpl) Preview(ctx context.Context, req *presentation.Request) (*Document, error) {
	tmpl, err := s.validate(req)
	if err != nil {
		return nil, err
	}
	return s.assembler.Preview(ctx, tmpl.ID, req.Blocks, req)
}

// fileKey проверяет, что id файла является UUID
func fileKey(fileID string) (string, error) {
	id, err := uuid.Parse(fileID)
	if err != nil {
		return "", fmt.Errorf("%w: %q", storage.ErrInvalidKey, fileID)
	}
	return storage.FileKey(id.String(), FormatPDF), nil
}

func (s *ServiceImpl) File(ctx context.Context, fileID string) ([]byte, error) {
	key, err := fileKey(fileID)
	if err != nil {
		return nil, err
	}
	return s.storage.Get(ctx, key)
}

func (s *ServiceImpl) DeleteFile(ctx context.Context, fileID string) error {
	key, err := fileKey(fileID)
	if err != nil {
		return err
	}
	return s.storage.Delete(ctx, key)
}

func (s *ServiceImpl) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("generations still running: %w", ctx.Err())
	}
}
