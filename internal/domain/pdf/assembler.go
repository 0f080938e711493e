package pdf

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"presentation-service-go/internal/domain/presentation"
	"presentation-service-go/internal/pkg/assets"
	"presentation-service-go/internal/pkg/gotenberg"
	"presentation-service-go/internal/pkg/htmlblocks"
	"presentation-service-go/internal/pkg/layout"
	"presentation-service-go/internal/pkg/logger"
	"presentation-service-go/internal/pkg/media"
	"presentation-service-go/internal/pkg/metrics"
	"presentation-service-go/internal/pkg/tracing"
)

// Способ отрисовки блоков
const (
	RendererLayout = "pdf"
	RendererHTML   = "html"
)

// ImageSource выдает подготовленные фотографии и карты
type ImageSource interface {
	Image(ctx context.Context, url string, greyscale bool) (media.Image, error)
	StaticMap(ctx context.Context, lat, lng float64, zoom int) (media.Image, error)
}

// PDFBuilder строит блоки, рисующие себя на холсте
type PDFBuilder interface {
	InfoBlock(d presentation.BlockDescriptor) (layout.Block, bool)
}

// HTMLBuilder строит блоки-фрагменты разметки и оборачивает их в документ
type HTMLBuilder interface {
	InfoBlock(d presentation.BlockDescriptor) (htmlblocks.Block, bool)
	Document(blocks []string) (string, error)
}

// PDFBuilderFunc создает PDF-построитель поверх данных одного запроса
type PDFBuilderFunc func(repo *presentation.Repository, res Resources) PDFBuilder

// HTMLBuilderFunc создает HTML-построитель поверх данных одного запроса
type HTMLBuilderFunc func(repo *presentation.Repository, res Resources) HTMLBuilder

// Resources общие для всех запросов зависимости построителей
type Resources struct {
	Images    ImageSource
	Assets    *assets.Library
	Templates *htmlblocks.Templates
	Icons     *htmlblocks.InlineIcons
	// MediaBase адрес медиасервиса, от которого строятся ссылки на фото
	MediaBase string
	// AssetBase адрес сервиса для статических ресурсов HTML
	AssetBase string
}

func offerPDFBuilder(repo *presentation.Repository, res Resources) PDFBuilder {
	return layout.NewBuilder(repo, res.Images, res.Assets)
}

func offerHTMLBuilder(repo *presentation.Repository, res Resources) HTMLBuilder {
	return htmlblocks.NewBuilder(repo, res.Images, res.Templates, res.Icons, res.AssetBase)
}

// Assembler собирает документ из блоков в порядке их следования
type Assembler struct {
	registry  *Registry
	res       Resources
	icons     *layout.IconRasterizer
	converter gotenberg.Converter
	renderer  string
	logger    *zap.Logger
}

// NewAssembler создает сборщик. converter нужен только для renderer html
func NewAssembler(registry *Registry, res Resources, converter gotenberg.Converter, renderer string) (*Assembler, error) {
	switch renderer {
	case RendererLayout:
	case RendererHTML:
		if converter == nil {
			return nil, fmt.Errorf("html renderer requires a converter")
		}
	default:
		return nil, fmt.Errorf("unknown renderer: %s", renderer)
	}
	if res.Assets == nil {
		res.Assets = assets.New("")
	}
	if res.Templates == nil {
		res.Templates = htmlblocks.NewTemplates()
	}
	if res.Icons == nil {
		res.Icons = htmlblocks.NewInlineIcons(res.Assets)
	}

	return &Assembler{
		registry:  registry,
		res:       res,
		icons:     layout.NewIconRasterizer(res.Assets),
		converter: converter,
		renderer:  renderer,
		logger:    logger.Component("assembler"),
	}, nil
}

// Assemble собирает PDF выбранным способом. Ошибки отдельных блоков не прерывают сборку
func (a *Assembler) Assemble(ctx context.Context, templateID string, blocks []presentation.BlockDescriptor, req *presentation.Request) (*Document, error) {
	tmpl, err := a.registry.Buildable(templateID)
	if err != nil {
		return nil, err
	}

	ctx, span := tracing.StartSpan(ctx, "Assembler.Assemble")
	defer span.End()
	span.SetAttributes(
		attribute.String("template.id", templateID),
		attribute.String("renderer", a.renderer),
		attribute.Int("blocks.count", len(blocks)),
	)

	repo := presentation.NewRepository(req, a.res.MediaBase)
	var doc *Document
	if a.renderer == RendererHTML {
		doc, err = a.viaHTML(ctx, tmpl, repo, blocks)
	} else {
		doc, err = a.layout(ctx, tmpl, repo, blocks)
	}
	if err != nil {
		tracing.RecordError(ctx, err)
		return nil, err
	}
	span.SetAttributes(attribute.String("document.id", doc.ID), attribute.Int("document.size", len(doc.Content)))
	return doc, nil
}

// Preview собирает HTML-документ без конвертации
func (a *Assembler) Preview(ctx context.Context, templateID string, blocks []presentation.BlockDescriptor, req *presentation.Request) (*Document, error) {
	tmpl, err := a.registry.Buildable(templateID)
	if err != nil {
		return nil, err
	}
	html, err := a.html(ctx, tmpl, presentation.NewRepository(req, a.res.MediaBase), blocks)
	if err != nil {
		return nil, err
	}
	return &Document{ID: uuid.NewString(), Format: FormatHTML, Content: []byte(html)}, nil
}

func (a *Assembler) layout(ctx context.Context, tmpl Template, repo *presentation.Repository, blocks []presentation.BlockDescriptor) (*Document, error) {
	builder := tmpl.PDFBuilder(repo, a.res)
	canvas := layout.NewDocument(a.res.Assets, a.icons)

	for _, d := range blocks {
		block, ok := builder.InfoBlock(d)
		if !ok {
			a.logger.Debug("Block skipped", zap.String("block", string(d.BlockID)), zap.String("realty_id", d.RealtyID))
			continue
		}

		start := time.Now()
		err := block.Render(ctx, canvas)
		metrics.BlockRenderDuration.WithLabelValues(string(d.BlockID), RendererLayout).Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.BlockRenderErrorsTotal.WithLabelValues(string(d.BlockID), RendererLayout).Inc()
			a.logger.Error("Failed to render block",
				zap.String("block", string(d.BlockID)),
				zap.String("realty_id", d.RealtyID),
				zap.Error(err),
			)
		}
	}

	if canvas.PageCount() == 0 {
		return nil, ErrEmptyDocument
	}
	content, err := canvas.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to finalize document: %w", err)
	}
	return &Document{ID: uuid.NewString(), Format: FormatPDF, Content: content, Pages: canvas.PageCount()}, nil
}

func (a *Assembler) html(ctx context.Context, tmpl Template, repo *presentation.Repository, blocks []presentation.BlockDescriptor) (string, error) {
	builder := tmpl.HTMLBuilder(repo, a.res)

	parts := make([]string, 0, len(blocks))
	for _, d := range blocks {
		block, ok := builder.InfoBlock(d)
		if !ok {
			a.logger.Debug("Block skipped", zap.String("block", string(d.BlockID)), zap.String("realty_id", d.RealtyID))
			continue
		}

		start := time.Now()
		html := block.HTML(ctx)
		metrics.BlockRenderDuration.WithLabelValues(string(d.BlockID), RendererHTML).Observe(time.Since(start).Seconds())
		if html == "" {
			continue
		}
		parts = append(parts, html)
	}

	if len(parts) == 0 {
		return "", ErrEmptyDocument
	}
	doc, err := builder.Document(parts)
	if err != nil {
		return "", fmt.Errorf("failed to wrap document: %w", err)
	}
	return doc, nil
}

func (a *Assembler) viaHTML(ctx context.Context, tmpl Template, repo *presentation.Repository, blocks []presentation.BlockDescriptor) (*Document, error) {
	html, err := a.html(ctx, tmpl, repo, blocks)
	if err != nil {
		return nil, err
	}
	content, err := a.converter.ConvertHTML(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("failed to convert to PDF: %w", err)
	}
	return &Document{ID: uuid.NewString(), Format: FormatPDF, Content: content}, nil
}
