// Package htmlblocks собирает HTML-представление инфоблоков презентации.
// Изображения встраиваются как data:-адреса, статические ресурсы ссылаются на базовый адрес сервиса.
package htmlblocks

import (
	"context"
	"encoding/base64"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"go.uber.org/zap"

	"presentation-service-go/internal/domain/presentation"
	"presentation-service-go/internal/pkg/logger"
	"presentation-service-go/internal/pkg/media"
)

// ImageSource выдает подготовленные изображения для блоков
type ImageSource interface {
	Image(ctx context.Context, url string, greyscale bool) (media.Image, error)
	StaticMap(ctx context.Context, lat, lng float64, zoom int) (media.Image, error)
}

// Block инфоблок, который умеет отдать свою разметку
type Block interface {
	Kind() presentation.BlockKind
	// HTML возвращает разметку блока. При ошибке шаблона возвращается пустая строка
	HTML(ctx context.Context) string
}

// Builder создает HTML-инфоблоки по дескрипторам.
// Результат каждого блока запоминается по ключу дескриптора на время жизни построителя
type Builder struct {
	repo      *presentation.Repository
	images    ImageSource
	templates *Templates
	icons     *InlineIcons
	assetBase string
	logger    *zap.Logger

	mu   sync.Mutex
	memo map[string]string
}

// NewBuilder создает построитель. assetBase адрес, с которого конвертер загрузит иконки, фоны и шрифты
func NewBuilder(repo *presentation.Repository, images ImageSource, templates *Templates, icons *InlineIcons, assetBase string) *Builder {
	return &Builder{
		repo:      repo,
		images:    images,
		templates: templates,
		icons:     icons,
		assetBase: assetBase,
		logger:    logger.Component("html_builder"),
		memo:      make(map[string]string),
	}
}

// InfoBlock возвращает блок для дескриптора.
// ok ложно для неизвестного вида блока и для отсутствующего здания или помещения
func (b *Builder) InfoBlock(d presentation.BlockDescriptor) (Block, bool) {
	switch d.BlockID {
	case presentation.BlockHeader:
		return b.block(d, templateHeader, b.headerData), true
	case presentation.BlockBrokerContacts:
		return b.block(d, templateBrokerContacts, b.brokerData), true
	}

	building, ok := b.repo.Building(d.RealtyID)
	if !ok {
		return nil, false
	}

	switch d.BlockID {
	case presentation.BlockBuildingHeader:
		return b.block(d, templateBuildingHeader, func(ctx context.Context) pongo2.Context {
			return b.buildingHeaderData(ctx, building)
		}), true
	case presentation.BlockBuildingLocation:
		return b.block(d, templateBuildingLocation, func(ctx context.Context) pongo2.Context {
			return b.buildingLocationData(ctx, building.Location)
		}), true
	case presentation.BlockBuildingInfo:
		return b.block(d, templateBuildingInfo, func(context.Context) pongo2.Context {
			return b.buildingInfoData(building.Info)
		}), true
	case presentation.BlockBuildingPhoto:
		return b.block(d, templatePhotos, func(ctx context.Context) pongo2.Context {
			return b.photosData(ctx, building.Photos)
		}), true
	}

	area, ok := b.repo.Area(d.RealtyID, d.AreaKey())
	if !ok {
		return nil, false
	}

	switch d.BlockID {
	case presentation.BlockAreaCommercial:
		return b.block(d, templateAreaCommercial, func(ctx context.Context) pongo2.Context {
			return b.areaCommercialData(ctx, area)
		}), true
	case presentation.BlockAreaPhoto:
		return b.block(d, templatePhotos, func(ctx context.Context) pongo2.Context {
			return b.photosData(ctx, area.Photos)
		}), true
	case presentation.BlockAreaSchema:
		return b.block(d, templateAreaSchema, func(ctx context.Context) pongo2.Context {
			return b.areaSchemaData(ctx, area)
		}), true
	}
	return nil, false
}

// Document оборачивает разметку блоков в общий заголовок и подвал документа
func (b *Builder) Document(blocks []string) (string, error) {
	head, err := b.templates.Render(templateDocumentHeader, pongo2.Context{"title": b.repo.Name})
	if err != nil {
		return "", err
	}
	foot, err := b.templates.Render(templateDocumentFooter, pongo2.Context{})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(RewriteAssetURLs(head, b.assetBase))
	for _, block := range blocks {
		sb.WriteString(block)
		sb.WriteByte('\n')
	}
	sb.WriteString(foot)
	return sb.String(), nil
}

func (b *Builder) block(d presentation.BlockDescriptor, template string, data func(context.Context) pongo2.Context) *htmlBlock {
	return &htmlBlock{
		kind:     d.BlockID,
		key:      d.MemoKey(),
		template: template,
		data:     data,
		builder:  b,
		logger:   b.logger.With(zap.String("block", string(d.BlockID)), zap.String("realty_id", d.RealtyID)),
	}
}

func (b *Builder) memoized(key string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	html, ok := b.memo[key]
	return html, ok
}

func (b *Builder) remember(key, html string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.memo[key] = html
}

// photo загружает изображение и возвращает его data:-адрес. Ошибка загрузки не прерывает блок
func (b *Builder) photo(ctx context.Context, p presentation.Photo, greyscale bool) string {
	if p.Empty() {
		return ""
	}
	img, err := b.images.Image(ctx, p.URL, greyscale)
	if err != nil {
		b.logger.Warn("Failed to load photo", zap.String("url", p.URL), zap.Error(err))
		return ""
	}
	return DataURI(img)
}

type htmlBlock struct {
	kind     presentation.BlockKind
	key      string
	template string
	data     func(context.Context) pongo2.Context
	builder  *Builder
	logger   *zap.Logger
}

func (h *htmlBlock) Kind() presentation.BlockKind {
	return h.kind
}

func (h *htmlBlock) HTML(ctx context.Context) string {
	if html, ok := h.builder.memoized(h.key); ok {
		return html
	}

	out, err := h.builder.templates.Render(h.template, h.data(ctx))
	if err != nil {
		h.logger.Error("Failed to render block", zap.Error(err))
		return ""
	}

	html := strings.TrimSpace(RewriteAssetURLs(out, h.builder.assetBase))
	h.builder.remember(h.key, html)
	return html
}

// DataURI кодирует изображение для встраивания в разметку
func DataURI(img media.Image) string {
	if img.Empty() {
		return ""
	}
	mime := "image/png"
	if img.Format == media.FormatJPEG {
		mime = "image/jpeg"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}
