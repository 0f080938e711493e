package layout

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"presentation-service-go/internal/domain/presentation"
	"presentation-service-go/internal/pkg/assets"
	"presentation-service-go/internal/pkg/logger"
	"presentation-service-go/internal/pkg/media"
)

// ImageSource выдает подготовленные изображения для блоков
type ImageSource interface {
	Image(ctx context.Context, url string, greyscale bool) (media.Image, error)
	StaticMap(ctx context.Context, lat, lng float64, zoom int) (media.Image, error)
}

// Block инфоблок, который умеет нарисовать себя на новых страницах холста
type Block interface {
	Kind() presentation.BlockKind
	Render(ctx context.Context, c Canvas) error
}

// Builder создает PDF-инфоблоки по дескрипторам
type Builder struct {
	repo   *presentation.Repository
	images ImageSource
	lib    *assets.Library
	logger *zap.Logger
}

// NewBuilder создает построитель поверх нормализованных данных запроса
func NewBuilder(repo *presentation.Repository, images ImageSource, lib *assets.Library) *Builder {
	return &Builder{
		repo:   repo,
		images: images,
		lib:    lib,
		logger: logger.Component("pdf_builder"),
	}
}

// InfoBlock возвращает блок для дескриптора.
// ok ложно для неизвестного вида блока и для отсутствующего здания или помещения
func (b *Builder) InfoBlock(d presentation.BlockDescriptor) (Block, bool) {
	switch d.BlockID {
	case presentation.BlockHeader:
		return &headerBlock{base: b.base(d), name: b.repo.Name}, true
	case presentation.BlockBrokerContacts:
		return &brokerBlock{base: b.base(d), broker: b.repo.Broker}, true
	}

	building, ok := b.repo.Building(d.RealtyID)
	if !ok {
		return nil, false
	}

	switch d.BlockID {
	case presentation.BlockBuildingHeader:
		return &buildingHeaderBlock{base: b.base(d), building: building}, true
	case presentation.BlockBuildingLocation:
		return &buildingLocationBlock{base: b.base(d), location: building.Location}, true
	case presentation.BlockBuildingInfo:
		return &buildingInfoBlock{base: b.base(d), prefix: building.Header.Prefix, info: building.Info}, true
	case presentation.BlockBuildingPhoto:
		return &photosBlock{base: b.base(d), photos: building.Photos}, true
	}

	area, ok := b.repo.Area(d.RealtyID, d.AreaKey())
	if !ok {
		return nil, false
	}

	switch d.BlockID {
	case presentation.BlockAreaCommercial:
		return &areaCommercialBlock{base: b.base(d), area: area}, true
	case presentation.BlockAreaPhoto:
		return &photosBlock{base: b.base(d), photos: area.Photos}, true
	case presentation.BlockAreaSchema:
		return &areaSchemaBlock{base: b.base(d), schema: area.Schema, floor: area.Commercial.Floor}, true
	}
	return nil, false
}

func (b *Builder) base(d presentation.BlockDescriptor) base {
	return base{
		kind:      d.BlockID,
		images:    b.images,
		lib:       b.lib,
		greyscale: b.repo.Greyscale,
		logger:    b.logger.With(zap.String("block", string(d.BlockID)), zap.String("realty_id", d.RealtyID)),
	}
}

// base общие зависимости блоков
type base struct {
	kind      presentation.BlockKind
	images    ImageSource
	lib       *assets.Library
	greyscale bool
	logger    *zap.Logger
}

func (b base) Kind() presentation.BlockKind {
	return b.kind
}

// photo загружает фотографию. Ошибка загрузки не прерывает блок
func (b base) photo(ctx context.Context, p presentation.Photo, greyscale bool) (media.Image, bool) {
	if p.Empty() {
		return media.Image{}, false
	}
	img, err := b.images.Image(ctx, p.URL, greyscale)
	if err != nil {
		b.logger.Warn("Failed to load photo", zap.String("url", p.URL), zap.Error(err))
		return media.Image{}, false
	}
	return img, true
}

// drawPhoto загружает фотографию и вписывает ее в область.
// Ложь означает, что фотография не нарисована, причина записана в лог
func (b base) drawPhoto(ctx context.Context, c Canvas, p presentation.Photo, greyscale bool, box Box) bool {
	img, ok := b.photo(ctx, p, greyscale)
	if !ok {
		return false
	}
	if err := drawFit(c, img, box); err != nil {
		b.logger.Warn("Failed to draw photo", zap.String("url", p.URL), zap.Error(err))
		return false
	}
	return true
}

func (b base) pattern(name string) (media.Image, error) {
	data, err := b.lib.Pattern(name)
	if err != nil {
		return media.Image{}, err
	}
	img, err := media.Prepare(data, false)
	if err != nil {
		return media.Image{}, fmt.Errorf("pattern %s: %w", name, err)
	}
	return img, nil
}

// drawPattern рисует фон, растянутый на область
func (b base) drawPattern(c Canvas, name string, box Box) error {
	img, err := b.pattern(name)
	if err != nil {
		return err
	}
	return c.Image(img, box.X, box.Y, box.W, box.H)
}

// drawFit вписывает изображение в область
func drawFit(c Canvas, img media.Image, box Box) error {
	fit := FitBox(float64(img.Width), float64(img.Height), box)
	return c.Image(img, fit.X, fit.Y, fit.W, fit.H)
}
