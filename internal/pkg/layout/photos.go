package layout

import (
	"context"

	"go.uber.org/zap"

	"presentation-service-go/internal/domain/presentation"
	"presentation-service-go/internal/pkg/assets"
	"presentation-service-go/internal/pkg/media"
)

// Подпись фотографии
const (
	captionPadding    = 16
	captionLineHeight = 21
	captionSize       = 18
)

type photosBlock struct {
	base
	photos []presentation.Photo
}

type loadedPhoto struct {
	url  string
	name string
	img  media.Image
}

func (b *photosBlock) Render(ctx context.Context, c Canvas) error {
	loaded := make([]loadedPhoto, 0, len(b.photos))
	for _, p := range b.photos {
		if img, ok := b.photo(ctx, p, b.greyscale); ok {
			loaded = append(loaded, loadedPhoto{url: p.URL, name: p.Name, img: img})
		}
	}
	if len(loaded) == 0 {
		b.logger.Warn("No photos to render")
		return nil
	}

	next := 0
	for _, count := range PaginatePhotos(len(loaded)) {
		c.AddPage()
		pw, ph := c.PageSize()
		for i, frame := range PhotoFrames(count, pw, ph) {
			p := loaded[next+i]
			// фото, которое холст не принял, пропускается вместе с подписью
			if err := drawFit(c, p.img, frame); err != nil {
				b.logger.Warn("Failed to draw photo", zap.String("url", p.url), zap.Error(err))
				continue
			}
			drawCaption(c, p.name, frame)
		}
		next += count
	}
	return nil
}

// drawCaption рисует подпись поверх нижнего края области фотографии.
// Подпись обрезается по ширине области
func drawCaption(c Canvas, text string, frame Box) {
	if text == "" {
		return
	}
	c.SetFont(assets.Regular, captionSize)
	text = TruncateText(c, text, frame.W-2*captionPadding)
	w := min(2*captionPadding+c.TextWidth(text), frame.W)
	h := float64(2*captionPadding + captionLineHeight)
	y := frame.Y + frame.H - h

	c.SetFill(DarkGrey, 0.5)
	c.Rect(frame.X, y, w, h)
	c.SetFill(White, 1)
	c.Text(frame.X+captionPadding, y+captionPadding, text)
}
