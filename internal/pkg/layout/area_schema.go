package layout

import (
	"context"

	"presentation-service-go/internal/domain/presentation"
	"presentation-service-go/internal/pkg/assets"
)

type areaSchemaBlock struct {
	base
	schema presentation.Photo
	floor  string
}

func (b *areaSchemaBlock) Render(ctx context.Context, c Canvas) error {
	const (
		xPadding        = 105.0
		yPadding        = 50.0
		subHeaderHeight = 21.0
		subHeaderSize   = 18.0
		subHeaderMargin = 14.0
		headerSize      = 40.0
		headerMargin    = 73.0
	)

	c.AddPage()
	pw, ph := c.PageSize()
	width := pw - 2*xPadding
	x, y := xPadding, yPadding

	if b.floor != "" {
		if err := c.Icon("schema_subheader", x, y+(subHeaderHeight-24)/2, 24, 24); err != nil {
			return err
		}
		c.SetFont(assets.Bold, subHeaderSize)
		c.SetFill(DarkGrey, 1)
		c.Text(x+24+8, y, b.floor+" этаж")
	}
	y += subHeaderHeight + subHeaderMargin

	c.SetFont(assets.Bold, headerSize)
	accent := "Планировка"
	accentW := c.TextWidth(accent)
	c.GradientText(x, y, accent, min(c.TextWidth(accent+" помещения"), width))
	c.SetFill(DarkGrey, 1)
	c.Text(x+accentW, y, " помещения")
	y += headerSize + headerMargin

	b.drawPhoto(ctx, c, b.schema, false, Box{X: x, Y: y, W: width, H: ph - y - yPadding})
	return nil
}
