package layout

import (
	"context"

	"presentation-service-go/internal/pkg/assets"
)

type headerBlock struct {
	base
	name string
}

// HeaderTitle заголовок титульной страницы
func HeaderTitle(name string) string {
	return "Коммерческое предложение по " + name + " недвижимости"
}

func (b *headerBlock) Render(_ context.Context, c Canvas) error {
	const (
		logoW      = 211.0
		logoH      = 153.0
		titleWidth = 270.0
		titleSize  = 18.0
		titleGap   = 4.0
		logoMargin = 88.0
	)

	c.AddPage()
	pw, ph := c.PageSize()

	if err := b.drawPattern(c, assets.PatternInfo, Box{W: 507, H: ph}); err != nil {
		return err
	}

	xLogo := pw/2 - logoW/2
	yLogo := ph/2 - logoH/2
	if err := c.Icon("logo", xLogo, yLogo, logoW, logoH); err != nil {
		return err
	}

	c.SetFont(assets.Bold, titleSize)
	y := yLogo + logoH + logoMargin
	for _, line := range WrapText(c, HeaderTitle(b.name), titleWidth) {
		w := c.TextWidth(line)
		c.GradientText(pw/2-w/2, y, line, w)
		y += titleSize + titleGap
	}
	return nil
}
