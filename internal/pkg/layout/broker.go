package layout

import (
	"context"
	"strings"

	"presentation-service-go/internal/domain/presentation"
	"presentation-service-go/internal/pkg/assets"
	"presentation-service-go/internal/pkg/textutil"
)

type brokerBlock struct {
	base
	broker presentation.BrokerCard
}

// SplitEmail делит адрес на имя с "@" и домен, домен выделяется градиентом
func SplitEmail(email string) (string, string) {
	name, domain, found := strings.Cut(email, "@")
	if !found {
		return email, ""
	}
	return name + "@", domain
}

func (b *brokerBlock) Render(_ context.Context, c Canvas) error {
	const (
		xPadding   = 106.0
		yPadding   = 200.0
		iconW      = 208.0
		iconH      = 196.0
		textMargin = 90.0
		lineHeight = 21.0
	)

	c.AddPage()
	pw, ph := c.PageSize()

	if err := b.drawPattern(c, assets.PatternFooter, Box{W: pw, H: ph}); err != nil {
		return err
	}
	blockW := pw - 2*xPadding
	c.SetFill(White, 1)
	c.Rect(xPadding, yPadding, blockW, ph-2*yPadding+1)
	if err := c.Icon("broker", xPadding, yPadding, iconW, iconH); err != nil {
		return err
	}

	x := xPadding + iconW + textMargin
	y := yPadding + 52
	width := blockW - iconW - textMargin - 25

	c.SetFont(assets.Bold, 24)
	for _, line := range textutil.SplitString(b.broker.FIO, 21) {
		c.GradientText(x, y+(lineHeight-24)/2, line, c.TextWidth(line))
		y += lineHeight
	}
	y += 4

	c.SetFont(assets.Regular, 14)
	c.SetFill(DarkGrey, 1)
	if lines := WrapText(c, b.broker.Desc, width); len(lines) > 0 {
		c.Text(x, y+(lineHeight-14)/2, lines[0])
	}
	y += lineHeight + 8

	c.SetFont(assets.Bold, 14)
	c.Text(x, y+(lineHeight-14)/2, b.broker.Phone)
	y += lineHeight

	name, domain := SplitEmail(b.broker.Email)
	c.Text(x, y+(lineHeight-14)/2, name)
	c.GradientText(x+c.TextWidth(name), y+(lineHeight-14)/2, domain, c.TextWidth(domain))
	return nil
}
