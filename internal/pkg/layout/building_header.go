package layout

import (
	"context"

	"presentation-service-go/internal/domain/presentation"
	"presentation-service-go/internal/pkg/assets"
	"presentation-service-go/internal/pkg/textutil"
)

type buildingHeaderBlock struct {
	base
	building *presentation.Building
}

// featureWidth ширина ключевого показателя: наибольшая из ширины значения и подписи
func featureWidth(c Canvas, f presentation.Feature) float64 {
	c.SetFont(assets.Bold, 24)
	w := c.TextWidth(f.Name)
	c.SetFont(assets.Regular, 14)
	return max(w, c.TextWidth(f.Desc))
}

func (b *buildingHeaderBlock) Render(ctx context.Context, c Canvas) error {
	const (
		xBlock   = 210.0
		xPadding = 40.0
		yPadding = 32.0

		prefixHeight = 21.0
		prefixSize   = 18.0
		prefixMargin = 15.0

		nameHeight = 40.0
		nameMargin = 15.0

		infoHeight     = 21.0
		infoSize       = 14.0
		locationMargin = 10.0
		subwayMargin   = 26.0
		infoChars      = 73

		featuresHeight = 45.0
		featurePadding = 28.0
	)

	c.AddPage()
	pw, ph := c.PageSize()

	header := b.building.Header
	location := b.building.Location
	nameLines := textutil.SplitString(header.Name, 24)
	locationLines := textutil.SplitString(location.Location, infoChars)
	transport, transportIcon := location.SubwayStations, "subway_white"
	if !location.IsSubway {
		transport, transportIcon = location.Roads, "location_white"
	}
	transportLines := textutil.SplitString(transport, infoChars)

	blockW := pw - xBlock
	blockH := 2*yPadding +
		prefixHeight + prefixMargin +
		float64(len(nameLines))*nameHeight + nameMargin +
		float64(len(locationLines))*infoHeight + locationMargin +
		float64(len(transportLines))*infoHeight + subwayMargin +
		featuresHeight
	yBlock := (ph - blockH) / 2

	if !b.drawPhoto(ctx, c, b.building.PrimaryPhoto, true, Box{W: pw, H: ph}) {
		if err := b.drawPattern(c, assets.PatternBuildingHeader, Box{W: pw, H: ph}); err != nil {
			return err
		}
	}

	c.SetFill(Black, 0.4)
	c.Rect(0, 0, pw, ph)
	c.GradientRect(xBlock, yBlock, blockW, blockH, 0.9)

	x := float64(xBlock + xPadding)
	y := yBlock + yPadding

	if err := c.Icon("prefix", x, y, 24, 24); err != nil {
		return err
	}
	c.SetFont(assets.Bold, prefixSize)
	c.SetFill(White, 1)
	c.Text(x+24+8, y+(prefixHeight-prefixSize)/2, header.Prefix)
	y += prefixHeight + prefixMargin

	c.SetFont(assets.Bold, 40)
	for _, line := range nameLines {
		c.Text(x, y, line)
		y += nameHeight
	}
	y += nameMargin

	drawInfo := func(icon string, lines []string, margin float64) error {
		if len(lines) > 0 {
			if err := c.Icon(icon, x, y+1+(infoHeight-16)/2, 16, 16); err != nil {
				return err
			}
		}
		c.SetFont(assets.Regular, infoSize)
		c.SetFill(White, 0.8)
		for _, line := range lines {
			c.Text(x+16+5, y+(infoHeight-infoSize)/2, line)
			y += infoHeight
		}
		y += margin
		return nil
	}
	if err := drawInfo("location_white", locationLines, locationMargin); err != nil {
		return err
	}
	if err := drawInfo(transportIcon, transportLines, subwayMargin); err != nil {
		return err
	}

	fx := x
	for i, f := range header.Features {
		fw := featureWidth(c, f)
		pad := 2.0
		tx := fx + featurePadding
		if i == 0 {
			pad = 1
			tx = fx
		}
		width := fw + pad*featurePadding

		c.SetFont(assets.Bold, 24)
		c.SetFill(White, 1)
		c.Text(tx, y, f.Name)
		c.SetFont(assets.Regular, 14)
		c.SetFill(White, 0.8)
		c.Text(tx, y+24+3, f.Desc)

		if i != len(header.Features)-1 {
			c.SetFill(White, 0.3)
			c.Rect(fx+width-1, y, 1, featuresHeight)
		}
		fx += width
	}
	return nil
}
