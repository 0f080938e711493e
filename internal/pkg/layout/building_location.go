package layout

import (
	"context"

	"go.uber.org/zap"

	"presentation-service-go/internal/domain/presentation"
	"presentation-service-go/internal/pkg/assets"
	"presentation-service-go/internal/pkg/media"
	"presentation-service-go/internal/pkg/textutil"
)

const (
	mapWidth          = 314.0
	infrastructureRow = 7
	infrastructureMax = 14
)

type buildingLocationBlock struct {
	base
	location presentation.BuildingLocation
}

// TransferText подпись под расстоянием
func TransferText(isSubway bool) string {
	if isSubway {
		return "пешком от метро"
	}
	return "пешком от шоссе"
}

func (b *buildingLocationBlock) Render(ctx context.Context, c Canvas) error {
	const (
		xPadding = 107.0

		transferHeight = 56.0
		transferMargin = 24.0
		iconSize       = 54.0
		iconMargin     = 16.0

		infoHeight   = 21.0
		infoSize     = 14.0
		locMargin    = 12.0
		subwayMargin = 24.0

		descHeaderHeight = 21.0
		descHeaderMargin = 16.0
		descMargin       = 36.0

		infraSize = 24.0
		infraGap  = 24.0
	)

	c.AddPage()
	pw, ph := c.PageSize()
	loc := b.location

	x := float64(mapWidth + xPadding)
	width := pw - mapWidth - 2*xPadding

	c.SetFont(assets.Regular, infoSize)
	locationLines := WrapText(c, loc.Location, width)
	transport, transportIcon := loc.SubwayStations, "subway_gradient"
	if !loc.IsSubway {
		transport, transportIcon = loc.Roads, "road_gradient"
	}
	transportLines := WrapText(c, transport, width)
	descLines := textutil.SplitString(loc.Description, 42)

	infraRows := 1
	if len(loc.Infrastructure) > infrastructureRow {
		infraRows = 2
	}

	height := float64(transferHeight+transferMargin) +
		float64(max(len(locationLines), 1))*infoHeight + locMargin +
		float64(max(len(transportLines), 1))*infoHeight + subwayMargin +
		descHeaderHeight + descHeaderMargin +
		float64(max(len(descLines), 1))*infoHeight + descMargin +
		float64(infraRows)*infraSize + float64(infraRows-1)*infraGap
	y := (ph - height) / 2

	if mapImg, err := b.images.StaticMap(ctx, loc.Lat, loc.Lng, media.ZoomPDF); err != nil {
		b.logger.Warn("Failed to load static map", zap.Error(err))
	} else if err := c.Image(mapImg, 0, 0, mapWidth, ph); err != nil {
		return err
	}
	if err := b.drawPattern(c, assets.PatternLocation, Box{X: mapWidth, W: pw - mapWidth, H: ph}); err != nil {
		return err
	}
	if err := c.Icon("place", mapWidth/2-32, ph/2-32, 64, 64); err != nil {
		return err
	}

	// расстояние до метро или шоссе
	if err := c.Icon("transfer", x, y, iconSize, iconSize); err != nil {
		return err
	}
	tx := x + iconSize + iconMargin
	c.SetFont(assets.Bold, 40)
	distance := presentation.FormatDistance(loc.Distance).String()
	c.GradientText(tx, y+(infoHeight-40)/2, distance, min(c.TextWidth(distance), width))
	c.SetFont(assets.Regular, 18)
	c.SetFill(Grey, 1)
	c.Text(tx, y+40+(infoHeight-40)/2+(infoHeight-18)/2, TransferText(loc.IsSubway))
	y += transferHeight + transferMargin

	drawInfo := func(icon string, lines []string, iconShift, margin float64) error {
		if err := c.Icon(icon, x, y+iconShift+(infoHeight-16)/2, 16, 16); err != nil {
			return err
		}
		c.SetFont(assets.Regular, infoSize)
		c.SetFill(Grey, 1)
		for _, line := range lines {
			c.Text(x+16+5, y+(infoHeight-infoSize)/2, line)
			y += infoHeight
		}
		if len(lines) == 0 {
			y += infoHeight
		}
		y += margin
		return nil
	}
	if err := drawInfo("location_gradient", locationLines, 2, locMargin); err != nil {
		return err
	}
	if err := drawInfo(transportIcon, transportLines, 1, subwayMargin); err != nil {
		return err
	}

	c.SetFont(assets.Bold, 24)
	c.GradientText(x, y+(descHeaderHeight-24)/2, "Развитая инфраструктура", width)
	y += descHeaderHeight + descHeaderMargin

	c.SetFont(assets.Regular, infoSize)
	c.SetFill(Grey, 1)
	for _, line := range descLines {
		c.Text(x, y+(infoHeight-infoSize)/2, line)
		y += infoHeight
	}
	if len(descLines) == 0 {
		y += infoHeight
	}
	y += descMargin

	for i, inf := range loc.Infrastructure {
		if i >= infrastructureMax {
			break
		}
		row, col := i/infrastructureRow, i%infrastructureRow
		ix := x + float64(col)*(infraSize+infraGap)
		iy := y + float64(row)*(infraSize+infraGap)
		if err := c.Icon(assets.InfrastructureIcon(inf.Icon), ix, iy, infraSize, infraSize); err != nil {
			return err
		}
	}
	return nil
}
