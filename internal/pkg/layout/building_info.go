package layout

import (
	"context"

	"presentation-service-go/internal/domain/presentation"
	"presentation-service-go/internal/pkg/assets"
	"presentation-service-go/internal/pkg/textutil"
)

const characteristicColumns = 3

type buildingInfoBlock struct {
	base
	prefix string
	info   presentation.BuildingDetails
}

// InfoHeader заголовок страницы информации о здании: "О бизнес-центре"
func InfoHeader(prefix string) string {
	return "О " + textutil.PrepositionalPhrase(prefix)
}

type characteristicText struct {
	icon   string
	params []string
	values []string
}

// characteristicColumnsOf раскладывает характеристики по колонкам с переносом текста
func characteristicColumnsOf(list []presentation.Characteristic) [][]characteristicText {
	columns := make([][]characteristicText, 0, characteristicColumns)
	offset := 0
	for _, n := range SplitColumns(len(list), characteristicColumns) {
		column := make([]characteristicText, 0, n)
		for _, ch := range list[offset : offset+n] {
			column = append(column, characteristicText{
				icon:   assets.CharacteristicIcon(ch.Icon),
				params: textutil.SplitString(ch.Param, 21),
				values: textutil.SplitString(ch.Value, 26),
			})
		}
		offset += n
		columns = append(columns, column)
	}
	return columns
}

func (b *buildingInfoBlock) Render(_ context.Context, c Canvas) error {
	const (
		xPadding = 103.0

		headerHeight = 40.0
		headerMargin = 35.0

		featuresHeight = 45.0
		featuresMargin = 31.0
		featurePadding = 20.0

		subHeaderHeight = 24.0
		subHeaderMargin = 25.0

		paramLineHeight = 14.0
		valueLineHeight = 14.4
		valueMarginTop  = 4.0
		itemMargin      = 24.0
		iconSize        = 24.0
		iconMargin      = 8.0
	)

	c.AddPage()
	pw, ph := c.PageSize()
	width := pw - 2*xPadding
	columns := characteristicColumnsOf(b.info.Characteristics)

	var charHeight float64
	for _, column := range columns {
		var h float64
		for _, ch := range column {
			h += float64(len(ch.params)) * paramLineHeight
			if len(ch.values) > 0 {
				h += valueMarginTop + float64(len(ch.values))*valueLineHeight
			}
			h += itemMargin
		}
		charHeight = max(charHeight, h)
	}
	height := headerHeight + headerMargin + featuresHeight + featuresMargin + subHeaderHeight + subHeaderMargin + charHeight
	y := (ph - height) / 2
	x := float64(xPadding)

	if err := b.drawPattern(c, assets.PatternInfo, Box{W: 507, H: ph}); err != nil {
		return err
	}

	c.SetFont(assets.Bold, 40)
	header := InfoHeader(b.prefix)
	c.GradientText(x, y, header, min(c.TextWidth(header), width))
	y += headerHeight + headerMargin

	fx := x
	for i, f := range b.info.KeyFeatures {
		fw := featureWidth(c, f)
		tx := fx + featurePadding
		pad := 2.0
		if i == 0 {
			tx = fx
			pad = 1
		}
		c.SetFont(assets.Bold, 24)
		c.GradientText(tx, y, f.Name, min(c.TextWidth(f.Name), width))
		c.SetFont(assets.Regular, 14)
		c.SetFill(Grey, 1)
		c.Text(tx, y+24+3, f.Desc)
		fx += fw + pad*featurePadding
	}
	y += featuresHeight + featuresMargin

	c.SetFont(assets.Bold, 24)
	c.GradientText(x, y, "Ключевые особенности", 282)
	y += subHeaderHeight + subHeaderMargin

	if len(columns) == 0 {
		return nil
	}
	columnWidth := width / float64(len(columns))
	for i, column := range columns {
		cx := x + float64(i)*columnWidth
		cy := y
		for _, ch := range column {
			if err := c.Icon(ch.icon, cx, cy-2, iconSize, iconSize); err != nil {
				return err
			}
			tx := cx + iconSize + iconMargin

			c.SetFont(assets.Regular, 14)
			c.SetFill(Grey, 1)
			for _, p := range ch.params {
				c.Text(tx, cy, p)
				cy += paramLineHeight
			}
			if len(ch.values) > 0 {
				cy += valueMarginTop
				c.SetFont(assets.Regular, 12)
				c.SetFill(Grey, 0.7)
				for _, v := range ch.values {
					c.Text(tx, cy+(valueLineHeight-12)/2, v)
					cy += valueLineHeight
				}
			}
			cy += itemMargin
		}
	}
	return nil
}
