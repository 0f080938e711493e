package layout

import (
	"context"
	"strings"

	"presentation-service-go/internal/domain/presentation"
	"presentation-service-go/internal/pkg/assets"
	"presentation-service-go/internal/pkg/textutil"
)

// Геометрия страницы коммерческого предложения
const (
	priceBoxWidth    = 528.0
	priceBoxHeight   = 117.0
	commercialLineH  = 32.0
	paramsBoxWidth   = 212.0
	paramsBottomPad  = 20.0
	paramLineHeight  = 21.0
	paramValueMargin = 3.0
	paramMargin      = 26.0
	paramDescChars   = 14
	mainX            = 105.0
)

type areaCommercialBlock struct {
	base
	area *presentation.Area
}

// IsTermsLayout сообщает, что страница узкая: справа от фото выводятся коммерческие условия
func IsTermsLayout(photoWidth float64) bool {
	return photoWidth <= presentation.AreaPhotoNarrowWidth
}

// PriceColumn колонка цены: иконка, значение и подпись
type PriceColumn struct {
	Icon  string
	Price string
	Desc  string
}

// PriceColumns две колонки цен. Для аренды цена в месяц и за метр в год, для продажи цена за метр и общая стоимость
func PriceColumns(c presentation.Commercial) [2]PriceColumn {
	if c.IsRent() {
		return [2]PriceColumn{
			{Icon: "month", Price: c.PricePerMonth, Desc: "за месяц"},
			{Icon: "year", Price: c.PricePerSquare, Desc: "за м² в год"},
		}
	}
	return [2]PriceColumn{
		{Icon: "per_meter", Price: c.PricePerSquare, Desc: "за м²"},
		{Icon: "square", Price: c.PriceTotal, Desc: "стоимость"},
	}
}

// paramsTopPadding отступ колонки параметров сверху
func paramsTopPadding(terms bool, params int) float64 {
	switch {
	case terms && params == 3:
		return 105
	case terms:
		return 46
	default:
		return 52
	}
}

// AreaPhotoWidth ширина главного фото помещения. Без заданной ширины узкий вариант выбирается,
// если коммерческих условий больше одного
func AreaPhotoWidth(area *presentation.Area) float64 {
	if w := area.PrimaryPhoto.Width; w > 0 {
		return w
	}
	if len(area.Commercial.Terms) > 1 {
		return presentation.AreaPhotoNarrowWidth
	}
	return presentation.AreaPhotoWideWidth
}

func (b *areaCommercialBlock) Render(ctx context.Context, c Canvas) error {
	c.AddPage()
	pw, ph := c.PageSize()
	com := b.area.Commercial

	photoW := AreaPhotoWidth(b.area)
	photoH := b.area.PrimaryPhoto.Height
	if photoH <= 0 {
		photoH = ph
	}
	terms := IsTermsLayout(photoW)

	priceX := pw - priceBoxWidth
	priceY := ph - priceBoxHeight
	if !terms {
		priceY -= commercialLineH
	}
	termsW := pw - photoW

	topPad := paramsTopPadding(terms, len(com.Params))
	paramsH := topPad + paramsBottomPad
	for _, p := range com.Params {
		paramsH += paramLineHeight + paramValueMargin +
			float64(len(textutil.SplitString(p.Description, paramDescChars)))*paramLineHeight + paramMargin
	}
	paramsX := pw - paramsBoxWidth
	if terms {
		paramsX = pw - termsW - paramsBoxWidth
	}
	paramsY := priceY - paramsH

	if !b.drawPhoto(ctx, c, b.area.PrimaryPhoto, true, Box{W: photoW, H: photoH}) {
		pattern := assets.PatternAreaWide
		if terms {
			pattern = assets.PatternAreaNarrow
		}
		if err := b.drawPattern(c, pattern, Box{W: photoW, H: photoH}); err != nil {
			return err
		}
	}
	c.SetFill(Black, 0.6)
	c.Rect(0, 0, photoW, photoH)
	c.SetFill(White, 0.2)
	c.Rect(paramsX, 0, paramsBoxWidth, ph)

	if err := b.drawPattern(c, assets.PatternPrice, Box{X: priceX, Y: priceY, W: priceBoxWidth, H: priceBoxHeight}); err != nil {
		return err
	}

	if err := drawMainData(c, com); err != nil {
		return err
	}
	drawFloor(c, com.Floor)
	if err := drawParams(c, com.Params, paramsX+45, paramsY+topPad); err != nil {
		return err
	}

	if terms {
		if err := drawTerms(c, com.Terms, Box{X: pw - termsW, W: termsW, H: ph - priceBoxHeight}); err != nil {
			return err
		}
	} else if tax, ok := com.Term(presentation.TermTax); ok && len(tax.Params) > 0 {
		drawCommercialLine(c, tax.Params[0], Box{X: priceX, Y: ph - commercialLineH, W: priceBoxWidth, H: commercialLineH})
	}

	if err := drawPrices(c, PriceColumns(com), Box{X: priceX, Y: priceY, W: priceBoxWidth, H: priceBoxHeight}); err != nil {
		return err
	}
	return drawOccupiedState(c, com.OccupiedState, paramsX+52, 47, paramsBoxWidth-52-8)
}

func drawMainData(c Canvas, com presentation.Commercial) error {
	x := float64(mainX)
	y := 50.0

	icon := "sell"
	if com.IsRent() {
		icon = "rent"
	}
	if err := c.Icon(icon, x, y+(21.0-24)/2, 24, 24); err != nil {
		return err
	}
	c.SetFont(assets.Bold, 18)
	c.SetFill(White, 1)
	c.Text(x+24+8, y+(21.0-18)/2, com.OperationType)
	y += 21 + 10

	c.SetFont(assets.Bold, 40)
	c.SetFill(Accent, 1)
	for _, line := range textutil.SplitString(com.Purpose, 9) {
		c.Text(x, y, line)
		y += 40
	}
	y += 8

	c.SetFont(assets.Bold, 28)
	c.SetFill(White, 1)
	c.Text(x, y, com.Layout)
	y += 28 + 20

	c.SetFont(assets.Regular, 14)
	c.SetFill(White, 0.8)
	for i, f := range com.Features {
		text := strings.ToLower(f)
		if i != len(com.Features)-1 {
			text += ","
		}
		c.Text(x, y+(21.0-14)/2, text)
		y += 21
	}
	if len(com.Features) > 0 {
		y += 16
	}

	for _, line := range textutil.SplitString(com.State, 23) {
		c.Text(x, y+(21.0-14)/2, line)
		y += 21
	}
	return nil
}

func drawFloor(c Canvas, floor string) {
	if floor == "" {
		return
	}
	c.SetFont(assets.Bold, 144)
	c.SetFill(White, 1)
	c.Text(mainX, 364, floor)
	c.SetFont(assets.Regular, 72)
	c.SetFill(White, 0.8)
	c.Text(mainX, 489, "этаж")
}

func drawParams(c Canvas, params []presentation.CommercialParam, x, y float64) error {
	const iconSize, iconMargin = 24.0, 11.0
	tx := x + iconSize + iconMargin
	for _, p := range params {
		if err := c.Icon(assets.ParamIcon(p.Name), x, y, iconSize, iconSize); err != nil {
			return err
		}
		c.SetFont(assets.Bold, 24)
		c.SetFill(White, 1)
		c.Text(tx, y+(paramLineHeight-24)/2, p.Value)
		y += paramLineHeight + paramValueMargin

		c.SetFont(assets.Regular, 14)
		for _, line := range textutil.SplitString(p.Description, paramDescChars) {
			c.Text(tx, y+(paramLineHeight-14)/2, line)
			y += paramLineHeight
		}
		y += paramMargin
	}
	return nil
}

func drawTerms(c Canvas, terms []presentation.CommercialTerm, box Box) error {
	const (
		xPadding     = 56.0
		yPadding     = 46.0
		headerHeight = 29.0
		headerMargin = 18.0
		lineHeight   = 21.0
		termMargin   = 16.0
		iconSize     = 16.0
		iconMargin   = 8.0
	)
	x := box.X + xPadding
	y := box.Y + yPadding

	c.SetFont(assets.Bold, 24)
	c.GradientText(x, y+(headerHeight-24)/2, "Коммерческие", 180)
	y += headerHeight
	c.GradientText(x, y+(headerHeight-24)/2, "условия:", 180)
	y += headerHeight + headerMargin

	tx := x + iconSize + iconMargin
	for _, t := range terms {
		if err := c.Icon("term", x, y+(lineHeight-14)/2, iconSize, iconSize); err != nil {
			return err
		}
		c.SetFont(assets.Bold, 14)
		c.SetFill(DarkGrey, 1)
		c.Text(tx, y+(lineHeight-14)/2, t.Name)
		y += lineHeight

		c.SetFont(assets.Regular, 12)
		c.SetFill(Grey, 1)
		for _, line := range textutil.SplitString(strings.Join(t.Params, ", "), 32) {
			c.Text(tx, y+(lineHeight-12)/2, line)
			y += lineHeight
		}
		y += termMargin
	}
	return nil
}

func drawCommercialLine(c Canvas, text string, box Box) {
	c.SetFill(LineGreen, 1)
	c.Rect(box.X, box.Y, box.W, box.H)
	c.SetFont(assets.Regular, 14)
	c.SetFill(White, 1)
	c.Text(box.X+(box.W-c.TextWidth(text))/2, box.Y+(box.H-14)/2, text)
}

// drawPrices рисует две колонки цен. Если места мало, кошелек слева не выводится
func drawPrices(c Canvas, columns [2]PriceColumn, box Box) error {
	const (
		walletW        = 119.0
		iconSize       = 24.0
		iconMargin     = 10.0
		currencyW      = 14.0
		currencyH      = 18.0
		currencyMargin = 5.0
		xPadding       = 34.0
		yPadding       = 43.0
		priceSize      = 24.0
		descSize       = 14.0
		lineHeight     = 21.0
		priceMargin    = 3.0
	)

	var widths [2]float64
	var priceWidths [2]float64
	for i, col := range columns {
		c.SetFont(assets.Bold, priceSize)
		priceWidths[i] = c.TextWidth(col.Price) + currencyMargin + currencyW
		c.SetFont(assets.Regular, descSize)
		widths[i] = max(priceWidths[i], c.TextWidth(col.Desc))
	}
	content := 2*(iconSize+iconMargin) + widths[0] + xPadding + widths[1]

	x := box.X
	pad := (box.W - walletW - content) / 2
	if pad > 30 {
		if err := c.Icon("wallet", x, box.Y, walletW, box.H); err != nil {
			return err
		}
		x += walletW
	} else {
		pad += walletW / 2
	}
	x += pad
	y := box.Y + yPadding

	for i, col := range columns {
		if err := c.Icon(col.Icon, x, y, iconSize, iconSize); err != nil {
			return err
		}
		tx := x + iconSize + iconMargin
		c.SetFont(assets.Bold, priceSize)
		c.SetFill(White, 1)
		c.Text(tx, y+(lineHeight-priceSize)/2, col.Price)
		if err := c.Icon("currency", tx+priceWidths[i]-currencyW, y+2+(lineHeight-currencyH)/2, currencyW, currencyH); err != nil {
			return err
		}
		c.SetFont(assets.Regular, descSize)
		c.Text(tx, y+lineHeight+priceMargin+(lineHeight-descSize)/2, col.Desc)

		x = tx + widths[i] + xPadding
	}
	return nil
}

func drawOccupiedState(c Canvas, text string, x, y, width float64) error {
	if text == "" {
		return nil
	}
	if err := c.Icon("occupied", x, y+2, 24, 24); err != nil {
		return err
	}
	c.SetFont(assets.Bold, 14)
	c.SetFill(White, 0.8)
	tx := x + 24 + 8
	for _, line := range WrapText(c, text, width-24-8) {
		c.Text(tx, y+(21.0-14)/2, line)
		y += 14 + 3.5
	}
	return nil
}
