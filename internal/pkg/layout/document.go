package layout

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"presentation-service-go/internal/pkg/assets"
	"presentation-service-go/internal/pkg/media"
)

// Document холст поверх fpdf. Один документ на одну презентацию, не безопасен для конкурентного использования
type Document struct {
	pdf    *fpdf.Fpdf
	icons  *IconRasterizer
	weight assets.Weight
	size   float64
	images int
	named  map[string]bool
}

var _ Canvas = (*Document)(nil)

// NewDocument создает пустой документ A4 в альбомной ориентации и регистрирует все начертания шрифта
func NewDocument(lib *assets.Library, icons *IconRasterizer) *Document {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "pt",
		SizeStr:        "A4",
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("presentation-service", true)

	for _, w := range assets.Weights {
		pdf.AddUTF8FontFromBytes(string(w), "", lib.Font(w))
	}

	d := &Document{
		pdf:   pdf,
		icons: icons,
		named: make(map[string]bool),
	}
	d.SetFont(assets.Regular, 14)
	return d
}

func (d *Document) AddPage() {
	d.pdf.AddPage()
}

func (d *Document) PageSize() (float64, float64) {
	return d.pdf.GetPageSize()
}

// PageCount количество страниц
func (d *Document) PageCount() int {
	return d.pdf.PageCount()
}

func (d *Document) SetFont(weight assets.Weight, size float64) {
	d.weight = weight
	d.size = size
	d.pdf.SetFont(string(weight), "", size)
}

func (d *Document) TextWidth(s string) float64 {
	return d.pdf.GetStringWidth(s)
}

func (d *Document) SetFill(c Color, alpha float64) {
	d.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
	d.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	d.pdf.SetAlpha(alpha, "Normal")
}

func (d *Document) Text(x, y float64, s string) {
	if s == "" {
		return
	}
	d.pdf.Text(x, y+d.size*baselineRatio, s)
}

func (d *Document) GradientText(x, y float64, s string, span float64) {
	if s == "" {
		return
	}
	width := d.TextWidth(s)
	if span <= 0 || span > width {
		span = width
	}
	if width <= 0 {
		return
	}

	d.pdf.SetAlpha(1, "Normal")
	d.pdf.ClipText(x, y+d.size*baselineRatio, s, false)
	from, to := assets.GradientStart, assets.GradientEnd
	d.pdf.LinearGradient(x, y-d.size*0.25, width, d.size*1.5,
		int(from.R), int(from.G), int(from.B), int(to.R), int(to.G), int(to.B),
		0, 0, span/width, 0)
	d.pdf.ClipEnd()
}

func (d *Document) Rect(x, y, w, h float64) {
	d.pdf.Rect(x, y, w, h, "F")
}

func (d *Document) GradientRect(x, y, w, h, alpha float64) {
	from, to := assets.GradientStart, assets.GradientEnd
	d.pdf.SetAlpha(alpha, "Normal")
	d.pdf.LinearGradient(x, y, w, h,
		int(from.R), int(from.G), int(from.B), int(to.R), int(to.G), int(to.B),
		0, 0, 1, 0)
	d.pdf.SetAlpha(1, "Normal")
}

func (d *Document) Image(img media.Image, x, y, w, h float64) error {
	if img.Empty() {
		return media.ErrEmptyMedia
	}
	d.images++
	name := fmt.Sprintf("img-%d", d.images)
	return d.drawImage(name, img.Format, img.Data, x, y, w, h)
}

func (d *Document) Icon(name string, x, y, w, h float64) error {
	data, err := d.icons.Rasterize(name, w, h)
	if err != nil {
		return err
	}
	return d.drawImage(fmt.Sprintf("icon-%s-%.1fx%.1f", name, w, h), media.FormatPNG, data, x, y, w, h)
}

func (d *Document) drawImage(name, format string, data []byte, x, y, w, h float64) error {
	opts := fpdf.ImageOptions{
		ImageType:             strings.ToUpper(format),
		AllowNegativePosition: true,
	}
	if !d.named[name] {
		d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
		if err := d.pdf.Error(); err != nil {
			// ошибка fpdf сохраняется до сброса и остановила бы остальные блоки
			d.pdf.ClearError()
			return fmt.Errorf("failed to register image %s: %w", name, err)
		}
		d.named[name] = true
	}
	d.pdf.SetAlpha(1, "Normal")
	d.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	return d.pdf.Error()
}

// Output записывает готовый PDF
func (d *Document) Output(w io.Writer) error {
	if err := d.pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

// Bytes возвращает готовый PDF
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
