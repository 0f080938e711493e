package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
)

// Имена фоновых изображений
const (
	PatternInfo           = "pattern.png"
	PatternBuildingHeader = "buildingHeaderPattern.png"
	PatternLocation       = "patternLocation.png"
	PatternPrice          = "priceTemplate.png"
	PatternFooter         = "footerPattern.png"
	PatternAreaNarrow     = "areaCommercialTemplate526.png"
	PatternAreaWide       = "areaCommercialTemplate842.png"
)

// Цвета фирменного градиента
var (
	GradientStart = rgb(0x00, 0x80, 0x54)
	GradientEnd   = rgb(0xb4, 0xd8, 0x8b)
)

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

type patternSpec struct {
	width, height int
	from, to      color.RGBA
	diagonal      bool
	stripes       bool
}

var patternSpecs = map[string]patternSpec{
	PatternInfo:           {width: 507, height: 595, from: GradientStart, to: GradientEnd, diagonal: true, stripes: true},
	PatternBuildingHeader: {width: 842, height: 595, from: rgb(0x3a, 0x3f, 0x44), to: rgb(0x8a, 0x90, 0x96), diagonal: true},
	PatternLocation:       {width: 528, height: 595, from: rgb(0xf4, 0xf6, 0xf1), to: rgb(0xff, 0xff, 0xff), diagonal: true, stripes: true},
	PatternPrice:          {width: 528, height: 117, from: GradientStart, to: GradientEnd},
	PatternFooter:         {width: 842, height: 595, from: GradientStart, to: GradientEnd, diagonal: true, stripes: true},
	PatternAreaNarrow:     {width: 526, height: 595, from: rgb(0x4b, 0x50, 0x55), to: rgb(0x9a, 0xa0, 0xa6), diagonal: true},
	PatternAreaWide:       {width: 842, height: 595, from: rgb(0x4b, 0x50, 0x55), to: rgb(0x9a, 0xa0, 0xa6), diagonal: true},
}

// PatternNames имена всех известных фонов
func PatternNames() []string {
	return []string{PatternInfo, PatternBuildingHeader, PatternLocation, PatternPrice, PatternFooter, PatternAreaNarrow, PatternAreaWide}
}

// Pattern возвращает PNG фона. Файл img/<name> из каталога ресурсов имеет приоритет,
// иначе фон генерируется один раз и кешируется
func (l *Library) Pattern(name string) ([]byte, error) {
	if cached, ok := l.patterns.Load(name); ok {
		return cached.([]byte), nil
	}

	if custom, found := l.readFile(filepath.Join("img", name)); found {
		l.patterns.Store(name, custom)
		return custom, nil
	}

	spec, ok := patternSpecs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPatternNotFound, name)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, renderPattern(spec)); err != nil {
		return nil, fmt.Errorf("failed to encode pattern %s: %w", name, err)
	}

	data := buf.Bytes()
	l.patterns.Store(name, data)
	return data, nil
}

func renderPattern(spec patternSpec) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, spec.width, spec.height))
	span := float64(spec.width - 1)
	if spec.diagonal {
		span += float64(spec.height - 1)
	}
	if span <= 0 {
		span = 1
	}

	for y := 0; y < spec.height; y++ {
		for x := 0; x < spec.width; x++ {
			pos := float64(x)
			if spec.diagonal {
				pos += float64(y)
			}
			c := Lerp(spec.from, spec.to, pos/span)
			if spec.stripes && (x+y)%48 < 2 {
				c = Lerp(c, rgb(0xff, 0xff, 0xff), 0.12)
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// Lerp линейная интерполяция между цветами, t в диапазоне [0, 1]
func Lerp(from, to color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return color.RGBA{
		R: mix(from.R, to.R),
		G: mix(from.G, to.G),
		B: mix(from.B, to.B),
		A: mix(from.A, to.A),
	}
}
