package layout

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"presentation-service-go/internal/pkg/assets"
)

// iconScale во сколько раз растр иконки плотнее ее размера в пунктах
const iconScale = 4

// IconRasterizer переводит SVG-иконки в PNG и кеширует результат по имени и размеру
type IconRasterizer struct {
	lib   *assets.Library
	cache sync.Map
}

// NewIconRasterizer создает растеризатор поверх библиотеки ресурсов
func NewIconRasterizer(lib *assets.Library) *IconRasterizer {
	return &IconRasterizer{lib: lib}
}

// Rasterize возвращает PNG иконки размером w на h пунктов
func (r *IconRasterizer) Rasterize(name string, w, h float64) ([]byte, error) {
	pw := int(math.Ceil(w * iconScale))
	ph := int(math.Ceil(h * iconScale))
	if pw <= 0 || ph <= 0 {
		return nil, fmt.Errorf("icon %s has empty size", name)
	}

	key := fmt.Sprintf("%s@%dx%d", name, pw, ph)
	if cached, ok := r.cache.Load(key); ok {
		return cached.([]byte), nil
	}

	svg, err := r.lib.Icon(name)
	if err != nil {
		return nil, err
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("failed to parse icon %s: %w", name, err)
	}
	icon.SetTarget(0, 0, float64(pw), float64(ph))

	rgba := image.NewRGBA(image.Rect(0, 0, pw, ph))
	scanner := rasterx.NewScannerGV(pw, ph, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(pw, ph, scanner), 1)

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, fmt.Errorf("failed to encode icon %s: %w", name, err)
	}

	data := buf.Bytes()
	r.cache.Store(key, data)
	return data, nil
}
