package htmlblocks

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"presentation-service-go/internal/pkg/assets"
)

var (
	svgPolicyOnce sync.Once
	svgPolicy     *bluemonday.Policy
)

// svgSanitizer политика для встраиваемых SVG-иконок: только фигуры, градиенты и их атрибуты
func svgSanitizer() *bluemonday.Policy {
	svgPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		shapes := []string{"path", "circle", "rect", "line", "polyline", "polygon", "ellipse"}
		policy.AllowElements("svg", "g", "defs", "title", "lineargradient", "radialgradient", "stop", "clippath")
		policy.AllowElements(shapes...)

		policy.AllowAttrs("xmlns", "viewbox", "width", "height", "fill", "stroke", "aria-hidden", "role").OnElements("svg")
		policy.AllowAttrs("id", "fill", "clip-path", "opacity", "transform").OnElements("g")
		policy.AllowAttrs(
			"d", "cx", "cy", "r", "x", "y", "x1", "y1", "x2", "y2", "points", "rx", "ry",
			"fill", "fill-rule", "clip-rule", "fill-opacity", "opacity", "transform",
			"stroke", "stroke-width", "stroke-linecap", "stroke-linejoin",
		).OnElements(shapes...)
		policy.AllowAttrs("id", "x1", "y1", "x2", "y2", "cx", "cy", "r", "gradientunits", "gradienttransform").
			OnElements("lineargradient", "radialgradient")
		policy.AllowAttrs("offset", "stop-color", "stop-opacity").OnElements("stop")
		policy.AllowAttrs("id").OnElements("clippath")

		svgPolicy = policy
	})
	return svgPolicy
}

// SanitizeSVG очищает разметку иконки перед встраиванием в документ
func SanitizeSVG(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(svgSanitizer().Sanitize(trimmed))
}

// InlineIcons выдает очищенные SVG-иконки из библиотеки ресурсов
type InlineIcons struct {
	lib   *assets.Library
	cache sync.Map
}

// NewInlineIcons создает источник встраиваемых иконок
func NewInlineIcons(lib *assets.Library) *InlineIcons {
	return &InlineIcons{lib: lib}
}

// SVG возвращает очищенную иконку или пустую строку, если иконки нет
func (i *InlineIcons) SVG(name string) string {
	if cached, ok := i.cache.Load(name); ok {
		return cached.(string)
	}
	data, err := i.lib.Icon(name)
	if err != nil {
		return ""
	}
	svg := SanitizeSVG(string(data))
	i.cache.Store(name, svg)
	return svg
}
