// Package layout рисует инфоблоки презентации на страницах PDF.
// Координаты абсолютные, в пунктах, начало в левом верхнем углу страницы A4 в альбомной ориентации.
// Каждый блок сам добавляет свои страницы и не зависит от положения курсора других блоков.
package layout

import (
	"strings"

	"presentation-service-go/internal/pkg/assets"
	"presentation-service-go/internal/pkg/media"
)

// Размер страницы A4 в альбомной ориентации
const (
	PageWidth  = 841.89
	PageHeight = 595.28
)

// baselineRatio положение базовой линии относительно кегля
const baselineRatio = 0.75

// Color цвет RGB
type Color struct {
	R, G, B uint8
}

var (
	White     = Color{R: 0xff, G: 0xff, B: 0xff}
	Black     = Color{}
	DarkGrey  = Color{R: 0x43, G: 0x43, B: 0x43}
	Grey      = Color{R: 0x7b, G: 0x7b, B: 0x7b}
	LineGreen = Color{R: 0xa7, G: 0xcf, B: 0x7b}
	Accent    = Color{R: 0x73, G: 0xc1, B: 0x67}
)

// Canvas поверхность для рисования. Текст позиционируется по верхней границе строки
type Canvas interface {
	AddPage()
	PageSize() (width, height float64)
	SetFont(weight assets.Weight, size float64)
	TextWidth(s string) float64
	// SetFill задает цвет и прозрачность для Text и Rect
	SetFill(c Color, alpha float64)
	Text(x, y float64, s string)
	// GradientText закрашивает текст фирменным градиентом на отрезке span от x
	GradientText(x, y float64, s string, span float64)
	Rect(x, y, w, h float64)
	GradientRect(x, y, w, h, alpha float64)
	Image(img media.Image, x, y, w, h float64) error
	Icon(name string, x, y, w, h float64) error
}

// Box прямоугольная область страницы
type Box struct {
	X, Y, W, H float64
}

// FitBox вписывает изображение в область с сохранением пропорций и центрирует его
func FitBox(imgW, imgH float64, box Box) Box {
	if imgW <= 0 || imgH <= 0 {
		return box
	}
	scale := box.W / imgW
	if s := box.H / imgH; s < scale {
		scale = s
	}
	w, h := imgW*scale, imgH*scale
	return Box{
		X: box.X + (box.W-w)/2,
		Y: box.Y + (box.H-h)/2,
		W: w,
		H: h,
	}
}

// ellipsis окончание обрезанной строки
const ellipsis = "..."

// TruncateText укорачивает строку до width текущим шрифтом, добавляя многоточие
func TruncateText(c Canvas, text string, width float64) string {
	if c.TextWidth(text) <= width {
		return text
	}
	runes := []rune(strings.TrimSpace(text))
	for n := len(runes) - 1; n > 0; n-- {
		candidate := strings.TrimRight(string(runes[:n]), " ") + ellipsis
		if c.TextWidth(candidate) <= width {
			return candidate
		}
	}
	return ""
}

// WrapText переносит текст по словам так, чтобы строка не превышала width текущим шрифтом
func WrapText(c Canvas, text string, width float64) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	lines := make([]string, 0, 2)
	current := words[0]
	for _, w := range words[1:] {
		candidate := current + " " + w
		if c.TextWidth(candidate) > width {
			lines = append(lines, current)
			current = w
			continue
		}
		current = candidate
	}
	return append(lines, current)
}
