package layout

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"presentation-service-go/internal/pkg/assets"
	"presentation-service-go/internal/pkg/media"
)

// op запись одного вызова холста
type op struct {
	kind  string
	name  string
	text  string
	page  int
	box   Box
	size  float64
	alpha float64
}

// recorder холст, который запоминает вызовы. Ширина символа равна половине кегля
type recorder struct {
	lib   *assets.Library
	size  float64
	alpha float64
	pages int
	ops   []op
	// reject данные изображения, которые холст не принимает
	reject []byte
}

var _ Canvas = (*recorder)(nil)

func newRecorder() *recorder {
	return &recorder{lib: assets.New(""), size: 14}
}

func (r *recorder) AddPage() {
	r.pages++
	r.ops = append(r.ops, op{kind: "page", page: r.pages})
}

func (r *recorder) PageSize() (float64, float64) { return PageWidth, PageHeight }

func (r *recorder) SetFont(_ assets.Weight, size float64) { r.size = size }

func (r *recorder) TextWidth(s string) float64 {
	return float64(len([]rune(s))) * r.size * 0.5
}

func (r *recorder) SetFill(_ Color, alpha float64) { r.alpha = alpha }

func (r *recorder) Text(x, y float64, s string) {
	r.ops = append(r.ops, op{kind: "text", text: s, page: r.pages, box: Box{X: x, Y: y}, size: r.size, alpha: r.alpha})
}

func (r *recorder) GradientText(x, y float64, s string, span float64) {
	r.ops = append(r.ops, op{kind: "gradient_text", text: s, page: r.pages, box: Box{X: x, Y: y, W: span}, size: r.size})
}

func (r *recorder) Rect(x, y, w, h float64) {
	r.ops = append(r.ops, op{kind: "rect", page: r.pages, box: Box{X: x, Y: y, W: w, H: h}, alpha: r.alpha})
}

func (r *recorder) GradientRect(x, y, w, h, alpha float64) {
	r.ops = append(r.ops, op{kind: "gradient_rect", page: r.pages, box: Box{X: x, Y: y, W: w, H: h}, alpha: alpha})
}

func (r *recorder) Image(img media.Image, x, y, w, h float64) error {
	if img.Empty() {
		return media.ErrEmptyMedia
	}
	if r.reject != nil && bytes.Equal(img.Data, r.reject) {
		return errors.New("image rejected by canvas")
	}
	r.ops = append(r.ops, op{kind: "image", page: r.pages, box: Box{X: x, Y: y, W: w, H: h}})
	return nil
}

// Icon проверяет, что иконка есть в библиотеке
func (r *recorder) Icon(name string, x, y, w, h float64) error {
	if _, err := r.lib.Icon(name); err != nil {
		return err
	}
	r.ops = append(r.ops, op{kind: "icon", name: name, page: r.pages, box: Box{X: x, Y: y, W: w, H: h}})
	return nil
}

func (r *recorder) filter(kind string) []op {
	var res []op
	for _, o := range r.ops {
		if o.kind == kind {
			res = append(res, o)
		}
	}
	return res
}

func (r *recorder) texts() []string {
	var res []string
	for _, o := range r.ops {
		if o.kind == "text" || o.kind == "gradient_text" {
			res = append(res, o.text)
		}
	}
	return res
}

func (r *recorder) joined() string {
	return strings.Join(r.texts(), " ")
}

func (r *recorder) icons() []string {
	var res []string
	for _, o := range r.filter("icon") {
		res = append(res, o.name)
	}
	return res
}

// stubImages источник изображений без сети. URL из failing возвращают ошибку,
// URL из custom свое изображение
type stubImages struct {
	mu      sync.Mutex
	img     media.Image
	failing map[string]bool
	custom  map[string]media.Image
	calls   []string
	maps    int
	mapErr  error
}

func newStubImages(t *testing.T) *stubImages {
	t.Helper()
	src := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			src.Set(x, y, color.RGBA{R: 30, G: 120, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))
	return &stubImages{
		img:     media.Image{Data: buf.Bytes(), Format: media.FormatPNG, Width: 40, Height: 30},
		failing: make(map[string]bool),
		custom:  make(map[string]media.Image),
	}
}

var errStubImage = errors.New("stub image failed")

func (s *stubImages) Image(_ context.Context, url string, _ bool) (media.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, url)
	if s.failing[url] {
		return media.Image{}, errStubImage
	}
	if img, ok := s.custom[url]; ok {
		return img, nil
	}
	return s.img, nil
}

// brokenImage изображение, которое проходит загрузку, но не встраивается в PDF
var brokenImage = media.Image{Data: []byte("not a png"), Format: media.FormatPNG, Width: 4, Height: 3}

func (s *stubImages) StaticMap(_ context.Context, _, _ float64, _ int) (media.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maps++
	if s.mapErr != nil {
		return media.Image{}, s.mapErr
	}
	return s.img, nil
}
