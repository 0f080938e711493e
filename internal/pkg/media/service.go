// Package media загружает фотографии и статические карты для презентаций
// и приводит их к форматам, пригодным для PDF и HTML.
package media

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Масштаб статической карты
const (
	ZoomPDF  = 17
	ZoomHTML = 13
)

// StaticMapBaseURL адрес Google Static Maps API
const StaticMapBaseURL = "https://maps.googleapis.com/maps/api/staticmap"

// Service выдает подготовленные изображения
type Service struct {
	source     Source
	mapBaseURL string
	mapsKey    string
}

// NewService создает сервис. mapBaseURL пустой означает StaticMapBaseURL
func NewService(source Source, mapBaseURL, mapsKey string) *Service {
	if mapBaseURL == "" {
		mapBaseURL = StaticMapBaseURL
	}
	return &Service{
		source:     source,
		mapBaseURL: mapBaseURL,
		mapsKey:    mapsKey,
	}
}

// Image загружает и подготавливает изображение
func (s *Service) Image(ctx context.Context, rawURL string, greyscale bool) (Image, error) {
	data, err := s.source.Fetch(ctx, rawURL)
	if err != nil {
		return Image{}, fmt.Errorf("failed to fetch %s: %w", rawURL, err)
	}
	img, err := Prepare(data, greyscale)
	if err != nil {
		return Image{}, fmt.Errorf("failed to prepare %s: %w", rawURL, err)
	}
	return img, nil
}

// StaticMap загружает карту вокруг точки. Карта всегда обесцвечена
func (s *Service) StaticMap(ctx context.Context, lat, lng float64, zoom int) (Image, error) {
	return s.Image(ctx, s.StaticMapURL(lat, lng, zoom), true)
}

// StaticMapURL адрес карты размером 314x595 с центром в точке
func (s *Service) StaticMapURL(lat, lng float64, zoom int) string {
	q := url.Values{}
	q.Set("center", strconv.FormatFloat(lat, 'f', -1, 64)+", "+strconv.FormatFloat(lng, 'f', -1, 64))
	q.Set("size", "314x595")
	q.Set("language", "ru-ru")
	q.Set("format", "png")
	q.Set("zoom", strconv.Itoa(zoom))
	q.Set("scale", "2")
	q.Set("maptype", "roadmap")
	q.Set("key", s.mapsKey)
	return s.mapBaseURL + "?" + q.Encode()
}
