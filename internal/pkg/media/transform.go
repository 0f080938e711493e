package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	"image/png"

	_ "golang.org/x/image/webp"
)

// Форматы, которые понимает PDF-холст
const (
	FormatJPEG = "jpg"
	FormatPNG  = "png"
)

var ErrUnsupportedImage = errors.New("unsupported image format")

// Image подготовленное изображение
type Image struct {
	Data   []byte
	Format string
	Width  int
	Height int
}

// Empty сообщает, что изображения нет
func (i Image) Empty() bool {
	return len(i.Data) == 0
}

// Prepare приводит изображение к JPEG или PNG.
// JPEG и PNG без обесцвечивания отдаются как есть, кроме 16-битных и чересстрочных PNG.
// Остальное перекодируется
func Prepare(data []byte, greyscale bool) (Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	if !greyscale {
		switch format {
		case "jpeg":
			return Image{Data: data, Format: FormatJPEG, Width: cfg.Width, Height: cfg.Height}, nil
		case "png":
			if !wideColor(cfg.ColorModel) && !interlaced(data) {
				return Image{Data: data, Format: FormatPNG, Width: cfg.Width, Height: cfg.Height}, nil
			}
		}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("failed to decode %s image: %w", format, err)
	}

	if greyscale {
		img = Greyscale(img)
		return encodeJPEG(img)
	}
	// gif и webp могут быть прозрачными
	return encodePNG(toNRGBA(img))
}

// Greyscale переводит изображение в оттенки серого
func Greyscale(img image.Image) image.Image {
	b := img.Bounds()
	gray := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
	return gray
}

// wideColor сообщает о 16-битной палитре, которую PDF-холст не принимает
func wideColor(m color.Model) bool {
	return m == color.RGBA64Model || m == color.NRGBA64Model || m == color.Gray16Model
}

// pngInterlaceOffset смещение байта метода чередования в IHDR
const pngInterlaceOffset = 28

// interlaced сообщает о PNG с чередованием Adam7, которое PDF-холст не принимает
func interlaced(data []byte) bool {
	return len(data) > pngInterlaceOffset && data[pngInterlaceOffset] != 0
}

func toNRGBA(img image.Image) image.Image {
	if _, ok := img.(*image.NRGBA); ok {
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

func encodeJPEG(img image.Image) (Image, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return Image{}, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	b := img.Bounds()
	return Image{Data: buf.Bytes(), Format: FormatJPEG, Width: b.Dx(), Height: b.Dy()}, nil
}

func encodePNG(img image.Image) (Image, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Image{}, fmt.Errorf("failed to encode png: %w", err)
	}
	b := img.Bounds()
	return Image{Data: buf.Bytes(), Format: FormatPNG, Width: b.Dx(), Height: b.Dy()}, nil
}
