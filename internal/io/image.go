package ioutils

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder registration

	"golang.org/x/image/draw"
)

// ImageService turns embedded cover art into small JPEG thumbnails for the
// sample pack browser.
type ImageService struct {
	quality int
}

// NewImageService creates an ImageService encoding at JPEG quality 85.
func NewImageService() *ImageService {
	return &ImageService{quality: 85}
}

// Thumbnail decodes data (JPEG or PNG), scales it to fit within
// maxSize x maxSize keeping the aspect ratio, and re-encodes it as JPEG.
//
// Images already within bounds are only re-encoded. Catmull-Rom is used
// for scaling.
func (s *ImageService) Thumbnail(ctx context.Context, data []byte, maxSize int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), maxSize)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: s.quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fitWithin scales (w, h) down so neither side exceeds max.
func fitWithin(w, h, max int) (int, int) {
	if max <= 0 || (w <= max && h <= max) {
		return w, h
	}
	if w >= h {
		return max, max * h / w
	}
	return max * w / h, max
}
