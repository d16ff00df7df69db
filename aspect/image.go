package aspect

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"io"

	_ "golang.org/x/image/webp" // register WebP
)

// ErrEmptyImage is returned for images that declare a zero width or height.
var ErrEmptyImage = errors.New("aspect: image has no area")

// DetectImage reads only the image header from r and classifies its size.
// The returned format is the decoder name ("png", "jpeg", "gif", "webp").
func DetectImage(r io.Reader) (Ratio, image.Config, string, error) {
	cfg, format, err := image.DecodeConfig(r)
	if err != nil {
		return Square, image.Config{}, "", fmt.Errorf("aspect: decode header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Square, cfg, format, ErrEmptyImage
	}
	return Detect(float64(cfg.Width), float64(cfg.Height)), cfg, format, nil
}
