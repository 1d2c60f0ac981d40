package services

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"disease-intake-service/internal/core/domain"
)

// Pixel bounds applied when the configured limits leave them unset.
const (
	DefaultMaxImageWidth  = 8192
	DefaultMaxImageHeight = 8192
	DefaultMaxImagePixels = 4096 * 4096
)

var errEmptyImage = errors.New("decoded image has no pixels")

// checkDimensions reads only the image header and rejects sizes whose
// pixel buffer would exceed the limits.
func checkDimensions(data []byte, limits domain.UploadLimits) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return errEmptyImage
	}
	if cfg.Width > limits.MaxWidth || cfg.Height > limits.MaxHeight {
		return fmt.Errorf("dimensions %dx%d exceed %dx%d",
			cfg.Width, cfg.Height, limits.MaxWidth, limits.MaxHeight)
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > limits.MaxPixels {
		return fmt.Errorf("pixel count %d exceeds %d", pixels, limits.MaxPixels)
	}
	return nil
}

// decodeImage checks the header against limits, then fully decodes data
// with the registered codecs and returns the detected format. Truncated
// payloads fail here rather than in the model.
func decodeImage(data []byte, limits domain.UploadLimits) (string, error) {
	if err := checkDimensions(data, limits); err != nil {
		return "", err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	if img == nil || img.Bounds().Empty() {
		return "", errEmptyImage
	}
	return format, nil
}
