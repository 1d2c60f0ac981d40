package onnx

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func solidImage(w, h int, c color.RGBA) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestLetterboxImage_WideImage(t *testing.T) {
	img := solidImage(200, 100, color.RGBA{R: 255, A: 255})

	data, lb := letterboxImage(img, 64, 64)
	require.Len(t, data, 3*64*64)

	assert.InDelta(t, 0.32, lb.scale, 1e-9)
	assert.Equal(t, 0, lb.padX)
	assert.Equal(t, 16, lb.padY)

	plane := 64 * 64
	// top border is padding
	assert.Equal(t, padValue, data[0])
	assert.Equal(t, padValue, data[plane])
	// centre pixel is red
	centre := 32*64 + 32
	assert.InDelta(t, 1.0, data[centre], 0.01)
	assert.InDelta(t, 0.0, data[plane+centre], 0.01)
	assert.InDelta(t, 0.0, data[2*plane+centre], 0.01)
}

func TestLetterboxImage_TallImage(t *testing.T) {
	img := solidImage(50, 100, color.RGBA{G: 255, A: 255})

	_, lb := letterboxImage(img, 64, 64)
	assert.InDelta(t, 0.64, lb.scale, 1e-9)
	assert.Equal(t, 16, lb.padX)
	assert.Equal(t, 0, lb.padY)
}

func TestLetterbox_ToSource(t *testing.T) {
	lb := letterbox{scale: 0.5, padX: 0, padY: 10, srcW: 200, srcH: 100}

	x, y := lb.toSource(50, 35)
	assert.Equal(t, 100.0, x)
	assert.Equal(t, 50.0, y)

	x, y = lb.toSource(-20, 500)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 100.0, y)
}

func TestReadImage_AcceptedFormats(t *testing.T) {
	src := solidImage(24, 16, color.RGBA{R: 200, G: 80, B: 60, A: 255})
	encoders := map[string]func(*bytes.Buffer) error{
		"jpeg": func(b *bytes.Buffer) error { return jpeg.Encode(b, src, nil) },
		"png":  func(b *bytes.Buffer) error { return png.Encode(b, src) },
		"gif":  func(b *bytes.Buffer) error { return gif.Encode(b, src, nil) },
		"bmp":  func(b *bytes.Buffer) error { return bmp.Encode(b, src) },
	}

	dir := t.TempDir()
	for name, encode := range encoders {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, encode(&buf))
			path := filepath.Join(dir, "image_"+name+".jpg")
			require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

			img, err := readImage(path)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 24, 16), img.Bounds())
		})
	}
}

func TestReadImage_Errors(t *testing.T) {
	_, err := readImage(filepath.Join(t.TempDir(), "missing.jpg"))
	assert.ErrorContains(t, err, "open image")

	path := filepath.Join(t.TempDir(), "garbage.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))
	_, err = readImage(path)
	assert.ErrorContains(t, err, "decode image")
}
