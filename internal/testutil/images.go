package testutil

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/require"
)

// JPEG encodes a small solid-colour test image.
func JPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 80, B: 60, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

// PNGHeader returns a tiny PNG whose header claims a w x h 16-bit RGBA
// image. The single IDAT byte is far short of the pixel data it implies.
func PNGHeader(t *testing.T, w, h uint32) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")

	chunk := func(kind string, data []byte) {
		require.NoError(t, binary.Write(&buf, binary.BigEndian, uint32(len(data))))
		body := append([]byte(kind), data...)
		buf.Write(body)
		require.NoError(t, binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(body)))
	}

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 16 // bit depth
	ihdr[9] = 6  // truecolour with alpha
	chunk("IHDR", ihdr)
	chunk("IDAT", []byte{0x00})
	chunk("IEND", nil)
	return buf.Bytes()
}

// SkinClasses is the class name table used across tests.
var SkinClasses = []string{"healthy", "acne", "eczema", "psoriasis", "ringworm", "melanoma"}
