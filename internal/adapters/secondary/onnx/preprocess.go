package onnx

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// readImage decodes a stored upload. The codec set matches the intake
// decode gate so every accepted format reaches the model.
func readImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// padValue is the grey YOLO letterboxing fills borders with.
const padValue = float32(114.0 / 255.0)

// letterbox records how source pixels map into the model input.
type letterbox struct {
	scale float64
	padX  int
	padY  int
	srcW  int
	srcH  int
}

// toSource maps a model-space coordinate back to the source image, clamped.
func (lb letterbox) toSource(x, y float64) (float64, float64) {
	sx := (x - float64(lb.padX)) / lb.scale
	sy := (y - float64(lb.padY)) / lb.scale
	return clamp(sx, 0, float64(lb.srcW)), clamp(sy, 0, float64(lb.srcH))
}

// letterboxImage resizes img to fit width x height keeping the aspect
// ratio, centres it on a grey canvas and returns planar CHW floats in [0,1].
func letterboxImage(img image.Image, width, height int) ([]float32, letterbox) {
	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()

	scale := math.Min(float64(width)/float64(srcW), float64(height)/float64(srcH))
	newW := max(1, int(math.Round(float64(srcW)*scale)))
	newH := max(1, int(math.Round(float64(srcH)*scale)))

	resized := resize.Resize(uint(newW), uint(newH), img, resize.Bilinear)

	lb := letterbox{
		scale: scale,
		padX:  (width - newW) / 2,
		padY:  (height - newH) / 2,
		srcW:  srcW,
		srcH:  srcH,
	}

	plane := width * height
	data := make([]float32, 3*plane)
	for i := range data {
		data[i] = padValue
	}

	rb := resized.Bounds()
	for y := 0; y < newH; y++ {
		for x := 0; x < newW; x++ {
			r, g, b, _ := resized.At(rb.Min.X+x, rb.Min.Y+y).RGBA()

			idx := (y+lb.padY)*width + (x + lb.padX)
			data[idx] = float32(r) / 65535.0
			data[plane+idx] = float32(g) / 65535.0
			data[2*plane+idx] = float32(b) / 65535.0
		}
	}

	return data, lb
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
