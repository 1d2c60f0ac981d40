package onnx

import (
	"fmt"
	"math"
	"sort"

	"disease-intake-service/internal/core/domain"
)

// decodeOutput turns a [1, 4+classes, anchors] YOLO head into detections
// in source pixels, filtered by confidence and per-class NMS.
func decodeOutput(out []float32, numClasses, anchors int, lb letterbox, confThreshold, iouThreshold float64) ([]domain.Detection, error) {
	if want := (boxChannels + numClasses) * anchors; len(out) < want {
		return nil, fmt.Errorf("output has %d values, want %d", len(out), want)
	}

	var candidates []domain.Detection
	for i := 0; i < anchors; i++ {
		bestClass := -1
		bestScore := float32(0)
		for c := 0; c < numClasses; c++ {
			s := out[(boxChannels+c)*anchors+i]
			if s > bestScore {
				bestScore = s
				bestClass = c
			}
		}
		if bestClass < 0 || float64(bestScore) < confThreshold {
			continue
		}

		cx := float64(out[i])
		cy := float64(out[anchors+i])
		w := float64(out[2*anchors+i])
		h := float64(out[3*anchors+i])

		x1, y1 := lb.toSource(cx-w/2, cy-h/2)
		x2, y2 := lb.toSource(cx+w/2, cy+h/2)

		candidates = append(candidates, domain.Detection{
			ClassID:    bestClass,
			Confidence: float64(bestScore),
			Box:        domain.Box{X1: x1, Y1: y1, X2: x2, Y2: y2},
		})
	}

	return nonMaxSuppression(candidates, iouThreshold), nil
}

// nonMaxSuppression keeps the highest scoring box of each overlapping
// same-class group. Output is ordered by descending confidence.
func nonMaxSuppression(dets []domain.Detection, iouThreshold float64) []domain.Detection {
	sort.SliceStable(dets, func(i, j int) bool {
		return dets[i].Confidence > dets[j].Confidence
	})

	kept := make([]domain.Detection, 0, len(dets))
	for _, d := range dets {
		suppressed := false
		for _, k := range kept {
			if k.ClassID == d.ClassID && iou(k.Box, d.Box) > iouThreshold {
				suppressed = true
				break
			}
		}
		if !suppressed {
			kept = append(kept, d)
		}
	}
	return kept
}

func iou(a, b domain.Box) float64 {
	ix := math.Max(0, math.Min(a.X2, b.X2)-math.Max(a.X1, b.X1))
	iy := math.Max(0, math.Min(a.Y2, b.Y2)-math.Max(a.Y1, b.Y1))
	inter := ix * iy
	union := area(a) + area(b) - inter
	if union <= 0 {
		return 0
	}
	return inter / union
}

func area(b domain.Box) float64 {
	return math.Max(0, b.X2-b.X1) * math.Max(0, b.Y2-b.Y1)
}
