package domain

import "fmt"

const (
	// NoDetectionLabel is returned when the model reports no boxes.
	NoDetectionLabel      = "No disease"
	NoDetectionConfidence = "0%"
)

// Box is a detection rectangle in source image pixels.
type Box struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Detection is a single model output box.
type Detection struct {
	ClassID    int     `json:"class_id"`
	Confidence float64 `json:"confidence"`
	Box        Box     `json:"box"`
}

// DetectionResult is what the client gets back for one image.
type DetectionResult struct {
	Label      string `json:"result"`
	Confidence string `json:"confidence"`
}

// TopDetection returns the index of the most confident detection, or -1
// when there is none. The first maximum wins on ties.
func TopDetection(dets []Detection) int {
	best := -1
	for i, d := range dets {
		if best < 0 || d.Confidence > dets[best].Confidence {
			best = i
		}
	}
	return best
}

// FormatConfidence renders a score in [0,1] as a one-decimal percentage.
func FormatConfidence(score float64) string {
	return fmt.Sprintf("%.1f%%", score*100)
}

// Summarize picks the top detection and maps its class id through the
// class name table.
func Summarize(dets []Detection, classes []string) (DetectionResult, error) {
	idx := TopDetection(dets)
	if idx < 0 {
		return DetectionResult{Label: NoDetectionLabel, Confidence: NoDetectionConfidence}, nil
	}

	top := dets[idx]
	if top.ClassID < 0 || top.ClassID >= len(classes) {
		return DetectionResult{}, fmt.Errorf("%w: %d", ErrUnknownClassID, top.ClassID)
	}

	return DetectionResult{
		Label:      classes[top.ClassID],
		Confidence: FormatConfidence(top.Confidence),
	}, nil
}
