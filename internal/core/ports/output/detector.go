package ports

import (
	"context"

	"disease-intake-service/internal/core/domain"
)

// Detector is a loaded object-detection model. Implementations are
// constructed once at startup and are read-only afterwards.
type Detector interface {
	// Detect runs the model on the image stored at path
	Detect(ctx context.Context, path string) ([]domain.Detection, error)

	// Info describes the loaded model and its class name table
	Info() (*domain.ModelInfo, error)

	// Close releases the runtime resources held by the model
	Close() error
}

// DetectorLoader builds a Detector from a model artifact.
type DetectorLoader interface {
	Load(spec domain.ModelSpec) (Detector, error)
}
