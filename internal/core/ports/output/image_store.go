package ports

import (
	"context"
	"time"

	"disease-intake-service/internal/core/domain"
)

// ImageStore persists raw upload bytes.
type ImageStore interface {
	// Save writes data unmodified and returns the stored file descriptor
	Save(ctx context.Context, data []byte, format string, capturedAt time.Time) (*domain.StoredImage, error)
}

// CaptureRepository keeps an append-only ledger of accepted uploads.
type CaptureRepository interface {
	Record(ctx context.Context, image *domain.StoredImage) error
}
