package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// StoredImage is a camera upload persisted to the upload directory.
// It is written once and never mutated by the service.
type StoredImage struct {
	ID         uuid.UUID `json:"id"`
	Filename   string    `json:"filename"`
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	Format     string    `json:"format"`
	CapturedAt time.Time `json:"captured_at"`
}

// UploadResult is the outcome of a fully successful intake.
type UploadResult struct {
	Image  *StoredImage
	Result DetectionResult
}

// Stage is the furthest step an upload reached.
type Stage string

const (
	StageReceived  Stage = "RECEIVED"
	StageValidated Stage = "VALIDATED"
	StageStored    Stage = "STORED"
	StageInferred  Stage = "INFERRED"
	StageResponded Stage = "RESPONDED"
)

// UploadLimits bounds what a single upload may cost. Pixel limits are
// checked against the image header before any pixel buffer is allocated.
type UploadLimits struct {
	MaxBytes  int64
	MaxWidth  int
	MaxHeight int
	MaxPixels int64
}

type requestIDKey struct{}

// WithRequestID tags ctx with the id of the HTTP request it serves.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the request id stored on ctx, or "".
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
