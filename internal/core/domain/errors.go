package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a pipeline failure for responses and logs.
type ErrorKind string

const (
	KindInvalidInput ErrorKind = "INVALID_INPUT"
	KindStorage      ErrorKind = "STORAGE_ERROR"
	KindInference    ErrorKind = "INFERENCE_ERROR"
	KindStartupFatal ErrorKind = "STARTUP_FATAL"
	KindUnclassified ErrorKind = "INTERNAL"
)

// ============================================================================
// Intake Errors
// ============================================================================

// Validation errors
var (
	ErrNoImageData      = errors.New("no image data")
	ErrInvalidImageData = errors.New("invalid image data")
	ErrImageTooLarge    = errors.New("image too large")
)

// Storage errors
var (
	ErrStorageFailed = errors.New("failed to save image")
)

// Inference errors
var (
	ErrInferenceFailed  = errors.New("model inference failed")
	ErrUnknownClassID   = errors.New("class id not in class name table")
	ErrModelUnavailable = errors.New("model not loaded")
)

// ============================================================================
// Startup Errors
// ============================================================================

var (
	ErrNoModelAvailable = errors.New("no detection model could be loaded")
	ErrInvalidMetadata  = errors.New("invalid model metadata")
)

// InferenceError wraps the detector failure so the cause can be reported
// back to the client next to the generic message.
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("%s: %v", ErrInferenceFailed, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

func (e *InferenceError) Is(target error) bool { return target == ErrInferenceFailed }

// KindOf reports the taxonomy bucket an error belongs to.
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrNoImageData),
		errors.Is(err, ErrInvalidImageData),
		errors.Is(err, ErrImageTooLarge):
		return KindInvalidInput
	case errors.Is(err, ErrStorageFailed):
		return KindStorage
	case errors.Is(err, ErrInferenceFailed),
		errors.Is(err, ErrModelUnavailable):
		return KindInference
	case errors.Is(err, ErrNoModelAvailable):
		return KindStartupFatal
	default:
		return KindUnclassified
	}
}
