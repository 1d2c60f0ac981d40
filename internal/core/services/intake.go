package services

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"disease-intake-service/internal/core/domain"
	"disease-intake-service/internal/core/ports/output"
)

// DefaultMaxUploadBytes bounds a single camera upload.
const DefaultMaxUploadBytes int64 = 10 << 20

// IntakeService runs the validate, store, infer pipeline for one upload.
type IntakeService struct {
	detector ports.Detector
	store    ports.ImageStore
	captures ports.CaptureRepository
	limits   domain.UploadLimits
	now      func() time.Time
}

// NewIntakeService wires the pipeline. captures may be nil when the
// ledger is disabled. Zero limits fall back to the package defaults.
func NewIntakeService(detector ports.Detector, store ports.ImageStore, captures ports.CaptureRepository, limits domain.UploadLimits) *IntakeService {
	if limits.MaxBytes <= 0 {
		limits.MaxBytes = DefaultMaxUploadBytes
	}
	if limits.MaxWidth <= 0 {
		limits.MaxWidth = DefaultMaxImageWidth
	}
	if limits.MaxHeight <= 0 {
		limits.MaxHeight = DefaultMaxImageHeight
	}
	if limits.MaxPixels <= 0 {
		limits.MaxPixels = DefaultMaxImagePixels
	}
	return &IntakeService{
		detector: detector,
		store:    store,
		captures: captures,
		limits:   limits,
		now:      time.Now,
	}
}

func (s *IntakeService) MaxBytes() int64 {
	return s.limits.MaxBytes
}

func (s *IntakeService) Process(ctx context.Context, data []byte) (*domain.UploadResult, error) {
	stage := domain.StageReceived

	if len(data) == 0 {
		return nil, s.fail(ctx, stage, domain.ErrNoImageData)
	}
	if int64(len(data)) > s.limits.MaxBytes {
		return nil, s.fail(ctx, stage, domain.ErrImageTooLarge)
	}

	format, err := decodeImage(data, s.limits)
	if err != nil {
		return nil, s.fail(ctx, stage, fmt.Errorf("%w: %v", domain.ErrInvalidImageData, err))
	}
	stage = domain.StageValidated

	img, err := s.store.Save(ctx, data, format, s.now())
	if err != nil {
		return nil, s.fail(ctx, stage, fmt.Errorf("%w: %v", domain.ErrStorageFailed, err))
	}
	stage = domain.StageStored

	logEntry(ctx).WithFields(log.Fields{
		"path":   img.Path,
		"size":   img.Size,
		"format": img.Format,
	}).Info("image saved")

	s.recordCapture(ctx, img)

	result, err := s.infer(ctx, img.Path)
	if err != nil {
		return nil, s.fail(ctx, stage, err)
	}

	logEntry(ctx).WithFields(log.Fields{
		"image":      img.Filename,
		"result":     result.Label,
		"confidence": result.Confidence,
	}).Info("prediction")

	return &domain.UploadResult{Image: img, Result: result}, nil
}

func (s *IntakeService) infer(ctx context.Context, path string) (domain.DetectionResult, error) {
	if s.detector == nil {
		return domain.DetectionResult{}, &domain.InferenceError{Err: domain.ErrModelUnavailable}
	}

	dets, err := s.detector.Detect(ctx, path)
	if err != nil {
		return domain.DetectionResult{}, &domain.InferenceError{Err: err}
	}

	info, err := s.detector.Info()
	if err != nil {
		return domain.DetectionResult{}, &domain.InferenceError{Err: err}
	}

	result, err := domain.Summarize(dets, info.Classes)
	if err != nil {
		return domain.DetectionResult{}, &domain.InferenceError{Err: err}
	}
	return result, nil
}

// recordCapture appends to the ledger when one is configured. The upload
// has already been stored, so a ledger failure is only logged.
func (s *IntakeService) recordCapture(ctx context.Context, img *domain.StoredImage) {
	if s.captures == nil {
		return
	}
	if err := s.captures.Record(ctx, img); err != nil {
		logEntry(ctx).WithError(err).WithField("image", img.Filename).Warn("record capture failed")
	}
}

func (s *IntakeService) fail(ctx context.Context, stage domain.Stage, err error) error {
	logEntry(ctx).WithError(err).WithFields(log.Fields{
		"stage":      stage,
		"error_kind": domain.KindOf(err),
	}).Warn("upload rejected")
	return err
}

// logEntry carries the request id, when there is one, onto intake logs.
func logEntry(ctx context.Context) *log.Entry {
	if id := domain.RequestIDFrom(ctx); id != "" {
		return log.WithField("request_id", id)
	}
	return log.NewEntry(log.StandardLogger())
}

// Health reports whether a model is loaded and how many classes it knows.
func (s *IntakeService) Health(ctx context.Context) (*domain.HealthStatus, error) {
	if s.detector == nil {
		return nil, domain.ErrModelUnavailable
	}

	info, err := s.detector.Info()
	if err != nil {
		return nil, fmt.Errorf("model info: %w", err)
	}

	return &domain.HealthStatus{
		ModelLoaded: true,
		Classes:     len(info.Classes),
		Model:       info.Path,
		Device:      info.Device,
		Fallback:    info.Fallback,
	}, nil
}
