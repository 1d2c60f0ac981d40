package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"disease-intake-service/internal/core/domain"
	"disease-intake-service/internal/core/ports/output"
)

// MockDetector is a mock of Detector.
type MockDetector struct {
	mock.Mock
}

func (m *MockDetector) Detect(ctx context.Context, path string) ([]domain.Detection, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Detection), args.Error(1)
}

func (m *MockDetector) Info() (*domain.ModelInfo, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModelInfo), args.Error(1)
}

func (m *MockDetector) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockDetectorLoader is a mock of DetectorLoader.
type MockDetectorLoader struct {
	mock.Mock
}

func (m *MockDetectorLoader) Load(spec domain.ModelSpec) (ports.Detector, error) {
	args := m.Called(spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.Detector), args.Error(1)
}

// MockImageStore is a mock of ImageStore.
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Save(ctx context.Context, data []byte, format string, capturedAt time.Time) (*domain.StoredImage, error) {
	args := m.Called(ctx, data, format, capturedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StoredImage), args.Error(1)
}

// MockCaptureRepo is a mock of CaptureRepository.
type MockCaptureRepo struct {
	mock.Mock
}

func (m *MockCaptureRepo) Record(ctx context.Context, image *domain.StoredImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}
