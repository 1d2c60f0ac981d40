package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"disease-intake-service/internal/core/domain"
	"disease-intake-service/internal/testutil"
)

func TestModelLoaderService_Start_Primary(t *testing.T) {
	loader := new(testutil.MockDetectorLoader)
	detector := new(testutil.MockDetector)
	svc := NewModelLoaderService(loader)

	primary := domain.ModelSpec{Path: "skin_model.onnx", Device: "cuda:0"}
	fallback := domain.ModelSpec{Path: "yolov8n.onnx"}
	loader.On("Load", primary).Return(detector, nil)

	got, err := svc.Start(primary, fallback)
	require.NoError(t, err)
	assert.Same(t, detector, got)
	loader.AssertNumberOfCalls(t, "Load", 1)
}

func TestModelLoaderService_Start_Fallback(t *testing.T) {
	loader := new(testutil.MockDetectorLoader)
	detector := new(testutil.MockDetector)
	svc := NewModelLoaderService(loader)

	primary := domain.ModelSpec{Path: "missing.onnx", Device: "cuda:0"}
	fallback := domain.ModelSpec{Path: "yolov8n.onnx", Device: "cuda:1"}
	loader.On("Load", primary).Return(nil, errors.New("no such file"))
	loader.On("Load", mock.MatchedBy(func(s domain.ModelSpec) bool {
		return s.Path == "yolov8n.onnx" && s.Device == domain.DefaultDevice && s.Fallback
	})).Return(detector, nil)

	got, err := svc.Start(primary, fallback)
	require.NoError(t, err)
	assert.Same(t, detector, got)
	loader.AssertNumberOfCalls(t, "Load", 2)
}

func TestModelLoaderService_Start_BothFail(t *testing.T) {
	loader := new(testutil.MockDetectorLoader)
	svc := NewModelLoaderService(loader)

	loader.On("Load", mock.Anything).Return(nil, errors.New("no such file"))

	_, err := svc.Start(domain.ModelSpec{Path: "a.onnx"}, domain.ModelSpec{Path: "b.onnx"})
	assert.ErrorIs(t, err, domain.ErrNoModelAvailable)
	assert.Equal(t, domain.KindStartupFatal, domain.KindOf(err))
	loader.AssertNumberOfCalls(t, "Load", 2)
}
