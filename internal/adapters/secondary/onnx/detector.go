package onnx

import (
	"context"
	"fmt"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"
	ort "github.com/yalue/onnxruntime_go"

	"disease-intake-service/internal/core/domain"
	"disease-intake-service/internal/core/ports/output"
)

// Loader owns the process-wide ONNX Runtime environment and builds
// detectors from model artifacts.
type Loader struct{}

// NewLoader initialises the runtime. libPath overrides the shared library
// location when set.
func NewLoader(libPath string) (*Loader, error) {
	if libPath != "" {
		ort.SetSharedLibraryPath(libPath)
	}
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("failed to initialize ONNX environment: %w", err)
		}
	}
	return &Loader{}, nil
}

func (l *Loader) Close() error {
	return ort.DestroyEnvironment()
}

func (l *Loader) Load(spec domain.ModelSpec) (ports.Detector, error) {
	if _, err := os.Stat(spec.Path); err != nil {
		return nil, fmt.Errorf("model file: %w", err)
	}

	meta, err := loadMetadata(spec.MetadataFile())
	if err != nil {
		return nil, err
	}

	inputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(meta.InputShape...))
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(meta.OutputShape...))
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}

	opts, err := sessionOptions(spec.Device)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, err
	}
	if opts != nil {
		defer opts.Destroy()
	}

	session, err := ort.NewAdvancedSession(spec.Path,
		[]string{meta.InputName}, []string{meta.OutputName},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		opts)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	log.WithFields(log.Fields{
		"model":    spec.Path,
		"device":   spec.Device,
		"classes":  len(meta.Classes),
		"fallback": spec.Fallback,
	}).Info("model loaded")

	return &Detector{
		session:       session,
		input:         inputTensor,
		output:        outputTensor,
		meta:          *meta,
		confThreshold: spec.ConfThreshold,
		iouThreshold:  spec.IoUThreshold,
		info: domain.ModelInfo{
			Path:     spec.Path,
			Device:   spec.Device,
			Fallback: spec.Fallback,
			Classes:  meta.Classes,
		},
	}, nil
}

// Detector runs a YOLO export through a single bound session. The input
// and output tensors are shared, so Detect holds mu around each run.
type Detector struct {
	mu      sync.Mutex
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
	closed  bool

	meta          Metadata
	info          domain.ModelInfo
	confThreshold float64
	iouThreshold  float64
}

func (d *Detector) Detect(ctx context.Context, path string) ([]domain.Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := readImage(path)
	if err != nil {
		return nil, err
	}

	data, lb := letterboxImage(img, d.meta.width(), d.meta.height())

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil, domain.ErrModelUnavailable
	}
	copy(d.input.GetData(), data)
	if err := d.session.Run(); err != nil {
		d.mu.Unlock()
		return nil, fmt.Errorf("inference failed: %w", err)
	}
	out := append([]float32(nil), d.output.GetData()...)
	d.mu.Unlock()

	return decodeOutput(out, len(d.meta.Classes), d.meta.anchors(), lb, d.confThreshold, d.iouThreshold)
}

func (d *Detector) Info() (*domain.ModelInfo, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, domain.ErrModelUnavailable
	}
	info := d.info
	info.Classes = append([]string(nil), d.info.Classes...)
	return &info, nil
}

func (d *Detector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true

	if d.input != nil {
		d.input.Destroy()
	}
	if d.output != nil {
		d.output.Destroy()
	}
	if d.session != nil {
		return d.session.Destroy()
	}
	return nil
}
