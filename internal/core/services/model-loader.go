package services

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"disease-intake-service/internal/core/domain"
	"disease-intake-service/internal/core/ports/output"
)

// ModelLoaderService runs the startup gate: primary model first, then a
// single fallback attempt on the default device.
type ModelLoaderService struct {
	loader ports.DetectorLoader
}

func NewModelLoaderService(loader ports.DetectorLoader) *ModelLoaderService {
	return &ModelLoaderService{loader: loader}
}

func (s *ModelLoaderService) Start(primary, fallback domain.ModelSpec) (ports.Detector, error) {
	log.WithFields(log.Fields{
		"model":  primary.Path,
		"device": primary.Device,
	}).Info("loading model")

	detector, primaryErr := s.loader.Load(primary)
	if primaryErr == nil {
		return detector, nil
	}

	fallback.Device = domain.DefaultDevice
	fallback.Fallback = true

	log.WithError(primaryErr).WithFields(log.Fields{
		"model":    primary.Path,
		"fallback": fallback.Path,
	}).Warn("primary model load failed, trying fallback")

	detector, err := s.loader.Load(fallback)
	if err != nil {
		return nil, fmt.Errorf("%w: primary: %v; fallback: %v", domain.ErrNoModelAvailable, primaryErr, err)
	}

	return detector, nil
}
