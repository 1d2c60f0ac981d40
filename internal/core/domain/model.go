package domain

import (
	"path/filepath"
	"strings"
)

// DefaultDevice is the compute device the fallback model is forced onto.
const DefaultDevice = "cpu"

// ModelSpec describes a detector to load.
type ModelSpec struct {
	Path          string
	MetadataPath  string
	Device        string
	ConfThreshold float64
	IoUThreshold  float64
	Fallback      bool
}

// MetadataFile returns the class table sidecar, defaulting to the model
// path with a .json extension.
func (s ModelSpec) MetadataFile() string {
	if s.MetadataPath != "" {
		return s.MetadataPath
	}
	return strings.TrimSuffix(s.Path, filepath.Ext(s.Path)) + ".json"
}

// ModelInfo is the introspection view of the loaded detector.
type ModelInfo struct {
	Path     string
	Device   string
	Fallback bool
	Classes  []string
}

// HealthStatus is reported by the health probe.
type HealthStatus struct {
	ModelLoaded bool
	Classes     int
	Model       string
	Device      string
	Fallback    bool
}
