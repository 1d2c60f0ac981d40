package onnx

import (
	"encoding/json"
	"fmt"
	"os"

	"disease-intake-service/internal/core/domain"
)

const (
	defaultInputName  = "images"
	defaultOutputName = "output0"
	boxChannels       = 4
)

// Metadata is the sidecar describing a YOLO export: tensor names, shapes
// and the class name table.
type Metadata struct {
	InputName   string   `json:"input_name"`
	OutputName  string   `json:"output_name"`
	InputShape  []int64  `json:"input_shape"`
	OutputShape []int64  `json:"output_shape"`
	Classes     []string `json:"classes"`
}

func loadMetadata(path string) (*Metadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	var meta Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}

	if meta.InputName == "" {
		meta.InputName = defaultInputName
	}
	if meta.OutputName == "" {
		meta.OutputName = defaultOutputName
	}

	if err := meta.validate(); err != nil {
		return nil, err
	}
	return &meta, nil
}

// validate expects input [1,3,H,W] and output [1,4+classes,anchors].
func (m *Metadata) validate() error {
	if len(m.Classes) == 0 {
		return fmt.Errorf("%w: empty class table", domain.ErrInvalidMetadata)
	}
	if len(m.InputShape) != 4 || m.InputShape[0] != 1 || m.InputShape[1] != 3 ||
		m.InputShape[2] <= 0 || m.InputShape[3] <= 0 {
		return fmt.Errorf("%w: input shape %v", domain.ErrInvalidMetadata, m.InputShape)
	}
	if len(m.OutputShape) != 3 || m.OutputShape[0] != 1 || m.OutputShape[2] <= 0 {
		return fmt.Errorf("%w: output shape %v", domain.ErrInvalidMetadata, m.OutputShape)
	}
	if int(m.OutputShape[1]) != boxChannels+len(m.Classes) {
		return fmt.Errorf("%w: output has %d channels for %d classes",
			domain.ErrInvalidMetadata, m.OutputShape[1], len(m.Classes))
	}
	return nil
}

func (m *Metadata) width() int  { return int(m.InputShape[3]) }
func (m *Metadata) height() int { return int(m.InputShape[2]) }
func (m *Metadata) anchors() int { return int(m.OutputShape[2]) }
