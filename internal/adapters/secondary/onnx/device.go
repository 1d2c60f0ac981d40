package onnx

import (
	"fmt"
	"strconv"
	"strings"

	ort "github.com/yalue/onnxruntime_go"
)

// parseDevice accepts "cpu", "cuda", "cuda:N" or a bare GPU index.
func parseDevice(device string) (gpu int, accelerated bool, err error) {
	d := strings.ToLower(strings.TrimSpace(device))
	switch {
	case d == "" || d == "cpu":
		return 0, false, nil
	case d == "cuda":
		return 0, true, nil
	case strings.HasPrefix(d, "cuda:"):
		d = strings.TrimPrefix(d, "cuda:")
	}

	gpu, err = strconv.Atoi(d)
	if err != nil || gpu < 0 {
		return 0, false, fmt.Errorf("unsupported device %q", device)
	}
	return gpu, true, nil
}

// sessionOptions returns nil for CPU so the runtime defaults apply.
func sessionOptions(device string) (*ort.SessionOptions, error) {
	gpu, accelerated, err := parseDevice(device)
	if err != nil || !accelerated {
		return nil, err
	}

	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("failed to create session options: %w", err)
	}

	cudaOpts, err := ort.NewCUDAProviderOptions()
	if err != nil {
		opts.Destroy()
		return nil, fmt.Errorf("failed to create CUDA options: %w", err)
	}
	defer cudaOpts.Destroy()

	if err := cudaOpts.Update(map[string]string{"device_id": strconv.Itoa(gpu)}); err != nil {
		opts.Destroy()
		return nil, fmt.Errorf("failed to set CUDA device %d: %w", gpu, err)
	}
	if err := opts.AppendExecutionProviderCUDA(cudaOpts); err != nil {
		opts.Destroy()
		return nil, fmt.Errorf("failed to enable CUDA provider: %w", err)
	}
	return opts, nil
}
