package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"disease-intake-service/internal/core/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "uploads", cfg.Upload.Dir)
	assert.Equal(t, int64(10<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, 8192, cfg.Upload.MaxWidth)
	assert.Equal(t, 8192, cfg.Upload.MaxHeight)
	assert.Equal(t, int64(4096*4096), cfg.Upload.MaxPixels)
	assert.Equal(t, "skin_model.onnx", cfg.Model.Path)
	assert.Equal(t, "cpu", cfg.Model.Device)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, "json", cfg.Logger.Format)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("UPLOAD_DIR", "/var/lib/captures")
	t.Setenv("MODEL_PATH", "/models/skin.onnx")
	t.Setenv("MODEL_DEVICE", "cuda:0")
	t.Setenv("MODEL_CONF_THRESHOLD", "0.4")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "bogus")
	t.Setenv("DATABASE_ENABLED", "true")
	t.Setenv("UPLOAD_MAX_PIXELS", "2000000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "/var/lib/captures", cfg.Upload.Dir)
	assert.Equal(t, "cuda:0", cfg.Model.Device)
	assert.InDelta(t, 0.4, cfg.Model.ConfThreshold, 1e-9)
	assert.True(t, cfg.Database.Enabled)

	limits := cfg.Upload.Limits()
	assert.Equal(t, int64(2000000), limits.MaxPixels)
	assert.Equal(t, 8192, limits.MaxWidth)
	assert.Equal(t, int64(10<<20), limits.MaxBytes)
}

func TestModelConfig_Specs(t *testing.T) {
	m := ModelConfig{
		Path: "skin.onnx", Device: "cuda:1", ConfThreshold: 0.3, IoUThreshold: 0.5,
		FallbackPath: "yolov8n.onnx",
	}

	primary := m.Primary()
	assert.Equal(t, "skin.onnx", primary.Path)
	assert.Equal(t, "cuda:1", primary.Device)
	assert.False(t, primary.Fallback)

	fallback := m.Fallback()
	assert.Equal(t, "yolov8n.onnx", fallback.Path)
	assert.Equal(t, domain.DefaultDevice, fallback.Device)
	assert.InDelta(t, 0.3, fallback.ConfThreshold, 1e-9)
	assert.True(t, fallback.Fallback)
}
