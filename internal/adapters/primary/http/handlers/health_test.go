package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"disease-intake-service/internal/core/domain"
	"disease-intake-service/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func getHealth(t *testing.T, detector *testutil.MockDetector) *httptest.ResponseRecorder {
	t.Helper()
	r := setupRouter(t, detector, new(testutil.MockImageStore), 0)

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth_ModelLoaded(t *testing.T) {
	detector := new(testutil.MockDetector)
	detector.On("Info").Return(&domain.ModelInfo{
		Path: "yolov8n.onnx", Device: "cpu", Fallback: true, Classes: testutil.SkinClasses,
	}, nil)

	w := getHealth(t, detector)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, true, resp["model_loaded"])
	assert.Equal(t, float64(len(testutil.SkinClasses)), resp["classes"])
	assert.Equal(t, true, resp["fallback"])
	assert.Equal(t, "cpu", resp["device"])
}

func TestHealth_IntrospectionError(t *testing.T) {
	detector := new(testutil.MockDetector)
	detector.On("Info").Return(nil, errors.New("session destroyed"))

	w := getHealth(t, detector)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "error", resp["status"])
	assert.Contains(t, resp["message"], "session destroyed")
}

func TestHealth_IntrospectionPanic(t *testing.T) {
	detector := new(testutil.MockDetector)
	detector.On("Info").Run(func(mock.Arguments) { panic("nil session") }).Return(nil, nil)

	w := getHealth(t, detector)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "error", resp["status"])
	assert.Equal(t, "nil session", resp["message"])
}
