package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"disease-intake-service/internal/core/domain"
)

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logging(), CORS())
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ctxRequestID))
	})
	r.POST("/upload", func(c *gin.Context) {
		c.String(http.StatusOK, domain.RequestIDFrom(c.Request.Context()))
	})
	return r
}

func TestRequestID_Generated(t *testing.T) {
	r := setupRouter()

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	id := w.Header().Get(headerRequestID)
	assert.Len(t, id, 36)
	assert.Equal(t, id, w.Body.String())
}

func TestRequestID_Echoed(t *testing.T) {
	r := setupRouter()

	req, _ := http.NewRequest("GET", "/health", nil)
	req.Header.Set(headerRequestID, "esp32-cam-0001")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "esp32-cam-0001", w.Header().Get(headerRequestID))
}

func TestRequestID_OnRequestContext(t *testing.T) {
	r := setupRouter()

	req, _ := http.NewRequest("POST", "/upload", nil)
	req.Header.Set(headerRequestID, "esp32-cam-0001")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "esp32-cam-0001", w.Body.String())
}

func TestRequestID_OverlongReplaced(t *testing.T) {
	r := setupRouter()

	req, _ := http.NewRequest("POST", "/upload", nil)
	req.Header.Set(headerRequestID, strings.Repeat("x", maxRequestIDLen+1))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Len(t, w.Body.String(), 36)
	assert.Equal(t, w.Body.String(), w.Header().Get(headerRequestID))
}

func TestCORS_Preflight(t *testing.T) {
	r := setupRouter()

	req, _ := http.NewRequest("OPTIONS", "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
