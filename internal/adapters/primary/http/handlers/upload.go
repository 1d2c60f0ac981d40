package handlers

import (
	"errors"
	"io"
	"net/http"

	"disease-intake-service/internal/adapters/primary/http/dto"
	"disease-intake-service/internal/core/domain"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Upload accepts the raw image bytes an ESP32-CAM posts as the request body.
func (h *Handler) Upload(c *gin.Context) {
	var body []byte
	if c.Request.Body != nil {
		var err error
		body, err = io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.intakeSvc.MaxBytes()))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				mapDomainError(c, domain.ErrImageTooLarge)
				return
			}
			log.WithError(err).Warn("read upload body failed")
			c.JSON(http.StatusBadRequest, dto.NewError("Failed to read request body"))
			return
		}
	}

	result, err := h.intakeSvc.Process(c.Request.Context(), body)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUploadResponse(result))
}
