package handlers

import (
	"errors"
	"net/http"

	"disease-intake-service/internal/adapters/primary/http/dto"
	"disease-intake-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

// Client-facing messages. The wrapped cause stays in the server log.
const (
	msgNoImageData     = "No image data"
	msgInvalidImage    = "Invalid image data"
	msgImageTooLarge   = "Image too large"
	msgStorageFailed   = "Failed to save image"
	msgInferenceFailed = "Model inference failed"
	msgModelNotLoaded  = "Model not loaded"
	msgInternal        = "internal server error"
)

func mapDomainError(c *gin.Context, err error) {
	switch {
	// Invalid input
	case errors.Is(err, domain.ErrNoImageData):
		c.JSON(http.StatusBadRequest, dto.NewError(msgNoImageData))
	case errors.Is(err, domain.ErrInvalidImageData):
		c.JSON(http.StatusBadRequest, dto.NewError(msgInvalidImage))
	case errors.Is(err, domain.ErrImageTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, dto.NewError(msgImageTooLarge))

	// Storage
	case errors.Is(err, domain.ErrStorageFailed):
		c.JSON(http.StatusInternalServerError, dto.NewError(msgStorageFailed))

	// Inference
	case errors.Is(err, domain.ErrInferenceFailed):
		resp := dto.NewError(msgInferenceFailed)
		var ie *domain.InferenceError
		if errors.As(err, &ie) && ie.Err != nil {
			resp.Error = ie.Err.Error()
		}
		c.JSON(http.StatusInternalServerError, resp)
	case errors.Is(err, domain.ErrModelUnavailable):
		c.JSON(http.StatusInternalServerError, dto.NewError(msgModelNotLoaded))

	default:
		c.JSON(http.StatusInternalServerError, dto.NewError(msgInternal))
	}
}
