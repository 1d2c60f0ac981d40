package handlers

import (
	"fmt"
	"net/http"

	"disease-intake-service/internal/adapters/primary/http/dto"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) Health(c *gin.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("health check panicked")
			c.JSON(http.StatusInternalServerError, dto.NewError(fmt.Sprint(r)))
		}
	}()

	status, err := h.intakeSvc.Health(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("health check failed")
		c.JSON(http.StatusInternalServerError, dto.NewError(err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.ToHealthResponse(status))
}
