package handlers

import (
	"disease-intake-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	intakeSvc *services.IntakeService
}

func New(intakeSvc *services.IntakeService) *Handler {
	return &Handler{intakeSvc: intakeSvc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Camera intake
	r.POST("/upload", h.Upload)

	// Probes
	r.GET("/health", h.Health)
}
