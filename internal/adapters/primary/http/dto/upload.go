package dto

import "disease-intake-service/internal/core/domain"

const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusOK      = "ok"
)

type UploadResponse struct {
	Status     string `json:"status"`
	Image      string `json:"image"`
	Result     string `json:"result"`
	Confidence string `json:"confidence"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	Classes     int    `json:"classes"`
	Model       string `json:"model,omitempty"`
	Device      string `json:"device,omitempty"`
	Fallback    bool   `json:"fallback"`
}

func ToUploadResponse(r *domain.UploadResult) UploadResponse {
	return UploadResponse{
		Status:     StatusSuccess,
		Image:      r.Image.Filename,
		Result:     r.Result.Label,
		Confidence: r.Result.Confidence,
	}
}

func ToHealthResponse(s *domain.HealthStatus) HealthResponse {
	return HealthResponse{
		Status:      StatusOK,
		ModelLoaded: s.ModelLoaded,
		Classes:     s.Classes,
		Model:       s.Model,
		Device:      s.Device,
		Fallback:    s.Fallback,
	}
}

func NewError(message string) ErrorResponse {
	return ErrorResponse{Status: StatusError, Message: message}
}
