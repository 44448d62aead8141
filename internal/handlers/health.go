package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/precate/internal/app"
)

type HealthHandler struct {
	service *app.Service
}

func NewHealthHandler(service *app.Service) *HealthHandler {
	return &HealthHandler{service: service}
}

type healthResponse struct {
	Status string            `json:"status"`
	Errors map[string]string `json:"errors,omitempty"`
}

// HandleHealth answers 503 as soon as either redis or the database is down.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	status := http.StatusOK

	for name, err := range h.service.CheckDependencies(r.Context()) {
		if err == nil {
			continue
		}
		logger.Error.Printf("Health check failed for %s: %v", name, err)
		if resp.Errors == nil {
			resp.Errors = make(map[string]string)
		}
		resp.Errors[name] = err.Error()
		resp.Status = "unavailable"
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error.Printf("Failed to encode health response: %v", err)
	}
}
