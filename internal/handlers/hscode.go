package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/precate/internal/app"
	"github.com/shrimpsizemoose/precate/internal/metrics"
	"github.com/shrimpsizemoose/precate/internal/models"
)

type HSCodeHandler struct {
	service *app.Service
}

func NewHSCodeHandler(service *app.Service) *HSCodeHandler {
	return &HSCodeHandler{
		service: service,
	}
}

func (h *HSCodeHandler) HandleGetHSCode(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := http.StatusOK
	defer func() {
		duration := time.Since(start).Seconds()
		metrics.APIRequestDuration.WithLabelValues(
			r.URL.Path,
			r.Method,
			strconv.Itoa(status),
		).Observe(duration)
	}()
	if r.Method != http.MethodPost {
		status = http.StatusMethodNotAllowed
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "Method not allowed", status)
		return
	}

	req := models.HSCodeRequest{
		GoodName: r.PostFormValue("goodName"),
		Token:    r.PostFormValue("token"),
	}
	logger.Info.Printf("goodName is %s token is %s", req.GoodName, models.MaskToken(req.Token))

	if err := req.Validate(); err != nil {
		logger.Debug.Printf("Rejected request: %v", err)
		status = http.StatusUnprocessableEntity
		result := app.BadRequestResult()
		metrics.LookupsTotal.WithLabelValues(result.Outcome).Inc()
		writeResult(w, status, result)
		return
	}

	result, err := h.service.LookupHSCodes(r.Context(), req)
	if err != nil {
		logger.Error.Printf("Lookup for good %q failed: %v", req.GoodName, err)
		if errors.Is(err, app.ErrUnavailable) {
			status = http.StatusServiceUnavailable
		} else {
			status = http.StatusInternalServerError
		}
	}
	metrics.LookupsTotal.WithLabelValues(result.Outcome).Inc()

	writeResult(w, status, result)
}

func writeResult(w http.ResponseWriter, status int, result *models.QueryResult) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		logger.Error.Printf("Failed to encode response: %v", err)
	}
}
