package handlers

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shrimpsizemoose/precate/internal/app"
)

// NewRouter mounts the lookup endpoint and its docs under the configured prefix.
func NewRouter(service *app.Service) (*http.ServeMux, error) {
	prefix := service.Config.Server.URLPrefix

	docsHandler, err := NewDocsHandler(prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to build openapi document: %w", err)
	}
	hsCodeHandler := NewHSCodeHandler(service)
	healthHandler := NewHealthHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc(prefix+"getHsCode", hsCodeHandler.HandleGetHSCode)
	mux.HandleFunc("GET "+prefix+"openapi.json", docsHandler.HandleOpenAPI)
	mux.HandleFunc("GET "+prefix+"docs", docsHandler.HandleSwaggerUI)
	mux.HandleFunc("GET "+prefix+"redoc", docsHandler.HandleReDoc)
	mux.HandleFunc("GET "+prefix+"healthz", healthHandler.HandleHealth)

	mux.Handle("/metrics", promhttp.Handler())

	return mux, nil
}
