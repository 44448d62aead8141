package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/precate/internal/app"
	"github.com/shrimpsizemoose/precate/internal/handlers"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		logger.Debug.Println("No .env file found, using process environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	service, err := app.NewService(ctx, *configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to init service: %v", err)
	}
	defer service.Close()

	router, err := handlers.NewRouter(service)
	if err != nil {
		logger.Error.Fatalf("Failed to init router: %v", err)
	}

	server := &http.Server{
		Addr:              service.Config.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()
		logger.Info.Println("Shutting down precate server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error.Printf("Graceful shutdown failed: %v", err)
		}
	}()

	logger.Info.Printf("Starting precate server on %s", service.Config.Server.Port)
	logger.Info.Printf("Serving %sgetHsCode, docs at %sdocs", service.Config.Server.URLPrefix, service.Config.Server.URLPrefix)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error.Printf("Precate server failed: %v", err)
		os.Exit(1)
	}
	<-shutdownDone
}
