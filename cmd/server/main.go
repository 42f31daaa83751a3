package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pdf-table-extractor/internal/config"
	"pdf-table-extractor/internal/handler"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}
	// Wiring
	container := config.NewContainer()

	// Handlers
	extractHandler := handler.NewExtractHandler(
		container.BatchService,
		container.ArchiveService,
		container.Encoders,
		container.ArchiveStore,
		container.Config.GetMaxFileSize(),
		container.Logger,
	)

	rateLimiter := handler.NewIPRateLimiter(
		rate.Limit(container.Config.GetRateLimitRPS()),
		container.Config.GetRateLimitBurst(),
	)

	// Router
	router := handler.NewRouter(
		extractHandler,
		handler.RateLimitMiddleware(rateLimiter, container.Logger),
	)

	// start server
	server := &http.Server{
		Addr:    ":" + container.Config.GetServerPort(),
		Handler: router,
	}

	// Run server
	go func() {
		container.Logger.Info("Server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			container.Logger.Error("Server failed to start", err)
			os.Exit(1)
		}
	}()
	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	container.Logger.Info("Shutting down server...")
	_ = server.Close()

	container.Logger.Info("Server exited")
}
