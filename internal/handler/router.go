package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(extractHandler *ExtractHandler, rateLimit mux.MiddlewareFunc) http.Handler {
	router := mux.NewRouter()

	// Health check endpoint (not rate limited)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"pdf-table-extractor"}`))
	}).Methods("GET")

	// Prometheus metrics (not rate limited)
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(rateLimit)

	// Extraction routes
	api.HandleFunc("/extract", extractHandler.ExtractBatch).Methods("POST")
	api.HandleFunc("/extract/archive", extractHandler.ExtractArchive).Methods("POST")
	api.HandleFunc("/extract/file", extractHandler.ExtractFile).Methods("POST")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173", // Vite dev server
			"http://localhost:4173", // Vite preview
			"http://localhost:3000", // Alternative dev port
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		ExposedHeaders: []string{
			"Content-Disposition",
			"X-Archive-Path",
		},
		MaxAge: 300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
