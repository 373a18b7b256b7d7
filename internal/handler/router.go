package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// RemoveImagePDFEndpoint is the registry name of the image removal route
const RemoveImagePDFEndpoint = "remove-image-pdf"

// RouterConfig collects what NewRouter wires together
type RouterConfig struct {
	ImageRemovalHandler *ImageRemovalHandler
	EndpointHandler     *EndpointHandler
	AdminHandler        *AdminHandler
	EndpointGate        func(http.Handler) http.Handler
	RequestMiddleware   func(http.Handler) http.Handler
	MetricsHandler      http.Handler
	AllowedOrigins      []string
}

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	router := mux.NewRouter()
	if cfg.RequestMiddleware != nil {
		router.Use(cfg.RequestMiddleware)
	}

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok","service":"pdf-tools-server"}`))
	}).Methods("GET").Name("health")

	if cfg.MetricsHandler != nil {
		router.Handle("/metrics", cfg.MetricsHandler).Methods("GET").Name("metrics")
	}

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()

	// Document operations, each named after its registry entry
	general := api.PathPrefix("/general").Subrouter()
	if cfg.EndpointGate != nil {
		general.Use(cfg.EndpointGate)
	}
	general.HandleFunc("/remove-image-pdf", cfg.ImageRemovalHandler.RemoveImages).
		Methods("POST").
		Name(RemoveImagePDFEndpoint)

	// Registry status
	api.HandleFunc("/endpoints", cfg.EndpointHandler.ListEndpoints).Methods("GET")
	api.HandleFunc("/endpoints/{name}", cfg.EndpointHandler.GetEndpoint).Methods("GET")

	// Admin routes (X-Admin-Secret)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.HandleFunc("/endpoints/{name}", cfg.AdminHandler.SetEndpointEnabled).Methods("PUT")
	admin.HandleFunc("/groups/{group}", cfg.AdminHandler.SetGroupEnabled).Methods("PUT")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Admin-Secret",
			"X-Request-ID",
		},
		ExposedHeaders: []string{
			"Content-Disposition",
			"X-Images-Removed",
			"X-Request-ID",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
