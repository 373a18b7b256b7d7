package handler

import (
	"context"
	"net/http"
	"path"
	"time"

	"pdf-tools-server/internal/domain"
	apperrors "pdf-tools-server/pkg/errors"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// RequestMetrics receives per-request observations
type RequestMetrics interface {
	ObserveRequest(route string, code int, seconds float64)
	IncRejection(endpoint string)
}

// statusRecorder remembers the status code written by the next handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// routeName labels a request by mux route name or path template
func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if name := route.GetName(); name != "" {
			return name
		}
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return r.URL.Path
}

// endpointName is the registry key for a request: the route name, or the
// last path segment for unnamed routes
func endpointName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if name := route.GetName(); name != "" {
			return name
		}
	}
	return path.Base(r.URL.Path)
}

// RequestMiddleware tags requests with an id, logs them and records metrics
type RequestMiddleware struct {
	metrics RequestMetrics
	logger  domain.Logger
}

// NewRequestMiddleware creates the middleware. metrics may be nil.
func NewRequestMiddleware(metrics RequestMetrics, logger domain.Logger) *RequestMiddleware {
	return &RequestMiddleware{metrics: metrics, logger: logger}
}

func (m *RequestMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		ctx := context.WithValue(r.Context(), requestIDContextKey, requestID)
		next.ServeHTTP(rec, r.WithContext(ctx))

		elapsed := time.Since(start)
		route := routeName(r)
		m.logger.Info("HTTP request",
			"request_id", requestID,
			"method", r.Method,
			"route", route,
			"status", rec.status,
			"duration_ms", elapsed.Milliseconds(),
		)
		if m.metrics != nil {
			m.metrics.ObserveRequest(route, rec.status, elapsed.Seconds())
		}
	})
}

// EndpointGate refuses requests to endpoints switched off in the registry
type EndpointGate struct {
	endpoints domain.EndpointService
	metrics   RequestMetrics
	logger    domain.Logger
}

// NewEndpointGate creates the gate. metrics may be nil.
func NewEndpointGate(endpoints domain.EndpointService, metrics RequestMetrics, logger domain.Logger) *EndpointGate {
	return &EndpointGate{endpoints: endpoints, metrics: metrics, logger: logger}
}

func (g *EndpointGate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		endpoint := endpointName(r)
		if !g.endpoints.IsEndpointEnabled(endpoint) {
			g.logger.Warn("Rejected request to disabled endpoint", "endpoint", endpoint)
			if g.metrics != nil {
				g.metrics.IncRejection(endpoint)
			}
			writeAppError(w, apperrors.NewForbiddenError("This endpoint is disabled"))
			return
		}
		next.ServeHTTP(w, r)
	})
}
