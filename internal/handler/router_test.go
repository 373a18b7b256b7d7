package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestRouter(endpoints *MockEndpointService, remover *MockImageRemover) http.Handler {
	logger := NewMockHandlerLogger()
	return NewRouter(RouterConfig{
		ImageRemovalHandler: NewImageRemovalHandler(remover, 1<<20, nil, logger),
		EndpointHandler:     NewEndpointHandler(endpoints),
		AdminHandler:        NewAdminHandler(endpoints, "s3cret", logger),
		EndpointGate:        NewEndpointGate(endpoints, nil, logger).Middleware,
		RequestMiddleware:   NewRequestMiddleware(nil, logger).Middleware,
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("# metrics"))
		}),
		AllowedOrigins: []string{"http://localhost:5173"},
	})
}

func TestNewRouter_Health(t *testing.T) {
	router := newTestRouter(NewMockEndpointService(), &MockImageRemover{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}
}

func TestNewRouter_Metrics(t *testing.T) {
	router := newTestRouter(NewMockEndpointService(), &MockImageRemover{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rr.Code != http.StatusOK || rr.Body.String() != "# metrics" {
		t.Fatalf("unexpected metrics response: %d %s", rr.Code, rr.Body.String())
	}
}

func TestNewRouter_RemoveImageRoute(t *testing.T) {
	remover := &MockImageRemover{}
	router := newTestRouter(NewMockEndpointService(), remover)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, newUploadRequest(t, "fileInput", "doc.pdf", []byte("%PDF-1.7")))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
	if !remover.called {
		t.Fatalf("expected remover to be called")
	}
}

func TestNewRouter_DisabledRemoveImageRoute(t *testing.T) {
	endpoints := NewMockEndpointService()
	endpoints.disabled[RemoveImagePDFEndpoint] = true
	remover := &MockImageRemover{}
	router := newTestRouter(endpoints, remover)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, newUploadRequest(t, "fileInput", "doc.pdf", []byte("%PDF-1.7")))

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected status %d, got %d", http.StatusForbidden, rr.Code)
	}
	if remover.called {
		t.Fatalf("expected remover not to be called")
	}
}

func TestNewRouter_AdminThenGate(t *testing.T) {
	endpoints := NewMockEndpointService()
	remover := &MockImageRemover{}
	router := newTestRouter(endpoints, remover)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, adminRequest("/api/v1/admin/endpoints/remove-image-pdf", "s3cret", `{"enabled":false}`))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected admin update to succeed, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, newUploadRequest(t, "fileInput", "doc.pdf", []byte("%PDF-1.7")))
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected disabled endpoint, got %d", rr.Code)
	}
}

func TestNewRouter_EndpointStatus(t *testing.T) {
	router := newTestRouter(NewMockEndpointService(), &MockImageRemover{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/endpoints/pdf-to-book", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"name":"pdf-to-book"`) {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
}

func TestNewRouter_CORSPreflight(t *testing.T) {
	router := newTestRouter(NewMockEndpointService(), &MockImageRemover{})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/general/remove-image-pdf", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("expected allowed origin header, got %q", got)
	}
}
