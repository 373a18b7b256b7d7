package handler

import (
	"net/http"

	"pdf-tools-server/internal/domain"

	"github.com/gorilla/mux"
)

// EndpointHandler exposes the read-only endpoint registry
type EndpointHandler struct {
	endpoints domain.EndpointService
}

func NewEndpointHandler(endpoints domain.EndpointService) *EndpointHandler {
	return &EndpointHandler{endpoints: endpoints}
}

// ListEndpoints returns every known endpoint with its status, plus the group table
func (h *EndpointHandler) ListEndpoints(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.EndpointsResponse{
		Endpoints: h.endpoints.Statuses(),
		Groups:    h.endpoints.Groups(),
	})
}

// GetEndpoint returns the status of one endpoint. Unknown names are reported enabled.
func (h *EndpointHandler) GetEndpoint(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if name == "" {
		writeError(w, http.StatusBadRequest, "Endpoint name is required")
		return
	}
	writeJSON(w, http.StatusOK, h.endpoints.EndpointStatus(name))
}
