package handler

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"pdf-tools-server/internal/domain"
	apperrors "pdf-tools-server/pkg/errors"

	"github.com/gorilla/mux"
)

// AdminHandler exposes admin-only endpoints protected by X-Admin-Secret.
// These endpoints are intended for operators and should not be exposed publicly without additional safeguards.
type AdminHandler struct {
	endpoints domain.EndpointService
	secret    string
	logger    domain.Logger
}

// NewAdminHandler creates the handler. An empty secret disables every admin route.
func NewAdminHandler(endpoints domain.EndpointService, secret string, logger domain.Logger) *AdminHandler {
	return &AdminHandler{
		endpoints: endpoints,
		secret:    secret,
		logger:    logger,
	}
}

type setEnabledRequest struct {
	Enabled *bool `json:"enabled"`
}

func (h *AdminHandler) authorized(r *http.Request) bool {
	secret := r.Header.Get("X-Admin-Secret")
	return h.secret != "" && secret != "" && subtle.ConstantTimeCompare([]byte(secret), []byte(h.secret)) == 1
}

func (h *AdminHandler) decodeEnabled(w http.ResponseWriter, r *http.Request) (bool, bool) {
	if !h.authorized(r) {
		writeAppError(w, apperrors.NewUnauthorizedError("Unauthorized"))
		return false, false
	}

	var req setEnabledRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Enabled == nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false, false
	}
	return *req.Enabled, true
}

// SetEndpointEnabled toggles a single endpoint.
//
// Auth: requires `X-Admin-Secret` header matching env `ADMIN_API_SECRET`.
// Body: {"enabled": bool}
func (h *AdminHandler) SetEndpointEnabled(w http.ResponseWriter, r *http.Request) {
	enabled, ok := h.decodeEnabled(w, r)
	if !ok {
		return
	}

	name := mux.Vars(r)["name"]
	if err := h.endpoints.SetEndpointEnabled(r.Context(), name, enabled); err != nil {
		if errors.Is(err, domain.ErrInvalidEndpoint) {
			writeError(w, http.StatusBadRequest, "Endpoint name is required")
			return
		}
		h.logger.Error("Failed to update endpoint", err, "endpoint", name)
		writeError(w, http.StatusInternalServerError, "Failed to persist endpoint status")
		return
	}

	h.logger.Info("Endpoint updated by admin", "endpoint", name, "enabled", enabled)
	writeJSON(w, http.StatusOK, h.endpoints.EndpointStatus(name))
}

// SetGroupEnabled toggles every endpoint of a group.
//
// Auth: requires `X-Admin-Secret` header matching env `ADMIN_API_SECRET`.
// Body: {"enabled": bool}
func (h *AdminHandler) SetGroupEnabled(w http.ResponseWriter, r *http.Request) {
	enabled, ok := h.decodeEnabled(w, r)
	if !ok {
		return
	}

	group := strings.TrimSpace(mux.Vars(r)["group"])
	if err := h.endpoints.SetGroupEnabled(r.Context(), group, enabled); err != nil {
		if errors.Is(err, domain.ErrGroupNotFound) {
			writeAppError(w, apperrors.NewNotFoundError("Group not found"))
			return
		}
		h.logger.Error("Failed to update group", err, "group", group)
		writeError(w, http.StatusInternalServerError, "Failed to persist group status")
		return
	}

	h.logger.Info("Endpoint group updated by admin", "group", group, "enabled", enabled)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"group":     group,
		"enabled":   enabled,
		"endpoints": h.endpoints.Groups()[group],
	})
}
