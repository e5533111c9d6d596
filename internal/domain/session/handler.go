package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/fairway/fairway-api/internal/middleware"
	"github.com/fairway/fairway-api/internal/pkg/authgw"
	"github.com/fairway/fairway-api/internal/pkg/response"
	"github.com/fairway/fairway-api/internal/pkg/validator"
)

// Handler handles session HTTP requests.
type Handler struct {
	service  *Service
	registry *Registry
}

// NewHandler creates a session handler.
func NewHandler(service *Service, registry *Registry) *Handler {
	return &Handler{service: service, registry: registry}
}

// Login handles POST /api/v1/auth/login
// Exchanges the gateway token for a session token. A gateway rejection is
// the member's problem (401); a gateway outage is ours (502).
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	result, err := h.service.Login(r.Context(), req.Token)
	if err != nil {
		var apiErr *authgw.APIError
		if errors.As(err, &apiErr) {
			response.Error(w, http.StatusUnauthorized, apiErr.Code, apiErr.Message)
			return
		}
		log.Error().Err(err).Msg("Auth gateway exchange failed")
		response.BadGateway(w, "Authentication service unavailable")
		return
	}

	response.OK(w, result)
}

// Me handles GET /api/v1/auth/me
// Identity comes from the session token; contact details come from the
// cached profile when present.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	memberKey := middleware.GetMemberKey(r.Context())

	me := MeResponse{
		MemberKey: memberKey,
		Name:      middleware.GetMemberName(r.Context()),
	}

	if profile, err := h.service.Profile(r.Context(), memberKey); err == nil {
		me.Name = profile.Name
		me.Phone = profile.Phone
		me.Email = profile.Email
	} else if !errors.Is(err, ErrProfileNotFound) {
		log.Warn().Err(err).Int64("member_key", memberKey).Msg("Failed to load cached profile")
	}

	response.OK(w, me)
}

// Logout handles DELETE /api/v1/auth/session
// Drops the member's server-side session state. The session token itself
// simply expires.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.registry.Remove(middleware.GetMemberKey(r.Context()))
	response.NoContent(w)
}
