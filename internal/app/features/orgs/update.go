package orgs

import (
	"context"
	"encoding/json"
	"net/http"

	"orgvault/internal/app/registry"
	"orgvault/internal/app/system/apperr"
	"orgvault/internal/app/system/auth"
	"orgvault/internal/app/system/httpjson"
	"orgvault/internal/app/system/timeouts"
)

// HandleUpdate handles PUT /org/update. The caller's token decides which
// organization is updated; the body carries only the changes.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.CurrentIdentity(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Unauthorized("invalid or expired token"))
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("request body is not valid JSON"))
		return
	}

	// A rename may copy an entire partition.
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	org, err := h.Registry.Update(ctx, id, registry.Changes{
		Name:     req.OrganizationName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, org)
}
