package orgs

import (
	"context"
	"encoding/json"
	"net/http"

	"orgvault/internal/app/system/apperr"
	"orgvault/internal/app/system/httpjson"
	"orgvault/internal/app/system/timeouts"
)

// HandleCreate handles POST /org/create.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpjson.Error(w, h.Log, apperr.Validation("request body is not valid JSON"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	org, err := h.Registry.Create(ctx, req.OrganizationName, req.Email, req.Password)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusCreated, org)
}
