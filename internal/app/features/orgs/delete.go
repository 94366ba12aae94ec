package orgs

import (
	"context"
	"net/http"

	"orgvault/internal/app/system/apperr"
	"orgvault/internal/app/system/auth"
	"orgvault/internal/app/system/httpjson"
	"orgvault/internal/app/system/timeouts"
)

// HandleDelete handles DELETE /org/delete?organization_name=<name>.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.CurrentIdentity(r)
	if !ok {
		httpjson.Error(w, h.Log, apperr.Unauthorized("invalid or expired token"))
		return
	}

	name := r.URL.Query().Get("organization_name")
	if name == "" {
		httpjson.Error(w, h.Log, apperr.Validation("organization_name is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if err := h.Registry.Delete(ctx, id, name); err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, statusResponse{Status: "deleted", Organization: name})
}
