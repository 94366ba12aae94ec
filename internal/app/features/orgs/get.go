package orgs

import (
	"context"
	"net/http"

	"orgvault/internal/app/system/apperr"
	"orgvault/internal/app/system/httpjson"
	"orgvault/internal/app/system/timeouts"
)

// HandleGet handles GET /org/get?organization_name=<name>.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("organization_name")
	if name == "" {
		httpjson.Error(w, h.Log, apperr.Validation("organization_name is required"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	org, err := h.Registry.Get(ctx, name)
	if err != nil {
		httpjson.Error(w, h.Log, err)
		return
	}
	httpjson.Respond(w, http.StatusOK, org)
}
