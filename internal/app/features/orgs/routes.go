package orgs

import (
	"orgvault/internal/app/system/auth"

	"github.com/go-chi/chi/v5"
)

// Routes returns the subrouter mounted at /org. Create and lookup are open;
// update and delete require a bearer token.
func Routes(h *Handler, gate *auth.Gate) chi.Router {
	r := chi.NewRouter()

	r.Post("/create", h.HandleCreate)
	r.Get("/get", h.HandleGet)

	r.Group(func(pr chi.Router) {
		pr.Use(gate.RequireAdmin)
		pr.Put("/update", h.HandleUpdate)
		pr.Delete("/delete", h.HandleDelete)
	})

	return r
}
