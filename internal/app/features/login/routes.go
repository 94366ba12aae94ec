package login

import "github.com/go-chi/chi/v5"

// Routes returns the subrouter mounted at /admin.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.HandleLogin)
	return r
}
