// internal/app/features/activitiesapi/routes.go
package activitiesapi

import "github.com/go-chi/chi/v5"

// Routes returns the API subrouter, mounted under /activities.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/{name}/signup", h.Signup)
	r.Delete("/{name}/participants", h.Remove)
	return r
}
