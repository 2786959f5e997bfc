// internal/app/features/signup/routes.go
package signup

import "github.com/go-chi/chi/v5"

// Routes mounts the widget at the site root.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServePage)
	r.Get("/widget", h.ServeWidget)
	r.Post("/signup", h.HandleSignup)
	r.Post("/participants/remove", h.HandleRemove)
	return r
}
