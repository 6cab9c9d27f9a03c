// internal/app/features/groups/routes.go
package groups

import "github.com/go-chi/chi/v5"

// Routes serves the group list and group pages. Meetings and officers
// are mounted under /{group} by bootstrap.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/{group}", h.ServeDetail)
	return r
}
