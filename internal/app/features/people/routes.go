// internal/app/features/people/routes.go
package people

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{slug}", h.ServeDetail)
	return r
}
