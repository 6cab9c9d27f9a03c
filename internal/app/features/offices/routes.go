// internal/app/features/offices/routes.go
package offices

import "github.com/go-chi/chi/v5"

// Routes is mounted at /groups/{group}/officers.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{office}", h.ServeLatest)
	r.Get("/{office}/{year}", h.ServeYear)
	return r
}

// RedirectRoutes is mounted at /offices.
func RedirectRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{office}", h.ServeRedirect)
	return r
}
