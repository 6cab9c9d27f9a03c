// internal/app/features/attachments/routes.go
package attachments

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/{id}", h.ServeDownload)
	return r
}
