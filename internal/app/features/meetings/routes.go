// internal/app/features/meetings/routes.go
package meetings

import "github.com/go-chi/chi/v5"

// Routes is mounted at /groups/{group}/meetings.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeList)
	r.Get("/upcoming", h.ServeUpcoming)
	r.Get("/{year}", h.ServeYear)
	r.Get("/{year}/{month}", h.ServeMeeting)
	r.Get("/{year}/{month}/print", h.ServePrint)
	r.Get("/{year}/{month}/minutes", h.ServeMinutes)
	return r
}
