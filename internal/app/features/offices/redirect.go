// internal/app/features/offices/redirect.go
package offices

import (
	"context"
	"net/http"

	errorsfeature "github.com/dalemusser/govhub/internal/app/features/errors"
	"github.com/dalemusser/govhub/internal/app/features/shared/links"
	groupstore "github.com/dalemusser/govhub/internal/app/store/groups"
	"github.com/dalemusser/govhub/internal/app/store/queries/govqueries"
	"github.com/dalemusser/govhub/internal/app/system/normalize"
	"github.com/dalemusser/govhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeRedirect handles GET /offices/{office}. Office slugs are unique
// site-wide, so the office alone is enough to find its group page.
func (h *Handler) ServeRedirect(w http.ResponseWriter, r *http.Request) {
	slug := normalize.Slug(chi.URLParam(r, "office"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	o, err := govqueries.OfficeBySlug(ctx, h.DB, slug)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error loading office", err, "A database error occurred.", "/")
		return
	}
	if o == nil {
		errorsfeature.RenderNotFound(w, r, "We could not find that office.", links.Groups())
		return
	}
	g, err := groupstore.New(h.DB).GetByID(ctx, o.GroupID)
	if err != nil {
		h.ErrLog.HandleStoreError(w, r, "office group", err, links.Groups())
		return
	}

	http.Redirect(w, r, links.Office(g.Slug, o.Slug), http.StatusFound)
}
