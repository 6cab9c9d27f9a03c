// internal/app/features/groups/list.go
package groups

import (
	"context"
	"net/http"

	errorsfeature "github.com/dalemusser/govhub/internal/app/features/errors"
	"github.com/dalemusser/govhub/internal/app/features/shared/links"
	groupstore "github.com/dalemusser/govhub/internal/app/store/groups"
	"github.com/dalemusser/govhub/internal/app/store/queries/govqueries"
	"github.com/dalemusser/govhub/internal/app/system/normalize"
	"github.com/dalemusser/govhub/internal/app/system/timeouts"
	"github.com/dalemusser/govhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
)

type listRow struct {
	Title     string
	URL       string
	Active    bool
	Disbanded string
}

type listData struct {
	viewdata.BaseVM
	Status string
	Groups []listRow
}

// ServeList handles GET /groups. Query params: status (active, inactive,
// all; default active) and order (exact order value).
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	status := normalize.Status(query.Get(r, "status"))
	if status == "" {
		status = groupstore.StatusActive
	}
	switch status {
	case groupstore.StatusActive, groupstore.StatusInactive, groupstore.StatusAll:
	default:
		errorsfeature.RenderNotFound(w, r, "Unknown group status.", links.Groups())
		return
	}
	order, ok := normalize.OptionalInt(query.Get(r, "order"))
	if !ok {
		errorsfeature.RenderNotFound(w, r, "Unknown group order.", links.Groups())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	gs, err := govqueries.Groups(ctx, h.DB, status, order)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error listing groups", err, "A database error occurred.", "/")
		return
	}

	data := listData{
		BaseVM: viewdata.NewBaseVM(r, "Groups", "/"),
		Status: status,
	}
	for _, g := range gs {
		row := listRow{Title: g.Title, URL: links.Group(g.Slug), Active: g.Active}
		if g.DisbandedOn != nil {
			row.Disbanded = g.DisbandedOn.Format("January 2006")
		}
		data.Groups = append(data.Groups, row)
	}

	templates.Render(w, r, "groups_list", data)
}
