// internal/app/features/bylaws/handler.go
package bylaws

import (
	"context"
	"html/template"
	"net/http"

	errorsfeature "github.com/dalemusser/govhub/internal/app/features/errors"
	"github.com/dalemusser/govhub/internal/app/features/shared/links"
	"github.com/dalemusser/govhub/internal/app/features/shared/rows"
	bylawsstore "github.com/dalemusser/govhub/internal/app/store/bylaws"
	"github.com/dalemusser/govhub/internal/app/store/queries/govqueries"
	"github.com/dalemusser/govhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/govhub/internal/app/system/normalize"
	"github.com/dalemusser/govhub/internal/app/system/timeouts"
	"github.com/dalemusser/govhub/internal/app/system/viewdata"
	"github.com/dalemusser/govhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the adopted text of bylaws documents.
type Handler struct {
	DB     *mongo.Database
	ErrLog *errorsfeature.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		ErrLog: errLog,
		Log:    logger,
	}
}

type docLink struct {
	Title   string
	URL     string
	Current bool
}

type listData struct {
	viewdata.BaseVM
	Documents []docLink
}

type bylawsData struct {
	viewdata.BaseVM
	AdoptedOn string
	Revision  int64
	DraftOn   string // newer draft amendment, if any
	Content   template.HTML
	Documents []docLink
}

func docLinks(docs []models.Bylaws, current string) []docLink {
	out := make([]docLink, 0, len(docs))
	for _, b := range docs {
		out = append(out, docLink{Title: b.Title, URL: links.Bylaws(b.Slug), Current: b.Slug == current})
	}
	return out
}

// ServeList handles GET /bylaws.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	docs, err := bylawsstore.New(h.DB).List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error listing bylaws", err, "A database error occurred.", "/")
		return
	}

	data := listData{
		BaseVM:    viewdata.NewBaseVM(r, "Bylaws", "/"),
		Documents: docLinks(docs, ""),
	}
	templates.Render(w, r, "bylaws_list", data)
}

// ServeDetail handles GET /bylaws/{slug}: the most recently adopted
// revision, which may be older than the working draft.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	slug := normalize.Slug(chi.URLParam(r, "slug"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := govqueries.AdoptedBylaws(ctx, h.DB, slug)
	if err != nil {
		h.ErrLog.HandleStoreError(w, r, "adopted bylaws", err, "/bylaws")
		return
	}

	data := bylawsData{
		BaseVM:    viewdata.NewBaseVM(r, d.Bylaws.Title, "/bylaws"),
		AdoptedOn: d.Revision.SavedAt.Format(rows.DateLayout),
		Revision:  d.Revision.Seq,
		Content:   htmlsanitize.PrepareForDisplay(d.Bylaws.Content),
		Documents: docLinks(d.Documents, d.Bylaws.Slug),
	}
	if d.PendingDraft != nil {
		data.DraftOn = d.PendingDraft.SavedAt.Format(rows.DateLayout)
	}
	templates.Render(w, r, "bylaws_detail", data)
}
