// internal/app/features/people/handler.go
package people

import (
	"context"
	"html/template"
	"net/http"
	"time"

	errorsfeature "github.com/dalemusser/govhub/internal/app/features/errors"
	"github.com/dalemusser/govhub/internal/app/features/shared/links"
	"github.com/dalemusser/govhub/internal/app/features/shared/rows"
	"github.com/dalemusser/govhub/internal/app/store/queries/govqueries"
	"github.com/dalemusser/govhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/govhub/internal/app/system/normalize"
	"github.com/dalemusser/govhub/internal/app/system/timeouts"
	"github.com/dalemusser/govhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves person pages.
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

type personData struct {
	viewdata.BaseVM
	Name    string
	Email   string
	Phone   string
	Bio     template.HTML
	Current  []rows.Term
	Upcoming []rows.Term
	Past     []rows.Term
}

// ServeDetail handles GET /people/{slug}.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	slug := normalize.Slug(chi.URLParam(r, "slug"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	d, err := govqueries.PersonDetail(ctx, h.DB, slug, time.Now())
	if err != nil {
		h.ErrLog.HandleStoreError(w, r, "person", err, "/")
		return
	}

	data := personData{
		BaseVM:   viewdata.NewBaseVM(r, d.Person.FullName(), links.Groups()),
		Name:     d.Person.FullName(),
		Email:    d.Person.Email,
		Phone:    d.Person.Phone,
		Bio:      htmlsanitize.PrepareForDisplay(d.Person.Bio),
		Current:  rows.FromTerms(d.Current),
		Upcoming: rows.FromTerms(d.Upcoming),
		Past:     rows.FromTerms(d.Past),
	}

	templates.Render(w, r, "person_detail", data)
}
