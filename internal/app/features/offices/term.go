// internal/app/features/offices/term.go
package offices

import (
	"context"
	"html/template"
	"net/http"
	"strconv"
	"time"

	errorsfeature "github.com/dalemusser/govhub/internal/app/features/errors"
	"github.com/dalemusser/govhub/internal/app/features/shared/links"
	"github.com/dalemusser/govhub/internal/app/features/shared/rows"
	"github.com/dalemusser/govhub/internal/app/store/queries/govqueries"
	"github.com/dalemusser/govhub/internal/app/store/storeerr"
	"github.com/dalemusser/govhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/govhub/internal/app/system/normalize"
	"github.com/dalemusser/govhub/internal/app/system/timeouts"
	"github.com/dalemusser/govhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

type termData struct {
	viewdata.BaseVM
	GroupTitle  string
	GroupURL    string
	OfficeTitle string // "Co-" prefixed while the office is shared
	Description template.HTML
	Term        rows.Term
	Length      string // empty for an open term
	Vacant      bool
	Holders     []rows.Term
	Alternates  []rows.Term
	Previous    *rows.Term
	History     []rows.Term
}

func newTermData(r *http.Request, d govqueries.TermDetailData) termData {
	title := rows.OfficeTitle(d.Office.Title, d.Current.Co())
	data := termData{
		BaseVM:      viewdata.NewBaseVM(r, d.Group.Title+" "+title, links.Group(d.Group.Slug)),
		GroupTitle:  d.Group.Title,
		GroupURL:    links.Group(d.Group.Slug),
		OfficeTitle: title,
		Description: htmlsanitize.PrepareForDisplay(d.Office.Description),
		Term:        rows.FromTerm(d.Term),
		Vacant:      d.Current.Vacant(),
		Holders:     rows.FromTerms(d.Current.Holders),
		Alternates:  rows.FromTerms(d.Current.Alternates),
		History:     rows.FromTerms(d.History),
	}
	if years, ok := d.Term.Term.LengthYears(); ok {
		switch years {
		case 0:
			data.Length = "less than a year"
		case 1:
			data.Length = "1 year"
		default:
			data.Length = strconv.Itoa(years) + " years"
		}
	}
	if d.Previous != nil {
		p := rows.FromTerm(*d.Previous)
		data.Previous = &p
	}
	return data
}

// ServeLatest handles GET /groups/{group}/officers/{office}: the term
// with the latest start.
func (h *Handler) ServeLatest(w http.ResponseWriter, r *http.Request) {
	h.serveTerm(w, r, 0)
}

// ServeYear handles GET /groups/{group}/officers/{office}/{year}: the
// term starting in year.
func (h *Handler) ServeYear(w http.ResponseWriter, r *http.Request) {
	year, ok := normalize.Year(chi.URLParam(r, "year"))
	if !ok {
		errorsfeature.RenderNotFound(w, r, "That is not a year.", links.Groups())
		return
	}
	h.serveTerm(w, r, year)
}

func (h *Handler) serveTerm(w http.ResponseWriter, r *http.Request, year int) {
	groupSlug := normalize.Slug(chi.URLParam(r, "group"))
	officeSlug := normalize.Slug(chi.URLParam(r, "office"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	d, err := govqueries.TermDetail(ctx, h.DB, groupSlug, officeSlug, year, time.Now())
	if err != nil {
		if storeerr.IsAmbiguous(err) {
			h.renderCandidates(ctx, w, r, groupSlug, err)
			return
		}
		h.ErrLog.HandleStoreError(w, r, "office term", err, links.Group(groupSlug))
		return
	}

	templates.Render(w, r, "office_term", newTermData(r, d))
}

// renderCandidates lists the holders of terms that started together;
// each links to the holder's page.
func (h *Handler) renderCandidates(ctx context.Context, w http.ResponseWriter, r *http.Request, groupSlug string, err error) {
	cands, lerr := govqueries.TermsByIDs(ctx, h.DB, storeerr.Candidates(err))
	if lerr != nil {
		h.ErrLog.HandleStoreError(w, r, "office term", lerr, links.Group(groupSlug))
		return
	}
	choices := make([]errorsfeature.Choice, 0, len(cands))
	for _, c := range cands {
		choices = append(choices, errorsfeature.Choice{Label: c.Label(), URL: links.Person(c.Person.Slug)})
	}
	errorsfeature.RenderChoices(w, r, "Several terms of this office started together.", links.Group(groupSlug), choices)
}
