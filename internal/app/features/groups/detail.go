// internal/app/features/groups/detail.go
package groups

import (
	"context"
	"html/template"
	"net/http"
	"time"

	"github.com/dalemusser/govhub/internal/app/features/shared/links"
	"github.com/dalemusser/govhub/internal/app/features/shared/rows"
	"github.com/dalemusser/govhub/internal/app/store/queries/govqueries"
	"github.com/dalemusser/govhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/govhub/internal/app/system/normalize"
	"github.com/dalemusser/govhub/internal/app/system/timeouts"
	"github.com/dalemusser/govhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

type officeRow struct {
	Title      string
	URL        string
	Vacant     bool
	Holders    []rows.Term
	Alternates []rows.Term
}

type detailData struct {
	viewdata.BaseVM
	TypeTitle   string
	Description template.HTML
	Active      bool
	Disbanded   string

	Offices     []officeRow
	Seats       []rows.Term // active terms without an office
	Members     []rows.Person
	ExOfficio   []rows.Person
	PastMembers []rows.Person

	NextMeeting *rows.Meeting
	LastMeeting *rows.Meeting
	MeetingsURL string
	UpcomingURL string
}

func officeRows(groupSlug string, ovs []govqueries.OfficeView) []officeRow {
	out := make([]officeRow, 0, len(ovs))
	for _, ov := range ovs {
		out = append(out, officeRow{
			Title:      rows.OfficeTitle(ov.Office.Title, ov.Co()),
			URL:        links.Office(groupSlug, ov.Office.Slug),
			Vacant:     ov.Vacant(),
			Holders:    rows.FromTerms(ov.Holders),
			Alternates: rows.FromTerms(ov.Alternates),
		})
	}
	return out
}

// ServeDetail handles GET /groups/{group}.
func (h *Handler) ServeDetail(w http.ResponseWriter, r *http.Request) {
	slug := normalize.Slug(chi.URLParam(r, "group"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	now := time.Now()
	d, err := govqueries.GroupDetail(ctx, h.DB, slug, now)
	if err != nil {
		h.ErrLog.HandleStoreError(w, r, "group", err, links.Groups())
		return
	}

	data := detailData{
		BaseVM:      viewdata.NewBaseVM(r, d.Group.Title, links.Groups()),
		TypeTitle:   d.Type.Title,
		Description: htmlsanitize.PrepareForDisplay(d.Group.Description),
		Active:      d.Group.Active,
		Offices:     officeRows(d.Group.Slug, d.Offices),
		Members:     rows.FromPeople(d.Members),
		ExOfficio:   rows.FromPeople(d.ExOfficio),
		PastMembers: rows.FromPeople(d.PastMembers),
		MeetingsURL: links.Meetings(d.Group.Slug),
		UpcomingURL: links.Meetings(d.Group.Slug) + "/upcoming",
	}
	if d.Group.DisbandedOn != nil {
		data.Disbanded = d.Group.DisbandedOn.Format(rows.DateLayout)
	}
	for _, tv := range d.ActiveTerms {
		if tv.Office == nil {
			data.Seats = append(data.Seats, rows.FromTerm(tv))
		}
	}
	if d.NextMeeting != nil {
		m := rows.FromMeeting(*d.NextMeeting, d.Group, now)
		data.NextMeeting = &m
	}
	if d.LastMeeting != nil {
		m := rows.FromMeeting(*d.LastMeeting, d.Group, now)
		data.LastMeeting = &m
	}

	templates.Render(w, r, "group_detail", data)
}
