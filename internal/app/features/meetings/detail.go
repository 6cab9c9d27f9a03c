// internal/app/features/meetings/detail.go
package meetings

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"time"

	errorsfeature "github.com/dalemusser/govhub/internal/app/features/errors"
	"github.com/dalemusser/govhub/internal/app/features/shared/links"
	"github.com/dalemusser/govhub/internal/app/features/shared/rows"
	"github.com/dalemusser/govhub/internal/app/store/queries/govqueries"
	"github.com/dalemusser/govhub/internal/app/store/storeerr"
	"github.com/dalemusser/govhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/govhub/internal/app/system/timeouts"
	"github.com/dalemusser/govhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
)

type detailData struct {
	viewdata.BaseVM
	GroupTitle      string
	GroupURL        string
	When            string
	Ends            string
	Agenda          template.HTML
	BusinessArising template.HTML
	Previous        *rows.Meeting
	Next            *rows.Meeting
	MinutesURL      string // set when approved minutes exist
	MinutesContent  template.HTML
	PrintURL        string
	YearURL         string
}

func newDetailData(r *http.Request, d govqueries.MeetingDetailData, now time.Time) detailData {
	row := rows.FromMeeting(d.Meeting, d.Group, now)
	data := detailData{
		BaseVM:          viewdata.NewBaseVM(r, row.Title, links.Meetings(d.Group.Slug)),
		GroupTitle:      d.Group.Title,
		GroupURL:        links.Group(d.Group.Slug),
		When:            row.When,
		Agenda:          htmlsanitize.PrepareForDisplay(d.Meeting.Agenda),
		BusinessArising: htmlsanitize.PrepareForDisplay(d.Meeting.BusinessArising),
		PrintURL:        links.MeetingPrint(d.Group.Slug, d.Meeting.Start()),
		YearURL:         links.MeetingsYear(d.Group.Slug, d.Meeting.Start().Year()),
	}
	if end := d.Meeting.End(); end.After(d.Meeting.Start()) {
		data.Ends = end.Format(rows.TimeLayout)
	}
	if d.Previous != nil {
		p := rows.FromMeeting(*d.Previous, d.Group, now)
		data.Previous = &p
	}
	if d.Next != nil {
		n := rows.FromMeeting(*d.Next, d.Group, now)
		data.Next = &n
	}
	if d.Minutes != nil {
		data.MinutesURL = row.MinutesURL
		data.MinutesContent = htmlsanitize.PrepareForDisplay(d.Minutes.Content)
	}
	return data
}

// ServeMeeting handles GET /groups/{group}/meetings/{year}/{month}.
func (h *Handler) ServeMeeting(w http.ResponseWriter, r *http.Request) {
	h.serveMeeting(w, r, "meeting_detail", "")
}

// ServePrint handles GET /groups/{group}/meetings/{year}/{month}/print.
func (h *Handler) ServePrint(w http.ResponseWriter, r *http.Request) {
	h.serveMeeting(w, r, "meeting_print", "/print")
}

func (h *Handler) serveMeeting(w http.ResponseWriter, r *http.Request, tmpl, suffix string) {
	slug, ref, ok := meetingRef(r)
	if !ok {
		errorsfeature.RenderNotFound(w, r, "That is not a meeting date.", links.Groups())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	d, err := govqueries.MeetingDetail(ctx, h.DB, slug, ref)
	if err != nil {
		h.handleMeetingError(ctx, w, r, slug, ref, suffix, err)
		return
	}

	templates.Render(w, r, tmpl, newDetailData(r, d, time.Now()))
}

// handleMeetingError renders the disambiguation page when several
// meetings were held in the month, and the usual error page otherwise.
func (h *Handler) handleMeetingError(ctx context.Context, w http.ResponseWriter, r *http.Request, slug string, ref govqueries.MeetingRef, suffix string, err error) {
	if !storeerr.IsAmbiguous(err) {
		h.ErrLog.HandleStoreError(w, r, "meeting", err, links.Meetings(slug))
		return
	}

	cands, lerr := govqueries.MeetingsInMonth(ctx, h.DB, slug, ref.Year, ref.Month)
	if lerr != nil {
		h.ErrLog.HandleStoreError(w, r, "meeting", lerr, links.Meetings(slug))
		return
	}
	choices := make([]errorsfeature.Choice, 0, len(cands.Meetings))
	for _, m := range cands.Meetings {
		row := rows.FromMeeting(m, cands.Group, time.Now())
		pick := urlutil.AddOrSetQueryParams(links.Meeting(slug, m.Start())+suffix, map[string]string{
			"meeting": m.ID.Hex(),
		})
		choices = append(choices, errorsfeature.Choice{
			Label: row.Title + ", " + row.When,
			URL:   pick,
		})
	}
	msg := fmt.Sprintf("%s met %d times in %s %d.", cands.Group.Title, len(choices), ref.Month, ref.Year)
	errorsfeature.RenderChoices(w, r, msg, links.MeetingsYear(slug, ref.Year), choices)
}
