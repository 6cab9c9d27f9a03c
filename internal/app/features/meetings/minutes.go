// internal/app/features/meetings/minutes.go
package meetings

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
	"github.com/dalemusser/govhub/internal/app/system/timeouts"
	"github.com/dalemusser/govhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dustin/go-humanize"
)

type attachmentRow struct {
	Title       string
	Description string
	URL         string
	Size        string
	ContentType string
}

type minutesData struct {
	viewdata.BaseVM
	GroupTitle     string
	GroupURL       string
	MeetingURL     string
	When           string
	Draft          bool
	CalledToOrder  string
	Adjourned      string
	Content        template.HTML
	MembersPresent []rows.Term
	OthersPresent  []rows.Person
	SignedBy       *rows.Person
	SignedOn       string
	Attachments    []attachmentRow
}

func newMinutesData(r *http.Request, d govqueries.MinutesDetailData) minutesData {
	meeting := rows.FromMeeting(d.Meeting, d.Group, time.Now())
	data := minutesData{
		BaseVM:         viewdata.NewBaseVM(r, "Minutes: "+meeting.Title, meeting.URL),
		GroupTitle:     d.Group.Title,
		GroupURL:       links.Group(d.Group.Slug),
		MeetingURL:     meeting.URL,
		When:           meeting.When,
		Draft:          d.Minutes.Draft,
		Content:        htmlsanitize.PrepareForDisplay(d.Minutes.Content),
		MembersPresent: rows.FromTerms(d.MembersPresent),
		OthersPresent:  rows.FromPeople(d.OthersPresent),
	}
	if d.Minutes.CalledToOrder != nil {
		data.CalledToOrder = d.Minutes.CalledToOrder.Format(rows.TimeLayout)
	}
	if d.Minutes.Adjourned != nil {
		data.Adjourned = d.Minutes.Adjourned.Format(rows.TimeLayout)
	}
	if d.SignedBy != nil {
		p := rows.Person{Name: d.SignedBy.FullName(), URL: links.Person(d.SignedBy.Slug)}
		data.SignedBy = &p
	}
	if d.Minutes.SignedOn != nil {
		data.SignedOn = d.Minutes.SignedOn.Format(rows.DateLayout)
	}
	for _, a := range d.Attachments {
		data.Attachments = append(data.Attachments, attachmentRow{
			Title:       a.Title,
			Description: a.Description,
			URL:         links.Attachment(a.ID),
			Size:        humanize.Bytes(uint64(a.Size)),
			ContentType: a.ContentType,
		})
	}
	return data
}

// ServeMinutes handles GET /groups/{group}/meetings/{year}/{month}/minutes.
func (h *Handler) ServeMinutes(w http.ResponseWriter, r *http.Request) {
	slug, ref, ok := meetingRef(r)
	if !ok {
		errorsfeature.RenderNotFound(w, r, "That is not a meeting date.", links.Groups())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	d, err := govqueries.MinutesDetail(ctx, h.DB, slug, ref, h.ShowDrafts)
	if err != nil {
		h.handleMeetingError(ctx, w, r, slug, ref, "/minutes", err)
		return
	}

	templates.Render(w, r, "minutes_detail", newMinutesData(r, d))
}
