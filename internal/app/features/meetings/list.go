// internal/app/features/meetings/list.go
package meetings

import (
	"context"
	"net/http"
	"strconv"
	"time"

	errorsfeature "github.com/dalemusser/govhub/internal/app/features/errors"
	"github.com/dalemusser/govhub/internal/app/features/shared/links"
	"github.com/dalemusser/govhub/internal/app/features/shared/rows"
	"github.com/dalemusser/govhub/internal/app/store/queries/govqueries"
	"github.com/dalemusser/govhub/internal/app/system/normalize"
	"github.com/dalemusser/govhub/internal/app/system/timeouts"
	"github.com/dalemusser/govhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
)

type yearLink struct {
	Year    int
	URL     string
	Current bool
}

type listData struct {
	viewdata.BaseVM
	GroupTitle string
	GroupURL   string
	Heading    string
	AllURL     string
	Years      []yearLink
	Meetings   []rows.Meeting
}

func newListData(r *http.Request, d govqueries.MeetingListData, heading string, now time.Time) listData {
	data := listData{
		BaseVM:     viewdata.NewBaseVM(r, d.Group.Title+": "+heading, links.Group(d.Group.Slug)),
		GroupTitle: d.Group.Title,
		GroupURL:   links.Group(d.Group.Slug),
		Heading:    heading,
		AllURL:     links.Meetings(d.Group.Slug),
		Meetings:   rows.FromMeetings(d.Meetings, d.Group, now),
	}
	for _, y := range d.Years {
		data.Years = append(data.Years, yearLink{
			Year:    y,
			URL:     links.MeetingsYear(d.Group.Slug, y),
			Current: y == d.Year,
		})
	}
	return data
}

// ServeList handles GET /groups/{group}/meetings.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	h.serveArchive(w, r, 0)
}

// ServeYear handles GET /groups/{group}/meetings/{year}.
func (h *Handler) ServeYear(w http.ResponseWriter, r *http.Request) {
	year, ok := normalize.Year(chi.URLParam(r, "year"))
	if !ok {
		errorsfeature.RenderNotFound(w, r, "That is not a year.", links.Groups())
		return
	}
	h.serveArchive(w, r, year)
}

func (h *Handler) serveArchive(w http.ResponseWriter, r *http.Request, year int) {
	slug := normalize.Slug(chi.URLParam(r, "group"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := govqueries.MeetingList(ctx, h.DB, slug, year)
	if err != nil {
		h.ErrLog.HandleStoreError(w, r, "group", err, links.Groups())
		return
	}

	heading := "Meetings"
	if year != 0 {
		heading = "Meetings in " + strconv.Itoa(year)
	}
	templates.Render(w, r, "meetings_list", newListData(r, d, heading, time.Now()))
}

// ServeUpcoming handles GET /groups/{group}/meetings/upcoming. Only
// active groups have upcoming meetings.
func (h *Handler) ServeUpcoming(w http.ResponseWriter, r *http.Request) {
	slug := normalize.Slug(chi.URLParam(r, "group"))

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	now := time.Now()
	d, err := govqueries.UpcomingMeetings(ctx, h.DB, slug, now)
	if err != nil {
		h.ErrLog.HandleStoreError(w, r, "active group", err, links.Groups())
		return
	}

	templates.Render(w, r, "meetings_list", newListData(r, d, "Upcoming meetings", now))
}
