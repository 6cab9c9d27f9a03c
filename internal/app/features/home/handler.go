package home

import (
	"context"
	"net/http"
	"time"

	errorsfeature "github.com/dalemusser/govhub/internal/app/features/errors"
	"github.com/dalemusser/govhub/internal/app/features/shared/links"
	"github.com/dalemusser/govhub/internal/app/features/shared/rows"
	"github.com/dalemusser/govhub/internal/app/store/queries/govqueries"
	"github.com/dalemusser/govhub/internal/app/system/timeouts"
	"github.com/dalemusser/govhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler holds dependencies needed to serve the home page.
type Handler struct {
	DB     *mongo.Database
	ErrLog *errorsfeature.ErrorLogger
	Log    *zap.Logger

	RecentMeetings int    // how many past meetings the index lists
	BoardSlug      string // group type whose active terms form the board roster
}

func NewHandler(db *mongo.Database, errLog *errorsfeature.ErrorLogger, recentMeetings int, boardSlug string, logger *zap.Logger) *Handler {
	return &Handler{
		DB:             db,
		ErrLog:         errLog,
		Log:            logger,
		RecentMeetings: recentMeetings,
		BoardSlug:      boardSlug,
	}
}

type groupRow struct {
	Title string
	URL   string
}

type indexData struct {
	viewdata.BaseVM
	Groups         []groupRow
	RecentMeetings []rows.Meeting
	Board          []rows.Term
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – index                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	now := time.Now()
	idx, err := govqueries.Index(ctx, h.DB, now, h.RecentMeetings, h.BoardSlug)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "database error loading index", err, "A database error occurred.", "/")
		return
	}

	data := indexData{
		BaseVM: viewdata.NewBaseVM(r, "Welcome", "/"),
		Board:  rows.FromTerms(idx.Board),
	}
	for _, g := range idx.Groups {
		data.Groups = append(data.Groups, groupRow{Title: g.Title, URL: links.Group(g.Slug)})
	}
	for _, mv := range idx.RecentMeetings {
		data.RecentMeetings = append(data.RecentMeetings, rows.FromMeeting(mv.Meeting, mv.Group, now))
	}

	templates.Render(w, r, "home", data)
}
