// internal/app/features/meetings/handler.go
package meetings

import (
	"net/http"

	errorsfeature "github.com/dalemusser/govhub/internal/app/features/errors"
	"github.com/dalemusser/govhub/internal/app/store/queries/govqueries"
	"github.com/dalemusser/govhub/internal/app/system/normalize"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves a group's meeting archive, meeting pages and minutes.
type Handler struct {
	DB     *mongo.Database
	ErrLog *errorsfeature.ErrorLogger
	Log    *zap.Logger

	// ShowDrafts exposes draft minutes on the minutes page.
	ShowDrafts bool
}

func NewHandler(db *mongo.Database, errLog *errorsfeature.ErrorLogger, showDrafts bool, logger *zap.Logger) *Handler {
	return &Handler{
		DB:         db,
		ErrLog:     errLog,
		Log:        logger,
		ShowDrafts: showDrafts,
	}
}

// meetingRef reads {group}, {year}, {month} and the optional ?meeting=
// id from the request. ok is false when a value does not parse.
func meetingRef(r *http.Request) (string, govqueries.MeetingRef, bool) {
	slug := normalize.Slug(chi.URLParam(r, "group"))
	year, ok := normalize.Year(chi.URLParam(r, "year"))
	if !ok {
		return slug, govqueries.MeetingRef{}, false
	}
	month, ok := normalize.Month(chi.URLParam(r, "month"))
	if !ok {
		return slug, govqueries.MeetingRef{}, false
	}
	ref := govqueries.MeetingRef{Year: year, Month: month}
	if hex := normalize.QueryParam(query.Get(r, "meeting")); hex != "" {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			return slug, govqueries.MeetingRef{}, false
		}
		ref.ID = id
	}
	return slug, ref, true
}
