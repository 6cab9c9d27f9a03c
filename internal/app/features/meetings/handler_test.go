package meetings_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	errorsfeature "github.com/dalemusser/govhub/internal/app/features/errors"
	"github.com/dalemusser/govhub/internal/app/features/meetings"
	"github.com/dalemusser/govhub/internal/domain/models"
	"github.com/dalemusser/govhub/internal/testutil"
	"go.uber.org/zap"
)

type world struct {
	h     *meetings.Handler
	fx    *testutil.Fixtures
	group models.Group
}

func setup(t *testing.T, showDrafts bool) world {
	t.Helper()
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	logger := zap.NewNop()

	ctx, cancel := testutil.TestContext()
	defer cancel()
	bt := fx.CreateGroupType(ctx, "Board")
	g := fx.CreateGroup(ctx, "Governing Board", bt.ID, 1)

	return world{
		h:     meetings.NewHandler(db, errorsfeature.NewErrorLogger(logger), showDrafts, logger),
		fx:    fx,
		group: g,
	}
}

func serve(fn http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	// Template rendering may panic without an initialized engine; status
	// codes for error pages are written before rendering.
	func() {
		defer func() { recover() }()
		fn(rec, req)
	}()
	return rec
}

func monthRequest(group string, year, month string, suffix string) *http.Request {
	req := httptest.NewRequest("GET", "/groups/"+group+"/meetings/"+year+"/"+month+suffix, nil)
	return testutil.WithChiURLParams(req, "group", group, "year", year, "month", month)
}

func TestServeMeeting_NotFound(t *testing.T) {
	w := setup(t, false)

	rec := serve(w.h.ServeMeeting, monthRequest(w.group.Slug, "2023", "4", ""))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestServeMeeting_BadMonth(t *testing.T) {
	w := setup(t, false)

	rec := serve(w.h.ServeMeeting, monthRequest(w.group.Slug, "2023", "april", ""))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestServeMeeting_Found(t *testing.T) {
	w := setup(t, false)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	w.fx.CreateMeeting(ctx, w.group.ID, "April", time.Date(2023, time.April, 11, 19, 0, 0, 0, time.UTC))

	rec := serve(w.h.ServeMeeting, monthRequest(w.group.Slug, "2023", "4", ""))
	if rec.Code >= 400 {
		t.Errorf("status = %d, want success", rec.Code)
	}
}

func TestServeMeeting_AmbiguousMonth(t *testing.T) {
	w := setup(t, false)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	first := w.fx.CreateMeeting(ctx, w.group.ID, "Regular", time.Date(2023, time.May, 9, 19, 0, 0, 0, time.UTC))
	w.fx.CreateMeeting(ctx, w.group.ID, "Special", time.Date(2023, time.May, 23, 19, 0, 0, 0, time.UTC))

	rec := serve(w.h.ServeMeeting, monthRequest(w.group.Slug, "2023", "5", ""))
	if rec.Code != http.StatusMultipleChoices {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMultipleChoices)
	}

	req := monthRequest(w.group.Slug, "2023", "5", "")
	req.URL.RawQuery = "meeting=" + first.ID.Hex()
	rec = serve(w.h.ServeMeeting, req)
	if rec.Code >= 400 || rec.Code == http.StatusMultipleChoices {
		t.Errorf("picked meeting: status = %d, want success", rec.Code)
	}
}

func TestServeMinutes_DraftHidden(t *testing.T) {
	w := setup(t, false)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	m := w.fx.CreateMeeting(ctx, w.group.ID, "April", time.Date(2023, time.April, 11, 19, 0, 0, 0, time.UTC))
	w.fx.CreateMinutes(ctx, m.ID, "<p>unapproved</p>", true)

	rec := serve(w.h.ServeMinutes, monthRequest(w.group.Slug, "2023", "4", "/minutes"))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestServeMinutes_DraftShown(t *testing.T) {
	w := setup(t, true)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	m := w.fx.CreateMeeting(ctx, w.group.ID, "April", time.Date(2023, time.April, 11, 19, 0, 0, 0, time.UTC))
	w.fx.CreateMinutes(ctx, m.ID, "<p>unapproved</p>", true)

	rec := serve(w.h.ServeMinutes, monthRequest(w.group.Slug, "2023", "4", "/minutes"))
	if rec.Code >= 400 {
		t.Errorf("status = %d, want success", rec.Code)
	}
}

func TestServeYear_BadYear(t *testing.T) {
	w := setup(t, false)

	req := httptest.NewRequest("GET", "/groups/"+w.group.Slug+"/meetings/recent", nil)
	req = testutil.WithChiURLParams(req, "group", w.group.Slug, "year", "recent")
	rec := serve(w.h.ServeYear, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestServeUpcoming_InactiveGroup(t *testing.T) {
	w := setup(t, false)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if _, err := w.fx.DB().Collection("groups").UpdateByID(ctx, w.group.ID,
		map[string]any{"$set": map[string]any{"active": false}}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	req := httptest.NewRequest("GET", "/groups/"+w.group.Slug+"/meetings/upcoming", nil)
	req = testutil.WithChiURLParam(req, "group", w.group.Slug)
	rec := serve(w.h.ServeUpcoming, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestServeList(t *testing.T) {
	w := setup(t, false)

	req := httptest.NewRequest("GET", "/groups/"+w.group.Slug+"/meetings", nil)
	req = testutil.WithChiURLParam(req, "group", w.group.Slug)
	rec := serve(w.h.ServeList, req)
	if rec.Code >= 400 {
		t.Errorf("status = %d, want success", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "database error") {
		t.Error("unexpected database error page")
	}
}
