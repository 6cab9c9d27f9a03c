package groups_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	errorsfeature "github.com/dalemusser/govhub/internal/app/features/errors"
	"github.com/dalemusser/govhub/internal/app/features/groups"
	"github.com/dalemusser/govhub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*groups.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	return groups.NewHandler(db, errorsfeature.NewErrorLogger(logger), logger), testutil.NewFixtures(t, db)
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

func TestServeDetail_NotFound(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest("GET", "/groups/missing", nil)
	req = testutil.WithChiURLParam(req, "group", "missing")

	rec := serve(h.ServeDetail, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestServeDetail_Found(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	bt := fx.CreateGroupType(ctx, "Board")
	g := fx.CreateGroup(ctx, "Governing Board", bt.ID, 1)
	pres := fx.CreateOffice(ctx, g.ID, "President", false)
	ann := fx.CreatePerson(ctx, "Ann", "Able")
	fx.CreateTerm(ctx, g.ID, &pres, ann.ID, testutil.Day(2022, time.January, 1), nil)

	req := httptest.NewRequest("GET", "/groups/"+g.Slug, nil)
	req = testutil.WithChiURLParam(req, "group", g.Slug)

	rec := serve(h.ServeDetail, req)
	if rec.Code >= 400 {
		t.Errorf("status = %d, want success", rec.Code)
	}
}

func TestServeList_UnknownStatus(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := serve(h.ServeList, httptest.NewRequest("GET", "/groups?status=sleeping", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestServeList_BadOrder(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := serve(h.ServeList, httptest.NewRequest("GET", "/groups?order=first", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestServeList_Filters(t *testing.T) {
	h, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ct := fx.CreateGroupType(ctx, "Committee")
	fx.CreateGroup(ctx, "Finance", ct.ID, 2)

	for _, target := range []string{"/groups", "/groups?status=all", "/groups?status=inactive&order=2"} {
		rec := serve(h.ServeList, httptest.NewRequest("GET", target, nil))
		if rec.Code >= 400 {
			t.Errorf("%s: status = %d, want success", target, rec.Code)
		}
	}
}
