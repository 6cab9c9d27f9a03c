package offices_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	errorsfeature "github.com/dalemusser/govhub/internal/app/features/errors"
	"github.com/dalemusser/govhub/internal/app/features/offices"
	"github.com/dalemusser/govhub/internal/domain/models"
	"github.com/dalemusser/govhub/internal/testutil"
	"go.uber.org/zap"
)

type world struct {
	h         *offices.Handler
	fx        *testutil.Fixtures
	board     models.Group
	president models.Office
}

func setup(t *testing.T) world {
	t.Helper()
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	logger := zap.NewNop()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	bt := fx.CreateGroupType(ctx, "Board")
	board := fx.CreateGroup(ctx, "Governing Board", bt.ID, 1)
	pres := fx.CreateOffice(ctx, board.ID, "President", false)
	ann := fx.CreatePerson(ctx, "Ann", "Able")
	bob := fx.CreatePerson(ctx, "Bob", "Baker")
	fx.CreateTerm(ctx, board.ID, &pres, ann.ID, testutil.Day(2020, time.January, 1), testutil.Ptr(testutil.Day(2021, time.December, 31)))
	fx.CreateTerm(ctx, board.ID, &pres, bob.ID, testutil.Day(2022, time.January, 1), nil)

	return world{
		h:         offices.NewHandler(db, errorsfeature.NewErrorLogger(logger), logger),
		fx:        fx,
		board:     board,
		president: pres,
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

func officeRequest(group, office string, kv ...string) *http.Request {
	req := httptest.NewRequest("GET", "/groups/"+group+"/officers/"+office, nil)
	return testutil.WithChiURLParams(req, append([]string{"group", group, "office", office}, kv...)...)
}

func TestServeLatest(t *testing.T) {
	w := setup(t)

	rec := serve(w.h.ServeLatest, officeRequest(w.board.Slug, w.president.Slug))
	if rec.Code >= 400 {
		t.Errorf("status = %d, want success", rec.Code)
	}
}

func TestServeYear_NoTermThatYear(t *testing.T) {
	w := setup(t)

	rec := serve(w.h.ServeYear, officeRequest(w.board.Slug, w.president.Slug, "year", "2015"))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestServeYear_SharedStart(t *testing.T) {
	w := setup(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	cat := w.fx.CreatePerson(ctx, "Cat", "Cole")
	w.fx.CreateTerm(ctx, w.board.ID, &w.president, cat.ID, testutil.Day(2022, time.March, 1), nil)

	rec := serve(w.h.ServeYear, officeRequest(w.board.Slug, w.president.Slug, "year", "2022"))
	if rec.Code != http.StatusMultipleChoices {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMultipleChoices)
	}
}

func TestServeLatest_UnknownOffice(t *testing.T) {
	w := setup(t)

	rec := serve(w.h.ServeLatest, officeRequest(w.board.Slug, "treasurer"))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestServeRedirect(t *testing.T) {
	w := setup(t)

	req := httptest.NewRequest("GET", "/offices/"+w.president.Slug, nil)
	req = testutil.WithChiURLParam(req, "office", w.president.Slug)
	rec := serve(w.h.ServeRedirect, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusFound)
	}
	want := "/groups/" + w.board.Slug + "/officers/" + w.president.Slug
	if got := rec.Header().Get("Location"); got != want {
		t.Errorf("Location = %q, want %q", got, want)
	}
}

func TestServeRedirect_Unknown(t *testing.T) {
	w := setup(t)

	req := httptest.NewRequest("GET", "/offices/nope", nil)
	req = testutil.WithChiURLParam(req, "office", "nope")
	rec := serve(w.h.ServeRedirect, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
