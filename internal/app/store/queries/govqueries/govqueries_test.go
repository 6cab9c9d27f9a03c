package govqueries_test

import (
	"testing"
	"time"

	bylawsstore "github.com/dalemusser/govhub/internal/app/store/bylaws"
	minutesstore "github.com/dalemusser/govhub/internal/app/store/minutes"
	"github.com/dalemusser/govhub/internal/app/store/queries/govqueries"
	"github.com/dalemusser/govhub/internal/app/store/storeerr"
	"github.com/dalemusser/govhub/internal/domain/models"
	"github.com/dalemusser/govhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var now = time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)

func term(start time.Time) models.Term {
	return models.Term{ID: primitive.NewObjectID(), Start: start}
}

func TestPickTerm(t *testing.T) {
	a := term(testutil.Day(2020, 1, 1))
	b := term(testutil.Day(2022, 1, 1))
	c := term(testutil.Day(2022, 7, 1))

	got, err := govqueries.PickTerm([]models.Term{a, b, c}, 0)
	if err != nil || got.ID != c.ID {
		t.Errorf("latest: got %v, %v", got.Start, err)
	}

	got, err = govqueries.PickTerm([]models.Term{a, b, c}, 2020)
	if err != nil || got.ID != a.ID {
		t.Errorf("2020: got %v, %v", got.Start, err)
	}

	_, err = govqueries.PickTerm([]models.Term{a, b, c}, 2022)
	if !storeerr.IsAmbiguous(err) || len(storeerr.Candidates(err)) != 2 {
		t.Errorf("2022: err = %v, want ambiguous with 2 candidates", err)
	}

	if _, err := govqueries.PickTerm([]models.Term{a}, 2019); !storeerr.IsNotFound(err) {
		t.Errorf("2019: err = %v, want not found", err)
	}
	if _, err := govqueries.PickTerm(nil, 0); !storeerr.IsNotFound(err) {
		t.Errorf("empty: err = %v, want not found", err)
	}

	tie := term(c.Start)
	if _, err := govqueries.PickTerm([]models.Term{a, c, tie}, 0); !storeerr.IsAmbiguous(err) {
		t.Errorf("tie: err = %v, want ambiguous", err)
	}
}

type world struct {
	db        *mongo.Database
	board     models.Group
	finance   models.Group
	president models.Office
	ann, bob  models.Person
	cat, dan  models.Person
}

// seed builds a board with a president office (Ann until 2021, Bob since
// 2022), a plain seat for Cat, Dan's expired seat, and an ex-officio
// finance committee.
func seed(t *testing.T) world {
	t.Helper()
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	boardType := fx.CreateGroupType(ctx, "Board")
	committee := fx.CreateGroupType(ctx, "Committee")
	w := world{db: db}
	w.board = fx.CreateGroup(ctx, "Governing Board", boardType.ID, 0)
	w.finance = fx.CreateGroup(ctx, "Finance", committee.ID, 1)
	if _, err := db.Collection("groups").UpdateByID(ctx, w.finance.ID, map[string]any{"$set": map[string]any{"ex_officio": true}}); err != nil {
		t.Fatalf("flag ex officio: %v", err)
	}
	w.finance.ExOfficio = true
	w.president = fx.CreateOffice(ctx, w.board.ID, "President", true)

	w.ann = fx.CreatePerson(ctx, "Ann", "Able")
	w.bob = fx.CreatePerson(ctx, "Bob", "Baker")
	w.cat = fx.CreatePerson(ctx, "Cat", "Cole")
	w.dan = fx.CreatePerson(ctx, "Dan", "Dunn")

	fx.CreateTerm(ctx, w.board.ID, &w.president, w.ann.ID, testutil.Day(2020, 1, 1), testutil.Ptr(testutil.Day(2021, 12, 31)))
	fx.CreateTerm(ctx, w.board.ID, &w.president, w.bob.ID, testutil.Day(2022, 1, 1), nil)
	fx.CreateTerm(ctx, w.board.ID, nil, w.cat.ID, testutil.Day(2021, 1, 1), nil)
	fx.CreateTerm(ctx, w.board.ID, nil, w.dan.ID, testutil.Day(2018, 1, 1), testutil.Ptr(testutil.Day(2020, 12, 31)))
	return w
}

func names(ps []models.Person) []string {
	out := []string{}
	for _, p := range ps {
		out = append(out, p.FullName())
	}
	return out
}

func TestGroupDetail(t *testing.T) {
	w := seed(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	d, err := govqueries.GroupDetail(ctx, w.db, w.board.Slug, now)
	if err != nil {
		t.Fatalf("GroupDetail: %v", err)
	}
	if got := names(d.Members); len(got) != 2 || got[0] != "Bob Baker" || got[1] != "Cat Cole" {
		t.Errorf("Members = %v", got)
	}
	if got := names(d.PastMembers); len(got) != 2 || got[0] != "Ann Able" || got[1] != "Dan Dunn" {
		t.Errorf("PastMembers = %v", got)
	}
	if len(d.ActiveTerms) != 2 || d.ActiveTerms[0].Office == nil {
		t.Errorf("ActiveTerms should list the officer first: %+v", d.ActiveTerms)
	}
	if len(d.Offices) != 1 || d.Offices[0].Co() || d.Offices[0].Holders[0].Person.ID != w.bob.ID {
		t.Errorf("Offices = %+v", d.Offices)
	}

	fin, err := govqueries.GroupDetail(ctx, w.db, w.finance.Slug, now)
	if err != nil {
		t.Fatalf("GroupDetail finance: %v", err)
	}
	if got := names(fin.ExOfficio); len(got) != 1 || got[0] != "Bob Baker" {
		t.Errorf("finance ExOfficio = %v", got)
	}

	if _, err := govqueries.GroupDetail(ctx, w.db, "nope", now); !storeerr.IsNotFound(err) {
		t.Errorf("missing group: err = %v", err)
	}
}

func TestTermDetail(t *testing.T) {
	w := seed(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	d, err := govqueries.TermDetail(ctx, w.db, w.board.Slug, w.president.Slug, 0, now)
	if err != nil {
		t.Fatalf("TermDetail: %v", err)
	}
	if d.Term.Person.ID != w.bob.ID {
		t.Errorf("latest term held by %s", d.Term.Person.FullName())
	}
	if d.Previous == nil || d.Previous.Person.ID != w.ann.ID {
		t.Errorf("Previous = %+v, want Ann", d.Previous)
	}
	if len(d.Current.Holders) != 1 {
		t.Errorf("Current holders = %d", len(d.Current.Holders))
	}

	d, err = govqueries.TermDetail(ctx, w.db, w.board.Slug, w.president.Slug, 2020, now)
	if err != nil || d.Term.Person.ID != w.ann.ID {
		t.Errorf("2020 term: %v, %v", d.Term.Person.FullName(), err)
	}
	if len(d.History) != 2 {
		t.Errorf("History = %d terms, want 2", len(d.History))
	}

	if _, err := govqueries.TermDetail(ctx, w.db, w.board.Slug, w.president.Slug, 2015, now); !storeerr.IsNotFound(err) {
		t.Errorf("2015: err = %v, want not found", err)
	}
}

func TestTermDetail_AmbiguousYear(t *testing.T) {
	w := seed(t)
	fx := testutil.NewFixtures(t, w.db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Cat shares the presidency with Bob from mid-2022.
	fx.CreateTerm(ctx, w.board.ID, &w.president, w.cat.ID, testutil.Day(2022, time.July, 1), nil)

	_, err := govqueries.TermDetail(ctx, w.db, w.board.Slug, w.president.Slug, 2022, now)
	if !storeerr.IsAmbiguous(err) {
		t.Fatalf("err = %v, want ambiguous", err)
	}
	cands, err := govqueries.TermsByIDs(ctx, w.db, storeerr.Candidates(err))
	if err != nil {
		t.Fatalf("TermsByIDs: %v", err)
	}
	if len(cands) != 2 || cands[0].Person.ID != w.bob.ID || cands[1].Person.ID != w.cat.ID {
		t.Errorf("candidates = %+v", cands)
	}
	if cands[0].Group.ID != w.board.ID {
		t.Errorf("candidate group = %v, want board", cands[0].Group.ID)
	}
}

func TestMeetingDetailAndMinutes(t *testing.T) {
	w := seed(t)
	fx := testutil.NewFixtures(t, w.db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	at := func(m time.Month, d int) time.Time { return time.Date(2023, m, d, 19, 0, 0, 0, time.UTC) }
	jan := fx.CreateMeeting(ctx, w.board.ID, "January", at(1, 10))
	mar := fx.CreateMeeting(ctx, w.board.ID, "March", at(3, 14))
	may := fx.CreateMeeting(ctx, w.board.ID, "May", at(5, 9))
	fx.CreateMeeting(ctx, w.board.ID, "May special", at(5, 23))

	ms := minutesstore.New(w.db)
	draft := minutesstore.NewDraft(mar.ID)
	draft.Content = "<p>draft</p>"
	draft, err := ms.Save(ctx, draft)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	d, err := govqueries.MeetingDetail(ctx, w.db, w.board.Slug, govqueries.MeetingRef{Year: 2023, Month: time.March})
	if err != nil {
		t.Fatalf("MeetingDetail: %v", err)
	}
	if d.Previous == nil || d.Previous.ID != jan.ID || d.Next == nil || d.Next.ID != may.ID {
		t.Errorf("neighbours = %v / %v", d.Previous, d.Next)
	}
	if d.Minutes != nil {
		t.Error("draft minutes exposed on meeting page")
	}
	if _, err := govqueries.MinutesDetail(ctx, w.db, w.board.Slug, govqueries.MeetingRef{Year: 2023, Month: time.March}, false); !storeerr.IsNotFound(err) {
		t.Errorf("draft minutes: err = %v, want not found", err)
	}

	draft.Draft = false
	signer := w.bob.ID
	draft.SignedByID = &signer
	if _, err := ms.Save(ctx, draft); err != nil {
		t.Fatalf("approve: %v", err)
	}
	md, err := govqueries.MinutesDetail(ctx, w.db, w.board.Slug, govqueries.MeetingRef{Year: 2023, Month: time.March}, false)
	if err != nil {
		t.Fatalf("MinutesDetail: %v", err)
	}
	if md.SignedBy == nil || md.SignedBy.ID != w.bob.ID {
		t.Errorf("SignedBy = %v", md.SignedBy)
	}

	_, err = govqueries.MeetingDetail(ctx, w.db, w.board.Slug, govqueries.MeetingRef{Year: 2023, Month: time.May})
	if !storeerr.IsAmbiguous(err) {
		t.Fatalf("May: err = %v, want ambiguous", err)
	}
	cands, err := govqueries.MeetingsInMonth(ctx, w.db, w.board.Slug, 2023, time.May)
	if err != nil || len(cands.Meetings) != 2 {
		t.Errorf("MeetingsInMonth = %d, %v", len(cands.Meetings), err)
	}
	picked, err := govqueries.MeetingDetail(ctx, w.db, w.board.Slug, govqueries.MeetingRef{Year: 2023, Month: time.May, ID: may.ID})
	if err != nil || picked.Meeting.ID != may.ID {
		t.Errorf("MeetingDetail by id = %v, %v", picked.Meeting.ID, err)
	}
	if _, err := govqueries.MeetingDetail(ctx, w.db, w.board.Slug, govqueries.MeetingRef{Year: 2023, Month: time.June, ID: may.ID}); !storeerr.IsNotFound(err) {
		t.Errorf("id outside month: err = %v, want not found", err)
	}

	list, err := govqueries.MeetingList(ctx, w.db, w.board.Slug, 2023)
	if err != nil || len(list.Meetings) != 4 || list.Meetings[0].Event.Title != "May special" {
		t.Errorf("MeetingList = %+v, %v", list.Meetings, err)
	}
}

func TestIndex(t *testing.T) {
	w := seed(t)
	fx := testutil.NewFixtures(t, w.db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for d := 1; d <= 7; d++ {
		fx.CreateMeeting(ctx, w.finance.ID, "Finance", time.Date(2023, 5, d, 19, 0, 0, 0, time.UTC))
	}
	fx.CreateMeeting(ctx, w.board.ID, "Future", time.Date(2023, 9, 1, 19, 0, 0, 0, time.UTC))

	d, err := govqueries.Index(ctx, w.db, now, 5, "board")
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if len(d.Groups) != 2 || d.Groups[0].ID != w.board.ID {
		t.Errorf("Groups = %+v", d.Groups)
	}
	if len(d.RecentMeetings) != 5 || d.RecentMeetings[0].Group.ID != w.finance.ID {
		t.Errorf("RecentMeetings = %d", len(d.RecentMeetings))
	}
	if len(d.Board) != 2 {
		t.Errorf("Board roster = %d terms, want 2", len(d.Board))
	}

	none, err := govqueries.Index(ctx, w.db, now, 5, "no-such-type")
	if err != nil || len(none.Board) != 0 {
		t.Errorf("Index without board type = %d, %v", len(none.Board), err)
	}
}

func TestPersonDetail(t *testing.T) {
	w := seed(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	d, err := govqueries.PersonDetail(ctx, w.db, w.ann.Slug, now)
	if err != nil {
		t.Fatalf("PersonDetail: %v", err)
	}
	if len(d.Current) != 0 || len(d.Past) != 1 || d.Past[0].Office == nil {
		t.Errorf("Ann: current=%d past=%d", len(d.Current), len(d.Past))
	}
	if got := d.Past[0].Label(); got != "Ann Able - President (2020)" {
		t.Errorf("Label = %q", got)
	}
}

func TestPersonDetail_Upcoming(t *testing.T) {
	w := seed(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, w.db)
	fx.CreateTerm(ctx, w.finance.ID, nil, w.ann.ID, testutil.Day(2024, 1, 1), nil)

	d, err := govqueries.PersonDetail(ctx, w.db, w.ann.Slug, now)
	if err != nil {
		t.Fatalf("PersonDetail: %v", err)
	}
	if len(d.Current) != 0 || len(d.Upcoming) != 1 || len(d.Past) != 1 {
		t.Fatalf("Ann: current=%d upcoming=%d past=%d, want 0/1/1", len(d.Current), len(d.Upcoming), len(d.Past))
	}
	if d.Upcoming[0].Group.ID != w.finance.ID {
		t.Errorf("upcoming term group = %v, want Finance", d.Upcoming[0].Group.ID)
	}
}

func TestHelpers(t *testing.T) {
	w := seed(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	o, err := govqueries.OfficeBySlug(ctx, w.db, "president")
	if err != nil || o == nil || o.ID != w.president.ID {
		t.Errorf("OfficeBySlug = %v, %v", o, err)
	}
	if o, err := govqueries.OfficeBySlug(ctx, w.db, "treasurer"); err != nil || o != nil {
		t.Errorf("OfficeBySlug(missing) = %v, %v", o, err)
	}

	one := 1
	gs, err := govqueries.Groups(ctx, w.db, "active", &one)
	if err != nil || len(gs) != 1 || gs[0].ID != w.finance.ID {
		t.Errorf("Groups(active, 1) = %+v, %v", gs, err)
	}

	g, err := govqueries.ActiveGroupBySlug(ctx, w.db, w.board.Slug)
	if err != nil || g == nil {
		t.Errorf("ActiveGroupBySlug = %v, %v", g, err)
	}
}

func TestAdoptedBylaws_PendingDraft(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	bs := bylawsstore.New(db)

	b, err := bs.Save(ctx, models.Bylaws{Title: "Constitution", Status: models.BylawsAdopted, Content: "<p>v1</p>"})
	if err != nil {
		t.Fatalf("Save adopted: %v", err)
	}
	d, err := govqueries.AdoptedBylaws(ctx, db, "constitution")
	if err != nil {
		t.Fatalf("AdoptedBylaws: %v", err)
	}
	if d.PendingDraft != nil {
		t.Errorf("PendingDraft = %+v, want nil", d.PendingDraft)
	}

	b.Status = models.BylawsDraft
	b.Content = "<p>v2</p>"
	if _, err := bs.Save(ctx, b); err != nil {
		t.Fatalf("Save draft: %v", err)
	}
	d, err = govqueries.AdoptedBylaws(ctx, db, "constitution")
	if err != nil {
		t.Fatalf("AdoptedBylaws: %v", err)
	}
	if d.Bylaws.Content != "<p>v1</p>" || d.Revision.Seq != 1 {
		t.Errorf("adopted = %q rev %d, want v1 rev 1", d.Bylaws.Content, d.Revision.Seq)
	}
	if d.PendingDraft == nil || d.PendingDraft.Seq != 2 {
		t.Errorf("PendingDraft = %+v, want revision 2", d.PendingDraft)
	}
}
