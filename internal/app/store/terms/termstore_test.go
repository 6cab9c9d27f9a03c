package termstore_test

import (
	"errors"
	"testing"
	"time"

	termstore "github.com/dalemusser/govhub/internal/app/store/terms"
	"github.com/dalemusser/govhub/internal/domain/models"
	"github.com/dalemusser/govhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestValidate(t *testing.T) {
	g, p := primitive.NewObjectID(), primitive.NewObjectID()
	start := time.Date(2021, 3, 4, 15, 30, 0, 0, time.UTC)

	cases := []struct {
		name string
		term models.Term
		ok   bool
	}{
		{"open", models.Term{GroupID: g, PersonID: p, Start: start}, true},
		{"same day", models.Term{GroupID: g, PersonID: p, Start: start, End: testutil.Ptr(start.Add(-time.Hour))}, true},
		{"no start", models.Term{GroupID: g, PersonID: p}, false},
		{"no person", models.Term{GroupID: g, Start: start}, false},
		{"no group", models.Term{PersonID: p, Start: start}, false},
		{"end before start", models.Term{GroupID: g, PersonID: p, Start: start, End: testutil.Ptr(testutil.Day(2020, 1, 1))}, false},
	}
	for _, c := range cases {
		term := c.term
		err := termstore.Validate(&term)
		if c.ok && err != nil {
			t.Errorf("%s: unexpected error %v", c.name, err)
		}
		if !c.ok && !errors.Is(err, termstore.ErrInvalidTerm) {
			t.Errorf("%s: err = %v, want ErrInvalidTerm", c.name, err)
		}
		if c.ok && !term.Start.Equal(testutil.Day(2021, 3, 4)) {
			t.Errorf("%s: start not normalized: %v", c.name, term.Start)
		}
	}
}

func TestStore_Lists(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := termstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	gt := fx.CreateGroupType(ctx, "Board")
	board := fx.CreateGroup(ctx, "Board", gt.ID, 0)
	pres := fx.CreateOffice(ctx, board.ID, "President", false)
	ann := fx.CreatePerson(ctx, "Ann", "Able")
	bob := fx.CreatePerson(ctx, "Bob", "Baker")

	officeID := pres.ID
	mk := func(p primitive.ObjectID, office *primitive.ObjectID, start time.Time, end *time.Time) models.Term {
		term, err := store.Create(ctx, models.Term{GroupID: board.ID, OfficeID: office, PersonID: p, Start: start, End: end})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		return term
	}
	a := mk(ann.ID, &officeID, testutil.Day(2020, 1, 1), testutil.Ptr(testutil.Day(2021, 12, 31)))
	b := mk(bob.ID, &officeID, testutil.Day(2022, 1, 1), nil)
	mk(ann.ID, nil, testutil.Day(2022, 1, 1), nil)

	byGroup, err := store.ListByGroup(ctx, board.ID)
	if err != nil || len(byGroup) != 3 {
		t.Fatalf("ListByGroup = %d, %v", len(byGroup), err)
	}
	if byGroup[0].ID != a.ID {
		t.Errorf("ListByGroup not sorted by start")
	}

	byOffice, err := store.ListByOffice(ctx, pres.ID)
	if err != nil || len(byOffice) != 2 {
		t.Fatalf("ListByOffice = %d, %v", len(byOffice), err)
	}

	byPerson, err := store.ListByPerson(ctx, ann.ID)
	if err != nil || len(byPerson) != 2 {
		t.Fatalf("ListByPerson = %d, %v", len(byPerson), err)
	}

	in2022, err := store.FindByOfficeStartYear(ctx, pres.ID, 2022)
	if err != nil {
		t.Fatalf("FindByOfficeStartYear: %v", err)
	}
	if len(in2022) != 1 || in2022[0].ID != b.ID {
		t.Errorf("FindByOfficeStartYear(2022) = %+v", in2022)
	}
	none, _ := store.FindByOfficeStartYear(ctx, pres.ID, 2019)
	if len(none) != 0 {
		t.Errorf("FindByOfficeStartYear(2019) = %d terms", len(none))
	}
}

func TestStore_CreateRejectsInvalid(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := termstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, models.Term{GroupID: primitive.NewObjectID(), PersonID: primitive.NewObjectID()})
	if !errors.Is(err, termstore.ErrInvalidTerm) {
		t.Errorf("err = %v, want ErrInvalidTerm", err)
	}
}
