package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/govhub/internal/app/system/slugs"
	"github.com/dalemusser/govhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures inserts test data directly into the collections, bypassing
// the stores.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

func (f *Fixtures) insert(ctx context.Context, coll string, doc any) {
	f.t.Helper()
	if _, err := f.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("failed to insert into %s: %v", coll, err)
	}
}

func stamps() models.Stamps {
	now := time.Now().UTC()
	return models.Stamps{CreatedAt: now, UpdatedAt: now}
}

// CreatePerson inserts an organization member named "first last".
func (f *Fixtures) CreatePerson(ctx context.Context, first, last string) models.Person {
	f.t.Helper()
	p := models.Person{
		ID:        primitive.NewObjectID(),
		FirstName: first,
		LastName:  last,
		Slug:      slugs.Make(first + " " + last),
		Gender:    models.GenderUnknown,
		Member:    true,
		Stamps:    stamps(),
	}
	p.SortNameCI = text.Fold(p.SortName())
	f.insert(ctx, "people", p)
	return p
}

// CreateGroupType inserts a group type with the given title.
func (f *Fixtures) CreateGroupType(ctx context.Context, title string) models.GroupType {
	f.t.Helper()
	gt := models.GroupType{
		ID:     primitive.NewObjectID(),
		Title:  title,
		Slug:   slugs.Make(title),
		Stamps: stamps(),
	}
	f.insert(ctx, "group_types", gt)
	return gt
}

// CreateGroup inserts an active group of the given type.
func (f *Fixtures) CreateGroup(ctx context.Context, title string, typeID primitive.ObjectID, order int) models.Group {
	f.t.Helper()
	g := models.Group{
		ID:      primitive.NewObjectID(),
		Title:   title,
		TitleCI: text.Fold(title),
		Slug:    slugs.Make(title),
		Order:   order,
		TypeID:  typeID,
		Active:  true,
		Stamps:  stamps(),
	}
	f.insert(ctx, "groups", g)
	return g
}

// CreateOffice inserts an office in the group.
func (f *Fixtures) CreateOffice(ctx context.Context, groupID primitive.ObjectID, title string, exOfficio bool) models.Office {
	f.t.Helper()
	o := models.Office{
		ID:        primitive.NewObjectID(),
		GroupID:   groupID,
		Title:     title,
		Slug:      slugs.Make(title),
		ExOfficio: exOfficio,
		Stamps:    stamps(),
	}
	f.insert(ctx, "offices", o)
	return o
}

// CreateTerm inserts a term. office may be nil for a plain seat; end may
// be nil for an open term.
func (f *Fixtures) CreateTerm(ctx context.Context, groupID primitive.ObjectID, office *models.Office, personID primitive.ObjectID, start time.Time, end *time.Time) models.Term {
	f.t.Helper()
	t := models.Term{
		ID:       primitive.NewObjectID(),
		GroupID:  groupID,
		PersonID: personID,
		Start:    start,
		End:      end,
		Stamps:   stamps(),
	}
	if office != nil {
		id := office.ID
		t.OfficeID = &id
	}
	f.insert(ctx, "terms", t)
	return t
}

// CreateMeeting inserts a one-hour meeting of the group starting at start.
func (f *Fixtures) CreateMeeting(ctx context.Context, groupID primitive.ObjectID, title string, start time.Time) models.Meeting {
	f.t.Helper()
	m := models.Meeting{
		ID:      primitive.NewObjectID(),
		GroupID: groupID,
		Event: models.Event{
			Title: title,
			Start: start,
			End:   start.Add(time.Hour),
		},
		Agenda: "<p>Call to order</p>",
		Stamps: stamps(),
	}
	f.insert(ctx, "meetings", m)
	return m
}

// CreateMinutes inserts minutes for the meeting.
func (f *Fixtures) CreateMinutes(ctx context.Context, meetingID primitive.ObjectID, content string, draft bool) models.Minutes {
	f.t.Helper()
	m := models.Minutes{
		ID:             primitive.NewObjectID(),
		MeetingID:      meetingID,
		MembersPresent: []primitive.ObjectID{},
		OthersPresent:  []primitive.ObjectID{},
		Content:        content,
		Draft:          draft,
		Stamps:         stamps(),
	}
	f.insert(ctx, "minutes", m)
	return m
}

// Ptr returns a pointer to t.
func Ptr(t time.Time) *time.Time { return &t }

// Day is a midnight UTC date.
func Day(y int, m time.Month, d int) time.Time { return models.Date(y, m, d) }

// Slug mirrors how fixtures derive slugs, for building request paths.
func Slug(title string) string { return slugs.Make(title) }
