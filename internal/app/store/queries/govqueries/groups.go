package govqueries

import (
	"context"
	"sort"
	"strings"
	"time"

	grouptypestore "github.com/dalemusser/govhub/internal/app/store/grouptypes"
	groupstore "github.com/dalemusser/govhub/internal/app/store/groups"
	meetingstore "github.com/dalemusser/govhub/internal/app/store/meetings"
	officestore "github.com/dalemusser/govhub/internal/app/store/offices"
	peoplestore "github.com/dalemusser/govhub/internal/app/store/people"
	"github.com/dalemusser/govhub/internal/app/store/storeerr"
	termstore "github.com/dalemusser/govhub/internal/app/store/terms"
	"github.com/dalemusser/govhub/internal/app/system/roster"
	"github.com/dalemusser/govhub/internal/app/system/succession"
	"github.com/dalemusser/govhub/internal/app/system/temporal"
	"github.com/dalemusser/govhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// GroupDetailData backs a group's page.
type GroupDetailData struct {
	Group       models.Group
	Type        models.GroupType
	ActiveTerms []TermView
	Members     []models.Person
	ExOfficio   []models.Person
	PastMembers []models.Person
	Offices     []OfficeView
	NextMeeting *models.Meeting
	LastMeeting *models.Meeting
}

// GroupDetail loads a group by slug with everything its page shows.
func GroupDetail(ctx context.Context, db *mongo.Database, slug string, now time.Time) (GroupDetailData, error) {
	g, err := groupstore.New(db).GetBySlug(ctx, slug)
	if err != nil {
		return GroupDetailData{}, err
	}
	d := GroupDetailData{Group: g}

	if !g.TypeID.IsZero() {
		d.Type, err = grouptypestore.New(db).GetByID(ctx, g.TypeID)
		if err != nil && !storeerr.IsNotFound(err) {
			return GroupDetailData{}, err
		}
	}

	offs := officestore.New(db)
	ts := termstore.New(db)
	offices, err := offs.ListByGroup(ctx, g.ID)
	if err != nil {
		return GroupDetailData{}, err
	}
	groupTerms, err := ts.ListByGroup(ctx, g.ID)
	if err != nil {
		return GroupDetailData{}, err
	}

	in := roster.Input{Group: g, GroupType: d.Type, Terms: groupTerms}
	if g.ExOfficio {
		in.ExOfficioOffices, err = offs.ListExOfficio(ctx)
		if err != nil {
			return GroupDetailData{}, err
		}
		ids := make([]primitive.ObjectID, 0, len(in.ExOfficioOffices))
		for _, o := range in.ExOfficioOffices {
			if o.GroupID != g.ID {
				ids = append(ids, o.ID)
			}
		}
		eoTerms, err := ts.ListByOffices(ctx, ids)
		if err != nil {
			return GroupDetailData{}, err
		}
		in.Terms = append(in.Terms, eoTerms...)
	}
	ps := peoplestore.New(db)
	if d.Type.Slug == models.MembershipTypeSlug {
		if in.Members, err = ps.ListMembers(ctx); err != nil {
			return GroupDetailData{}, err
		}
	}
	in.People, err = ps.MapByIDs(ctx, roster.PersonIDs(g, in.Terms))
	if err != nil {
		return GroupDetailData{}, err
	}

	d.Members = roster.Members(in, now)
	d.ExOfficio = roster.ExOfficioMembers(in, now)
	d.PastMembers = roster.PastMembers(in, now)

	l := newLookup()
	l.addGroups(g)
	l.addPeople(mapValues(in.People))
	l.addOffices(offices)

	active := temporal.ActiveTerms(now, groupTerms)
	sortByOfficeOrder(active, l)
	d.ActiveTerms = l.terms(active)

	d.Offices = make([]OfficeView, 0, len(offices))
	for _, o := range offices {
		d.Offices = append(d.Offices, l.office(o, succession.Current(o.ID, groupTerms, now)))
	}

	meetings, err := meetingstore.New(db).ListByGroup(ctx, g.ID)
	if err != nil {
		return GroupDetailData{}, err
	}
	if m, ok := temporal.NextMeeting(now, meetings); ok {
		d.NextMeeting = &m
	}
	if m, ok := temporal.PreviousMeeting(now, meetings); ok {
		d.LastMeeting = &m
	}
	return d, nil
}

// sortByOfficeOrder puts officer terms first in office order, then plain
// seats by the holder's sort name.
func sortByOfficeOrder(terms []models.Term, l *lookup) {
	rank := func(t models.Term) (int, int) {
		if t.OfficeID == nil {
			return 1, 0
		}
		return 0, l.offices[*t.OfficeID].Order
	}
	sort.SliceStable(terms, func(i, j int) bool {
		ri, oi := rank(terms[i])
		rj, oj := rank(terms[j])
		if ri != rj {
			return ri < rj
		}
		if oi != oj {
			return oi < oj
		}
		return strings.ToLower(l.people[terms[i].PersonID].SortName()) <
			strings.ToLower(l.people[terms[j].PersonID].SortName())
	})
}

func mapValues[K comparable, V any](m map[K]V) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}
