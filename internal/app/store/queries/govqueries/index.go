package govqueries

import (
	"context"
	"time"

	grouptypestore "github.com/dalemusser/govhub/internal/app/store/grouptypes"
	groupstore "github.com/dalemusser/govhub/internal/app/store/groups"
	meetingstore "github.com/dalemusser/govhub/internal/app/store/meetings"
	officestore "github.com/dalemusser/govhub/internal/app/store/offices"
	peoplestore "github.com/dalemusser/govhub/internal/app/store/people"
	"github.com/dalemusser/govhub/internal/app/store/storeerr"
	termstore "github.com/dalemusser/govhub/internal/app/store/terms"
	"github.com/dalemusser/govhub/internal/app/system/temporal"
	"github.com/dalemusser/govhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// IndexData backs the landing page.
type IndexData struct {
	Groups         []models.Group
	RecentMeetings []MeetingView
	Board          []TermView
}

// Index returns the active groups, the most recent past meetings (at most
// recentLimit) and the current roster of the groups typed boardSlug.
func Index(ctx context.Context, db *mongo.Database, now time.Time, recentLimit int, boardSlug string) (IndexData, error) {
	groups, err := groupstore.New(db).List(ctx, groupstore.ListFilter{Status: groupstore.StatusActive})
	if err != nil {
		return IndexData{}, err
	}
	l := newLookup()
	l.addGroups(groups...)

	recent, err := meetingstore.New(db).ListRecentPast(ctx, now, recentLimit)
	if err != nil {
		return IndexData{}, err
	}
	views := make([]MeetingView, 0, len(recent))
	for _, m := range recent {
		g, ok := l.groups[m.GroupID]
		if !ok {
			if g, err = groupstore.New(db).GetByID(ctx, m.GroupID); err != nil && !storeerr.IsNotFound(err) {
				return IndexData{}, err
			}
			l.addGroups(g)
		}
		views = append(views, MeetingView{Meeting: m, Group: g})
	}

	board, err := boardRoster(ctx, db, l, now, boardSlug)
	if err != nil {
		return IndexData{}, err
	}
	return IndexData{Groups: temporal.ActiveGroups(groups), RecentMeetings: views, Board: board}, nil
}

func boardRoster(ctx context.Context, db *mongo.Database, l *lookup, now time.Time, boardSlug string) ([]TermView, error) {
	gt, err := grouptypestore.New(db).GetBySlug(ctx, boardSlug)
	if storeerr.IsNotFound(err) {
		return []TermView{}, nil
	}
	if err != nil {
		return nil, err
	}
	boards, err := groupstore.New(db).ListActiveByTypes(ctx, []primitive.ObjectID{gt.ID})
	if err != nil {
		return nil, err
	}
	l.addGroups(boards...)

	terms := make([]models.Term, 0)
	ts := termstore.New(db)
	for _, b := range boards {
		bt, err := ts.ListByGroup(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		terms = append(terms, temporal.ActiveTerms(now, bt)...)
	}
	if err := l.load(ctx, db, terms); err != nil {
		return nil, err
	}
	sortByOfficeOrder(terms, l)
	return l.terms(terms), nil
}

// load fetches the people and offices referenced by terms.
func (l *lookup) load(ctx context.Context, db *mongo.Database, terms []models.Term) error {
	people, err := peoplestore.New(db).ListByIDs(ctx, personIDs(terms))
	if err != nil {
		return err
	}
	l.addPeople(people)
	offices, err := officestore.New(db).ListByIDs(ctx, officeIDs(terms))
	if err != nil {
		return err
	}
	l.addOffices(offices)
	return nil
}
