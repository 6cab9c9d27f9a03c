package govqueries

import (
	"context"
	"fmt"
	"sort"
	"time"

	groupstore "github.com/dalemusser/govhub/internal/app/store/groups"
	officestore "github.com/dalemusser/govhub/internal/app/store/offices"
	peoplestore "github.com/dalemusser/govhub/internal/app/store/people"
	"github.com/dalemusser/govhub/internal/app/store/storeerr"
	termstore "github.com/dalemusser/govhub/internal/app/store/terms"
	"github.com/dalemusser/govhub/internal/app/system/succession"
	"github.com/dalemusser/govhub/internal/app/system/temporal"
	"github.com/dalemusser/govhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TermDetailData backs an office's page: one term, who holds the office
// now, and who held it before.
type TermDetailData struct {
	Group    models.Group
	Office   models.Office
	Term     TermView
	Current  OfficeView
	Previous *TermView
	History  []TermView
}

// PickTerm chooses the term an office URL refers to. With a start year
// (non-zero) exactly one term must start in that year. Without one, the
// term with the latest start wins; a tie is ambiguous.
func PickTerm(terms []models.Term, year int) (models.Term, error) {
	var cands []models.Term
	if year != 0 {
		for _, t := range terms {
			if t.Start.Year() == year {
				cands = append(cands, t)
			}
		}
	} else {
		for _, t := range terms {
			switch {
			case len(cands) == 0 || t.Start.After(cands[0].Start):
				cands = []models.Term{t}
			case t.Start.Equal(cands[0].Start):
				cands = append(cands, t)
			}
		}
	}

	switch len(cands) {
	case 0:
		if year != 0 {
			return models.Term{}, storeerr.NotFound("term starting %d", year)
		}
		return models.Term{}, storeerr.NotFound("term")
	case 1:
		return cands[0], nil
	}
	ids := make([]primitive.ObjectID, 0, len(cands))
	for _, t := range cands {
		ids = append(ids, t.ID)
	}
	return models.Term{}, storeerr.Ambiguous(fmt.Sprintf("term starting %d", cands[0].Start.Year()), ids...)
}

// TermDetail resolves a group's office and one of its terms (see
// PickTerm), with the office's current holders and previous officer.
func TermDetail(ctx context.Context, db *mongo.Database, groupSlug, officeSlug string, year int, now time.Time) (TermDetailData, error) {
	g, err := groupstore.New(db).GetBySlug(ctx, groupSlug)
	if err != nil {
		return TermDetailData{}, err
	}
	o, err := officestore.New(db).GetBySlugInGroup(ctx, g.ID, officeSlug)
	if err != nil {
		return TermDetailData{}, err
	}
	ts := termstore.New(db)
	var terms []models.Term
	if year != 0 {
		terms, err = ts.FindByOfficeStartYear(ctx, o.ID, year)
	} else {
		terms, err = ts.ListByOffice(ctx, o.ID)
	}
	if err != nil {
		return TermDetailData{}, err
	}
	picked, err := PickTerm(terms, year)
	if err != nil {
		return TermDetailData{}, err
	}

	history := terms
	if year != 0 {
		if history, err = ts.ListByOffice(ctx, o.ID); err != nil {
			return TermDetailData{}, err
		}
	}

	l := newLookup()
	l.addGroups(g)
	l.addOffices([]models.Office{o})
	people, err := peoplestore.New(db).ListByIDs(ctx, personIDs(history))
	if err != nil {
		return TermDetailData{}, err
	}
	l.addPeople(people)

	d := TermDetailData{
		Group:   g,
		Office:  o,
		Term:    l.term(picked),
		Current: l.office(o, succession.Current(o.ID, history, now)),
	}
	if prev, ok := succession.Previous(o.ID, history, now); ok {
		v := l.term(prev)
		d.Previous = &v
	}
	sorted := append([]models.Term(nil), history...)
	succession.SortByEndDesc(sorted)
	d.History = l.terms(sorted)
	return d, nil
}

// PersonDetailData backs a person's page.
type PersonDetailData struct {
	Person   models.Person
	Current  []TermView
	Upcoming []TermView
	Past     []TermView
}

// PersonDetail loads a person with their current, upcoming and past terms.
func PersonDetail(ctx context.Context, db *mongo.Database, slug string, now time.Time) (PersonDetailData, error) {
	p, err := peoplestore.New(db).GetBySlug(ctx, slug)
	if err != nil {
		return PersonDetailData{}, err
	}
	terms, err := termstore.New(db).ListByPerson(ctx, p.ID)
	if err != nil {
		return PersonDetailData{}, err
	}

	l := newLookup()
	l.addPeople([]models.Person{p})
	offices, err := officestore.New(db).ListByIDs(ctx, officeIDs(terms))
	if err != nil {
		return PersonDetailData{}, err
	}
	l.addOffices(offices)
	gs := groupstore.New(db)
	for _, t := range terms {
		if _, ok := l.groups[t.GroupID]; ok {
			continue
		}
		g, err := gs.GetByID(ctx, t.GroupID)
		if err != nil && !storeerr.IsNotFound(err) {
			return PersonDetailData{}, err
		}
		l.addGroups(g)
	}

	today := models.Dateline(now)
	current := temporal.ActiveTerms(now, terms)
	upcoming := make([]models.Term, 0)
	past := make([]models.Term, 0)
	for _, t := range terms {
		switch {
		case temporal.IsActive(t, now):
		case models.Dateline(t.Start).After(today):
			upcoming = append(upcoming, t)
		default:
			past = append(past, t)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].Start.Before(upcoming[j].Start) })
	succession.SortByEndDesc(past)
	return PersonDetailData{
		Person:   p,
		Current:  l.terms(current),
		Upcoming: l.terms(upcoming),
		Past:     l.terms(past),
	}, nil
}

// TermsByIDs resolves the candidates of an ambiguous term lookup, in
// start order.
func TermsByIDs(ctx context.Context, db *mongo.Database, ids []primitive.ObjectID) ([]TermView, error) {
	terms, err := termstore.New(db).ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	temporal.SortTermsByStart(terms)

	l := newLookup()
	if err := l.load(ctx, db, terms); err != nil {
		return nil, err
	}
	gs := groupstore.New(db)
	for _, t := range terms {
		if _, ok := l.groups[t.GroupID]; ok {
			continue
		}
		g, err := gs.GetByID(ctx, t.GroupID)
		if err != nil {
			return nil, err
		}
		l.addGroups(g)
	}
	return l.terms(terms), nil
}
