// Package govqueries assembles the read-only bundles the public pages
// render: a group with its roster and officers, a meeting with its
// neighbours and minutes, an office's succession, a person's service.
//
// Everything derived from "now" (active terms, rosters, next meeting) is
// computed per call; nothing here caches.
package govqueries

import (
	"github.com/dalemusser/govhub/internal/app/system/succession"
	"github.com/dalemusser/govhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TermView is a term with the records it points at.
type TermView struct {
	Term   models.Term
	Person models.Person
	Office *models.Office
	Group  models.Group
}

// Label is the list rendering of the term, e.g. "Jane Doe - President (2021)".
func (v TermView) Label() string {
	return v.Term.Label(v.Person, v.Office, v.Group)
}

// OfficeView is an office with its current holders.
type OfficeView struct {
	Office     models.Office
	Holders    []TermView
	Alternates []TermView
}

// Co reports whether the office is currently shared.
func (v OfficeView) Co() bool { return len(v.Holders) > 1 }

// Vacant reports whether nobody holds the office.
func (v OfficeView) Vacant() bool { return len(v.Holders) == 0 }

// MeetingView is a meeting with its group.
type MeetingView struct {
	Meeting models.Meeting
	Group   models.Group
}

// lookup resolves ids to records for view assembly.
type lookup struct {
	people  map[primitive.ObjectID]models.Person
	offices map[primitive.ObjectID]models.Office
	groups  map[primitive.ObjectID]models.Group
}

func newLookup() *lookup {
	return &lookup{
		people:  map[primitive.ObjectID]models.Person{},
		offices: map[primitive.ObjectID]models.Office{},
		groups:  map[primitive.ObjectID]models.Group{},
	}
}

func (l *lookup) addPeople(ps []models.Person) {
	for _, p := range ps {
		l.people[p.ID] = p
	}
}

func (l *lookup) addOffices(os []models.Office) {
	for _, o := range os {
		l.offices[o.ID] = o
	}
}

func (l *lookup) addGroups(gs ...models.Group) {
	for _, g := range gs {
		l.groups[g.ID] = g
	}
}

func (l *lookup) term(t models.Term) TermView {
	v := TermView{Term: t, Person: l.people[t.PersonID], Group: l.groups[t.GroupID]}
	if t.OfficeID != nil {
		if o, ok := l.offices[*t.OfficeID]; ok {
			v.Office = &o
		}
	}
	return v
}

func (l *lookup) terms(ts []models.Term) []TermView {
	out := make([]TermView, 0, len(ts))
	for _, t := range ts {
		out = append(out, l.term(t))
	}
	return out
}

func (l *lookup) office(o models.Office, h succession.Holders) OfficeView {
	return OfficeView{Office: o, Holders: l.terms(h.Primary), Alternates: l.terms(h.Alternates)}
}

func personIDs(terms []models.Term) []primitive.ObjectID {
	seen := map[primitive.ObjectID]bool{}
	ids := make([]primitive.ObjectID, 0, len(terms))
	for _, t := range terms {
		if !seen[t.PersonID] {
			seen[t.PersonID] = true
			ids = append(ids, t.PersonID)
		}
	}
	return ids
}

func officeIDs(terms []models.Term) []primitive.ObjectID {
	seen := map[primitive.ObjectID]bool{}
	ids := make([]primitive.ObjectID, 0)
	for _, t := range terms {
		if t.OfficeID != nil && !seen[*t.OfficeID] {
			seen[*t.OfficeID] = true
			ids = append(ids, *t.OfficeID)
		}
	}
	return ids
}
