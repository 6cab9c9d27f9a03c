// Package roster works out who sits on a group: term holders, people
// seated without a term, and ex-officio members.
package roster

import (
	"sort"
	"strings"
	"time"

	"github.com/dalemusser/govhub/internal/app/system/temporal"
	"github.com/dalemusser/govhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Input is everything needed to compute a group's roster. Terms may
// include terms of other groups; ExOfficioOffices are the offices, in any
// group, flagged ex-officio.
type Input struct {
	Group            models.Group
	GroupType        models.GroupType
	Terms            []models.Term
	ExOfficioOffices []models.Office
	People           map[primitive.ObjectID]models.Person
	// Members lists every Person flagged as an organization member; it is
	// only consulted for the membership group type.
	Members []models.Person
}

// Members returns the people currently on the group, sorted by sort name.
//
// For the membership group type that is every organization member. For
// any other group it is the people holding active terms in the group plus
// the group's term-less members; an ex-officio group also gets the active
// holders of every ex-officio office outside the group.
func Members(in Input, now time.Time) []models.Person {
	if in.GroupType.Slug == models.MembershipTypeSlug {
		out := append([]models.Person(nil), in.Members...)
		sortPeople(out)
		return out
	}

	ids := currentIDs(in, now)
	return resolve(ids, in.People)
}

// ExOfficioMembers returns only the members a group gets through
// ex-officio offices held in other groups.
func ExOfficioMembers(in Input, now time.Time) []models.Person {
	if !in.Group.ExOfficio {
		return nil
	}
	return resolve(exOfficioIDs(in, now), in.People)
}

// PastMembers returns people who held a term in the group or were listed
// as past members, excluding anyone who is a member now.
func PastMembers(in Input, now time.Time) []models.Person {
	current := map[primitive.ObjectID]bool{}
	for _, id := range currentIDs(in, now) {
		current[id] = true
	}

	ids := make([]primitive.ObjectID, 0)
	for _, t := range temporal.PastTerms(now, in.Group.ID, in.Terms) {
		if !current[t.PersonID] && !models.Dateline(t.Start).After(models.Dateline(now)) {
			ids = append(ids, t.PersonID)
		}
	}
	for _, id := range in.Group.PastMemberIDs {
		if !current[id] {
			ids = append(ids, id)
		}
	}
	return resolve(ids, in.People)
}

func currentIDs(in Input, now time.Time) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0)
	for _, t := range temporal.ActiveTerms(now, temporal.TermsForGroup(in.Group.ID, in.Terms)) {
		ids = append(ids, t.PersonID)
	}
	ids = append(ids, in.Group.MemberIDs...)
	if in.Group.ExOfficio {
		ids = append(ids, exOfficioIDs(in, now)...)
	}
	return ids
}

func exOfficioIDs(in Input, now time.Time) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0)
	for _, o := range in.ExOfficioOffices {
		if !o.ExOfficio || o.GroupID == in.Group.ID {
			continue
		}
		for _, t := range temporal.ActiveTerms(now, temporal.TermsForOffice(o.ID, in.Terms)) {
			if !t.Alternate {
				ids = append(ids, t.PersonID)
			}
		}
	}
	return ids
}

// resolve de-duplicates ids and maps them to people, dropping unknown ids.
func resolve(ids []primitive.ObjectID, people map[primitive.ObjectID]models.Person) []models.Person {
	seen := map[primitive.ObjectID]bool{}
	out := make([]models.Person, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if p, ok := people[id]; ok {
			out = append(out, p)
		}
	}
	sortPeople(out)
	return out
}

func sortPeople(people []models.Person) {
	sort.SliceStable(people, func(i, j int) bool {
		return strings.ToLower(people[i].SortName()) < strings.ToLower(people[j].SortName())
	})
}

// PersonIDs collects the person ids referenced by terms and the group's
// member lists, for batch loading.
func PersonIDs(group models.Group, terms []models.Term) []primitive.ObjectID {
	seen := map[primitive.ObjectID]bool{}
	ids := make([]primitive.ObjectID, 0)
	add := func(id primitive.ObjectID) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, t := range terms {
		add(t.PersonID)
	}
	for _, id := range group.MemberIDs {
		add(id)
	}
	for _, id := range group.PastMemberIDs {
		add(id)
	}
	return ids
}
