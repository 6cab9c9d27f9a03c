// Package succession answers "who holds this office now" and "who held it
// before them" from an office's term history.
//
// Neither question is an error when there is no answer: an empty Holders
// or a false ok flag is the normal result for a vacant office or an
// office with no recorded predecessor.
package succession

import (
	"sort"
	"time"

	"github.com/dalemusser/govhub/internal/app/system/temporal"
	"github.com/dalemusser/govhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Holders are the active terms of one office.
//
// Several primary holders at once are co-officers; callers decide how to
// present that (e.g. "Co-President"). Alternates are kept apart and never
// make the office shared.
type Holders struct {
	Primary    []models.Term
	Alternates []models.Term
}

// Vacant reports whether nobody holds the office.
func (h Holders) Vacant() bool { return len(h.Primary) == 0 }

// Co reports whether the office is currently shared.
func (h Holders) Co() bool { return len(h.Primary) > 1 }

// Single returns the lone primary holder.
func (h Holders) Single() (models.Term, bool) {
	if len(h.Primary) != 1 {
		return models.Term{}, false
	}
	return h.Primary[0], true
}

// PersonIDs lists primary holders' people in term start order.
func (h Holders) PersonIDs() []primitive.ObjectID {
	ids := make([]primitive.ObjectID, 0, len(h.Primary))
	for _, t := range h.Primary {
		ids = append(ids, t.PersonID)
	}
	return ids
}

// Current returns the terms for officeID that are active at now. terms
// may contain terms for other offices; they are ignored.
func Current(officeID primitive.ObjectID, terms []models.Term, now time.Time) Holders {
	active := temporal.ActiveTerms(now, temporal.TermsForOffice(officeID, terms))
	temporal.SortTermsByStart(active)

	var h Holders
	for _, t := range active {
		if t.Alternate {
			h.Alternates = append(h.Alternates, t)
			continue
		}
		h.Primary = append(h.Primary, t)
	}
	return h
}

// Previous returns the most recent past holder of officeID who is a
// different person from whoever followed them.
//
// The office's terms are ordered by end date, newest first (open terms
// first), and walked as (successor, predecessor) pairs. The first
// predecessor that is no longer active and whose person differs from its
// successor's is the answer. Terms that have not started yet are left
// out. Consecutive terms of the same person are treated as one tenure; an
// active co-officer is never reported as the previous holder.
func Previous(officeID primitive.ObjectID, terms []models.Term, now time.Time) (models.Term, bool) {
	today := models.Dateline(now)
	history := make([]models.Term, 0)
	for _, t := range temporal.TermsForOffice(officeID, terms) {
		if !t.Alternate && !models.Dateline(t.Start).After(today) {
			history = append(history, t)
		}
	}
	if len(history) < 2 {
		return models.Term{}, false
	}
	SortByEndDesc(history)

	for i := 1; i < len(history); i++ {
		successor, predecessor := history[i-1], history[i]
		if predecessor.PersonID == successor.PersonID {
			continue
		}
		if temporal.IsActive(predecessor, now) {
			continue
		}
		return predecessor, true
	}
	return models.Term{}, false
}

// SortByEndDesc orders terms by End descending with open terms first;
// equal ends fall back to Start descending.
func SortByEndDesc(terms []models.Term) {
	sort.SliceStable(terms, func(i, j int) bool {
		a, b := terms[i], terms[j]
		switch {
		case a.End == nil && b.End != nil:
			return true
		case a.End != nil && b.End == nil:
			return false
		case a.End != nil && b.End != nil && !a.End.Equal(*b.End):
			return a.End.After(*b.End)
		}
		return a.Start.After(b.Start)
	})
}
