// Package temporal derives the "active" and "past/upcoming" subsets of
// terms, groups and meetings. Every function takes the current time as a
// parameter; nothing here reads the clock.
//
// Term boundaries are compared by calendar day (UTC): a term whose End is
// today is still active, a term whose Start is tomorrow is not.
package temporal

import (
	"bytes"
	"sort"
	"strings"
	"time"

	"github.com/dalemusser/govhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IsActive reports whether t is active on the day of now:
// Start <= now and (End is nil or End >= now).
func IsActive(t models.Term, now time.Time) bool {
	today := models.Dateline(now)
	if models.Dateline(t.Start).After(today) {
		return false
	}
	return t.End == nil || !models.Dateline(*t.End).Before(today)
}

// ActiveTerms returns the active terms in input order.
func ActiveTerms(now time.Time, terms []models.Term) []models.Term {
	out := make([]models.Term, 0, len(terms))
	for _, t := range terms {
		if IsActive(t, now) {
			out = append(out, t)
		}
	}
	return out
}

// PastTerms returns the terms of groupID that are not active: ended terms
// and terms that have not started yet. Together with the group's active
// terms it partitions the group's terms.
func PastTerms(now time.Time, groupID primitive.ObjectID, terms []models.Term) []models.Term {
	out := make([]models.Term, 0)
	for _, t := range terms {
		if t.GroupID == groupID && !IsActive(t, now) {
			out = append(out, t)
		}
	}
	return out
}

// TermsForGroup keeps the terms belonging to groupID.
func TermsForGroup(groupID primitive.ObjectID, terms []models.Term) []models.Term {
	out := make([]models.Term, 0)
	for _, t := range terms {
		if t.GroupID == groupID {
			out = append(out, t)
		}
	}
	return out
}

// TermsForOffice keeps the terms held for officeID.
func TermsForOffice(officeID primitive.ObjectID, terms []models.Term) []models.Term {
	out := make([]models.Term, 0)
	for _, t := range terms {
		if t.HoldsOffice(officeID) {
			out = append(out, t)
		}
	}
	return out
}

// SortTermsByStart orders terms by Start ascending, then by id.
func SortTermsByStart(terms []models.Term) {
	sort.SliceStable(terms, func(i, j int) bool {
		if !terms[i].Start.Equal(terms[j].Start) {
			return terms[i].Start.Before(terms[j].Start)
		}
		return idLess(terms[i].ID, terms[j].ID)
	})
}

// ActiveGroups returns groups flagged active, sorted by Order then Title.
func ActiveGroups(groups []models.Group) []models.Group {
	out := make([]models.Group, 0, len(groups))
	for _, g := range groups {
		if g.Active {
			out = append(out, g)
		}
	}
	SortGroups(out)
	return out
}

// SortGroups orders groups by Order, then case-insensitively by Title.
func SortGroups(groups []models.Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Order != groups[j].Order {
			return groups[i].Order < groups[j].Order
		}
		return strings.ToLower(groups[i].Title) < strings.ToLower(groups[j].Title)
	})
}

// Direction selects past or upcoming meetings.
type Direction int

const (
	Past     Direction = iota // Start <= now, latest first
	Upcoming                  // Start >= now, earliest first
)

// FilterMeetings returns the meetings on the requested side of now. A
// meeting starting exactly at now is both past and upcoming.
func FilterMeetings(now time.Time, meetings []models.Meeting, dir Direction) []models.Meeting {
	out := make([]models.Meeting, 0)
	for _, m := range meetings {
		s := m.Start()
		switch dir {
		case Past:
			if !s.After(now) {
				out = append(out, m)
			}
		case Upcoming:
			if !s.Before(now) {
				out = append(out, m)
			}
		}
	}
	SortMeetings(out, dir == Upcoming)
	return out
}

// SortMeetings orders meetings by start (ascending or descending), ties
// broken by id in the same direction.
func SortMeetings(meetings []models.Meeting, ascending bool) {
	sort.SliceStable(meetings, func(i, j int) bool {
		a, b := meetings[i], meetings[j]
		if !a.Start().Equal(b.Start()) {
			if ascending {
				return a.Start().Before(b.Start())
			}
			return a.Start().After(b.Start())
		}
		if ascending {
			return idLess(a.ID, b.ID)
		}
		return idLess(b.ID, a.ID)
	})
}

// NextMeeting returns the earliest meeting starting at or after now.
func NextMeeting(now time.Time, meetings []models.Meeting) (models.Meeting, bool) {
	up := FilterMeetings(now, meetings, Upcoming)
	if len(up) == 0 {
		return models.Meeting{}, false
	}
	return up[0], true
}

// PreviousMeeting returns the latest meeting starting at or before now.
func PreviousMeeting(now time.Time, meetings []models.Meeting) (models.Meeting, bool) {
	past := FilterMeetings(now, meetings, Past)
	if len(past) == 0 {
		return models.Meeting{}, false
	}
	return past[0], true
}

// Neighbors returns the meetings immediately before and after m among
// meetings, excluding m itself.
func Neighbors(m models.Meeting, meetings []models.Meeting) (prev, next *models.Meeting) {
	others := make([]models.Meeting, 0, len(meetings))
	for _, o := range meetings {
		if o.ID != m.ID {
			others = append(others, o)
		}
	}
	if p, ok := PreviousMeeting(m.Start(), others); ok {
		prev = &p
	}
	if n, ok := NextMeeting(m.Start(), others); ok {
		next = &n
	}
	return prev, next
}

// MeetingsInYear keeps meetings starting in year.
func MeetingsInYear(meetings []models.Meeting, year int) []models.Meeting {
	out := make([]models.Meeting, 0)
	for _, m := range meetings {
		if m.Start().Year() == year {
			out = append(out, m)
		}
	}
	return out
}

// MeetingsInMonth keeps meetings starting in the given year and month.
func MeetingsInMonth(meetings []models.Meeting, year int, month time.Month) []models.Meeting {
	out := make([]models.Meeting, 0)
	for _, m := range meetings {
		if s := m.Start(); s.Year() == year && s.Month() == month {
			out = append(out, m)
		}
	}
	return out
}

// MeetingYears lists the distinct years meetings start in, newest first.
func MeetingYears(meetings []models.Meeting) []int {
	seen := map[int]bool{}
	years := make([]int, 0)
	for _, m := range meetings {
		y := m.Start().Year()
		if !seen[y] {
			seen[y] = true
			years = append(years, y)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

func idLess(a, b primitive.ObjectID) bool {
	return bytes.Compare(a[:], b[:]) < 0
}
