// internal/app/features/shared/rows/rows.go
//
// Package rows flattens query results into the rows page templates range
// over: display strings and links, no lookups left for the template.
package rows

import (
	"time"

	"github.com/dalemusser/govhub/internal/app/features/shared/links"
	"github.com/dalemusser/govhub/internal/app/store/queries/govqueries"
	"github.com/dalemusser/govhub/internal/domain/models"
)

// Date layouts used across pages.
const (
	DateLayout     = "January 2, 2006"
	DateTimeLayout = "Monday, January 2, 2006 3:04 PM"
	TimeLayout     = "3:04 PM"
)

// Term is one term as lists show it.
type Term struct {
	Label       string
	PersonName  string
	PersonURL   string
	OfficeTitle string
	OfficeURL   string
	TermURL     string
	GroupTitle  string
	GroupURL    string
	Start       string
	End         string // empty for an open term
	Alternate   bool
}

// OfficeTitle renders an office title, prefixed "Co-" when the office is
// currently shared.
func OfficeTitle(title string, co bool) string {
	if co {
		return "Co-" + title
	}
	return title
}

// FromTerm builds a row from a resolved term.
func FromTerm(v govqueries.TermView) Term {
	row := Term{
		Label:      v.Label(),
		PersonName: v.Person.FullName(),
		PersonURL:  links.Person(v.Person.Slug),
		GroupTitle: v.Group.Title,
		GroupURL:   links.Group(v.Group.Slug),
		Start:      v.Term.Start.Format(DateLayout),
		Alternate:  v.Term.Alternate,
	}
	if v.Term.End != nil {
		row.End = v.Term.End.Format(DateLayout)
	}
	if v.Office != nil {
		row.OfficeTitle = v.Office.Title
		row.OfficeURL = links.Office(v.Group.Slug, v.Office.Slug)
		row.TermURL = links.OfficeTerm(v.Group.Slug, v.Office.Slug, v.Term.Start)
	}
	return row
}

// FromTerms builds rows in order.
func FromTerms(vs []govqueries.TermView) []Term {
	out := make([]Term, 0, len(vs))
	for _, v := range vs {
		out = append(out, FromTerm(v))
	}
	return out
}

// Meeting is one meeting as lists show it.
type Meeting struct {
	Title      string
	When       string
	URL        string
	MinutesURL string
	GroupTitle string
	GroupURL   string
	Past       bool
}

// FromMeeting builds a row for a meeting of group g.
func FromMeeting(m models.Meeting, g models.Group, now time.Time) Meeting {
	title := m.Event.Title
	if title == "" {
		title = g.Title + " meeting"
	}
	return Meeting{
		Title:      title,
		When:       m.Start().Format(DateTimeLayout),
		URL:        links.Meeting(g.Slug, m.Start()),
		MinutesURL: links.Minutes(g.Slug, m.Start()),
		GroupTitle: g.Title,
		GroupURL:   links.Group(g.Slug),
		Past:       m.Start().Before(now),
	}
}

// FromMeetings builds rows for meetings of one group.
func FromMeetings(ms []models.Meeting, g models.Group, now time.Time) []Meeting {
	out := make([]Meeting, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromMeeting(m, g, now))
	}
	return out
}

// Person is a person link.
type Person struct {
	Name string
	URL  string
}

// FromPeople builds person links in order.
func FromPeople(ps []models.Person) []Person {
	out := make([]Person, 0, len(ps))
	for _, p := range ps {
		out = append(out, Person{Name: p.FullName(), URL: links.Person(p.Slug)})
	}
	return out
}
