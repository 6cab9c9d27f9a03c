// internal/domain/models/term.go
package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Term assigns a Person to a Group, optionally to one of its Offices, for
// the day range [Start, End]. A nil End means the term is open. Whether a
// term is active is derived (see system/temporal), never stored.
type Term struct {
	ID        primitive.ObjectID  `bson:"_id" json:"id"`
	GroupID   primitive.ObjectID  `bson:"group_id" json:"group_id"`
	OfficeID  *primitive.ObjectID `bson:"office_id,omitempty" json:"office_id,omitempty"`
	PersonID  primitive.ObjectID  `bson:"person_id" json:"person_id"`
	Start     time.Time           `bson:"start" json:"start"`
	End       *time.Time          `bson:"end,omitempty" json:"end,omitempty"`
	Alternate bool                `bson:"alternate" json:"alternate"`

	Stamps `bson:",inline"`
}

// IsOfficer reports whether the term is for an office rather than a plain
// seat on the group.
func (t Term) IsOfficer() bool { return t.OfficeID != nil }

// HoldsOffice reports whether the term is for the given office.
func (t Term) HoldsOffice(id primitive.ObjectID) bool {
	return t.OfficeID != nil && *t.OfficeID == id
}

// LengthYears is the number of calendar years the term spans, or false
// for an open term.
func (t Term) LengthYears() (int, bool) {
	if t.End == nil {
		return 0, false
	}
	return t.End.Year() - t.Start.Year(), true
}

// Label renders the term the way lists show it, e.g.
// "Jane Doe - President (2021)" or "Jane Doe - alternate (2021)".
func (t Term) Label(person Person, office *Office, group Group) string {
	if t.Alternate {
		return fmt.Sprintf("%s - alternate (%d)", person.FullName(), t.Start.Year())
	}
	desc := group.Title + " member"
	if office != nil {
		desc = office.Title
	}
	return fmt.Sprintf("%s - %s (%d)", person.FullName(), desc, t.Start.Year())
}
