// internal/domain/models/meeting.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is the calendar entry a meeting is attached to.
type Event struct {
	Title        string    `bson:"title" json:"title"`
	Start        time.Time `bson:"start" json:"start"`
	End          time.Time `bson:"end" json:"end"`
	CalendarSlug string    `bson:"calendar_slug,omitempty" json:"calendar_slug,omitempty"`
}

// Meeting is a scheduled meeting of a Group.
type Meeting struct {
	ID              primitive.ObjectID `bson:"_id" json:"id"`
	GroupID         primitive.ObjectID `bson:"group_id" json:"group_id"`
	Event           Event              `bson:"event" json:"event"`
	Agenda          string             `bson:"agenda,omitempty" json:"agenda,omitempty"`
	BusinessArising string             `bson:"business_arising,omitempty" json:"business_arising,omitempty"`

	Stamps `bson:",inline"`
}

// Start is the start of the underlying event.
func (m Meeting) Start() time.Time { return m.Event.Start }

// End is the end of the underlying event.
func (m Meeting) End() time.Time { return m.Event.End }
