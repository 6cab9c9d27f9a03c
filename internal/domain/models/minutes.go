// internal/domain/models/minutes.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Minutes record what happened at a Meeting. Minutes start as drafts;
// approved minutes have Draft == false. Every save is appended to the
// revision log.
type Minutes struct {
	ID             primitive.ObjectID   `bson:"_id" json:"id"`
	MeetingID      primitive.ObjectID   `bson:"meeting_id" json:"meeting_id"`
	CalledToOrder  *time.Time           `bson:"called_to_order,omitempty" json:"called_to_order,omitempty"`
	Adjourned      *time.Time           `bson:"adjourned,omitempty" json:"adjourned,omitempty"`
	MembersPresent []primitive.ObjectID `bson:"members_present" json:"members_present"` // term ids
	OthersPresent  []primitive.ObjectID `bson:"others_present" json:"others_present"`   // person ids
	Content        string               `bson:"content" json:"content"`
	SignedByID     *primitive.ObjectID  `bson:"signed_by_id,omitempty" json:"signed_by_id,omitempty"`
	SignedOn       *time.Time           `bson:"signed_on,omitempty" json:"signed_on,omitempty"`
	Draft          bool                 `bson:"draft" json:"draft"`

	Stamps `bson:",inline"`
}

// Approved reports whether the minutes have been finalized.
func (m Minutes) Approved() bool { return !m.Draft }

// RevisionStatus is the status recorded with each revision.
func (m Minutes) RevisionStatus() string {
	if m.Draft {
		return MinutesDraft
	}
	return MinutesApproved
}

// Revision statuses for minutes.
const (
	MinutesDraft    = "draft"
	MinutesApproved = "approved"
)
