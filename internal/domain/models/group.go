// internal/domain/models/group.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is a governance body: a board, a standing committee, an ad-hoc
// committee.
//
// NOTE:
//   - DisbandedOn set implies Active == false. The group store enforces
//     this on every write; never write a Group around it.
//   - MemberIDs / PastMemberIDs list people who sit on the group without
//     a term (e.g. staff); term holders are derived from the terms
//     collection.
type Group struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	TitleCI     string             `bson:"title_ci" json:"-"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Order       int                `bson:"order" json:"order"`
	TypeID      primitive.ObjectID `bson:"type_id" json:"type_id"`

	Active      bool       `bson:"active" json:"active"`
	FormedOn    *time.Time `bson:"formed_on,omitempty" json:"formed_on,omitempty"`
	DisbandedOn *time.Time `bson:"disbanded_on,omitempty" json:"disbanded_on,omitempty"`
	AdHoc       bool       `bson:"adhoc" json:"adhoc"`
	ExOfficio   bool       `bson:"ex_officio" json:"ex_officio"`

	MemberIDs     []primitive.ObjectID `bson:"member_ids,omitempty" json:"member_ids,omitempty"`
	PastMemberIDs []primitive.ObjectID `bson:"past_member_ids,omitempty" json:"past_member_ids,omitempty"`

	Stamps `bson:",inline"`
}

func (g Group) String() string { return g.Title }

func (g *Group) SlugSource() string { return g.Title }
func (g *Group) GetSlug() string    { return g.Slug }
func (g *Group) SetSlug(s string)   { g.Slug = s }
