// internal/domain/models/grouptype.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// MembershipTypeSlug marks the group type whose members are every Person
// flagged as an organization member rather than term holders.
const MembershipTypeSlug = "membership"

// GroupType classifies groups, e.g. governing board, standing committee,
// ad-hoc committee, congregation.
type GroupType struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Order       int                `bson:"order" json:"order"`

	Stamps `bson:",inline"`
}

func (t *GroupType) SlugSource() string { return t.Title }
func (t *GroupType) GetSlug() string    { return t.Slug }
func (t *GroupType) SetSlug(s string)   { t.Slug = s }
