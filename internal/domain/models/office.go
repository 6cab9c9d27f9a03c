// internal/domain/models/office.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Office is a named position inside a Group (President, Secretary, ...).
// An ex-officio office makes its holder a member of groups flagged
// ExOfficio.
type Office struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	GroupID     primitive.ObjectID `bson:"group_id" json:"group_id"`
	Title       string             `bson:"title" json:"title"`
	Slug        string             `bson:"slug" json:"slug"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Order       int                `bson:"order" json:"order"`
	ExOfficio   bool               `bson:"ex_officio" json:"ex_officio"`

	Stamps `bson:",inline"`
}

func (o *Office) SlugSource() string { return o.Title }
func (o *Office) GetSlug() string    { return o.Slug }
func (o *Office) SetSlug(s string)   { o.Slug = s }
