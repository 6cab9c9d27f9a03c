// internal/domain/models/bylaws.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Bylaws statuses.
const (
	BylawsDraft   = "D"
	BylawsAdopted = "A"
)

// Bylaws is a versioned governing document. The adopted text is the most
// recent revision saved with status Adopted, which may be older than the
// current working copy.
type Bylaws struct {
	ID      primitive.ObjectID `bson:"_id" json:"id"`
	Title   string             `bson:"title" json:"title"`
	Slug    string             `bson:"slug" json:"slug"`
	Status  string             `bson:"status" json:"status"`
	Content string             `bson:"content" json:"content"`

	Stamps `bson:",inline"`
}

func (b *Bylaws) SlugSource() string { return b.Title }
func (b *Bylaws) GetSlug() string    { return b.Slug }
func (b *Bylaws) SetSlug(s string)   { b.Slug = s }
