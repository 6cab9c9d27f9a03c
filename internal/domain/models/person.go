// internal/domain/models/person.go
package models

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Gender values stored on Person.
const (
	GenderUnknown = "unknown"
	GenderMale    = "male"
	GenderFemale  = "female"
)

// Person is an identity record shared by terms, minutes attendance and
// minutes signatures. No other entity owns a Person.
type Person struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	FirstName  string             `bson:"first_name" json:"first_name"`
	MiddleName string             `bson:"middle_name,omitempty" json:"middle_name,omitempty"`
	LastName   string             `bson:"last_name" json:"last_name"`
	Suffix     string             `bson:"suffix,omitempty" json:"suffix,omitempty"`
	SortNameCI string             `bson:"sort_name_ci" json:"-"`
	Slug       string             `bson:"slug" json:"slug"`
	Gender     string             `bson:"gender" json:"gender"`
	Member     bool               `bson:"member" json:"member"`
	Phone      string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Email      string             `bson:"email,omitempty" json:"email,omitempty"`

	// UserID links the person to an account in an external identity system.
	UserID    string `bson:"user_id,omitempty" json:"user_id,omitempty"`
	PhotoPath string `bson:"photo_path,omitempty" json:"photo_path,omitempty"`
	Bio       string `bson:"bio,omitempty" json:"bio,omitempty"`

	Stamps `bson:",inline"`
}

// FullName is "First Last", or "First Middle Last Suffix" when present.
func (p Person) FullName() string {
	parts := make([]string, 0, 4)
	for _, s := range []string{p.FirstName, p.MiddleName, p.LastName} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	name := strings.Join(parts, " ")
	if p.Suffix != "" {
		name += ", " + p.Suffix
	}
	return name
}

// SortName is "Last, First", the order people are listed in.
func (p Person) SortName() string {
	last := strings.TrimSpace(p.LastName)
	first := strings.TrimSpace(p.FirstName)
	switch {
	case last == "":
		return first
	case first == "":
		return last
	}
	return last + ", " + first
}

func (p Person) String() string { return p.FullName() }

func (p *Person) SlugSource() string { return p.FirstName + " " + p.LastName }
func (p *Person) GetSlug() string    { return p.Slug }
func (p *Person) SetSlug(s string)   { p.Slug = s }
