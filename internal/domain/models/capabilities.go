// internal/domain/models/capabilities.go
package models

import "time"

// Timestamped is implemented by every stored entity. Stores call Touch
// right before a write.
type Timestamped interface {
	Touch(now time.Time)
}

// Sluggable is implemented by entities addressed by a unique slug.
// When GetSlug is empty the store derives one from SlugSource.
type Sluggable interface {
	SlugSource() string
	GetSlug() string
	SetSlug(slug string)
}

// Stamps holds the created/updated times shared by all entities.
type Stamps struct {
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Touch sets CreatedAt on first write and UpdatedAt on every write.
func (s *Stamps) Touch(now time.Time) {
	now = now.UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
}

// Dateline truncates t to midnight UTC. Term and group dates are compared
// by calendar day.
func Dateline(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date builds a midnight UTC date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
