// internal/domain/models/attachment.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Attachment is a file attached to Minutes. Path is relative to the
// attachment storage root: attach/<year>/<group-slug>/<filename>.
type Attachment struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	MinutesID   primitive.ObjectID `bson:"minutes_id" json:"minutes_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Path        string             `bson:"path" json:"path"`
	FileName    string             `bson:"file_name" json:"file_name"`
	Size        int64              `bson:"size" json:"size"`
	ContentType string             `bson:"content_type" json:"content_type"`

	Stamps `bson:",inline"`
}
