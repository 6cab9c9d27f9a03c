// internal/domain/models/revision.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Entity kinds tracked in the revision log.
const (
	KindBylaws  = "bylaws"
	KindMinutes = "minutes"
)

// Revision is one entry of the append-only per-entity history. Seq starts
// at 1 and increases by one per save of the entity.
type Revision struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	EntityKind string             `bson:"entity_kind" json:"entity_kind"`
	EntityID   primitive.ObjectID `bson:"entity_id" json:"entity_id"`
	Seq        int64              `bson:"seq" json:"seq"`
	SavedAt    time.Time          `bson:"saved_at" json:"saved_at"`
	Status     string             `bson:"status" json:"status"`
	Snapshot   bson.Raw           `bson:"snapshot" json:"-"`
}

// Decode unmarshals the snapshot into v.
func (r Revision) Decode(v any) error {
	return bson.Unmarshal(r.Snapshot, v)
}
