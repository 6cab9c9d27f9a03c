// internal/app/store/history/historystore.go
//
// Package historystore is the append-only revision log for versioned
// entities (bylaws, minutes). Each save of an entity appends a snapshot
// with the next per-entity sequence number.
package historystore

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/govhub/internal/app/store/storeerr"
	"github.com/dalemusser/govhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// appendAttempts bounds retries when two saves race for the same seq.
const appendAttempts = 5

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("revisions")}
}

func entityFilter(kind string, id primitive.ObjectID) bson.M {
	return bson.M{"entity_kind": kind, "entity_id": id}
}

// Append records a snapshot of doc for the entity with the given status.
func (s *Store) Append(ctx context.Context, kind string, id primitive.ObjectID, status string, doc any) (models.Revision, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return models.Revision{}, fmt.Errorf("history append: marshal: %w", err)
	}

	for attempt := 0; attempt < appendAttempts; attempt++ {
		last, err := s.lastSeq(ctx, kind, id)
		if err != nil {
			return models.Revision{}, err
		}
		rev := models.Revision{
			ID:         primitive.NewObjectID(),
			EntityKind: kind,
			EntityID:   id,
			Seq:        last + 1,
			SavedAt:    time.Now().UTC(),
			Status:     status,
			Snapshot:   raw,
		}
		_, err = s.c.InsertOne(ctx, rev)
		if err == nil {
			return rev, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return models.Revision{}, storeerr.Translate("history append", err)
		}
	}
	return models.Revision{}, fmt.Errorf("history append %s %s: sequence contention", kind, id.Hex())
}

func (s *Store) lastSeq(ctx context.Context, kind string, id primitive.ObjectID) (int64, error) {
	var r models.Revision
	opts := options.FindOne().SetSort(bson.D{{Key: "seq", Value: -1}}).SetProjection(bson.M{"seq": 1})
	err := s.c.FindOne(ctx, entityFilter(kind, id), opts).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, storeerr.Translate("history last seq", err)
	}
	return r.Seq, nil
}

// List returns the entity's revisions, newest first.
func (s *Store) List(ctx context.Context, kind string, id primitive.ObjectID) ([]models.Revision, error) {
	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: -1}})
	cur, err := s.c.Find(ctx, entityFilter(kind, id), opts)
	if err != nil {
		return nil, storeerr.Translate("history list", err)
	}
	defer cur.Close(ctx)

	var out []models.Revision
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeerr.Translate("history list", err)
	}
	return out, nil
}

// LatestWithStatus returns the newest revision saved with status.
func (s *Store) LatestWithStatus(ctx context.Context, kind string, id primitive.ObjectID, status string) (models.Revision, error) {
	f := entityFilter(kind, id)
	f["status"] = status

	var r models.Revision
	opts := options.FindOne().SetSort(bson.D{{Key: "seq", Value: -1}})
	if err := s.c.FindOne(ctx, f, opts).Decode(&r); err != nil {
		return models.Revision{}, storeerr.Translate(fmt.Sprintf("history %s %s status %q", kind, id.Hex(), status), err)
	}
	return r, nil
}

// SelectLatest picks the revision with the highest Seq carrying status
// from an already loaded history, in any order.
func SelectLatest(revs []models.Revision, status string) (models.Revision, bool) {
	var best models.Revision
	found := false
	for _, r := range revs {
		if r.Status != status {
			continue
		}
		if !found || r.Seq > best.Seq {
			best, found = r, true
		}
	}
	return best, found
}
