// internal/app/store/bylaws/bylawsstore.go
package bylawsstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	historystore "github.com/dalemusser/govhub/internal/app/store/history"
	"github.com/dalemusser/govhub/internal/app/store/storeerr"
	"github.com/dalemusser/govhub/internal/app/system/slugs"
	"github.com/dalemusser/govhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrInvalidStatus = errors.New("bylaws status must be D or A")

type Store struct {
	c    *mongo.Collection
	hist *historystore.Store
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("bylaws"), hist: historystore.New(db)}
}

// Save inserts (zero ID) or replaces the bylaws and appends the saved text
// to the revision log under its status.
func (s *Store) Save(ctx context.Context, b models.Bylaws) (models.Bylaws, error) {
	if b.Status == "" {
		b.Status = models.BylawsDraft
	}
	if b.Status != models.BylawsDraft && b.Status != models.BylawsAdopted {
		return models.Bylaws{}, fmt.Errorf("%w: got %q", ErrInvalidStatus, b.Status)
	}
	slugs.Fill(&b)
	b.Touch(time.Now())

	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
		if _, err := s.c.InsertOne(ctx, b); err != nil {
			return models.Bylaws{}, storeerr.Translate("create bylaws "+b.Slug, err)
		}
	} else {
		res, err := s.c.ReplaceOne(ctx, bson.M{"_id": b.ID}, b)
		if err != nil {
			return models.Bylaws{}, storeerr.Translate("update bylaws "+b.Slug, err)
		}
		if res.MatchedCount == 0 {
			return models.Bylaws{}, storeerr.NotFound("update bylaws %s", b.ID.Hex())
		}
	}

	if _, err := s.hist.Append(ctx, models.KindBylaws, b.ID, b.Status, b); err != nil {
		return models.Bylaws{}, fmt.Errorf("bylaws %s saved, history append failed: %w", b.Slug, err)
	}
	return b, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Bylaws, error) {
	var b models.Bylaws
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&b); err != nil {
		return models.Bylaws{}, storeerr.Translate("bylaws "+id.Hex(), err)
	}
	return b, nil
}

func (s *Store) GetBySlug(ctx context.Context, slug string) (models.Bylaws, error) {
	var b models.Bylaws
	if err := s.c.FindOne(ctx, bson.M{"slug": slug}).Decode(&b); err != nil {
		return models.Bylaws{}, storeerr.Translate("bylaws "+slug, err)
	}
	return b, nil
}

// Adopted returns the text of the most recent adopted revision, which may
// be older than the current working copy. The returned Revision says when
// it was saved.
func (s *Store) Adopted(ctx context.Context, slug string) (models.Bylaws, models.Revision, error) {
	cur, err := s.GetBySlug(ctx, slug)
	if err != nil {
		return models.Bylaws{}, models.Revision{}, err
	}
	rev, err := s.hist.LatestWithStatus(ctx, models.KindBylaws, cur.ID, models.BylawsAdopted)
	if err != nil {
		return models.Bylaws{}, models.Revision{}, err
	}
	var adopted models.Bylaws
	if err := rev.Decode(&adopted); err != nil {
		return models.Bylaws{}, models.Revision{}, fmt.Errorf("decode adopted bylaws %s: %w", slug, err)
	}
	return adopted, rev, nil
}

// History returns the saved revisions, newest first.
func (s *Store) History(ctx context.Context, id primitive.ObjectID) ([]models.Revision, error) {
	return s.hist.List(ctx, models.KindBylaws, id)
}

// List returns all bylaws documents by title.
func (s *Store) List(ctx context.Context) ([]models.Bylaws, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, storeerr.Translate("list bylaws", err)
	}
	defer cur.Close(ctx)

	out := []models.Bylaws{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeerr.Translate("list bylaws", err)
	}
	return out, nil
}
