// internal/app/store/offices/officestore.go
package officestore

import (
	"context"
	"time"

	"github.com/dalemusser/govhub/internal/app/store/storeerr"
	"github.com/dalemusser/govhub/internal/app/system/slugs"
	"github.com/dalemusser/govhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("offices")}
}

func (s *Store) Create(ctx context.Context, o models.Office) (models.Office, error) {
	o.ID = primitive.NewObjectID()
	slugs.Fill(&o)
	o.Touch(time.Now())
	if _, err := s.c.InsertOne(ctx, o); err != nil {
		return models.Office{}, storeerr.Translate("create office "+o.Slug, err)
	}
	return o, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Office, error) {
	return s.findOne(ctx, bson.M{"_id": id}, "office "+id.Hex())
}

func (s *Store) GetBySlug(ctx context.Context, slug string) (models.Office, error) {
	return s.findOne(ctx, bson.M{"slug": slug}, "office "+slug)
}

// GetBySlugInGroup resolves an office slug within one group, so a URL
// naming the wrong group does not resolve.
func (s *Store) GetBySlugInGroup(ctx context.Context, groupID primitive.ObjectID, slug string) (models.Office, error) {
	return s.findOne(ctx, bson.M{"group_id": groupID, "slug": slug}, "office "+slug+" in group "+groupID.Hex())
}

func (s *Store) findOne(ctx context.Context, filter bson.M, what string) (models.Office, error) {
	var o models.Office
	if err := s.c.FindOne(ctx, filter).Decode(&o); err != nil {
		return models.Office{}, storeerr.Translate(what, err)
	}
	return o, nil
}

// ListByGroup returns a group's offices by order, then title.
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.Office, error) {
	return s.find(ctx, bson.M{"group_id": groupID})
}

// ListExOfficio returns every ex-officio office, in any group.
func (s *Store) ListExOfficio(ctx context.Context) ([]models.Office, error) {
	return s.find(ctx, bson.M{"ex_officio": true})
}

// ListByIDs loads the given offices.
func (s *Store) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Office, error) {
	if len(ids) == 0 {
		return []models.Office{}, nil
	}
	return s.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// Delete removes an office by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, storeerr.Translate("delete office", err)
	}
	return res.DeletedCount, nil
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Office, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "title", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeerr.Translate("list offices", err)
	}
	defer cur.Close(ctx)

	out := []models.Office{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeerr.Translate("list offices", err)
	}
	return out, nil
}
