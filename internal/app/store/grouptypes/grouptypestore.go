// internal/app/store/grouptypes/grouptypestore.go
package grouptypestore

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
	return &Store{c: db.Collection("group_types")}
}

func (s *Store) Create(ctx context.Context, gt models.GroupType) (models.GroupType, error) {
	gt.ID = primitive.NewObjectID()
	slugs.Fill(&gt)
	gt.Touch(time.Now())
	if _, err := s.c.InsertOne(ctx, gt); err != nil {
		return models.GroupType{}, storeerr.Translate("create group type "+gt.Slug, err)
	}
	return gt, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.GroupType, error) {
	var gt models.GroupType
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&gt); err != nil {
		return models.GroupType{}, storeerr.Translate("group type "+id.Hex(), err)
	}
	return gt, nil
}

func (s *Store) GetBySlug(ctx context.Context, slug string) (models.GroupType, error) {
	var gt models.GroupType
	if err := s.c.FindOne(ctx, bson.M{"slug": slug}).Decode(&gt); err != nil {
		return models.GroupType{}, storeerr.Translate("group type "+slug, err)
	}
	return gt, nil
}

// List returns all group types by order, then title.
func (s *Store) List(ctx context.Context) ([]models.GroupType, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "title", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, storeerr.Translate("list group types", err)
	}
	defer cur.Close(ctx)

	out := []models.GroupType{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeerr.Translate("list group types", err)
	}
	return out, nil
}
