// internal/app/store/groups/groupstore.go
package groupstore

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/govhub/internal/app/store/storeerr"
	"github.com/dalemusser/govhub/internal/app/system/slugs"
	"github.com/dalemusser/govhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Status filters for List.
const (
	StatusAll      = "all"
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("groups")}
}

var byOrderTitle = bson.D{{Key: "order", Value: 1}, {Key: "title_ci", Value: 1}, {Key: "_id", Value: 1}}

// Enforce applies the group invariants: a disbanded group is never active.
// Every write path calls it.
func Enforce(g *models.Group) {
	if g.DisbandedOn != nil {
		g.Active = false
	}
}

func prepare(g *models.Group) {
	slugs.Fill(g)
	g.TitleCI = text.Fold(g.Title)
	Enforce(g)
	g.Touch(time.Now())
}

func (s *Store) Create(ctx context.Context, g models.Group) (models.Group, error) {
	g.ID = primitive.NewObjectID()
	prepare(&g)
	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return models.Group{}, storeerr.Translate("create group "+g.Slug, err)
	}
	return g, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&g); err != nil {
		return models.Group{}, storeerr.Translate("group "+id.Hex(), err)
	}
	return g, nil
}

func (s *Store) GetBySlug(ctx context.Context, slug string) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"slug": slug}).Decode(&g); err != nil {
		return models.Group{}, storeerr.Translate("group "+slug, err)
	}
	return g, nil
}

// GetActiveBySlug is GetBySlug restricted to active groups.
func (s *Store) GetActiveBySlug(ctx context.Context, slug string) (models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"slug": slug, "active": true}).Decode(&g); err != nil {
		return models.Group{}, storeerr.Translate("active group "+slug, err)
	}
	return g, nil
}

// Update replaces the stored group with g.
func (s *Store) Update(ctx context.Context, g models.Group) (models.Group, error) {
	prepare(&g)
	return g, s.replace(ctx, g)
}

// SetActive flips the active flag. Activating a disbanded group leaves it
// inactive.
func (s *Store) SetActive(ctx context.Context, id primitive.ObjectID, active bool) (models.Group, error) {
	g, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Group{}, err
	}
	g.Active = active
	prepare(&g)
	return g, s.replace(ctx, g)
}

// Disband records the disband date, which also deactivates the group.
func (s *Store) Disband(ctx context.Context, id primitive.ObjectID, on time.Time) (models.Group, error) {
	g, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Group{}, err
	}
	d := models.Dateline(on)
	g.DisbandedOn = &d
	prepare(&g)
	return g, s.replace(ctx, g)
}

func (s *Store) replace(ctx context.Context, g models.Group) error {
	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": g.ID}, g)
	if err != nil {
		return storeerr.Translate("update group "+g.Slug, err)
	}
	if res.MatchedCount == 0 {
		return storeerr.NotFound("update group %s", g.ID.Hex())
	}
	return nil
}

// Delete removes a group by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, storeerr.Translate("delete group", err)
	}
	return res.DeletedCount, nil
}

// ListFilter selects groups for List. An empty Status means all; a nil
// Order means any order value.
type ListFilter struct {
	Status string
	Order  *int
	TypeID *primitive.ObjectID
}

// List returns groups matching f, by order then title.
func (s *Store) List(ctx context.Context, f ListFilter) ([]models.Group, error) {
	q := bson.M{}
	switch f.Status {
	case "", StatusAll:
	case StatusActive:
		q["active"] = true
	case StatusInactive:
		q["active"] = bson.M{"$ne": true}
	default:
		return nil, fmt.Errorf("list groups: unknown status %q", f.Status)
	}
	if f.Order != nil {
		q["order"] = *f.Order
	}
	if f.TypeID != nil {
		q["type_id"] = *f.TypeID
	}

	cur, err := s.c.Find(ctx, q, options.Find().SetSort(byOrderTitle))
	if err != nil {
		return nil, storeerr.Translate("list groups", err)
	}
	defer cur.Close(ctx)

	out := []models.Group{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeerr.Translate("list groups", err)
	}
	return out, nil
}

// ListByType returns the groups of one type.
func (s *Store) ListByType(ctx context.Context, typeID primitive.ObjectID) ([]models.Group, error) {
	return s.List(ctx, ListFilter{TypeID: &typeID})
}

// ListActiveByTypes returns the active groups of any of the given types.
func (s *Store) ListActiveByTypes(ctx context.Context, typeIDs []primitive.ObjectID) ([]models.Group, error) {
	if len(typeIDs) == 0 {
		return []models.Group{}, nil
	}
	q := bson.M{"active": true, "type_id": bson.M{"$in": typeIDs}}
	cur, err := s.c.Find(ctx, q, options.Find().SetSort(byOrderTitle))
	if err != nil {
		return nil, storeerr.Translate("list groups by type", err)
	}
	defer cur.Close(ctx)

	out := []models.Group{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeerr.Translate("list groups by type", err)
	}
	return out, nil
}
