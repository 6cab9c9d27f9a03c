// internal/app/store/people/peoplestore.go
package peoplestore

import (
	"context"
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

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("people")}
}

var bySortName = bson.D{{Key: "sort_name_ci", Value: 1}, {Key: "_id", Value: 1}}

func prepare(p *models.Person) {
	slugs.Fill(p)
	p.SortNameCI = text.Fold(p.SortName())
	if p.Gender == "" {
		p.Gender = models.GenderUnknown
	}
	p.Touch(time.Now())
}

func (s *Store) Create(ctx context.Context, p models.Person) (models.Person, error) {
	p.ID = primitive.NewObjectID()
	prepare(&p)
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Person{}, storeerr.Translate("create person "+p.Slug, err)
	}
	return p, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Person, error) {
	var p models.Person
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.Person{}, storeerr.Translate("person "+id.Hex(), err)
	}
	return p, nil
}

func (s *Store) GetBySlug(ctx context.Context, slug string) (models.Person, error) {
	var p models.Person
	if err := s.c.FindOne(ctx, bson.M{"slug": slug}).Decode(&p); err != nil {
		return models.Person{}, storeerr.Translate("person "+slug, err)
	}
	return p, nil
}

// Update replaces the stored person with p.
func (s *Store) Update(ctx context.Context, p models.Person) (models.Person, error) {
	prepare(&p)
	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return models.Person{}, storeerr.Translate("update person "+p.Slug, err)
	}
	if res.MatchedCount == 0 {
		return models.Person{}, storeerr.NotFound("update person %s", p.ID.Hex())
	}
	return p, nil
}

// Delete removes a person by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, storeerr.Translate("delete person", err)
	}
	return res.DeletedCount, nil
}

// ListMembers returns every organization member, by sort name.
func (s *Store) ListMembers(ctx context.Context) ([]models.Person, error) {
	return s.find(ctx, bson.M{"member": true})
}

// ListByIDs loads the given people, by sort name. Unknown ids are skipped.
func (s *Store) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Person, error) {
	if len(ids) == 0 {
		return []models.Person{}, nil
	}
	return s.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// MapByIDs is ListByIDs keyed by id.
func (s *Store) MapByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Person, error) {
	list, err := s.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[primitive.ObjectID]models.Person, len(list))
	for _, p := range list {
		out[p.ID] = p
	}
	return out, nil
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Person, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bySortName))
	if err != nil {
		return nil, storeerr.Translate("list people", err)
	}
	defer cur.Close(ctx)

	out := []models.Person{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeerr.Translate("list people", err)
	}
	return out, nil
}
