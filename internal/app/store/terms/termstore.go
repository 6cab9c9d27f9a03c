// internal/app/store/terms/termstore.go
package termstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/govhub/internal/app/store/storeerr"
	"github.com/dalemusser/govhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrInvalidTerm = errors.New("invalid term")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("terms")}
}

var byStart = bson.D{{Key: "start", Value: 1}, {Key: "_id", Value: 1}}

// Validate checks the fields every term needs and normalizes its dates
// to calendar days.
func Validate(t *models.Term) error {
	switch {
	case t.GroupID.IsZero():
		return fmt.Errorf("%w: group is required", ErrInvalidTerm)
	case t.PersonID.IsZero():
		return fmt.Errorf("%w: person is required", ErrInvalidTerm)
	case t.Start.IsZero():
		return fmt.Errorf("%w: start date is required", ErrInvalidTerm)
	}
	t.Start = models.Dateline(t.Start)
	if t.End != nil {
		end := models.Dateline(*t.End)
		if end.Before(t.Start) {
			return fmt.Errorf("%w: end %s before start %s", ErrInvalidTerm,
				end.Format("2006-01-02"), t.Start.Format("2006-01-02"))
		}
		t.End = &end
	}
	return nil
}

func (s *Store) Create(ctx context.Context, t models.Term) (models.Term, error) {
	if err := Validate(&t); err != nil {
		return models.Term{}, err
	}
	t.ID = primitive.NewObjectID()
	t.Touch(time.Now())
	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Term{}, storeerr.Translate("create term", err)
	}
	return t, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Term, error) {
	var t models.Term
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return models.Term{}, storeerr.Translate("term "+id.Hex(), err)
	}
	return t, nil
}

func (s *Store) Update(ctx context.Context, t models.Term) (models.Term, error) {
	if err := Validate(&t); err != nil {
		return models.Term{}, err
	}
	t.Touch(time.Now())
	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": t.ID}, t)
	if err != nil {
		return models.Term{}, storeerr.Translate("update term", err)
	}
	if res.MatchedCount == 0 {
		return models.Term{}, storeerr.NotFound("update term %s", t.ID.Hex())
	}
	return t, nil
}

// Delete removes a term by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, storeerr.Translate("delete term", err)
	}
	return res.DeletedCount, nil
}

func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.Term, error) {
	return s.find(ctx, bson.M{"group_id": groupID})
}

func (s *Store) ListByOffice(ctx context.Context, officeID primitive.ObjectID) ([]models.Term, error) {
	return s.find(ctx, bson.M{"office_id": officeID})
}

func (s *Store) ListByPerson(ctx context.Context, personID primitive.ObjectID) ([]models.Term, error) {
	return s.find(ctx, bson.M{"person_id": personID})
}

func (s *Store) ListByOffices(ctx context.Context, officeIDs []primitive.ObjectID) ([]models.Term, error) {
	if len(officeIDs) == 0 {
		return []models.Term{}, nil
	}
	return s.find(ctx, bson.M{"office_id": bson.M{"$in": officeIDs}})
}

func (s *Store) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Term, error) {
	if len(ids) == 0 {
		return []models.Term{}, nil
	}
	return s.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

// FindByOfficeStartYear returns the office's terms starting in year. The
// caller decides what zero or several matches mean.
func (s *Store) FindByOfficeStartYear(ctx context.Context, officeID primitive.ObjectID, year int) ([]models.Term, error) {
	from := models.Date(year, time.January, 1)
	to := models.Date(year+1, time.January, 1)
	return s.find(ctx, bson.M{
		"office_id": officeID,
		"start":     bson.M{"$gte": from, "$lt": to},
	})
}

func (s *Store) ListAll(ctx context.Context) ([]models.Term, error) {
	return s.find(ctx, bson.M{})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Term, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(byStart))
	if err != nil {
		return nil, storeerr.Translate("list terms", err)
	}
	defer cur.Close(ctx)

	out := []models.Term{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeerr.Translate("list terms", err)
	}
	return out, nil
}
