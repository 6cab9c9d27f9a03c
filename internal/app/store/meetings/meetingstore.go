// internal/app/store/meetings/meetingstore.go
package meetingstore

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

var ErrInvalidMeeting = errors.New("invalid meeting")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("meetings")}
}

var byStart = bson.D{{Key: "event.start", Value: 1}, {Key: "_id", Value: 1}}

func prepare(m *models.Meeting) error {
	if m.GroupID.IsZero() {
		return fmt.Errorf("%w: group is required", ErrInvalidMeeting)
	}
	if m.Event.Start.IsZero() {
		return fmt.Errorf("%w: start is required", ErrInvalidMeeting)
	}
	m.Event.Start = m.Event.Start.UTC()
	if m.Event.End.IsZero() || m.Event.End.Before(m.Event.Start) {
		m.Event.End = m.Event.Start
	}
	m.Event.End = m.Event.End.UTC()
	m.Touch(time.Now())
	return nil
}

func (s *Store) Create(ctx context.Context, m models.Meeting) (models.Meeting, error) {
	if err := prepare(&m); err != nil {
		return models.Meeting{}, err
	}
	m.ID = primitive.NewObjectID()
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.Meeting{}, storeerr.Translate("create meeting", err)
	}
	return m, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Meeting, error) {
	var m models.Meeting
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return models.Meeting{}, storeerr.Translate("meeting "+id.Hex(), err)
	}
	return m, nil
}

func (s *Store) Update(ctx context.Context, m models.Meeting) (models.Meeting, error) {
	if err := prepare(&m); err != nil {
		return models.Meeting{}, err
	}
	res, err := s.c.ReplaceOne(ctx, bson.M{"_id": m.ID}, m)
	if err != nil {
		return models.Meeting{}, storeerr.Translate("update meeting", err)
	}
	if res.MatchedCount == 0 {
		return models.Meeting{}, storeerr.NotFound("update meeting %s", m.ID.Hex())
	}
	return m, nil
}

// Delete removes a meeting by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, storeerr.Translate("delete meeting", err)
	}
	return res.DeletedCount, nil
}

// ListByGroup returns all of a group's meetings, earliest first.
func (s *Store) ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.Meeting, error) {
	return s.find(ctx, bson.M{"group_id": groupID}, options.Find().SetSort(byStart))
}

// ListByGroupYear returns a group's meetings starting in year, earliest first.
func (s *Store) ListByGroupYear(ctx context.Context, groupID primitive.ObjectID, year int) ([]models.Meeting, error) {
	return s.between(ctx, groupID, models.Date(year, time.January, 1), models.Date(year+1, time.January, 1))
}

// ListByGroupMonth returns a group's meetings starting in the month.
func (s *Store) ListByGroupMonth(ctx context.Context, groupID primitive.ObjectID, year int, month time.Month) ([]models.Meeting, error) {
	from := models.Date(year, month, 1)
	return s.between(ctx, groupID, from, from.AddDate(0, 1, 0))
}

// FindByGroupYearMonth resolves the single meeting a group held in a
// month. Several meetings in the month yield an AmbiguousError carrying
// their ids.
func (s *Store) FindByGroupYearMonth(ctx context.Context, groupID primitive.ObjectID, year int, month time.Month) (models.Meeting, error) {
	list, err := s.ListByGroupMonth(ctx, groupID, year, month)
	if err != nil {
		return models.Meeting{}, err
	}
	what := fmt.Sprintf("meeting %04d-%02d of group %s", year, int(month), groupID.Hex())
	switch len(list) {
	case 0:
		return models.Meeting{}, storeerr.NotFound("%s", what)
	case 1:
		return list[0], nil
	}
	ids := make([]primitive.ObjectID, 0, len(list))
	for _, m := range list {
		ids = append(ids, m.ID)
	}
	return models.Meeting{}, storeerr.Ambiguous(what, ids...)
}

// ListRecentPast returns up to limit meetings of any group that started
// at or before now, latest first.
func (s *Store) ListRecentPast(ctx context.Context, now time.Time, limit int) ([]models.Meeting, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "event.start", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))
	return s.find(ctx, bson.M{"event.start": bson.M{"$lte": now.UTC()}}, opts)
}

func (s *Store) between(ctx context.Context, groupID primitive.ObjectID, from, to time.Time) ([]models.Meeting, error) {
	filter := bson.M{
		"group_id":    groupID,
		"event.start": bson.M{"$gte": from, "$lt": to},
	}
	return s.find(ctx, filter, options.Find().SetSort(byStart))
}

func (s *Store) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Meeting, error) {
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeerr.Translate("list meetings", err)
	}
	defer cur.Close(ctx)

	out := []models.Meeting{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeerr.Translate("list meetings", err)
	}
	return out, nil
}
