// internal/app/store/minutes/minutesstore.go
package minutesstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	historystore "github.com/dalemusser/govhub/internal/app/store/history"
	"github.com/dalemusser/govhub/internal/app/store/storeerr"
	"github.com/dalemusser/govhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrInvalidMinutes = errors.New("invalid minutes")

type Store struct {
	c    *mongo.Collection
	hist *historystore.Store
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("minutes"), hist: historystore.New(db)}
}

// NewDraft starts minutes for a meeting. Minutes are drafts until
// approved.
func NewDraft(meetingID primitive.ObjectID) models.Minutes {
	return models.Minutes{
		MeetingID:      meetingID,
		MembersPresent: []primitive.ObjectID{},
		OthersPresent:  []primitive.ObjectID{},
		Draft:          true,
	}
}

var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

// Save inserts new minutes (zero ID) or replaces existing ones, then
// appends the saved state to the revision log.
func (s *Store) Save(ctx context.Context, m models.Minutes) (models.Minutes, error) {
	if m.MeetingID.IsZero() {
		return models.Minutes{}, fmt.Errorf("%w: meeting is required", ErrInvalidMinutes)
	}
	if m.MembersPresent == nil {
		m.MembersPresent = []primitive.ObjectID{}
	}
	if m.OthersPresent == nil {
		m.OthersPresent = []primitive.ObjectID{}
	}
	m.Touch(time.Now())

	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
		if _, err := s.c.InsertOne(ctx, m); err != nil {
			return models.Minutes{}, storeerr.Translate("create minutes", err)
		}
	} else {
		res, err := s.c.ReplaceOne(ctx, bson.M{"_id": m.ID}, m)
		if err != nil {
			return models.Minutes{}, storeerr.Translate("update minutes", err)
		}
		if res.MatchedCount == 0 {
			return models.Minutes{}, storeerr.NotFound("update minutes %s", m.ID.Hex())
		}
	}

	if _, err := s.hist.Append(ctx, models.KindMinutes, m.ID, m.RevisionStatus(), m); err != nil {
		return models.Minutes{}, fmt.Errorf("minutes %s saved, history append failed: %w", m.ID.Hex(), err)
	}
	return m, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Minutes, error) {
	var m models.Minutes
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&m); err != nil {
		return models.Minutes{}, storeerr.Translate("minutes "+id.Hex(), err)
	}
	return m, nil
}

// GetByMeeting returns the most recently created minutes of a meeting,
// draft or not.
func (s *Store) GetByMeeting(ctx context.Context, meetingID primitive.ObjectID) (models.Minutes, error) {
	return s.latest(ctx, bson.M{"meeting_id": meetingID}, "minutes of meeting "+meetingID.Hex())
}

// GetApprovedByMeeting is GetByMeeting restricted to approved minutes.
func (s *Store) GetApprovedByMeeting(ctx context.Context, meetingID primitive.ObjectID) (models.Minutes, error) {
	return s.latest(ctx, bson.M{"meeting_id": meetingID, "draft": false}, "approved minutes of meeting "+meetingID.Hex())
}

func (s *Store) latest(ctx context.Context, filter bson.M, what string) (models.Minutes, error) {
	var m models.Minutes
	if err := s.c.FindOne(ctx, filter, options.FindOne().SetSort(newestFirst)).Decode(&m); err != nil {
		return models.Minutes{}, storeerr.Translate(what, err)
	}
	return m, nil
}

// ListApproved returns all approved minutes, newest first.
func (s *Store) ListApproved(ctx context.Context) ([]models.Minutes, error) {
	return s.find(ctx, bson.M{"draft": false})
}

// ListApprovedByMeetings returns approved minutes for any of the meetings.
func (s *Store) ListApprovedByMeetings(ctx context.Context, meetingIDs []primitive.ObjectID) ([]models.Minutes, error) {
	if len(meetingIDs) == 0 {
		return []models.Minutes{}, nil
	}
	return s.find(ctx, bson.M{"draft": false, "meeting_id": bson.M{"$in": meetingIDs}})
}

// History returns the saved revisions of the minutes, newest first.
func (s *Store) History(ctx context.Context, id primitive.ObjectID) ([]models.Revision, error) {
	return s.hist.List(ctx, models.KindMinutes, id)
}

// Delete removes minutes by ID. The revision log is kept.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, storeerr.Translate("delete minutes", err)
	}
	return res.DeletedCount, nil
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Minutes, error) {
	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, storeerr.Translate("list minutes", err)
	}
	defer cur.Close(ctx)

	out := []models.Minutes{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeerr.Translate("list minutes", err)
	}
	return out, nil
}
