package govqueries

import (
	"context"

	bylawsstore "github.com/dalemusser/govhub/internal/app/store/bylaws"
	groupstore "github.com/dalemusser/govhub/internal/app/store/groups"
	historystore "github.com/dalemusser/govhub/internal/app/store/history"
	minutesstore "github.com/dalemusser/govhub/internal/app/store/minutes"
	officestore "github.com/dalemusser/govhub/internal/app/store/offices"
	"github.com/dalemusser/govhub/internal/app/store/storeerr"
	"github.com/dalemusser/govhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// The lookups below return nil, not an error, when nothing matches.

// OfficeBySlug finds an office by its slug.
func OfficeBySlug(ctx context.Context, db *mongo.Database, slug string) (*models.Office, error) {
	o, err := officestore.New(db).GetBySlug(ctx, slug)
	if storeerr.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// ActiveGroupBySlug finds an active group by its slug.
func ActiveGroupBySlug(ctx context.Context, db *mongo.Database, slug string) (*models.Group, error) {
	g, err := groupstore.New(db).GetActiveBySlug(ctx, slug)
	if storeerr.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Groups lists groups by status ("all", "active", "inactive"), optionally
// only those with the given order value.
func Groups(ctx context.Context, db *mongo.Database, status string, order *int) ([]models.Group, error) {
	return groupstore.New(db).List(ctx, groupstore.ListFilter{Status: status, Order: order})
}

// MinutesForMeeting returns the most recent approved minutes of a meeting.
func MinutesForMeeting(ctx context.Context, db *mongo.Database, meetingID primitive.ObjectID) (*models.Minutes, error) {
	m, err := minutesstore.New(db).GetApprovedByMeeting(ctx, meetingID)
	if storeerr.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// BylawsData is the adopted text of a bylaws document. PendingDraft is
// set when a draft was saved after the adopted revision.
type BylawsData struct {
	Bylaws       models.Bylaws
	Revision     models.Revision
	PendingDraft *models.Revision
	Documents    []models.Bylaws
}

// AdoptedBylaws returns the most recently adopted revision of the bylaws
// with the given slug, plus the list of all bylaws documents for
// navigation.
func AdoptedBylaws(ctx context.Context, db *mongo.Database, slug string) (BylawsData, error) {
	bs := bylawsstore.New(db)
	b, rev, err := bs.Adopted(ctx, slug)
	if err != nil {
		return BylawsData{}, err
	}
	revs, err := bs.History(ctx, rev.EntityID)
	if err != nil {
		return BylawsData{}, err
	}
	docs, err := bs.List(ctx)
	if err != nil {
		return BylawsData{}, err
	}
	d := BylawsData{Bylaws: b, Revision: rev, Documents: docs}
	if draft, ok := historystore.SelectLatest(revs, models.BylawsDraft); ok && draft.Seq > rev.Seq {
		d.PendingDraft = &draft
	}
	return d, nil
}
