package govqueries

import (
	"context"
	"time"

	attachmentstore "github.com/dalemusser/govhub/internal/app/store/attachments"
	groupstore "github.com/dalemusser/govhub/internal/app/store/groups"
	meetingstore "github.com/dalemusser/govhub/internal/app/store/meetings"
	minutesstore "github.com/dalemusser/govhub/internal/app/store/minutes"
	peoplestore "github.com/dalemusser/govhub/internal/app/store/people"
	"github.com/dalemusser/govhub/internal/app/store/storeerr"
	termstore "github.com/dalemusser/govhub/internal/app/store/terms"
	"github.com/dalemusser/govhub/internal/app/system/temporal"
	"github.com/dalemusser/govhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MeetingListData backs a group's meeting archive.
type MeetingListData struct {
	Group    models.Group
	Year     int // 0 when listing every year
	Meetings []models.Meeting
	Years    []int
}

// MeetingList returns a group's meetings, limited to year when it is
// non-zero, latest first, plus every year the group has met in.
func MeetingList(ctx context.Context, db *mongo.Database, groupSlug string, year int) (MeetingListData, error) {
	g, err := groupstore.New(db).GetBySlug(ctx, groupSlug)
	if err != nil {
		return MeetingListData{}, err
	}
	all, err := meetingstore.New(db).ListByGroup(ctx, g.ID)
	if err != nil {
		return MeetingListData{}, err
	}
	d := MeetingListData{Group: g, Year: year, Years: temporal.MeetingYears(all), Meetings: all}
	if year != 0 {
		d.Meetings = temporal.MeetingsInYear(all, year)
	}
	temporal.SortMeetings(d.Meetings, false)
	return d, nil
}

// UpcomingMeetings lists an active group's meetings from now on, earliest
// first.
func UpcomingMeetings(ctx context.Context, db *mongo.Database, groupSlug string, now time.Time) (MeetingListData, error) {
	g, err := ActiveGroupBySlug(ctx, db, groupSlug)
	if err != nil {
		return MeetingListData{}, err
	}
	if g == nil {
		return MeetingListData{}, storeerr.NotFound("active group %s", groupSlug)
	}
	all, err := meetingstore.New(db).ListByGroup(ctx, g.ID)
	if err != nil {
		return MeetingListData{}, err
	}
	return MeetingListData{
		Group:    *g,
		Meetings: temporal.FilterMeetings(now, all, temporal.Upcoming),
		Years:    temporal.MeetingYears(all),
	}, nil
}

// MeetingDetailData backs a meeting's page.
type MeetingDetailData struct {
	Group    models.Group
	Meeting  models.Meeting
	Previous *models.Meeting
	Next     *models.Meeting
	Minutes  *models.Minutes
}

// MeetingRef names a meeting by the month it was held in. ID, when set,
// picks one meeting of that month; it is how the disambiguation page links
// to each candidate.
type MeetingRef struct {
	Year  int
	Month time.Month
	ID    primitive.ObjectID
}

// resolveMeeting finds the group by slug and the meeting ref names.
// Without an ID, no meeting that month is ErrNotFound and several are an
// AmbiguousError listing them.
func resolveMeeting(ctx context.Context, db *mongo.Database, groupSlug string, ref MeetingRef) (models.Group, models.Meeting, error) {
	g, err := groupstore.New(db).GetBySlug(ctx, groupSlug)
	if err != nil {
		return models.Group{}, models.Meeting{}, err
	}
	ms := meetingstore.New(db)
	if ref.ID.IsZero() {
		m, err := ms.FindByGroupYearMonth(ctx, g.ID, ref.Year, ref.Month)
		return g, m, err
	}
	m, err := ms.GetByID(ctx, ref.ID)
	if err != nil {
		return models.Group{}, models.Meeting{}, err
	}
	if m.GroupID != g.ID || m.Start().Year() != ref.Year || m.Start().Month() != ref.Month {
		return models.Group{}, models.Meeting{}, storeerr.NotFound("meeting %s in %s %d-%02d", ref.ID.Hex(), groupSlug, ref.Year, ref.Month)
	}
	return g, m, nil
}

// MeetingDetail resolves the meeting ref names in the group with the given
// slug, with its neighbours and approved minutes.
func MeetingDetail(ctx context.Context, db *mongo.Database, groupSlug string, ref MeetingRef) (MeetingDetailData, error) {
	g, m, err := resolveMeeting(ctx, db, groupSlug, ref)
	if err != nil {
		return MeetingDetailData{}, err
	}
	all, err := meetingstore.New(db).ListByGroup(ctx, g.ID)
	if err != nil {
		return MeetingDetailData{}, err
	}
	d := MeetingDetailData{Group: g, Meeting: m}
	d.Previous, d.Next = temporal.Neighbors(m, all)

	if d.Minutes, err = MinutesForMeeting(ctx, db, m.ID); err != nil {
		return MeetingDetailData{}, err
	}
	return d, nil
}

// MeetingsInMonth lists the candidates of an ambiguous month, earliest
// first.
func MeetingsInMonth(ctx context.Context, db *mongo.Database, groupSlug string, year int, month time.Month) (MeetingListData, error) {
	g, err := groupstore.New(db).GetBySlug(ctx, groupSlug)
	if err != nil {
		return MeetingListData{}, err
	}
	list, err := meetingstore.New(db).ListByGroupMonth(ctx, g.ID, year, month)
	if err != nil {
		return MeetingListData{}, err
	}
	return MeetingListData{Group: g, Year: year, Meetings: list}, nil
}

// MinutesDetailData backs the minutes page.
type MinutesDetailData struct {
	Group          models.Group
	Meeting        models.Meeting
	Minutes        models.Minutes
	MembersPresent []TermView
	OthersPresent  []models.Person
	SignedBy       *models.Person
	Attachments    []models.Attachment
}

// MinutesDetail returns the minutes of the meeting ref names. Drafts are
// only returned when includeDrafts is set.
func MinutesDetail(ctx context.Context, db *mongo.Database, groupSlug string, ref MeetingRef, includeDrafts bool) (MinutesDetailData, error) {
	g, m, err := resolveMeeting(ctx, db, groupSlug, ref)
	if err != nil {
		return MinutesDetailData{}, err
	}

	mins := minutesstore.New(db)
	var rec models.Minutes
	if includeDrafts {
		rec, err = mins.GetByMeeting(ctx, m.ID)
	} else {
		rec, err = mins.GetApprovedByMeeting(ctx, m.ID)
	}
	if err != nil {
		return MinutesDetailData{}, err
	}

	d := MinutesDetailData{Group: g, Meeting: m, Minutes: rec}

	present, err := termstore.New(db).ListByIDs(ctx, rec.MembersPresent)
	if err != nil {
		return MinutesDetailData{}, err
	}
	l := newLookup()
	l.addGroups(g)
	if err := l.load(ctx, db, present); err != nil {
		return MinutesDetailData{}, err
	}
	sortByOfficeOrder(present, l)
	d.MembersPresent = l.terms(present)

	ps := peoplestore.New(db)
	if d.OthersPresent, err = ps.ListByIDs(ctx, rec.OthersPresent); err != nil {
		return MinutesDetailData{}, err
	}
	if rec.SignedByID != nil {
		p, err := ps.GetByID(ctx, *rec.SignedByID)
		switch {
		case err == nil:
			d.SignedBy = &p
		case !storeerr.IsNotFound(err):
			return MinutesDetailData{}, err
		}
	}

	if d.Attachments, err = attachmentstore.New(db, nil, nil).ListByMinutes(ctx, rec.ID); err != nil {
		return MinutesDetailData{}, err
	}
	return d, nil
}
