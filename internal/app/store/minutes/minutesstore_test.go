package minutesstore_test

import (
	"errors"
	"testing"

	minutesstore "github.com/dalemusser/govhub/internal/app/store/minutes"
	"github.com/dalemusser/govhub/internal/app/store/storeerr"
	"github.com/dalemusser/govhub/internal/domain/models"
	"github.com/dalemusser/govhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewDraft(t *testing.T) {
	m := minutesstore.NewDraft(primitive.NewObjectID())
	if !m.Draft || m.Approved() {
		t.Error("new minutes should be a draft")
	}
}

func TestStore_SaveAppendsRevisions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := minutesstore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	gt := fx.CreateGroupType(ctx, "Board")
	board := fx.CreateGroup(ctx, "Board", gt.ID, 0)
	meeting := fx.CreateMeeting(ctx, board.ID, "March", testutil.Day(2023, 3, 14))

	m := minutesstore.NewDraft(meeting.ID)
	m.Content = "<p>Draft text</p>"
	m, err := store.Save(ctx, m)
	if err != nil {
		t.Fatalf("Save draft: %v", err)
	}

	if _, err := store.GetApprovedByMeeting(ctx, meeting.ID); !storeerr.IsNotFound(err) {
		t.Errorf("approved lookup on draft: err = %v, want not found", err)
	}

	m.Content = "<p>Final text</p>"
	m.Draft = false
	if _, err := store.Save(ctx, m); err != nil {
		t.Fatalf("Save approved: %v", err)
	}

	approved, err := store.GetApprovedByMeeting(ctx, meeting.ID)
	if err != nil {
		t.Fatalf("GetApprovedByMeeting: %v", err)
	}
	if approved.Content != "<p>Final text</p>" {
		t.Errorf("content = %q", approved.Content)
	}

	hist, err := store.History(ctx, m.ID)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(hist) != 2 {
		t.Fatalf("history length = %d, want 2", len(hist))
	}
	if hist[0].Status != models.MinutesApproved || hist[1].Status != models.MinutesDraft {
		t.Errorf("history statuses = %q, %q", hist[0].Status, hist[1].Status)
	}
	var first models.Minutes
	if err := hist[1].Decode(&first); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if first.Content != "<p>Draft text</p>" {
		t.Errorf("first revision content = %q", first.Content)
	}
}

func TestStore_SaveRequiresMeeting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := minutesstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Save(ctx, models.Minutes{}); !errors.Is(err, minutesstore.ErrInvalidMinutes) {
		t.Errorf("err = %v, want ErrInvalidMinutes", err)
	}
}
