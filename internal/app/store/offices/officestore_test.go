package officestore_test

import (
	"errors"
	"testing"

	officestore "github.com/dalemusser/govhub/internal/app/store/offices"
	"github.com/dalemusser/govhub/internal/app/store/storeerr"
	"github.com/dalemusser/govhub/internal/domain/models"
	"github.com/dalemusser/govhub/internal/testutil"
)

func TestStore_CreateAndLookup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := officestore.New(db)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	gt := fx.CreateGroupType(ctx, "Board")
	board := fx.CreateGroup(ctx, "Governing Board", gt.ID, 0)
	finance := fx.CreateGroup(ctx, "Finance", gt.ID, 1)

	pres, err := store.Create(ctx, models.Office{GroupID: board.ID, Title: "President", Order: 1, ExOfficio: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := store.Create(ctx, models.Office{GroupID: board.ID, Title: "Secretary", Order: 2}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := store.Create(ctx, models.Office{GroupID: finance.ID, Title: "Treasurer", Order: 1}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.GetBySlugInGroup(ctx, board.ID, "president")
	if err != nil {
		t.Fatalf("GetBySlugInGroup: %v", err)
	}
	if got.ID != pres.ID {
		t.Errorf("got %s, want %s", got.ID.Hex(), pres.ID.Hex())
	}
	if _, err := store.GetBySlugInGroup(ctx, finance.ID, "president"); !storeerr.IsNotFound(err) {
		t.Errorf("wrong group: err = %v, want not found", err)
	}

	list, err := store.ListByGroup(ctx, board.ID)
	if err != nil {
		t.Fatalf("ListByGroup: %v", err)
	}
	if len(list) != 2 || list[0].Title != "President" || list[1].Title != "Secretary" {
		t.Errorf("ListByGroup = %+v", list)
	}

	eo, err := store.ListExOfficio(ctx)
	if err != nil {
		t.Fatalf("ListExOfficio: %v", err)
	}
	if len(eo) != 1 || eo[0].ID != pres.ID {
		t.Errorf("ListExOfficio = %+v", eo)
	}

	if _, err := store.Create(ctx, models.Office{GroupID: finance.ID, Title: "President"}); !errors.Is(err, storeerr.ErrDuplicateSlug) {
		t.Errorf("duplicate slug: err = %v", err)
	}
}
