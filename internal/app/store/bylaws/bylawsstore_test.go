package bylawsstore_test

import (
	"errors"
	"testing"

	bylawsstore "github.com/dalemusser/govhub/internal/app/store/bylaws"
	"github.com/dalemusser/govhub/internal/app/store/storeerr"
	"github.com/dalemusser/govhub/internal/domain/models"
	"github.com/dalemusser/govhub/internal/testutil"
)

func TestStore_AdoptedIsNewestAdoptedRevision(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := bylawsstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	b := models.Bylaws{Title: "Constitution"}
	steps := []struct{ status, content string }{
		{models.BylawsDraft, "v1 draft"},
		{models.BylawsAdopted, "v1 adopted"},
		{models.BylawsDraft, "v2 draft"},
		{models.BylawsAdopted, "v2 adopted"},
	}
	var err error
	for _, st := range steps {
		b.Status, b.Content = st.status, st.content
		if b, err = store.Save(ctx, b); err != nil {
			t.Fatalf("Save %q: %v", st.content, err)
		}
	}

	adopted, rev, err := store.Adopted(ctx, "constitution")
	if err != nil {
		t.Fatalf("Adopted: %v", err)
	}
	if adopted.Content != "v2 adopted" || rev.Seq != 4 {
		t.Errorf("Adopted = %q (seq %d), want v2 adopted (seq 4)", adopted.Content, rev.Seq)
	}

	// a later draft does not change the adopted text
	b.Status, b.Content = models.BylawsDraft, "v3 draft"
	if _, err := store.Save(ctx, b); err != nil {
		t.Fatalf("Save v3: %v", err)
	}
	adopted, _, err = store.Adopted(ctx, "constitution")
	if err != nil || adopted.Content != "v2 adopted" {
		t.Errorf("Adopted after draft = %q, %v", adopted.Content, err)
	}

	hist, err := store.History(ctx, b.ID)
	if err != nil || len(hist) != 5 {
		t.Errorf("History = %d revisions, %v", len(hist), err)
	}
}

func TestStore_AdoptedNeverAdopted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := bylawsstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Save(ctx, models.Bylaws{Title: "Policy Manual", Content: "draft"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, _, err := store.Adopted(ctx, "policy-manual"); !storeerr.IsNotFound(err) {
		t.Errorf("err = %v, want not found", err)
	}
	if _, _, err := store.Adopted(ctx, "missing"); !storeerr.IsNotFound(err) {
		t.Errorf("missing slug: err = %v, want not found", err)
	}
}

func TestStore_SaveValidatesStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := bylawsstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Save(ctx, models.Bylaws{Title: "X", Status: "Z"}); !errors.Is(err, bylawsstore.ErrInvalidStatus) {
		t.Errorf("err = %v, want ErrInvalidStatus", err)
	}
}
