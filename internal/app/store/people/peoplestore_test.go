package peoplestore_test

import (
	"errors"
	"testing"

	peoplestore "github.com/dalemusser/govhub/internal/app/store/people"
	"github.com/dalemusser/govhub/internal/app/store/storeerr"
	"github.com/dalemusser/govhub/internal/domain/models"
	"github.com/dalemusser/govhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_CreateFillsSlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := peoplestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p, err := store.Create(ctx, models.Person{FirstName: "José", LastName: "Núñez", Member: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Slug != "jose-nunez" {
		t.Errorf("slug = %q, want jose-nunez", p.Slug)
	}
	if p.Gender != models.GenderUnknown {
		t.Errorf("gender = %q, want unknown", p.Gender)
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}

	got, err := store.GetBySlug(ctx, "jose-nunez")
	if err != nil {
		t.Fatalf("GetBySlug: %v", err)
	}
	if got.ID != p.ID {
		t.Errorf("GetBySlug returned %s, want %s", got.ID.Hex(), p.ID.Hex())
	}
}

func TestStore_CreateNonLatinNames(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := peoplestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a, err := store.Create(ctx, models.Person{FirstName: "李", LastName: "伟"})
	if err != nil {
		t.Fatalf("Create(李 伟): %v", err)
	}
	b, err := store.Create(ctx, models.Person{FirstName: "王", LastName: "芳"})
	if err != nil {
		t.Fatalf("Create(王 芳): %v", err)
	}
	if a.Slug == "" || b.Slug == "" || a.Slug == b.Slug {
		t.Errorf("slugs %q and %q, want distinct non-empty", a.Slug, b.Slug)
	}
	if got, err := store.GetBySlug(ctx, a.Slug); err != nil || got.ID != a.ID {
		t.Errorf("GetBySlug(%q) = %v, %v", a.Slug, got.ID, err)
	}
}

func TestStore_DuplicateSlug(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := peoplestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.Person{FirstName: "Ann", LastName: "Lee"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := store.Create(ctx, models.Person{FirstName: "Ann", LastName: "Lee"})
	if !errors.Is(err, storeerr.ErrDuplicateSlug) {
		t.Errorf("err = %v, want ErrDuplicateSlug", err)
	}
}

func TestStore_GetByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := peoplestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByID(ctx, primitive.NewObjectID()); !storeerr.IsNotFound(err) {
		t.Errorf("err = %v, want not found", err)
	}
}

func TestStore_ListMembersSorted(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := peoplestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, p := range []models.Person{
		{FirstName: "Zoe", LastName: "Baker", Member: true},
		{FirstName: "Adam", LastName: "Carter", Member: true},
		{FirstName: "Guest", LastName: "Aaron", Member: false},
		{FirstName: "Amy", LastName: "Baker", Member: true},
	} {
		if _, err := store.Create(ctx, p); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	list, err := store.ListMembers(ctx)
	if err != nil {
		t.Fatalf("ListMembers: %v", err)
	}
	want := []string{"Amy Baker", "Zoe Baker", "Adam Carter"}
	if len(list) != len(want) {
		t.Fatalf("got %d members, want %d", len(list), len(want))
	}
	for i, p := range list {
		if p.FullName() != want[i] {
			t.Errorf("member %d = %q, want %q", i, p.FullName(), want[i])
		}
	}
}

func TestStore_UpdateAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := peoplestore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	p, err := store.Create(ctx, models.Person{FirstName: "Kim", LastName: "Park"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	p.Email = "kim@example.org"
	if _, err := store.Update(ctx, p); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, _ := store.GetByID(ctx, p.ID)
	if got.Email != "kim@example.org" {
		t.Errorf("email = %q", got.Email)
	}

	ghost := models.Person{ID: primitive.NewObjectID(), FirstName: "No", LastName: "One"}
	if _, err := store.Update(ctx, ghost); !storeerr.IsNotFound(err) {
		t.Errorf("update missing: err = %v, want not found", err)
	}

	n, err := store.Delete(ctx, p.ID)
	if err != nil || n != 1 {
		t.Errorf("Delete = (%d, %v)", n, err)
	}
}
