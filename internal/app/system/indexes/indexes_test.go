package indexes_test

import (
	"testing"

	"github.com/dalemusser/govhub/internal/app/system/indexes"
	"github.com/dalemusser/govhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func indexNames(t *testing.T, db *mongo.Database, coll string) map[string]bool {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cur, err := db.Collection(coll).Indexes().List(ctx)
	if err != nil {
		t.Fatalf("list indexes on %s: %v", coll, err)
	}
	defer cur.Close(ctx)

	names := map[string]bool{}
	for cur.Next(ctx) {
		var idx bson.M
		if err := cur.Decode(&idx); err != nil {
			continue
		}
		if name, ok := idx["name"].(string); ok {
			names[name] = true
		}
	}
	return names
}

// SetupTestDB already runs EnsureAll; a second run must be a no-op.
func TestEnsureAll_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("second EnsureAll failed: %v", err)
	}
}

func TestEnsureAll_CreatesIndexes(t *testing.T) {
	db := testutil.SetupTestDB(t)

	want := map[string][]string{
		"people":      {"uniq_people_slug", "idx_people_member_sortnameci"},
		"group_types": {"uniq_group_types_slug"},
		"groups":      {"uniq_groups_slug", "idx_groups_active_order_titleci", "idx_groups_type"},
		"offices":     {"uniq_offices_slug", "idx_offices_group_order", "idx_offices_exofficio"},
		"terms":       {"idx_terms_group_start", "idx_terms_office_start", "idx_terms_person_start"},
		"meetings":    {"idx_meetings_group_start", "idx_meetings_start"},
		"minutes":     {"idx_minutes_meeting_created"},
		"attachments": {"idx_attachments_minutes", "uniq_attachments_path"},
		"bylaws":      {"uniq_bylaws_slug"},
		"revisions":   {"uniq_revisions_kind_entity_seq", "idx_revisions_kind_entity_status_seq"},
	}
	for coll, names := range want {
		got := indexNames(t, db, coll)
		for _, n := range names {
			if !got[n] {
				t.Errorf("expected index %q on %s", n, coll)
			}
		}
	}
}

func TestEnsureAll_UniqueSlugEnforced(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, coll := range []string{"people", "groups", "group_types", "offices", "bylaws"} {
		if _, err := db.Collection(coll).InsertOne(ctx, bson.M{"slug": "finance"}); err != nil {
			t.Fatalf("insert into %s: %v", coll, err)
		}
		_, err := db.Collection(coll).InsertOne(ctx, bson.M{"slug": "finance"})
		if !mongo.IsDuplicateKeyError(err) {
			t.Errorf("%s: expected duplicate key error, got %v", coll, err)
		}
	}
}

func TestEnsureAll_RevisionSeqUnique(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	doc := bson.M{"entity_kind": "bylaws", "entity_id": "x", "seq": 1}
	if _, err := db.Collection("revisions").InsertOne(ctx, doc); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := db.Collection("revisions").InsertOne(ctx, bson.M{"entity_kind": "bylaws", "entity_id": "x", "seq": 1}); !mongo.IsDuplicateKeyError(err) {
		t.Errorf("expected duplicate key error, got %v", err)
	}
}
