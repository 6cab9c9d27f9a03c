// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called from EnsureSchema at startup and by testutil for every
test database. Each collection's set is reconciled idempotently; errors are
aggregated so every problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string
	for _, spec := range collections() {
		if err := ensureIndexSet(ctx, db.Collection(spec.name), spec.models); err != nil {
			problems = append(problems, spec.name+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

type collectionIndexes struct {
	name   string
	models []mongo.IndexModel
}

func uniqueSlug(name string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(name),
	}
}

func index(name string, keys ...string) mongo.IndexModel {
	d := bson.D{}
	for _, k := range keys {
		dir := 1
		if strings.HasPrefix(k, "-") {
			dir, k = -1, k[1:]
		}
		d = append(d, bson.E{Key: k, Value: dir})
	}
	return mongo.IndexModel{Keys: d, Options: options.Index().SetName(name)}
}

func collections() []collectionIndexes {
	return []collectionIndexes{
		{"people", []mongo.IndexModel{
			uniqueSlug("uniq_people_slug"),
			index("idx_people_member_sortnameci", "member", "sort_name_ci"),
		}},
		{"group_types", []mongo.IndexModel{
			uniqueSlug("uniq_group_types_slug"),
		}},
		{"groups", []mongo.IndexModel{
			uniqueSlug("uniq_groups_slug"),
			index("idx_groups_active_order_titleci", "active", "order", "title_ci"),
			index("idx_groups_type", "type_id"),
		}},
		{"offices", []mongo.IndexModel{
			uniqueSlug("uniq_offices_slug"),
			index("idx_offices_group_order", "group_id", "order"),
			index("idx_offices_exofficio", "ex_officio"),
		}},
		{"terms", []mongo.IndexModel{
			index("idx_terms_group_start", "group_id", "-start"),
			index("idx_terms_office_start", "office_id", "-start"),
			index("idx_terms_person_start", "person_id", "-start"),
		}},
		{"meetings", []mongo.IndexModel{
			index("idx_meetings_group_start", "group_id", "event.start"),
			index("idx_meetings_start", "-event.start"),
		}},
		{"minutes", []mongo.IndexModel{
			index("idx_minutes_meeting_created", "meeting_id", "-created_at"),
		}},
		{"attachments", []mongo.IndexModel{
			index("idx_attachments_minutes", "minutes_id"),
			{
				Keys:    bson.D{{Key: "path", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_attachments_path"),
			},
		}},
		{"bylaws", []mongo.IndexModel{
			uniqueSlug("uniq_bylaws_slug"),
		}},
		{"revisions", []mongo.IndexModel{
			{
				Keys: bson.D{
					{Key: "entity_kind", Value: 1},
					{Key: "entity_id", Value: 1},
					{Key: "seq", Value: 1},
				},
				Options: options.Index().SetUnique(true).SetName("uniq_revisions_kind_entity_seq"),
			},
			index("idx_revisions_kind_entity_status_seq", "entity_kind", "entity_id", "status", "-seq"),
		}},
	}
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av, bv := false, false
	if a != nil {
		av = *a
	}
	if b != nil {
		bv = *b
	}
	return av == bv
}

func listExisting(ctx context.Context, coll *mongo.Collection) (map[string]existingIndex, error) {
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	existing := map[string]existingIndex{}
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		existing[keySig(idx.Key)] = idx
	}
	return existing, cur.Err()
}

// ensureIndexSet creates missing indexes, reuses matching ones, and drops
// and recreates an index whose name or uniqueness differs from the desired
// model.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	existing, err := listExisting(ctx, coll)
	if err != nil {
		// A collection that does not exist yet has no indexes.
		existing = map[string]existingIndex{}
	}

	var errs []string
	for _, m := range models {
		name := *m.Options.Name
		unique := m.Options.Unique
		sig := keySig(m.Keys.(bson.D))
		start := time.Now()

		if ex, ok := existing[sig]; ok {
			if ex.Name == name && sameBoolPtr(unique, ex.Unique) {
				zap.L().Debug("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", sig))
				continue
			}
			zap.L().Info("replacing index",
				zap.String("collection", coll.Name()),
				zap.String("from", ex.Name),
				zap.String("to", name),
				zap.String("keys", sig))
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s: drop failed: %v", name, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				errs = append(errs, fmt.Sprintf("%s: cannot create unique index (duplicates present)", name))
			} else {
				errs = append(errs, fmt.Sprintf("%s: %v", name, err))
			}
			zap.L().Warn("index ensure failed",
				zap.String("collection", coll.Name()),
				zap.String("name", name),
				zap.String("keys", sig),
				zap.Error(err))
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("keys", sig),
			zap.Bool("unique", unique != nil && *unique),
			zap.Duration("took", time.Since(start)))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
