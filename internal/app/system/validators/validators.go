// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates collections (if missing) and tries to attach JSON-Schema
// validators. On servers that don't support collMod/validators (e.g. some
// DocumentDB versions), we log and skip gracefully.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	ensure := func(coll string, schema bson.M) {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		if schema == nil {
			return
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				return
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	// Governance bodies and their positions
	ensure("group_types", titledSchema())
	ensure("groups", groupsSchema())
	ensure("offices", officesSchema())
	ensure("people", peopleSchema())
	ensure("terms", termsSchema())

	// Meetings and their records
	ensure("meetings", meetingsSchema())
	ensure("minutes", minutesSchema())
	ensure("attachments", attachmentsSchema())

	// Versioned documents
	ensure("bylaws", bylawsSchema())
	ensure("revisions", revisionsSchema())

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

// collectionExists returns true when <name> already exists.
// Uses ListCollectionNames to avoid "created collection" log when it didn't.
func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Info("collection exists", zap.String("collection", name))
		return false, nil
	}
	// If listing failed, fall back to create-and-handle-race.
	if err := db.CreateCollection(ctx, name); err != nil {
		// NamespaceExists / already exists is fine (race or prior run).
		if isNamespaceExistsErr(err) {
			zap.L().Info("collection exists", zap.String("collection", name))
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

/* ------------------------------ validators ------------------------------- */

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func isNamespaceExistsErr(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 48 || strings.Contains(strings.ToLower(ce.Message), "already exists")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "already exists") || strings.Contains(s, "namespace exists")
}

func isNoSuchCommand(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 59 || strings.Contains(strings.ToLower(ce.Message), "no such command")) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "no such command")
}

func isNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && (ce.Code == 115 ||
		strings.Contains(strings.ToLower(ce.Message), "not implemented") ||
		strings.Contains(strings.ToLower(ce.Message), "not supported")) {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "not implemented") || strings.Contains(s, "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

var (
	nonBlank = bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}
	slug     = bson.M{"bsonType": "string", "minLength": 1, "pattern": "^[a-z0-9-]+$"}
	objectID = bson.M{"bsonType": "objectId"}
	date     = bson.M{"bsonType": "date"}
	flag     = bson.M{"bsonType": "bool"}
	integer  = bson.M{"bsonType": bson.A{"int", "long"}}
)

func schema(required bson.A, props bson.M) bson.M {
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType":   "object",
			"required":   required,
			"properties": props,
		},
	}
}

func titledSchema() bson.M {
	return schema(bson.A{"title", "slug"}, bson.M{
		"title": nonBlank,
		"slug":  slug,
	})
}

func groupsSchema() bson.M {
	return schema(bson.A{"title", "title_ci", "slug", "type_id", "active"}, bson.M{
		"title":        nonBlank,
		"title_ci":     nonBlank,
		"slug":         slug,
		"type_id":      objectID,
		"order":        integer,
		"active":       flag,
		"formed_on":    date,
		"disbanded_on": date,
		"member_ids":   bson.M{"bsonType": "array", "items": objectID},
	})
}

func officesSchema() bson.M {
	return schema(bson.A{"group_id", "title", "slug"}, bson.M{
		"group_id":   objectID,
		"title":      nonBlank,
		"slug":       slug,
		"order":      integer,
		"ex_officio": flag,
	})
}

func peopleSchema() bson.M {
	return schema(bson.A{"slug", "gender", "member"}, bson.M{
		"first_name": bson.M{"bsonType": "string"},
		"last_name":  bson.M{"bsonType": "string"},
		"slug":       slug,
		"gender":     bson.M{"enum": bson.A{"unknown", "male", "female"}},
		"member":     flag,
	})
}

func termsSchema() bson.M {
	return schema(bson.A{"group_id", "person_id", "start"}, bson.M{
		"group_id":  objectID,
		"office_id": objectID,
		"person_id": objectID,
		"start":     date,
		"end":       date,
		"alternate": flag,
	})
}

func meetingsSchema() bson.M {
	return schema(bson.A{"group_id", "event"}, bson.M{
		"group_id": objectID,
		"event": bson.M{
			"bsonType": "object",
			"required": bson.A{"start", "end"},
			"properties": bson.M{
				"start": date,
				"end":   date,
			},
		},
	})
}

func minutesSchema() bson.M {
	return schema(bson.A{"meeting_id", "draft"}, bson.M{
		"meeting_id":      objectID,
		"draft":           flag,
		"members_present": bson.M{"bsonType": "array", "items": objectID},
		"others_present":  bson.M{"bsonType": "array", "items": objectID},
		"signed_by_id":    objectID,
	})
}

func attachmentsSchema() bson.M {
	return schema(bson.A{"minutes_id", "path", "file_name", "size"}, bson.M{
		"minutes_id": objectID,
		"path":       nonBlank,
		"file_name":  nonBlank,
		"size":       integer,
	})
}

func bylawsSchema() bson.M {
	return schema(bson.A{"title", "slug", "status"}, bson.M{
		"title":  nonBlank,
		"slug":   slug,
		"status": bson.M{"enum": bson.A{"D", "A"}},
	})
}

func revisionsSchema() bson.M {
	return schema(bson.A{"entity_kind", "entity_id", "seq", "status"}, bson.M{
		"entity_kind": bson.M{"enum": bson.A{"bylaws", "minutes"}},
		"entity_id":   objectID,
		"seq":         integer,
		"status":      nonBlank,
	})
}
