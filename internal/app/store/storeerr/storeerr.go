// internal/app/store/storeerr/storeerr.go
//
// Package storeerr defines the error kinds every store reports, so page
// handlers can tell a missing entity (404) from an ambiguous lookup
// (disambiguation page) without knowing which store produced the error.
package storeerr

import (
	"errors"
	"fmt"
	"strings"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrAmbiguousMatch = errors.New("more than one match")

	// ErrDuplicateSlug is the ErrDuplicateKey raised by a unique slug index.
	ErrDuplicateSlug = fmt.Errorf("slug already in use: %w", ErrDuplicateKey)
)

// AmbiguousError reports a lookup expected to be unique that matched
// several entities. It matches ErrAmbiguousMatch with errors.Is.
type AmbiguousError struct {
	What       string
	Candidates []primitive.ObjectID
}

func (e *AmbiguousError) Error() string {
	ids := make([]string, 0, len(e.Candidates))
	for _, id := range e.Candidates {
		ids = append(ids, id.Hex())
	}
	return fmt.Sprintf("%s: %d matches (%s)", e.What, len(e.Candidates), strings.Join(ids, ", "))
}

func (e *AmbiguousError) Is(target error) bool { return target == ErrAmbiguousMatch }

// Ambiguous builds an AmbiguousError.
func Ambiguous(what string, ids ...primitive.ObjectID) error {
	return &AmbiguousError{What: what, Candidates: ids}
}

// NotFound wraps ErrNotFound with the lookup that failed.
func NotFound(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// Translate maps driver errors onto the store error kinds. Duplicates on
// a slug index become ErrDuplicateSlug, other duplicates ErrDuplicateKey.
// Other errors are returned wrapped with op.
func Translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case wafflemongo.IsDup(err), mongo.IsDuplicateKeyError(err):
		if isSlugIndex(dupIndexName(err)) {
			return fmt.Errorf("%s: %w", op, ErrDuplicateSlug)
		}
		return fmt.Errorf("%s: %w (%v)", op, ErrDuplicateKey, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// dupIndexName pulls the index name out of an E11000 message:
// "... index: uniq_people_slug dup key: { slug: \"ann\" }".
func dupIndexName(err error) string {
	msg := err.Error()
	i := strings.Index(msg, "index: ")
	if i < 0 {
		return ""
	}
	fields := strings.Fields(msg[i+len("index: "):])
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func isSlugIndex(name string) bool {
	return name == "slug_1" || strings.HasSuffix(name, "_slug")
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsAmbiguous reports whether err is an ambiguous-match error.
func IsAmbiguous(err error) bool { return errors.Is(err, ErrAmbiguousMatch) }

// Candidates returns the ids carried by an ambiguous-match error.
func Candidates(err error) []primitive.ObjectID {
	var ae *AmbiguousError
	if errors.As(err, &ae) {
		return ae.Candidates
	}
	return nil
}
