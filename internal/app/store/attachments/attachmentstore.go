// internal/app/store/attachments/attachmentstore.go
//
// Package attachmentstore keeps minutes attachments: metadata in the
// attachments collection, bytes in an afero filesystem rooted at the
// configured attachments path.
package attachmentstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/govhub/internal/app/store/storeerr"
	"github.com/dalemusser/govhub/internal/app/system/slugs"
	"github.com/dalemusser/govhub/internal/domain/models"
	"github.com/google/uuid"
	"github.com/spf13/afero"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var ErrInvalidAttachment = errors.New("invalid attachment")

type Store struct {
	c   *mongo.Collection
	fs  afero.Fs
	log *zap.Logger
}

// New returns a store writing files to fs. fs may be nil when only
// metadata is read.
func New(db *mongo.Database, fs afero.Fs, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{c: db.Collection("attachments"), fs: fs, log: log}
}

// Path is where an attachment of a meeting held in year by the group is
// stored: attach/<year>/<group-slug>/<filename>.
func Path(year int, groupSlug, fileName string) string {
	return path.Join("attach", strconv.Itoa(year), groupSlug, CleanFileName(fileName))
}

// CleanFileName keeps the base name and reduces it to a slug plus the
// original extension.
func CleanFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	ext := strings.ToLower(path.Ext(name))
	stem := slugs.Make(strings.TrimSuffix(name, path.Ext(name)))
	if stem == "" {
		stem = "file"
	}
	if slugs.Make(strings.TrimPrefix(ext, ".")) == "" {
		ext = ""
	}
	return stem + ext
}

// Upload describes a file to attach to minutes.
type Upload struct {
	MinutesID   primitive.ObjectID
	Year        int
	GroupSlug   string
	Title       string
	Description string
	FileName    string
	ContentType string
	Body        io.Reader
}

// Upload writes the file and records it. A file name already taken in the
// target directory gets a short random prefix.
func (s *Store) Upload(ctx context.Context, up Upload) (models.Attachment, error) {
	if up.MinutesID.IsZero() || up.GroupSlug == "" || up.Year == 0 || up.Body == nil {
		return models.Attachment{}, fmt.Errorf("%w: minutes, group, year and body are required", ErrInvalidAttachment)
	}

	p := Path(up.Year, up.GroupSlug, up.FileName)
	if exists, err := afero.Exists(s.fs, p); err != nil {
		return models.Attachment{}, fmt.Errorf("attachment stat %s: %w", p, err)
	} else if exists {
		p = path.Join(path.Dir(p), uuid.NewString()[:8]+"-"+path.Base(p))
	}

	if err := afero.WriteReader(s.fs, p, up.Body); err != nil {
		return models.Attachment{}, fmt.Errorf("attachment write %s: %w", p, err)
	}
	info, err := s.fs.Stat(p)
	if err != nil {
		return models.Attachment{}, fmt.Errorf("attachment stat %s: %w", p, err)
	}

	ct := up.ContentType
	if ct == "" {
		ct = mime.TypeByExtension(path.Ext(p))
	}
	if ct == "" {
		ct = "application/octet-stream"
	}
	title := up.Title
	if title == "" {
		title = path.Base(p)
	}

	a := models.Attachment{
		ID:          primitive.NewObjectID(),
		MinutesID:   up.MinutesID,
		Title:       title,
		Description: up.Description,
		Path:        p,
		FileName:    path.Base(p),
		Size:        info.Size(),
		ContentType: ct,
	}
	a.Touch(time.Now())
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if rmErr := s.fs.Remove(p); rmErr != nil {
			s.log.Warn("orphaned attachment file", zap.String("path", p), zap.Error(rmErr))
		}
		return models.Attachment{}, storeerr.Translate("create attachment", err)
	}
	return a, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Attachment, error) {
	var a models.Attachment
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return models.Attachment{}, storeerr.Translate("attachment "+id.Hex(), err)
	}
	return a, nil
}

// ListByMinutes returns the minutes' attachments by title.
func (s *Store) ListByMinutes(ctx context.Context, minutesID primitive.ObjectID) ([]models.Attachment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "title", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"minutes_id": minutesID}, opts)
	if err != nil {
		return nil, storeerr.Translate("list attachments", err)
	}
	defer cur.Close(ctx)

	out := []models.Attachment{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, storeerr.Translate("list attachments", err)
	}
	return out, nil
}

// Open returns the attachment and its file. The caller closes the file.
func (s *Store) Open(ctx context.Context, id primitive.ObjectID) (models.Attachment, afero.File, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return models.Attachment{}, nil, err
	}
	f, err := s.fs.Open(a.Path)
	if err != nil {
		return models.Attachment{}, nil, fmt.Errorf("open attachment %s: %w", a.Path, err)
	}
	return a, f, nil
}

// Delete removes the record and its file. A file that is already gone is
// not an error.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := s.c.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return storeerr.Translate("delete attachment", err)
	}
	if err := s.fs.Remove(a.Path); err != nil {
		if exists, _ := afero.Exists(s.fs, a.Path); exists {
			return fmt.Errorf("remove attachment file %s: %w", a.Path, err)
		}
	}
	return nil
}
