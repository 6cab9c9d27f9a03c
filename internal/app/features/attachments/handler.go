// internal/app/features/attachments/handler.go
package attachments

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"strconv"

	errorsfeature "github.com/dalemusser/govhub/internal/app/features/errors"
	attachmentstore "github.com/dalemusser/govhub/internal/app/store/attachments"
	"github.com/dalemusser/govhub/internal/app/system/normalize"
	"github.com/dalemusser/govhub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"github.com/spf13/afero"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler streams minutes attachments from file storage.
type Handler struct {
	Store  *attachmentstore.Store
	ErrLog *errorsfeature.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, files afero.Fs, errLog *errorsfeature.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Store:  attachmentstore.New(db, files, logger),
		ErrLog: errLog,
		Log:    logger,
	}
}

// ServeDownload handles GET /attachments/{id}.
func (h *Handler) ServeDownload(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(normalize.QueryParam(chi.URLParam(r, "id")))
	if err != nil {
		errorsfeature.RenderNotFound(w, r, "We could not find that attachment.", "/")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	a, f, err := h.Store.Open(ctx, id)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		h.Log.Warn("attachment file missing", zap.String("id", id.Hex()), zap.Error(err))
		errorsfeature.RenderNotFound(w, r, "The attachment file is missing.", "/")
		return
	case err != nil:
		h.ErrLog.HandleStoreError(w, r, "attachment", err, "/")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(a.FileName))
	http.ServeContent(w, r, a.FileName, a.UpdatedAt, f)
}
