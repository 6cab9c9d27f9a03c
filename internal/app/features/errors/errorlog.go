// internal/app/features/errors/errorlog.go
package errors

import (
	"net/http"

	"github.com/dalemusser/govhub/internal/app/store/storeerr"
	"go.uber.org/zap"
)

// ErrorLogger logs handler failures with request context and renders the
// matching error page.
type ErrorLogger struct {
	Log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{Log: logger}
}

// StatusFor maps a store error onto the HTTP status its page uses.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case storeerr.IsNotFound(err):
		return http.StatusNotFound
	case storeerr.IsAmbiguous(err):
		return http.StatusMultipleChoices
	}
	return http.StatusInternalServerError
}

// LogServerError logs err and renders the 500 page.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.Log.Error(logMsg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path))
	RenderServerError(w, r, userMsg, backURL)
}

// HandleStoreError renders the page for a failed lookup: 404 for a
// missing record, 500 (logged) for anything else. Ambiguous lookups that
// reach here have no candidate list and are treated as not found; handlers
// that can list candidates call RenderChoices themselves.
func (e *ErrorLogger) HandleStoreError(w http.ResponseWriter, r *http.Request, what string, err error, backURL string) {
	switch StatusFor(err) {
	case http.StatusNotFound, http.StatusMultipleChoices:
		e.Log.Debug("lookup failed",
			zap.String("what", what),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		RenderNotFound(w, r, "We could not find that "+what+".", backURL)
	default:
		e.LogServerError(w, r, "database error loading "+what, err, "A database error occurred.", backURL)
	}
}
