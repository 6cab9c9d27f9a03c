package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/govhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// countedCollections are reported in the health response so an empty
// database (missed seed, wrong mongo_database) is visible at a glance.
var countedCollections = []string{"groups", "people", "terms", "meetings"}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Client *mongo.Client
	DBName string
	Log    *zap.Logger
}

// NewHandler constructs a health Handler with the Mongo client, the
// database name and the logger.
func NewHandler(client *mongo.Client, dbName string, logger *zap.Logger) *Handler {
	return &Handler{
		Client: client,
		DBName: dbName,
		Log:    logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string           `json:"status"`
	Database string           `json:"database"`
	Message  string           `json:"message,omitempty"`
	Error    string           `json:"error,omitempty"`
	Records  map[string]int64 `json:"records,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "records":{"groups":4,...} }
//
// On DB failure: 503 and
//
//	{ "status":"error", "message":"Database unavailable", "error":"…"}
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:   "ok",
		Database: "connected",
	}

	if err := h.Client.Ping(ctx, readpref.Primary()); err != nil {
		h.Log.Error("health-check: mongo ping failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		resp.Status = "error"
		resp.Database = "disconnected"
		resp.Message = "Database unavailable"
		resp.Error = err.Error()
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	// Record counts are informational; a failed count does not fail the check.
	if h.DBName != "" {
		db := h.Client.Database(h.DBName)
		resp.Records = make(map[string]int64, len(countedCollections))
		for _, name := range countedCollections {
			n, err := db.Collection(name).EstimatedDocumentCount(ctx)
			if err != nil {
				h.Log.Warn("health-check: count failed", zap.String("collection", name), zap.Error(err))
				continue
			}
			resp.Records[name] = n
		}
	}

	_ = json.NewEncoder(w).Encode(resp)
}
