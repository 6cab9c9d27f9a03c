// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/spf13/afero"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Files is the attachment store, rooted at attachments_path.
	Files afero.Fs
}
