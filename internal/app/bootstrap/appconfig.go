// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - Request body size limits
//
// AppConfig carries what is specific to govhub: the MongoDB connection,
// where attachment files live, and a few presentation settings.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64

	// Root directory for minutes attachments (attach/<year>/<group>/<file> below it)
	AttachmentsPath string

	// Presentation
	SiteName         string
	RecentMeetings   int    // meetings listed on the index page
	BoardSlug        string // group-type slug shown as the governing board on the index page
	ShowDraftMinutes bool   // serve draft minutes instead of hiding them

	// Optional YAML fixture loaded at startup
	SeedFile string

	// Per-request database timeouts; zero keeps the default
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration
}
