// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"

	"github.com/dalemusser/govhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for govhub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, attachments_path, etc.
//   - Environment variables: GOVHUB_MONGO_URI, GOVHUB_ATTACHMENTS_PATH, etc.
//   - Command-line flags: --mongo_uri, --attachments_path, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "govhub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},

	// File storage
	{Name: "attachments_path", Default: "./data/attachments", Desc: "Root directory for minutes attachment files"},

	// Presentation
	{Name: "site_name", Default: "govhub", Desc: "Site name shown in the page header"},
	{Name: "recent_meetings", Default: 5, Desc: "Number of recent meetings listed on the index page"},
	{Name: "board_slug", Default: "board", Desc: "Group type slug shown as the governing board on the index page"},
	{Name: "show_draft_minutes", Default: false, Desc: "Serve draft minutes (otherwise they are hidden)"},

	// Fixtures
	{Name: "seed_file", Default: "", Desc: "Optional YAML fixture file loaded at startup"},

	// Timeouts
	{Name: "timeout_short", Default: timeouts.DefaultShort.String(), Desc: "Timeout for single-document lookups"},
	{Name: "timeout_medium", Default: timeouts.DefaultMedium.String(), Desc: "Timeout for page queries"},
	{Name: "timeout_long", Default: timeouts.DefaultLong.String(), Desc: "Timeout for startup work such as seeding"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, GOVHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "GOVHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),

		AttachmentsPath: strings.TrimSpace(appValues.String("attachments_path")),

		SiteName:         appValues.String("site_name"),
		RecentMeetings:   appValues.Int("recent_meetings"),
		BoardSlug:        strings.ToLower(strings.TrimSpace(appValues.String("board_slug"))),
		ShowDraftMinutes: appValues.Bool("show_draft_minutes"),

		SeedFile: strings.TrimSpace(appValues.String("seed_file")),

		TimeoutShort:  appValues.Duration("timeout_short", timeouts.DefaultShort),
		TimeoutMedium: appValues.Duration("timeout_medium", timeouts.DefaultMedium),
		TimeoutLong:   appValues.Duration("timeout_long", timeouts.DefaultLong),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The MongoDB URI is checked here so a typo fails before any connection
// attempt.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if appCfg.MongoDatabase == "" {
		return fmt.Errorf("mongo_database must not be empty")
	}
	if appCfg.RecentMeetings <= 0 {
		return fmt.Errorf("recent_meetings must be positive, got %d", appCfg.RecentMeetings)
	}
	if appCfg.AttachmentsPath == "" {
		return fmt.Errorf("attachments_path must not be empty")
	}
	return nil
}
