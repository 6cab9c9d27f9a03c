// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	attachmentsfeature "github.com/dalemusser/govhub/internal/app/features/attachments"
	bylawsfeature "github.com/dalemusser/govhub/internal/app/features/bylaws"
	errorsfeature "github.com/dalemusser/govhub/internal/app/features/errors"
	groupsfeature "github.com/dalemusser/govhub/internal/app/features/groups"
	healthfeature "github.com/dalemusser/govhub/internal/app/features/health"
	homefeature "github.com/dalemusser/govhub/internal/app/features/home"
	meetingsfeature "github.com/dalemusser/govhub/internal/app/features/meetings"
	officesfeature "github.com/dalemusser/govhub/internal/app/features/offices"
	peoplefeature "github.com/dalemusser/govhub/internal/app/features/people"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: the MongoDB client/database and attachment filesystem
//   - logger: the fully configured zap.Logger for this app
//
// Every page is public and read-only. Meetings and officers hang off their
// group: /groups/{group}/meetings/... and /groups/{group}/officers/....
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	db := deps.MongoDatabase
	errLog := errorsfeature.NewErrorLogger(logger)
	errorsHandler := errorsfeature.NewHandler()

	r := chi.NewRouter()
	r.NotFound(errorsHandler.NotFound)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, appCfg.MongoDatabase, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Static assets with pre-compressed file support (gzip/brotli)
	r.Handle("/static/*", fileserver.Handler("/static", "public"))

	homeHandler := homefeature.NewHandler(db, errLog, appCfg.RecentMeetings, appCfg.BoardSlug, logger)
	r.Mount("/", homefeature.Routes(homeHandler))

	groupsHandler := groupsfeature.NewHandler(db, errLog, logger)
	meetingsHandler := meetingsfeature.NewHandler(db, errLog, appCfg.ShowDraftMinutes, logger)
	officesHandler := officesfeature.NewHandler(db, errLog, logger)
	r.Route("/groups", func(r chi.Router) {
		r.Mount("/{group}/meetings", meetingsfeature.Routes(meetingsHandler))
		r.Mount("/{group}/officers", officesfeature.Routes(officesHandler))
		r.Mount("/", groupsfeature.Routes(groupsHandler))
	})
	r.Mount("/offices", officesfeature.RedirectRoutes(officesHandler))

	peopleHandler := peoplefeature.NewHandler(db, errLog, logger)
	r.Mount("/people", peoplefeature.Routes(peopleHandler))

	bylawsHandler := bylawsfeature.NewHandler(db, errLog, logger)
	r.Mount("/bylaws", bylawsfeature.Routes(bylawsHandler))

	attachmentsHandler := attachmentsfeature.NewHandler(db, deps.Files, errLog, logger)
	r.Mount("/attachments", attachmentsfeature.Routes(attachmentsHandler))

	return r, nil
}
