// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/govhub/internal/app/resources"
	"github.com/dalemusser/govhub/internal/app/system/timeouts"
	"github.com/dalemusser/govhub/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built. It
// applies timeouts and presentation settings, loads shared templates, and
// loads the seed file when one is configured.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	timeouts.Configure(timeouts.Config{
		Short:  appCfg.TimeoutShort,
		Medium: appCfg.TimeoutMedium,
		Long:   appCfg.TimeoutLong,
	})
	viewdata.SetSiteName(appCfg.SiteName)
	resources.LoadSharedTemplates()

	if appCfg.SeedFile == "" {
		return nil
	}
	seedCtx, cancel := timeouts.WithTimeout(ctx, timeouts.Long(), logger, "seed")
	defer cancel()
	if _, err := loadSeedFile(seedCtx, deps.MongoDatabase, appCfg.SeedFile, logger); err != nil {
		logger.Error("seed load failed", zap.String("path", appCfg.SeedFile), zap.Error(err))
		return err
	}
	return nil
}
