//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"bsd/internal"
	"bsd/internal/controllers"
	"bsd/internal/providers"
	"bsd/internal/scheduler"
	"bsd/internal/services"
	"bsd/internal/snapshot"
	"bsd/internal/status"
	"bsd/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,

		snapshot.NewZstdCompressor,
		snapshot.NewArchiver,
		snapshot.NewStore,
		services.NewStatsService,
		scheduler.NewScheduler,
		status.NewProbe,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
