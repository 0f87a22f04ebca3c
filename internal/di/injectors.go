//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"goalboard/internal"
	"goalboard/internal/controllers"
	"goalboard/internal/providers"
	"goalboard/internal/services"
	"goalboard/internal/structures"
	"goalboard/internal/views"
	"goalboard/internal/ws"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		services.NewGoalService,
		wire.Bind(new(providers.GoalStateReader), new(services.GoalServiceInterface)),
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		wire.Bind(new(ws.StateSource), new(services.GoalServiceInterface)),
		ws.NewHub,
		wire.Bind(new(controllers.ClientCounter), new(*ws.Hub)),
		views.NewRenderer,
		controllers.NewApiController,
		controllers.NewPageController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
