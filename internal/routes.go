package internal

import (
	"goalboard/internal/controllers"
	"goalboard/internal/providers"
	"net/http"
)

func InitRoutes(apiController *controllers.ApiController, pageController *controllers.PageController, metrics providers.MetricsProviderInterface, logger providers.Logger) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider(
		providers.NewMetricsMiddleware(metrics),
		providers.NewRequestLogMiddleware(logger),
	)

	routers.Get("/", http.HandlerFunc(pageController.Index))
	routers.Get("/api/state", http.HandlerFunc(apiController.GetState))
	routers.Post("/api/contributions/random", http.HandlerFunc(apiController.AddRandomContribution))
	return routers
}
