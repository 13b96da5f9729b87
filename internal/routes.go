package internal

import (
	"net/http"

	"bsd/internal/controllers"
	"bsd/internal/providers"
	"bsd/internal/structures"
)

func InitRoutes(apiController *controllers.ApiController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/event", http.HandlerFunc(apiController.ReceiveEvent))
	routers.Get("/live", http.HandlerFunc(apiController.GetLive))
	routers.Get("/history", http.HandlerFunc(apiController.GetHistory))
	routers.Get("/window", http.HandlerFunc(apiController.GetWindow))
	routers.Get("/analytics", http.HandlerFunc(apiController.GetAnalytics))
	routers.Get("/identities", http.HandlerFunc(apiController.GetIdentities))
	return routers
}
