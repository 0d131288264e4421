// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caravan/internal/http/handlers"
	"caravan/internal/http/middleware"
	"caravan/internal/modules/batch"
	"caravan/internal/modules/carpool"
	"caravan/internal/modules/costs"
	"caravan/internal/modules/trips"
)

func NewRouter(
	estimator *costs.Estimator,
	carpoolService *carpool.Service,
	tripStore *trips.Store,
	batchService *batch.Service,
) http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	routeHandler := handlers.NewRouteHandler(estimator)
	r.POST("/api/routes/optimize", routeHandler.Optimize)

	carpoolHandler := handlers.NewCarpoolHandler(carpoolService)
	r.POST("/api/carpool/recommendations", carpoolHandler.Recommend)

	groupingHandler := handlers.NewGroupingHandler()
	r.POST("/api/trips/groups", groupingHandler.Group)

	batchHandler := handlers.NewBatchHandler(tripStore, batchService)
	r.GET("/api/optimize/batch", batchHandler.Optimize)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
