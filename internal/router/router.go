package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/foodai/festival-guide/backend/internal/api"
	"github.com/foodai/festival-guide/backend/internal/middleware"
)

// maxMultipartMemory is held in memory per upload request; the rest spills
// to temporary files.
const maxMultipartMemory = 32 << 20

// SetupRouter configures the middleware chain and application routes
func SetupRouter(allowedOrigins []string, logger *zap.Logger, handlers api.Handlers) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = maxMultipartMemory

	router.Use(
		middleware.ErrorHandler(logger),
		middleware.CORS(allowedOrigins),
		middleware.ClientID(),
		middleware.AccessLog(logger),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	api.RegisterRoutes(router, handlers)

	return router
}
