package http

import (
	convertHTTP "github.com/docgate/docgate/internal/modules/convert/infrastructure/http"
	"github.com/docgate/docgate/internal/modules/shared/infrastructure"
	sharedMiddlewares "github.com/docgate/docgate/internal/modules/shared/infrastructure/http/middlewares"
	"github.com/gin-gonic/gin"
)

// moduleRegistries contains all routers to be registered
var moduleRegistries = []RouterRegistry{
	&convertHTTP.ConvertRouter{},
}

// RegisterRoutes builds the Gin engine with every module's routes mounted
// at the root: the gateway exposes exactly `/healthcheck` and `/`, with
// no version prefix.
func RegisterRoutes() *gin.Engine {
	if infrastructure.GetEnvironment().Environment == infrastructure.ENVIRONMENT_PRODUCTION {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(sharedMiddlewares.ErrorHandlerMiddleware())

	root := router.Group("/")
	for _, registry := range moduleRegistries {
		registry.RegisterRoutes(root)
	}

	return router
}
