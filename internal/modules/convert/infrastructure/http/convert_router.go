package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docgate/docgate/internal/modules/convert/application/use_cases"
	"github.com/docgate/docgate/internal/modules/convert/domain/definitions"
	"github.com/docgate/docgate/internal/modules/convert/infrastructure/http/controllers"
	"github.com/docgate/docgate/internal/modules/convert/infrastructure/implementations"
	sharedInfrastructure "github.com/docgate/docgate/internal/modules/shared/infrastructure"
	sharedImplementations "github.com/docgate/docgate/internal/modules/shared/infrastructure/implementations"
)

// ConvertRouter wires the conversion gateway's single domain module:
// office-worker pool, browser supervisor, markup converter, job queue,
// health aggregator, response cache and archival sink, all as
// process-lifetime singletons, registered behind the two routes the
// gateway exposes.
type ConvertRouter struct{}

// RegisterRoutes implements the RouterRegistry interface.
func (cr *ConvertRouter) RegisterRoutes(r *gin.RouterGroup) {
	env := sharedInfrastructure.GetEnvironment()

	health := implementations.NewHealthAggregator(env.MarkupConverterPath != "")
	markup := implementations.NewMarkupConverter(health)

	office := implementations.NewOfficeSupervisor(env.OfficeBasePort, env.MaxConcurrentJobs, health)
	browser := implementations.NewBrowserSupervisor(health)
	queue := implementations.NewJobQueue(env.MaxQueuedJobs, env.MaxConcurrentJobs, health)

	responseCache := sharedImplementations.GetRedisCacheStorage()
	hashGenerator := sharedImplementations.GetXxHashGenerator()

	var archivalSink *implementations.ArchivalSink
	if env.ArchivalBucket != "" {
		archivalSink = implementations.NewArchivalSink(
			sharedImplementations.GetS3CloudStorage(),
			env.ArchivalBucket,
			env.MaxConcurrentJobs,
		)
	}

	dispatchConversion := use_cases.NewDispatchConversion(
		queue,
		office,
		browser,
		markup,
		responseCache,
		hashGenerator,
		archivalSink,
		int64(env.ResponseCacheTTLSeconds),
		implementations.TypeResolver{},
		implementations.ValidatePDF,
	)

	convertController := &controllers.ConvertController{UseCase: dispatchConversion}
	healthController := &controllers.HealthController{Health: health}

	// Reaching route registration means the process is past every fatal
	// startup failure (env/config load, gin engine construction).
	health.Set("webserver", definitions.HealthStatusHealthy)

	r.OPTIONS("/healthcheck", func(c *gin.Context) {
		c.Header("Allow", http.MethodGet)
		c.Status(http.StatusNoContent)
	})
	r.GET("/healthcheck", healthController.Handle)

	r.OPTIONS("/", func(c *gin.Context) {
		c.Header("Accept", "multipart/form-data")
		c.Header("Allow", http.MethodPost)
		c.Status(http.StatusNoContent)
	})
	r.POST("/", convertController.Handle)
}
