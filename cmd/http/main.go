package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	sharedInfrastructure "github.com/docgate/docgate/internal/modules/shared/infrastructure"
	sharedHTTP "github.com/docgate/docgate/internal/modules/shared/infrastructure/http"
	sharedUtilities "github.com/docgate/docgate/internal/modules/shared/utilities"
)

func main() {
	env := sharedInfrastructure.GetEnvironment()
	logger := sharedUtilities.GetLogger()

	router := sharedHTTP.RegisterRoutes()

	// The request timeout must exceed PDF_RENDER_TIMEOUT so a slow but
	// in-budget conversion is never cut off by the HTTP layer itself.
	renderTimeout := time.Duration(env.PDFRenderTimeout) * time.Millisecond
	requestTimeout := renderTimeout + 5*time.Second

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", env.WebserverPort),
		Handler:      router,
		ReadTimeout:  requestTimeout,
		WriteTimeout: requestTimeout,
	}

	logger.WithField("port", env.WebserverPort).Info("Starting docgate conversion gateway")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Fatal("Error starting server")
	}
}
