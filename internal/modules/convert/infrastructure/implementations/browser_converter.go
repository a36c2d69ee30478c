package implementations

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/docgate/docgate/internal/modules/convert/domain/definitions"
	"github.com/docgate/docgate/internal/modules/convert/domain/errors"
	sharedInfrastructure "github.com/docgate/docgate/internal/modules/shared/infrastructure"
	sharedUtilities "github.com/docgate/docgate/internal/modules/shared/utilities"
)

var _ definitions.BrowserSupervisor = (*BrowserSupervisor)(nil)

// Convert implements the Conversion protocol: acquire a
// reference to the current browser, isolate the document behind a random
// host, serve it and its declared resources through request
// interception, render to PDF, and release the reference no matter how
// the render ends.
func (s *BrowserSupervisor) Convert(request definitions.BrowserConversionRequest) ([]byte, error) {
	holder := s.current.Load()
	if holder == nil {
		return nil, errors.NewOverloadError("no browser instance available")
	}

	browser, ok := holder.acquire()
	if !ok {
		return nil, errors.NewOverloadError("browser instance is draining")
	}
	defer holder.release()

	env := sharedInfrastructure.GetEnvironment()
	logger := sharedUtilities.GetLogger()

	host := fmt.Sprintf("http://%s.invalid", sharedInfrastructure.GenerateXID())
	encoding := detectEncoding(request.Input)

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, errors.NewConvertError("could not open browser page", map[string]any{"error": err.Error()})
	}
	defer func() {
		if err := page.Close(); err != nil {
			logger.WithError(err).Warn("failed to close browser page")
		}
	}()

	page = page.Timeout(time.Duration(env.PDFRenderTimeout) * time.Millisecond)

	if err := (proto.NetworkSetCacheDisabled{CacheDisabled: true}).Call(page); err != nil {
		logger.WithError(err).Warn("failed to disable page cache")
	}
	if err := (proto.EmulationSetScriptExecutionDisabled{Value: true}).Call(page); err != nil {
		logger.WithError(err).Warn("failed to disable script execution")
	}
	if err := (proto.NetworkEmulateNetworkConditions{
		Offline:         true,
		Latency:         0,
		DownloadThroughput: -1,
		UploadThroughput:   -1,
	}).Call(page); err != nil {
		logger.WithError(err).Warn("failed to enable offline mode")
	}

	router := page.HijackRequests()
	router.MustAdd("*", buildInterceptHandler(host, encoding, request.Input, request.Resources))
	go router.Run()
	defer router.MustStop()

	if err := page.Navigate(host); err != nil {
		return nil, errors.NewConvertError("navigation to document host failed", map[string]any{"error": err.Error()})
	}
	if err := page.WaitLoad(); err != nil {
		return nil, errors.NewConvertTimeoutError("document did not finish loading in time", map[string]any{"error": err.Error()})
	}

	pdf, err := page.PDF(&proto.PagePrintToPDF{
		PaperWidth:  floatPtr(8.27),
		PaperHeight: floatPtr(11.69),
	})
	if err != nil {
		return nil, errors.NewConvertError("PDF render failed", map[string]any{"error": err.Error()})
	}

	buf := make([]byte, 0)
	chunk := make([]byte, 32*1024)
	for {
		n, readErr := pdf.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
		}
		if readErr != nil {
			break
		}
	}

	return buf, nil
}

// buildInterceptHandler installs the ordered request-interception rule set as
// a single hijack handler closed over the per-request host, encoding and
// declared resources.
func buildInterceptHandler(host, encoding string, input []byte, resources []definitions.BrowserResource) func(*rod.Hijack) {
	return func(hijack *rod.Hijack) {
		requestURL := hijack.Request.URL().String()

		if requestURL == host || requestURL == host+"/" {
			hijack.Response.SetHeader("Content-Type", fmt.Sprintf("text/html;charset=%s", encoding))
			hijack.Response.SetHeader("Access-Control-Allow-Origin", host)
			hijack.Response.Payload().Body = input
			hijack.Response.SetStatus(200)
			return
		}

		initiator := hijack.Request.Header("Origin")
		if initiator != "" && !strings.HasPrefix(initiator, host) {
			hijack.Response.SetStatus(403)
			return
		}

		requestPath := strings.TrimPrefix(requestURL, host)
		requestPath = strings.TrimPrefix(requestPath, "/")
		for _, resource := range resources {
			if resource.Name == requestPath {
				hijack.Response.SetHeader("Content-Type", resource.ContentType)
				hijack.Response.SetHeader("Access-Control-Allow-Origin", host)
				hijack.Response.Payload().Body = resource.Body
				hijack.Response.SetStatus(200)
				return
			}
		}

		// No rule matched: let the request continue. Offline mode means
		// it will fail at the network layer, which is the desired deny.
		hijack.ContinueRequest(&proto.FetchContinueRequest{})
	}
}

func floatPtr(v float64) *float64 {
	return &v
}
