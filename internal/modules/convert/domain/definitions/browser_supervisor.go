package definitions

// BrowserConversionRequest is the input to a single browser-backed render.
type BrowserConversionRequest struct {
	Input     []byte
	Resources []BrowserResource
}

// BrowserResource mirrors dto.Resource without importing the dto package,
// keeping the definitions package free of upward dependencies.
type BrowserResource struct {
	Name        string
	ContentType string
	Body        []byte
}

// BrowserSupervisor owns the lifecycle of the single long-lived headless
// browser: launch, periodic and crash restart, and reference-counted
// hot-swap so in-flight conversions finish against the superseded instance.
type BrowserSupervisor interface {
	// Convert renders a single HTML document (with resources resolved via
	// request interception) to PDF bytes.
	Convert(request BrowserConversionRequest) ([]byte, error)
	// Healthy reports whether the current browser instance is alive.
	Healthy() bool
	// Shutdown closes the current browser and releases its resources.
	Shutdown()
}
