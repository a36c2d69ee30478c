package definitions

// MarkupConverter launches a per-job converter process that reads a
// document from stdin and writes PDF to stdout.
type MarkupConverter interface {
	// Convert transcodes input to PDF using the converter process,
	// selecting behavior by the given source-format tag (e.g. "markdown",
	// "rst", "latex").
	Convert(sourceFormatTag string, input []byte) ([]byte, error)
	// Healthy reports whether the markup converter is configured and
	// considered usable. A gateway without a configured markup binary
	// reports unhealthy so the aggregate reflects that it is absent.
	Healthy() bool
	// Configured reports whether a markup converter binary was configured
	// at startup; used to decide whether to include it in the health map
	// at all.
	Configured() bool
}
