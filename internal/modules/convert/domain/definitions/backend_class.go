package definitions

// BackendClass is the routing class an effective type tag resolves to:
// html goes to the browser, office formats to the office worker pool,
// pdf passes through unchanged, everything else to the markup converter.
type BackendClass string

const (
	BackendClassHTML    BackendClass = "html"
	BackendClassOffice  BackendClass = "office"
	BackendClassPDF     BackendClass = "pdf"
	BackendClassMarkup  BackendClass = "markup"
	BackendClassUnknown BackendClass = "unknown"
)
