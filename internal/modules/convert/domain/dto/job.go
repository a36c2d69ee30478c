// Package dto holds the data shapes that flow between the dispatcher, the
// job queue and the three backend converters.
package dto

// Resource is a single supporting file uploaded alongside the input
// document (e.g. an image referenced by an HTML input).
type Resource struct {
	// Name is the resource's original file name, matched against request
	// paths the browser backend observes during rendering.
	Name string
	// ContentType is the resource's declared MIME type.
	ContentType string
	// Body is the resource's raw bytes.
	Body []byte
}

// Job is a single admitted conversion request, bound to its response
// sink. A Job is created on successful admission and consumed exactly
// once by the queue.
type Job struct {
	// ID identifies the job for logging and tracing; not client-visible.
	ID string
	// EffectiveType is the resolved source-format tag chosen by the
	// dispatcher, e.g. "html", "docx", "pdf", "markdown".
	EffectiveType string
	// Input is the raw bytes of the uploaded document.
	Input []byte
	// InputName is the input file's original name (used for extension
	// fallback and diagnostics).
	InputName string
	// Resources is the list of supporting files uploaded with the input.
	Resources []Resource
	// Done is closed by the queue worker once the job has produced a
	// result or failed; callers block on it to implement synchronous
	// request/response semantics over the asynchronous queue.
	Done chan struct{}
	// Result holds the produced PDF bytes on success.
	Result []byte
	// Err holds the conversion error, if any. A DomainError implementer
	// carries the HTTP status via its error kind.
	Err error
}
