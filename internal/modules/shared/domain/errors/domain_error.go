package errors

// Error kind codes shared by every conversion backend. This vocabulary
// of error kinds maps to HTTP statuses; kept here (rather than under the
// convert module) so the generic HTTP error middleware can map them
// without importing domain-specific packages.
const (
	KindValidation      = "VALIDATION"
	KindUnsupportedMedia = "UNSUPPORTED_MEDIA"
	KindQueueFull        = "QUEUE_FULL"
	KindConvertTimeout   = "CONVERT_TIMEOUT"
	KindConvertError     = "CONVERT_ERROR"
	KindOverload         = "OVERLOAD"
	KindInternal         = "INTERNAL"
	KindUploadTooLarge   = "UPLOAD_TOO_LARGE"
)

// DomainError is an interface that represents a domain error in the application.
type DomainError interface {
	error
	Code() string
	Message() string
	Metadata() map[string]any
}

// GenericDomainError is a struct that implements the DomainError interface.
type GenericDomainError struct {
	code     string
	message  string
	metadata map[string]any
}

// CreateDomainErrorArguments is a struct that holds the arguments for creating a domain error.
type CreateDomainErrorArguments struct {
	Code     *string
	Message  string
	Metadata map[string]any
}

// NewGenericDomainError creates a new instance of GenericDomainError with the provided arguments.
func NewGenericDomainError(args CreateDomainErrorArguments) DomainError {
	errorCode := "ERROR"

	if args.Code != nil {
		errorCode = *args.Code
	}

	return &GenericDomainError{
		code:     errorCode,
		message:  args.Message,
		metadata: args.Metadata,
	}
}

// Code returns the error code of the domain error.
func (e *GenericDomainError) Code() string {
	return e.code
}

// Message returns the error message of the domain error.
func (e *GenericDomainError) Message() string {
	return e.message
}

// Metadata returns the metadata of the domain error.
func (e *GenericDomainError) Metadata() map[string]any {
	return e.metadata
}

// Error implements the error interface so a DomainError can be returned
// and wrapped anywhere ordinary Go code expects one.
func (e *GenericDomainError) Error() string {
	return e.message
}

// NewKindError is a small convenience wrapper over NewGenericDomainError for
// the common case of constructing an error of one of the Kind* codes above.
func NewKindError(kind string, message string, metadata map[string]any) DomainError {
	return NewGenericDomainError(CreateDomainErrorArguments{
		Code:     &kind,
		Message:  message,
		Metadata: metadata,
	})
}
