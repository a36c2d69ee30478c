// Package use_cases holds the application-layer orchestration for the
// conversion gateway: one use case, DispatchConversion, fans an admitted
// job out to the right backend and maps its outcome back to the caller.
package use_cases

import (
	"strings"

	"github.com/docgate/docgate/internal/modules/convert/domain/definitions"
	"github.com/docgate/docgate/internal/modules/convert/domain/dto"
	convertErrors "github.com/docgate/docgate/internal/modules/convert/domain/errors"
	sharedDefinitions "github.com/docgate/docgate/internal/modules/shared/domain/definitions"
	sharedInfrastructure "github.com/docgate/docgate/internal/modules/shared/infrastructure"
)

// DispatchConversionInput is everything the controller has already pulled
// out of the multipart request.
type DispatchConversionInput struct {
	InputBytes  []byte
	InputName   string
	ContentType string
	Resources   []dto.Resource
	TypeHint    string
}

// archiver is the minimal surface DispatchConversion needs from the
// archival sink; satisfied by *implementations.ArchivalSink, including
// its nil-receiver no-op case.
type archiver interface {
	Archive(contentHash string, pdf []byte)
}

// typeResolver and pdfValidator are injected so this package never
// imports the infrastructure layer directly.
type typeResolver interface {
	DetectDeclaredType(input []byte, contentType, name string) string
	Classify(tag string) definitions.BackendClass
	IsRecognizedTag(tag string) bool
}

// DispatchConversion orchestrates the request dispatcher: type
// resolution, response-cache lookup, admission, routing by effective
// type, post-conversion validation, caching and archival.
type DispatchConversion struct {
	queue            definitions.Queue
	office           definitions.OfficeSupervisor
	browser          definitions.BrowserSupervisor
	markup           definitions.MarkupConverter
	responseCache    sharedDefinitions.ResponseCache
	hashGenerator    sharedDefinitions.HashGenerator
	archivalSink     archiver
	responseCacheTTL int64
	resolver         typeResolver
	validatePDF      func([]byte) error
}

// NewDispatchConversion wires the use case.
func NewDispatchConversion(
	queue definitions.Queue,
	office definitions.OfficeSupervisor,
	browser definitions.BrowserSupervisor,
	markup definitions.MarkupConverter,
	responseCache sharedDefinitions.ResponseCache,
	hashGenerator sharedDefinitions.HashGenerator,
	archivalSink archiver,
	responseCacheTTL int64,
	resolver typeResolver,
	validatePDF func([]byte) error,
) *DispatchConversion {
	return &DispatchConversion{
		queue:            queue,
		office:           office,
		browser:          browser,
		markup:           markup,
		responseCache:    responseCache,
		hashGenerator:    hashGenerator,
		archivalSink:     archivalSink,
		responseCacheTTL: responseCacheTTL,
		resolver:         resolver,
		validatePDF:      validatePDF,
	}
}

// Execute resolves the effective type, serves a response-cache hit if
// one exists, otherwise admits the job to the queue and waits for its
// result.
func (d *DispatchConversion) Execute(input DispatchConversionInput) ([]byte, error) {
	if input.TypeHint != "" && !d.resolver.IsRecognizedTag(input.TypeHint) {
		return nil, convertErrors.NewValidationError("type is not a recognized format tag", map[string]any{"type": input.TypeHint})
	}

	declaredType := d.resolver.DetectDeclaredType(input.InputBytes, input.ContentType, input.InputName)
	effectiveType := input.TypeHint
	if effectiveType == "" {
		effectiveType = declaredType
	}

	if effectiveType == "" {
		return nil, convertErrors.NewUnsupportedMediaError("could not determine the document's format", nil)
	}
	if input.TypeHint != "" && declaredType != "" && input.TypeHint != declaredType {
		return nil, convertErrors.NewUnsupportedMediaError("supplied type contradicts the document's detected format", map[string]any{
			"type":          input.TypeHint,
			"detected_type": declaredType,
		})
	}

	contentHash := d.contentHash(effectiveType, input)

	if cached, hit := d.lookupCache(contentHash); hit {
		return cached, nil
	}

	job := &dto.Job{
		ID:            sharedInfrastructure.GenerateXID(),
		EffectiveType: effectiveType,
		Input:         input.InputBytes,
		InputName:     input.InputName,
		Resources:     input.Resources,
		Done:          make(chan struct{}),
	}

	if err := d.queue.Submit(job, d.runJob); err != nil {
		return nil, err
	}

	<-job.Done

	if job.Err != nil {
		return nil, job.Err
	}

	d.storeCache(contentHash, job.Result)
	d.archivalSink.Archive(contentHash, job.Result)

	return job.Result, nil
}

// runJob is the handler the queue invokes for an admitted job: route by
// effective type, convert, and validate the result.
func (d *DispatchConversion) runJob(job *dto.Job) {
	defer close(job.Done)

	class := d.resolver.Classify(job.EffectiveType)

	var result []byte
	var err error

	switch class {
	case definitions.BackendClassPDF:
		result = job.Input
	case definitions.BackendClassHTML:
		result, err = d.browser.Convert(toBrowserRequest(job))
	case definitions.BackendClassOffice:
		result, err = d.office.Convert(job.Input)
	case definitions.BackendClassMarkup:
		if !d.markup.Configured() {
			err = convertErrors.NewInternalError("markup converter is not configured", nil)
			break
		}
		result, err = d.markup.Convert(job.EffectiveType, job.Input)
	default:
		err = convertErrors.NewUnsupportedMediaError("unrecognized effective type", map[string]any{"type": job.EffectiveType})
	}

	if err != nil {
		job.Err = err
		return
	}

	if class != definitions.BackendClassPDF {
		if validateErr := d.validatePDF(result); validateErr != nil {
			job.Err = validateErr
			return
		}
	}

	job.Result = result
}

func (d *DispatchConversion) contentHash(effectiveType string, input DispatchConversionInput) string {
	var builder strings.Builder
	builder.WriteString(effectiveType)
	builder.Write(input.InputBytes)
	for _, resource := range input.Resources {
		builder.WriteString(resource.Name)
		builder.Write(resource.Body)
	}

	hash, err := d.hashGenerator.GenerateHash(builder.String())
	if err != nil {
		return ""
	}
	return hash
}

func (d *DispatchConversion) lookupCache(contentHash string) ([]byte, bool) {
	if d.responseCache == nil || contentHash == "" {
		return nil, false
	}
	cached, err := d.responseCache.Get(contentHash)
	if err != nil || cached == nil {
		return nil, false
	}
	return cached, true
}

func (d *DispatchConversion) storeCache(contentHash string, pdf []byte) {
	if d.responseCache == nil || contentHash == "" {
		return
	}
	_ = d.responseCache.Set(sharedDefinitions.SetCacheEntryRequest{
		Key:        contentHash,
		Value:      pdf,
		Expiration: d.responseCacheTTL,
	})
}

func toBrowserRequest(job *dto.Job) definitions.BrowserConversionRequest {
	resources := make([]definitions.BrowserResource, 0, len(job.Resources))
	for _, resource := range job.Resources {
		resources = append(resources, definitions.BrowserResource{
			Name:        resource.Name,
			ContentType: resource.ContentType,
			Body:        resource.Body,
		})
	}
	return definitions.BrowserConversionRequest{
		Input:     job.Input,
		Resources: resources,
	}
}
