package use_cases

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docgate/docgate/internal/modules/convert/domain/definitions"
	"github.com/docgate/docgate/internal/modules/convert/domain/dto"
	sharedDefinitions "github.com/docgate/docgate/internal/modules/shared/domain/definitions"
	sharedErrors "github.com/docgate/docgate/internal/modules/shared/domain/errors"
)

// fakeQueue runs the handler inline, simulating instant admission and
// processing so tests don't need a real worker pool.
type fakeQueue struct {
	full bool
}

func (q *fakeQueue) Submit(job *dto.Job, handler func(*dto.Job)) error {
	if q.full {
		return sharedErrors.NewKindError(sharedErrors.KindQueueFull, "queue is full", nil)
	}
	handler(job)
	return nil
}

func (q *fakeQueue) Healthy() bool { return !q.full }

type fakeOffice struct {
	called bool
	result []byte
	err    error
}

func (o *fakeOffice) Convert(input []byte) ([]byte, error) {
	o.called = true
	return o.result, o.err
}
func (o *fakeOffice) Healthy() bool { return true }
func (o *fakeOffice) Shutdown()     {}

type fakeBrowser struct {
	called bool
	result []byte
	err    error
}

func (b *fakeBrowser) Convert(definitions.BrowserConversionRequest) ([]byte, error) {
	b.called = true
	return b.result, b.err
}
func (b *fakeBrowser) Healthy() bool { return true }
func (b *fakeBrowser) Shutdown()     {}

type fakeMarkup struct {
	called     bool
	configured bool
	result     []byte
	err        error
}

func (m *fakeMarkup) Convert(sourceFormatTag string, input []byte) ([]byte, error) {
	m.called = true
	return m.result, m.err
}
func (m *fakeMarkup) Healthy() bool    { return m.configured }
func (m *fakeMarkup) Configured() bool { return m.configured }

type fakeResolver struct {
	declaredType string
	class        definitions.BackendClass
	recognized   map[string]bool
}

func (r *fakeResolver) DetectDeclaredType([]byte, string, string) string { return r.declaredType }
func (r *fakeResolver) Classify(string) definitions.BackendClass         { return r.class }
func (r *fakeResolver) IsRecognizedTag(tag string) bool                 { return r.recognized[tag] }

type fakeCache struct {
	store map[string][]byte
}

func newFakeCache() *fakeCache { return &fakeCache{store: make(map[string][]byte)} }

func (c *fakeCache) Set(request sharedDefinitions.SetCacheEntryRequest) error {
	c.store[request.Key] = request.Value
	return nil
}
func (c *fakeCache) Get(key string) ([]byte, error) { return c.store[key], nil }
func (c *fakeCache) Delete(key string) error        { delete(c.store, key); return nil }

type fakeHash struct{ value string }

func (h *fakeHash) GenerateHash(string) (string, error) { return h.value, nil }

type fakeArchiver struct {
	archived bool
}

func (a *fakeArchiver) Archive(contentHash string, pdf []byte) { a.archived = true }

func newDispatcherForTest(resolver *fakeResolver, queue *fakeQueue, office *fakeOffice, browser *fakeBrowser, markup *fakeMarkup, cache *fakeCache, hash *fakeHash, archiver *fakeArchiver) *DispatchConversion {
	return NewDispatchConversion(queue, office, browser, markup, cache, hash, archiver, 3600, resolver, func([]byte) error { return nil })
}

func TestDispatchConversion_PDFPassthroughIsByteIdentical(t *testing.T) {
	resolver := &fakeResolver{declaredType: "pdf", class: definitions.BackendClassPDF}
	office := &fakeOffice{}
	browser := &fakeBrowser{}
	markup := &fakeMarkup{}

	dispatcher := newDispatcherForTest(resolver, &fakeQueue{}, office, browser, markup, newFakeCache(), &fakeHash{value: "h1"}, &fakeArchiver{})

	input := []byte("%PDF-1.4 not a real pdf but passthrough only cares about bytes")
	result, err := dispatcher.Execute(DispatchConversionInput{InputBytes: input, InputName: "doc.pdf"})

	assert.NoError(t, err)
	assert.Equal(t, input, result)
	assert.False(t, office.called)
	assert.False(t, browser.called)
	assert.False(t, markup.called)
}

func TestDispatchConversion_ContradictoryTypeHintIsUnsupportedMedia(t *testing.T) {
	resolver := &fakeResolver{
		declaredType: "html",
		recognized:   map[string]bool{"docx": true, "html": true},
	}
	dispatcher := newDispatcherForTest(resolver, &fakeQueue{}, &fakeOffice{}, &fakeBrowser{}, &fakeMarkup{}, newFakeCache(), &fakeHash{value: "h1"}, &fakeArchiver{})

	_, err := dispatcher.Execute(DispatchConversionInput{
		InputBytes: []byte("<html></html>"),
		InputName:  "doc.html",
		TypeHint:   "docx",
	})

	assert.Error(t, err)
	domainErr, ok := err.(sharedErrors.DomainError)
	assert.True(t, ok)
	assert.Equal(t, sharedErrors.KindUnsupportedMedia, domainErr.Code())
}

func TestDispatchConversion_UnrecognizedTypeHintIsValidationError(t *testing.T) {
	resolver := &fakeResolver{recognized: map[string]bool{}}
	dispatcher := newDispatcherForTest(resolver, &fakeQueue{}, &fakeOffice{}, &fakeBrowser{}, &fakeMarkup{}, newFakeCache(), &fakeHash{value: "h1"}, &fakeArchiver{})

	_, err := dispatcher.Execute(DispatchConversionInput{
		InputBytes: []byte("whatever"),
		InputName:  "doc.bin",
		TypeHint:   "not-a-real-tag",
	})

	assert.Error(t, err)
	domainErr, ok := err.(sharedErrors.DomainError)
	assert.True(t, ok)
	assert.Equal(t, sharedErrors.KindValidation, domainErr.Code())
}

func TestDispatchConversion_UndeterminedTypeIsUnsupportedMedia(t *testing.T) {
	resolver := &fakeResolver{declaredType: ""}
	dispatcher := newDispatcherForTest(resolver, &fakeQueue{}, &fakeOffice{}, &fakeBrowser{}, &fakeMarkup{}, newFakeCache(), &fakeHash{value: "h1"}, &fakeArchiver{})

	_, err := dispatcher.Execute(DispatchConversionInput{InputBytes: []byte("???"), InputName: "mystery"})

	assert.Error(t, err)
	domainErr, ok := err.(sharedErrors.DomainError)
	assert.True(t, ok)
	assert.Equal(t, sharedErrors.KindUnsupportedMedia, domainErr.Code())
}

func TestDispatchConversion_QueueFullPropagates(t *testing.T) {
	resolver := &fakeResolver{declaredType: "pdf", class: definitions.BackendClassPDF}
	dispatcher := newDispatcherForTest(resolver, &fakeQueue{full: true}, &fakeOffice{}, &fakeBrowser{}, &fakeMarkup{}, newFakeCache(), &fakeHash{value: "h1"}, &fakeArchiver{})

	_, err := dispatcher.Execute(DispatchConversionInput{InputBytes: []byte("%PDF-1.4"), InputName: "doc.pdf"})

	assert.Error(t, err)
	domainErr, ok := err.(sharedErrors.DomainError)
	assert.True(t, ok)
	assert.Equal(t, sharedErrors.KindQueueFull, domainErr.Code())
}

func TestDispatchConversion_RoutesOfficeFormatsToOfficeSupervisor(t *testing.T) {
	resolver := &fakeResolver{declaredType: "docx", class: definitions.BackendClassOffice}
	office := &fakeOffice{result: []byte("converted pdf bytes")}
	dispatcher := newDispatcherForTest(resolver, &fakeQueue{}, office, &fakeBrowser{}, &fakeMarkup{}, newFakeCache(), &fakeHash{value: "h1"}, &fakeArchiver{})

	result, err := dispatcher.Execute(DispatchConversionInput{InputBytes: []byte("docx bytes"), InputName: "doc.docx"})

	assert.NoError(t, err)
	assert.True(t, office.called)
	assert.Equal(t, []byte("converted pdf bytes"), result)
}

func TestDispatchConversion_CachesAndArchivesSuccessfulResult(t *testing.T) {
	resolver := &fakeResolver{declaredType: "pdf", class: definitions.BackendClassPDF}
	cache := newFakeCache()
	archiver := &fakeArchiver{}
	dispatcher := newDispatcherForTest(resolver, &fakeQueue{}, &fakeOffice{}, &fakeBrowser{}, &fakeMarkup{}, cache, &fakeHash{value: "fixed-hash"}, archiver)

	input := []byte("%PDF-1.4 cacheable")
	result, err := dispatcher.Execute(DispatchConversionInput{InputBytes: input, InputName: "doc.pdf"})

	assert.NoError(t, err)
	assert.Equal(t, input, cache.store["fixed-hash"])
	assert.True(t, archiver.archived)
	assert.Equal(t, input, result)
}

func TestDispatchConversion_ResponseCacheHitSkipsQueue(t *testing.T) {
	resolver := &fakeResolver{declaredType: "pdf", class: definitions.BackendClassPDF}
	cache := newFakeCache()
	cache.store["fixed-hash"] = []byte("cached pdf bytes")

	queue := &fakeQueue{full: true} // would fail admission if reached
	dispatcher := newDispatcherForTest(resolver, queue, &fakeOffice{}, &fakeBrowser{}, &fakeMarkup{}, cache, &fakeHash{value: "fixed-hash"}, &fakeArchiver{})

	result, err := dispatcher.Execute(DispatchConversionInput{InputBytes: []byte("%PDF-1.4"), InputName: "doc.pdf"})

	assert.NoError(t, err)
	assert.Equal(t, []byte("cached pdf bytes"), result)
}
