package implementations

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docgate/docgate/internal/modules/convert/domain/definitions"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		tag      string
		expected definitions.BackendClass
	}{
		{"html", definitions.BackendClassHTML},
		{"pdf", definitions.BackendClassPDF},
		{"docx", definitions.BackendClassOffice},
		{"rtf", definitions.BackendClassOffice},
		{"odt", definitions.BackendClassOffice},
		{"markdown", definitions.BackendClassMarkup},
		{"rst", definitions.BackendClassMarkup},
		{"latex", definitions.BackendClassMarkup},
		{"not-a-real-tag", definitions.BackendClassUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.tag, func(t *testing.T) {
			assert.Equal(t, tc.expected, Classify(tc.tag))
		})
	}
}

func TestIsRecognizedTag(t *testing.T) {
	assert.True(t, IsRecognizedTag("docx"))
	assert.True(t, IsRecognizedTag("markdown"))
	assert.False(t, IsRecognizedTag("not-a-real-tag"))
	assert.False(t, IsRecognizedTag(""))
}

func TestDetectDeclaredType_SniffsOverDeclared(t *testing.T) {
	pdfMagic := []byte("%PDF-1.4\n...")
	tag := DetectDeclaredType(pdfMagic, "application/octet-stream", "whatever.bin")
	assert.Equal(t, "pdf", tag)
}

func TestDetectDeclaredType_FallsBackToDeclaredContentType(t *testing.T) {
	tag := DetectDeclaredType([]byte("not a recognizable magic byte sequence"), "text/markdown", "doc")
	assert.Equal(t, "markdown", tag)
}

func TestDetectDeclaredType_FallsBackToExtension(t *testing.T) {
	tag := DetectDeclaredType([]byte("some plain text"), "", "notes.rst")
	assert.Equal(t, "rst", tag)
}

func TestDetectDeclaredType_Undetermined(t *testing.T) {
	tag := DetectDeclaredType([]byte("some plain text"), "", "notes")
	assert.Equal(t, "", tag)
}

func TestTypeResolverAdapter_DelegatesToPackageFunctions(t *testing.T) {
	resolver := TypeResolver{}
	assert.Equal(t, definitions.BackendClassOffice, resolver.Classify("docx"))
	assert.True(t, resolver.IsRecognizedTag("pdf"))
	assert.Equal(t, "pdf", resolver.DetectDeclaredType([]byte("%PDF-1.4"), "", ""))
}
