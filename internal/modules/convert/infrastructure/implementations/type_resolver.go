package implementations

import (
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/docgate/docgate/internal/modules/convert/domain/definitions"
)

// mimeToTag is the normative MIME→tag table.
var mimeToTag = map[string]string{
	"text/html":                "html",
	"application/xhtml+xml":    "html",
	"application/pdf":          "pdf",
	"application/rtf":          "rtf",
	"text/rtf":                 "rtf",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": "docx",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":       "xlsx",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": "pptx",
	"application/vnd.oasis.opendocument.text":         "odt",
	"application/vnd.oasis.opendocument.spreadsheet":  "opendocument",
	"application/vnd.oasis.opendocument.presentation":  "opendocument",
	"text/markdown":      "markdown",
	"text/x-rst":         "rst",
	"application/x-latex": "latex",
	"text/x-tex":          "latex",
	"text/csv":            "csv",
	"text/tab-separated-values": "tsv",
	"application/epub+zip": "epub",
	"application/x-ipynb+json": "ipynb",
	"text/x-org":           "org",
	"text/x-textile":       "textile",
}

// extensionToTag is the normative extension→tag fallback table.
var extensionToTag = map[string]string{
	".html": "html", ".htm": "html",
	".pdf":  "pdf",
	".rtf":  "rtf",
	".docx": "docx",
	".xlsx": "xlsx",
	".pptx": "pptx",
	".odt":  "odt",
	".ods":  "opendocument", ".odp": "opendocument",
	".md":       "markdown", ".markdown": "markdown",
	".rst":      "rst",
	".tex":      "latex", ".latex": "latex",
	".csv":      "csv",
	".tsv":      "tsv",
	".epub":     "epub",
	".ipynb":    "ipynb",
	".org":      "org",
	".textile":  "textile",
}

// recognizedTags is the closed set a client-supplied `type` hint is
// validated against.
var recognizedTags = func() map[string]bool {
	set := make(map[string]bool)
	for _, tag := range mimeToTag {
		set[tag] = true
	}
	for _, tag := range extensionToTag {
		set[tag] = true
	}
	return set
}()

// IsRecognizedTag reports whether tag belongs to the closed set of
// format tags the dispatcher understands.
func IsRecognizedTag(tag string) bool {
	return recognizedTags[tag]
}

// officeTags partitions the recognized tag set into the routing classes
// described above.
var officeTags = map[string]bool{
	"rtf": true, "docx": true, "xlsx": true, "pptx": true,
	"opendocument": true, "odt": true,
}

// Classify maps an effective type tag to its routing class.
func Classify(tag string) definitions.BackendClass {
	switch {
	case tag == "html":
		return definitions.BackendClassHTML
	case tag == "pdf":
		return definitions.BackendClassPDF
	case officeTags[tag]:
		return definitions.BackendClassOffice
	case IsRecognizedTag(tag):
		return definitions.BackendClassMarkup
	default:
		return definitions.BackendClassUnknown
	}
}

// DetectDeclaredType resolves a document's declared type, plus the
// hardening: sniff the content's real MIME type via magic-byte
// detection first, fall back to the client-declared Content-Type, then
// to the file extension. An empty string means undetermined.
func DetectDeclaredType(input []byte, declaredContentType, fileName string) string {
	if sniffed := mimetype.Detect(input); sniffed != nil {
		if tag, ok := mimeToTag[sniffed.String()]; ok {
			return tag
		}
	}

	if tag, ok := mimeToTag[strings.ToLower(declaredContentType)]; ok {
		return tag
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if tag, ok := extensionToTag[ext]; ok {
		return tag
	}

	return ""
}

// TypeResolver adapts the package-level detection functions to the
// method-set the dispatcher use case depends on.
type TypeResolver struct{}

func (TypeResolver) DetectDeclaredType(input []byte, contentType, name string) string {
	return DetectDeclaredType(input, contentType, name)
}

func (TypeResolver) Classify(tag string) definitions.BackendClass {
	return Classify(tag)
}

func (TypeResolver) IsRecognizedTag(tag string) bool {
	return IsRecognizedTag(tag)
}
